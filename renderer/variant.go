package renderer

import (
	"fmt"
	"strings"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/polydemo/shader"
)

// Variant is a named combination of shader, pipeline state, geometry and
// clear color.
type Variant struct {
	Name     string
	Shader   shader.Source
	Pipeline PipelineConfig
	Geometry Geometry

	// DrawCount is the vertex count for variants without geometry.
	DrawCount uint32

	ClearColor gputypes.Color
}

// Indexed reports whether the variant draws uploaded geometry.
func (v Variant) Indexed() bool { return !v.Geometry.Empty() }

// VariantFlat clears to red and draws one shader-generated triangle.
func VariantFlat() Variant {
	return Variant{
		Name:       "flat",
		Shader:     shader.Flat,
		Pipeline:   FlatPipeline(),
		DrawCount:  3,
		ClearColor: gputypes.Color{R: 1.0, G: 0.0, B: 0.0, A: 1.0},
	}
}

// VariantVertexColor clears to a dark blue-grey and draws the indexed pentagon.
func VariantVertexColor() Variant {
	return Variant{
		Name:       "vertex-color",
		Shader:     shader.Polygon,
		Pipeline:   VertexColorPipeline(),
		Geometry:   Pentagon(),
		ClearColor: gputypes.Color{R: 0.1, G: 0.2, B: 0.3, A: 1.0},
	}
}

// Variants returns every built-in variant.
func Variants() []Variant {
	return []Variant{VariantFlat(), VariantVertexColor()}
}

// ParseVariant looks a variant up by name, case-insensitively.
func ParseVariant(name string) (Variant, error) {
	want := strings.ToLower(strings.TrimSpace(name))
	for _, v := range Variants() {
		if v.Name == want {
			return v, nil
		}
	}
	return Variant{}, fmt.Errorf("%w: %q", ErrUnknownVariant, name)
}
