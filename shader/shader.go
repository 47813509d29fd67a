// Package shader holds the demo's WGSL sources and turns them into SPIR-V
// modules for the HAL device.
//
// Each Source carries both stages; the vertex entry point is vs_main and the
// fragment entry point is fs_main. Sources are compiled at startup with naga,
// or loaded from a directory of precompiled .spv files written by WriteSPIRV.
package shader

import (
	_ "embed"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

// Entry point names shared by every embedded source.
const (
	VertexEntry   = "vs_main"
	FragmentEntry = "fs_main"
)

// spirvMagic is the first word of every SPIR-V module.
const spirvMagic = 0x07230203

// Errors returned by this package.
var (
	// ErrEmptySource is returned when a Source has no WGSL text.
	ErrEmptySource = errors.New("shader: empty source")

	// ErrInvalidSPIRV is returned when precompiled data is not a SPIR-V module.
	ErrInvalidSPIRV = errors.New("shader: invalid SPIR-V")
)

//go:embed shaders/polygon.wgsl
var polygonWGSL string

//go:embed shaders/flat.wgsl
var flatWGSL string

// Source is a named WGSL shader containing a vertex and a fragment stage.
type Source struct {
	Name string
	WGSL string
}

var (
	// Polygon draws vertex-colored geometry from a position+color buffer.
	Polygon = Source{Name: "polygon", WGSL: polygonWGSL}

	// Flat draws a single triangle generated from the vertex index.
	Flat = Source{Name: "flat", WGSL: flatWGSL}
)

// Sources returns every embedded source.
func Sources() []Source {
	return []Source{Polygon, Flat}
}

// FileName returns the precompiled file name for the source.
func (s Source) FileName() string {
	return s.Name + ".spv"
}

// Compile compiles the WGSL source to SPIR-V words.
func Compile(src Source) ([]uint32, error) {
	if src.WGSL == "" {
		return nil, fmt.Errorf("%w: %q", ErrEmptySource, src.Name)
	}
	spirvBytes, err := naga.Compile(src.WGSL)
	if err != nil {
		return nil, fmt.Errorf("shader: compile %s: %w", src.Name, err)
	}
	return bytesToWords(spirvBytes)
}

// Load reads the precompiled SPIR-V for src from dir.
func Load(dir string, src Source) ([]uint32, error) {
	data, err := os.ReadFile(filepath.Join(dir, src.FileName()))
	if err != nil {
		return nil, fmt.Errorf("shader: load %s: %w", src.Name, err)
	}
	return bytesToWords(data)
}

// Resolve returns SPIR-V for src: loaded from dir when dir is set,
// compiled from the embedded WGSL otherwise.
func Resolve(src Source, dir string) ([]uint32, error) {
	if dir == "" {
		return Compile(src)
	}
	return Load(dir, src)
}

// WriteSPIRV compiles every embedded source and writes it to dir, creating
// the directory if needed. It returns the written paths.
func WriteSPIRV(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("shader: create %s: %w", dir, err)
	}
	var paths []string
	for _, src := range Sources() {
		words, err := Compile(src)
		if err != nil {
			return paths, err
		}
		path := filepath.Join(dir, src.FileName())
		if err := os.WriteFile(path, wordsToBytes(words), 0o644); err != nil {
			return paths, fmt.Errorf("shader: write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// CreateModule creates a HAL shader module from SPIR-V code.
func CreateModule(device hal.Device, label string, words []uint32) (hal.ShaderModule, error) {
	return device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label: label,
		Source: hal.ShaderSource{
			SPIRV: words,
		},
	})
}

// bytesToWords converts little-endian SPIR-V bytes to 32-bit words and
// checks the module header.
func bytesToWords(data []byte) ([]uint32, error) {
	if len(data) < 4 || len(data)%4 != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidSPIRV, len(data))
	}
	words := make([]uint32, len(data)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(data[i*4:])
	}
	if words[0] != spirvMagic {
		return nil, fmt.Errorf("%w: magic %#08x", ErrInvalidSPIRV, words[0])
	}
	return words, nil
}

func wordsToBytes(words []uint32) []byte {
	data := make([]byte, len(words)*4)
	for i, w := range words {
		binary.LittleEndian.PutUint32(data[i*4:], w)
	}
	return data
}
