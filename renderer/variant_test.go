package renderer

import (
	"errors"
	"testing"
)

func TestParseVariant(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"flat", "flat", false},
		{"vertex-color", "vertex-color", false},
		{" Vertex-Color ", "vertex-color", false},
		{"FLAT", "flat", false},
		{"", "", true},
		{"textured", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			v, err := ParseVariant(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownVariant) {
					t.Errorf("err = %v, want ErrUnknownVariant", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseVariant(%q): %v", tt.in, err)
			}
			if v.Name != tt.want {
				t.Errorf("Name = %q, want %q", v.Name, tt.want)
			}
		})
	}
}

func TestVariants(t *testing.T) {
	flat := VariantFlat()
	if flat.Indexed() {
		t.Error("flat variant should not be indexed")
	}
	if flat.DrawCount != 3 {
		t.Errorf("flat DrawCount = %d, want 3", flat.DrawCount)
	}
	if flat.ClearColor.R != 1 || flat.ClearColor.G != 0 || flat.ClearColor.B != 0 {
		t.Errorf("flat clear = %+v, want red", flat.ClearColor)
	}

	vc := VariantVertexColor()
	if !vc.Indexed() {
		t.Error("vertex-color variant should be indexed")
	}
	if vc.Pipeline.VertexLayout != vc.Indexed() {
		t.Error("vertex layout must match geometry presence")
	}
	if len(Variants()) != 2 {
		t.Errorf("Variants() = %d, want 2", len(Variants()))
	}
}
