package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Mattresses", "mattresses"},
		{"Artificial Grass", "artificial-grass"},
		{"Carpets & Rugs", "carpets-rugs"},
		{"  PVC   Flooring  ", "pvc-flooring"},
		{"L-Shape Sofa", "l-shape-sofa"},
		{"3D Wallpaper", "3d-wallpaper"},
		{"Décor Items!", "decor-items"},
		{"!!!", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Generate(tt.input))
		})
	}
}
