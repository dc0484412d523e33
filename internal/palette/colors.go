package palette

import (
	"fmt"
	"image/color"
	"math"
	"sort"

	"golang.org/x/image/colornames"
)

// Trial-arm labels understood by ModelColors.
const (
	HSA          = "HSA"
	Additive     = "additive"
	Control      = "control"
	Experimental = "experimental"
	Combo        = "combo"
)

// Color is either a normalized RGB triple or a named color.
type Color struct {
	RGB  [3]float64 // components in [0, 1], used when Name is empty
	Name string
}

// Unknown is returned by Lookup for labels outside the palette.
var Unknown = Color{Name: "gray"}

func rgb255(r, g, b uint8) Color {
	return Color{RGB: [3]float64{float64(r) / 255, float64(g) / 255, float64(b) / 255}}
}

// ModelColors returns the preset colors for trial arms.
func ModelColors() map[string]Color {
	blue := rgb255(0, 128, 255) // hsa
	red := rgb255(200, 0, 50)   // additivity

	return map[string]Color{
		HSA:          blue,
		Additive:     red,
		Control:      {Name: "orange"},
		Experimental: {Name: "green"},
		Combo:        {Name: "black"},
	}
}

// Lookup returns the color of a trial arm, or Unknown.
func Lookup(label string) Color {
	if c, ok := ModelColors()[label]; ok {
		return c
	}
	return Unknown
}

// Labels returns the palette keys in sorted order.
func Labels() []string {
	colors := ModelColors()
	out := make([]string, 0, len(colors))
	for k := range colors {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// RGBA implements color.Color. Named colors use the SVG 1.1 names.
func (c Color) RGBA() (r, g, b, a uint32) {
	if c.Name != "" {
		if named, ok := colornames.Map[c.Name]; ok {
			return named.RGBA()
		}
		return color.Black.RGBA()
	}
	return color.RGBA{R: to8(c.RGB[0]), G: to8(c.RGB[1]), B: to8(c.RGB[2]), A: 255}.RGBA()
}

func to8(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

func (c Color) String() string {
	if c.Name != "" {
		return c.Name
	}
	return fmt.Sprintf("[%v, %v, %v]", c.RGB[0], c.RGB[1], c.RGB[2])
}
