// Package colors resolves IDML swatch references to HWPX "#RRGGBB" strings.
package colors

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// NearWhiteFallback replaces text colours that would vanish on a white page.
const NearWhiteFallback = "#404040"

// nearWhiteThreshold is the per-channel level above which a colour counts as white.
const nearWhiteThreshold = 0.94

var basicColors = map[string]string{
	"Black":   "#000000",
	"White":   "#FFFFFF",
	"Paper":   "#FFFFFF",
	"Red":     "#FF0000",
	"Green":   "#00FF00",
	"Blue":    "#0000FF",
	"Yellow":  "#FFFF00",
	"Cyan":    "#00FFFF",
	"Magenta": "#FF00FF",
}

// Resolver maps swatch references ("Color/Black", "Color/u7a") to hex
// strings. It holds the document's colour table; values in the table use
// the forms accepted by Parse.
type Resolver struct {
	table map[string]string
	cache map[string]string
}

// NewResolver creates a resolver over a document colour table. The table
// is keyed by swatch reference. A nil table is allowed.
func NewResolver(table map[string]string) *Resolver {
	return &Resolver{
		table: table,
		cache: make(map[string]string),
	}
}

// Resolve returns the colour for ref as used for text. Near-white colours
// are replaced by NearWhiteFallback so text stays readable without the
// source's background artwork. ok is false for "None" and unknown refs.
func (r *Resolver) Resolve(ref string) (string, bool) {
	hex, ok := r.ResolveExact(ref)
	if !ok {
		return "", false
	}
	if IsNearWhite(hex) {
		return NearWhiteFallback, true
	}
	return hex, true
}

// ResolveExact returns the colour for ref without near-white substitution.
// Fills and strokes use this form.
func (r *Resolver) ResolveExact(ref string) (string, bool) {
	if ref == "" || strings.Contains(ref, "None") {
		return "", false
	}
	if strings.HasPrefix(ref, "#") {
		c, err := colorful.Hex(ref)
		if err != nil {
			return "", false
		}
		return toHex(c), true
	}
	if hex, ok := r.cache[ref]; ok {
		return hex, true
	}

	hex, ok := r.lookup(ref)
	if ok {
		r.cache[ref] = hex
	}
	return hex, ok
}

func (r *Resolver) lookup(ref string) (string, bool) {
	candidates := []string{ref}
	if strings.HasPrefix(ref, "Color/") {
		candidates = append(candidates, strings.TrimPrefix(ref, "Color/"))
	} else {
		candidates = append(candidates, "Color/"+ref)
	}

	for _, key := range candidates {
		if v, ok := r.table[key]; ok {
			if c, err := Parse(v); err == nil {
				return toHex(c), true
			}
		}
	}

	name := strings.TrimPrefix(ref, "Color/")
	if hex, ok := basicColors[name]; ok {
		return hex, true
	}
	return "", false
}

// Parse converts a colour table value to a colour. Accepted forms:
//
//	#RRGGBB
//	cmyk C M Y K   (percent)
//	rgb R G B      (0-255)
//	lab L A B      (CIE L*a*b*)
func Parse(v string) (colorful.Color, error) {
	v = strings.TrimSpace(v)
	if strings.HasPrefix(v, "#") {
		return colorful.Hex(v)
	}

	fields := strings.Fields(v)
	if len(fields) == 0 {
		return colorful.Color{}, fmt.Errorf("empty colour value")
	}
	nums := make([]float64, 0, len(fields)-1)
	for _, f := range fields[1:] {
		n, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return colorful.Color{}, fmt.Errorf("colour %q: %w", v, err)
		}
		nums = append(nums, n)
	}

	switch strings.ToLower(fields[0]) {
	case "cmyk":
		if len(nums) != 4 {
			return colorful.Color{}, fmt.Errorf("colour %q: want 4 CMYK components", v)
		}
		return FromCMYK(nums[0], nums[1], nums[2], nums[3]), nil
	case "rgb":
		if len(nums) != 3 {
			return colorful.Color{}, fmt.Errorf("colour %q: want 3 RGB components", v)
		}
		return colorful.Color{R: nums[0] / 255, G: nums[1] / 255, B: nums[2] / 255}.Clamped(), nil
	case "lab":
		if len(nums) != 3 {
			return colorful.Color{}, fmt.Errorf("colour %q: want 3 Lab components", v)
		}
		return colorful.Lab(nums[0]/100, nums[1]/100, nums[2]/100).Clamped(), nil
	default:
		return colorful.Color{}, fmt.Errorf("colour %q: unknown space %q", v, fields[0])
	}
}

// FromCMYK converts process CMYK percentages to sRGB with the naive
// device-independent formula. No ICC profile is applied.
func FromCMYK(c, m, y, k float64) colorful.Color {
	kk := 1 - k/100
	return colorful.Color{
		R: (1 - c/100) * kk,
		G: (1 - m/100) * kk,
		B: (1 - y/100) * kk,
	}.Clamped()
}

// IsNearWhite reports whether every channel of hex is at least 94%.
func IsNearWhite(hex string) bool {
	c, err := colorful.Hex(hex)
	if err != nil {
		return false
	}
	return c.R >= nearWhiteThreshold && c.G >= nearWhiteThreshold && c.B >= nearWhiteThreshold
}

// ApplyTint lightens hex toward white. tint is a percentage where 100 (or
// a negative "unset" value) leaves the colour unchanged.
func ApplyTint(hex string, tint float64) string {
	if tint < 0 || tint >= 100 {
		return hex
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	white := colorful.Color{R: 1, G: 1, B: 1}
	return toHex(white.BlendRgb(c, tint/100))
}

func toHex(c colorful.Color) string {
	return strings.ToUpper(c.Clamped().Hex())
}
