package layout

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// RGB is an 8-bit per channel color
type RGB struct {
	R, G, B uint8
}

// ParseHex parses "#rgb" or "#rrggbb" (leading # optional)
func ParseHex(s string) (RGB, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return RGB{}, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return RGB{}, false
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, true
}

// ValidHex reports whether s parses as a hex color
func ValidHex(s string) bool {
	_, ok := ParseHex(s)
	return ok
}

// Hex formats the color as lowercase #rrggbb
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Offset shifts each channel by the given amounts, clamped to [0,255]
func (c RGB) Offset(dr, dg, db int) RGB {
	return RGB{R: clampChannel(int(c.R) + dr), G: clampChannel(int(c.G) + dg), B: clampChannel(int(c.B) + db)}
}

// Mix blends c toward other by t in [0,1]
func (c RGB) Mix(other RGB, t float64) RGB {
	mix := func(a, b uint8) uint8 {
		return clampChannel(int(math.Round(float64(a) + (float64(b)-float64(a))*t)))
	}
	return RGB{R: mix(c.R, other.R), G: mix(c.G, other.G), B: mix(c.B, other.B)}
}

// Luminance is the WCAG relative luminance in [0,1]
func (c RGB) Luminance() float64 {
	return 0.2126*linear(c.R) + 0.7152*linear(c.G) + 0.0722*linear(c.B)
}

// IsLight reports luminance above 0.5
func (c RGB) IsLight() bool {
	return c.Luminance() > 0.5
}

// ContrastRatio is the WCAG contrast ratio between two colors, in [1,21]
func ContrastRatio(a, b RGB) float64 {
	la, lb := a.Luminance(), b.Luminance()
	if la < lb {
		la, lb = lb, la
	}
	return (la + 0.05) / (lb + 0.05)
}

// HexContrast is ContrastRatio over hex strings; invalid input yields 1
func HexContrast(a, b string) float64 {
	ca, okA := ParseHex(a)
	cb, okB := ParseHex(b)
	if !okA || !okB {
		return 1
	}
	return ContrastRatio(ca, cb)
}

func linear(v uint8) float64 {
	c := float64(v) / 255
	if c <= 0.03928 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

func clampChannel(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
