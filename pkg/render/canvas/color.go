package canvas

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/gg"
	"golang.org/x/image/colornames"
)

// ParseColor parses a CSS color: #rgb, #rgba, #rrggbb, #rrggbbaa, a named
// color, rgb(), rgba(), hsl() or "transparent".
func ParseColor(s string) (gg.RGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "":
		return gg.RGBA{}, fmt.Errorf("empty color")
	case s == "transparent" || s == "none":
		return gg.Transparent, nil
	case strings.HasPrefix(s, "#"):
		return parseHex(s[1:])
	case strings.HasPrefix(s, "rgb"):
		return parseRGB(s)
	case strings.HasPrefix(s, "hsl"):
		return parseHSL(s)
	}
	if c, ok := colornames.Map[s]; ok {
		return gg.FromColor(c), nil
	}
	return gg.RGBA{}, fmt.Errorf("unknown color %q", s)
}

func parseHex(h string) (gg.RGBA, error) {
	switch len(h) {
	case 3, 4, 6, 8:
	default:
		return gg.RGBA{}, fmt.Errorf("invalid hex color %q", "#"+h)
	}
	if _, err := strconv.ParseUint(h, 16, 32); err != nil {
		return gg.RGBA{}, fmt.Errorf("invalid hex color %q", "#"+h)
	}
	return gg.Hex(h), nil
}

// functionArgs splits "name(a, b, c)" into its arguments.
func functionArgs(s string) ([]string, error) {
	lp, rp := strings.IndexByte(s, '('), strings.LastIndexByte(s, ')')
	if lp < 0 || rp < lp {
		return nil, fmt.Errorf("malformed color %q", s)
	}
	inner := strings.NewReplacer(",", " ", "/", " ").Replace(s[lp+1 : rp])
	return strings.Fields(inner), nil
}

// component parses a number or percentage, scaled so that full equals 1.
func component(s string, full float64) (float64, error) {
	if p, ok := strings.CutSuffix(s, "%"); ok {
		v, err := strconv.ParseFloat(p, 64)
		return clamp01(v / 100), err
	}
	v, err := strconv.ParseFloat(s, 64)
	return clamp01(v / full), err
}

func parseRGB(s string) (gg.RGBA, error) {
	args, err := functionArgs(s)
	if err != nil {
		return gg.RGBA{}, err
	}
	if len(args) != 3 && len(args) != 4 {
		return gg.RGBA{}, fmt.Errorf("malformed color %q", s)
	}
	var c [4]float64
	c[3] = 1
	for i, a := range args {
		full := 255.0
		if i == 3 {
			full = 1
		}
		if c[i], err = component(a, full); err != nil {
			return gg.RGBA{}, fmt.Errorf("malformed color %q: %w", s, err)
		}
	}
	return gg.RGBA2(c[0], c[1], c[2], c[3]), nil
}

func parseHSL(s string) (gg.RGBA, error) {
	args, err := functionArgs(s)
	if err != nil {
		return gg.RGBA{}, err
	}
	if len(args) != 3 && len(args) != 4 {
		return gg.RGBA{}, fmt.Errorf("malformed color %q", s)
	}
	h, err := strconv.ParseFloat(strings.TrimSuffix(args[0], "deg"), 64)
	if err != nil {
		return gg.RGBA{}, fmt.Errorf("malformed color %q: %w", s, err)
	}
	sat, err := component(args[1], 1)
	if err != nil {
		return gg.RGBA{}, fmt.Errorf("malformed color %q: %w", s, err)
	}
	light, err := component(args[2], 1)
	if err != nil {
		return gg.RGBA{}, fmt.Errorf("malformed color %q: %w", s, err)
	}
	c := gg.HSL(h, sat, light)
	if len(args) == 4 {
		if c.A, err = component(args[3], 1); err != nil {
			return gg.RGBA{}, fmt.Errorf("malformed color %q: %w", s, err)
		}
	}
	return c, nil
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}
