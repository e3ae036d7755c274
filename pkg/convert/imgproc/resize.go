package imgproc

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseResizeSpec turns a user resize spec into target dimensions given the
// source size. Three shapes are accepted:
//
//	"1920x1080"  explicit dimensions; either side may be empty to keep aspect
//	"50%"        percentage of the source
//	"800"        bare width, height follows the source aspect ratio
//
// A zero width or height tells the resampler to preserve aspect ratio.
func ParseResizeSpec(spec string, srcWidth, srcHeight int) (int, int, error) {
	spec = strings.TrimSpace(strings.ToLower(spec))
	if spec == "" {
		return 0, 0, fmt.Errorf("empty resize spec")
	}

	if strings.HasSuffix(spec, "%") {
		pct, err := strconv.ParseFloat(strings.TrimSuffix(spec, "%"), 64)
		if err != nil || pct <= 0 {
			return 0, 0, fmt.Errorf("invalid percentage resize %q", spec)
		}
		w := int(float64(srcWidth) * pct / 100)
		h := int(float64(srcHeight) * pct / 100)
		if w < 1 {
			w = 1
		}
		if h < 1 {
			h = 1
		}
		return w, h, nil
	}

	if strings.Contains(spec, "x") {
		parts := strings.SplitN(spec, "x", 2)
		var w, h int
		var err error
		if parts[0] != "" {
			if w, err = strconv.Atoi(parts[0]); err != nil || w < 0 {
				return 0, 0, fmt.Errorf("invalid resize width in %q", spec)
			}
		}
		if parts[1] != "" {
			if h, err = strconv.Atoi(parts[1]); err != nil || h < 0 {
				return 0, 0, fmt.Errorf("invalid resize height in %q", spec)
			}
		}
		if w == 0 && h == 0 {
			return 0, 0, fmt.Errorf("resize %q names no dimensions", spec)
		}
		return w, h, nil
	}

	w, err := strconv.Atoi(spec)
	if err != nil || w < 1 {
		return 0, 0, fmt.Errorf("invalid resize spec %q", spec)
	}
	return w, 0, nil
}
