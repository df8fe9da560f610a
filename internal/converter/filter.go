package converter

import (
	"fmt"
	"strconv"
	"strings"
)

// parseSlideFilter parses a comma-separated mix of single ordinals and
// inclusive ranges ("2,4-6" selects slides 2, 4, 5 and 6). An empty filter
// returns nil, meaning all slides.
func parseSlideFilter(filter string) (map[int]bool, error) {
	filter = strings.TrimSpace(filter)
	if filter == "" {
		return nil, nil
	}

	selected := make(map[int]bool)

	for _, part := range strings.Split(filter, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, fmt.Errorf("%w: empty entry in slide filter %q", ErrInvalidDirective, filter)
		}

		if from, to, ok := strings.Cut(part, "-"); ok {
			lo, err := strconv.Atoi(strings.TrimSpace(from))
			if err != nil {
				return nil, fmt.Errorf("%w: bad range start %q", ErrInvalidDirective, part)
			}
			hi, err := strconv.Atoi(strings.TrimSpace(to))
			if err != nil {
				return nil, fmt.Errorf("%w: bad range end %q", ErrInvalidDirective, part)
			}
			if lo < 1 || hi < lo {
				return nil, fmt.Errorf("%w: bad range %q", ErrInvalidDirective, part)
			}
			for i := lo; i <= hi; i++ {
				selected[i] = true
			}
			continue
		}

		n, err := strconv.Atoi(part)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("%w: bad slide ordinal %q", ErrInvalidDirective, part)
		}
		selected[n] = true
	}

	return selected, nil
}
