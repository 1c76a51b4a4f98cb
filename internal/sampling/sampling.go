// Package sampling draws the ~10% audit subsample from an alphanumeric ID
// range. Randomness is injected so draws are reproducible in tests.
package sampling

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/opsdeck/qcdesk-backend/internal/domain/evaluation"
	"github.com/opsdeck/qcdesk-backend/internal/platform/apierr"
)

// SampleRate is the fraction of the range drawn, rounded up.
const SampleRate = 0.10

// Rand is the randomness source. *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

type endpoint struct {
	prefix string
	suffix int
	width  int
}

var endpointPattern = regexp.MustCompile(`^(\D*?)(\d+)$`)

func parseEndpoint(raw string) (endpoint, error) {
	m := endpointPattern.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return endpoint{}, fmt.Errorf("no trailing number in %q", raw)
	}
	suffix, err := strconv.Atoi(m[2])
	if err != nil {
		return endpoint{}, fmt.Errorf("numeric suffix of %q: %w", raw, err)
	}
	ep := endpoint{prefix: m[1], suffix: suffix}
	// A bare number carries no padding width; prefixed IDs keep the digit
	// width of the range start for reconstruction.
	if ep.prefix != "" {
		ep.width = len(m[2])
	}
	return ep, nil
}

// Generate draws distinct IDs uniformly from [start, end] and returns them
// ascending as clean samples. The endpoint prefixes are intentionally not
// compared; only the numeric suffixes define the range.
func Generate(rng Rand, rangeStart, rangeEnd string) ([]evaluation.SampleResult, error) {
	start, err := parseEndpoint(rangeStart)
	if err != nil {
		return nil, apierr.Validation("sampling_range", fmt.Errorf("invalid range: %w", err))
	}
	end, err := parseEndpoint(rangeEnd)
	if err != nil {
		return nil, apierr.Validation("sampling_range", fmt.Errorf("invalid range: %w", err))
	}
	if start.suffix > end.suffix {
		return nil, apierr.Validation("sampling_range", fmt.Errorf("invalid range: start %d after end %d", start.suffix, end.suffix))
	}

	total := end.suffix - start.suffix + 1
	count := int(math.Ceil(float64(total) * SampleRate))
	if count > total {
		count = total
	}

	picked := make(map[int]struct{}, count)
	for len(picked) < count {
		n := start.suffix + rng.Intn(total)
		picked[n] = struct{}{}
	}

	numbers := make([]int, 0, count)
	for n := range picked {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)

	samples := make([]evaluation.SampleResult, 0, count)
	for _, n := range numbers {
		samples = append(samples, evaluation.SampleResult{
			SampleID: start.prefix + pad(n, start.width),
			Errors:   []string{},
			IsClean:  true,
			Score:    100,
		})
	}
	return samples, nil
}

func pad(n, width int) string {
	if width > 0 {
		return fmt.Sprintf("%0*d", width, n)
	}
	return strconv.Itoa(n)
}
