package pricing

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// MaxAmount is the largest monetary value accepted anywhere in the calculator.
const MaxAmount = 999_999_999_999

type sanitizeOptions struct {
	min           float64
	max           float64
	allowNegative bool
	integer       bool
}

// Option adjusts the bounds applied by Sanitize and SanitizeText.
type Option func(*sanitizeOptions)

// WithMin sets the lower bound (default 0).
func WithMin(min float64) Option {
	return func(o *sanitizeOptions) { o.min = min }
}

// WithMax sets the upper bound (default MaxAmount).
func WithMax(max float64) Option {
	return func(o *sanitizeOptions) { o.max = max }
}

// AllowNegative keeps negative values instead of clamping them to 0.
func AllowNegative() Option {
	return func(o *sanitizeOptions) { o.allowNegative = true }
}

// Integer parses text as an integer and truncates the result toward zero.
func Integer() Option {
	return func(o *sanitizeOptions) { o.integer = true }
}

func newSanitizeOptions(opts []Option) sanitizeOptions {
	o := sanitizeOptions{min: 0, max: MaxAmount}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// SanitizeText converts free text typed into a numeric field into a usable
// number. Leading numeric content is parsed ("12abc" is 12); anything
// unparseable becomes 0 before the bounds are applied. It never fails.
func SanitizeText(raw string, opts ...Option) float64 {
	o := newSanitizeOptions(opts)

	var value float64
	if o.integer {
		value = parseLeadingInt(raw)
	} else {
		value = parseLeadingFloat(raw)
	}

	return clamp(value, o)
}

// Sanitize applies the same bounds as SanitizeText to a value that is already
// numeric. NaN and ±Inf become 0. The result is always finite.
func Sanitize(value float64, opts ...Option) float64 {
	return clamp(value, newSanitizeOptions(opts))
}

func clamp(value float64, o sanitizeOptions) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		value = 0
	}
	if !o.allowNegative && value < 0 {
		value = 0
	}
	if value < o.min {
		value = o.min
	}
	if value > o.max {
		value = o.max
	}
	if o.integer {
		value = math.Trunc(value)
	}
	return value
}

// parseLeadingFloat reads the longest decimal prefix of s, e.g. "  3.5kg" is 3.5.
// It returns NaN when no digits are found.
func parseLeadingFloat(s string) float64 {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	body := strings.TrimLeft(s, "+-")
	if len(s)-len(body) <= 1 && strings.HasPrefix(body, "Infinity") {
		if strings.HasPrefix(s, "-") {
			return math.Inf(-1)
		}
		return math.Inf(1)
	}

	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return math.NaN()
	}

	end := i
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		expStart := j
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		if j > expStart {
			end = j
		}
	}

	// Out-of-range literals come back as ±Inf, which clamp turns into 0.
	value, _ := strconv.ParseFloat(strings.TrimSuffix(s[:end], "."), 64)
	return value
}

// parseLeadingInt reads an optionally signed run of digits, e.g. "3.7" is 3.
func parseLeadingInt(s string) float64 {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	start := i
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	if i == start {
		return math.NaN()
	}

	value, _ := strconv.ParseFloat(s[:i], 64)
	return value
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
