package gopaginate

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/spf13/cast"
)

const (
	// DefaultLimit is used when the caller did not set a limit at all.
	DefaultLimit = 10

	// DefaultPage is the first page of the dataset. Pages are 1-based.
	DefaultPage = 1
)

// ParseInt performs best-effort integer parsing of loosely typed input, the
// way request payloads usually arrive.
//
//   - Integers are taken as they are when they fit into int.
//   - Strings yield their leading integer: " 12abc" -> 12, "1e3" -> 1, "abc" -> not parsed.
//   - Floats are truncated toward zero: 2.7 -> 2, -2.7 -> -2.
//   - nil, booleans and anything cast cannot convert are not parsed.
func ParseInt(v any) (int, bool) {
	switch vt := v.(type) {
	case nil, bool:
		return 0, false
	case string:
		return parseLeadingInt(vt)
	case []byte:
		return parseLeadingInt(string(vt))
	case uint, uint64:
		u, err := cast.ToUint64E(vt)
		if err != nil || u > math.MaxInt {
			return 0, false
		}

		return int(u), true
	case int, int8, int16, int32, int64, uint8, uint16, uint32:
		n, err := cast.ToInt64E(vt)
		if err != nil || n > math.MaxInt || n < math.MinInt {
			return 0, false
		}

		return int(n), true
	case json.Number:
		if n, err := vt.Int64(); err == nil {
			return ParseInt(n)
		}
	}

	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}

	if f >= math.MaxInt || f < math.MinInt {
		return 0, false
	}

	return int(f), true
}

// mulSat multiplies non-negative a and b, saturating at math.MaxInt64.
func mulSat(a, b int64) int64 {
	if a != 0 && b > math.MaxInt64/a {
		return math.MaxInt64
	}

	return a * b
}

func parseLeadingInt(s string) (int, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}

	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}

	if end == digitsStart {
		return 0, false
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}

	return n, true
}

// NormalizeLimit coerces a limit. Non-positive or unparsable values become 0,
// which means "metadata only".
func NormalizeLimit(limit any) int {
	n, ok := ParseInt(limit)
	if !ok || n <= 0 {
		return 0
	}

	return n
}

// NormalizePage coerces a 1-based page number. Values below 1 or unparsable
// values become DefaultPage.
func NormalizePage(page any) int {
	n, ok := ParseInt(page)
	if !ok || n < DefaultPage {
		return DefaultPage
	}

	return n
}

// NormalizeOffset coerces a 0-based offset. Negative or unparsable values become 0.
func NormalizeOffset(offset any) int {
	n, ok := ParseInt(offset)
	if !ok || n < 0 {
		return 0
	}

	return n
}
