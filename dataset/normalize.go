package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// NormalizeCode - trim, drop a trailing `.0` left by float typed columns and
// left pad numeric codes with zeros to the given width
func NormalizeCode(raw string, width int) string {
	s := strings.TrimSpace(raw)
	if strings.HasSuffix(s, ".0") && isDigits(strings.TrimSuffix(s, ".0")) {
		s = strings.TrimSuffix(s, ".0")
	}

	if isDigits(s) && len(s) < width {
		s = strings.Repeat("0", width-len(s)) + s
	}
	return s
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// cleanText - trim spaces and null padding, decoding latin-1 text found in
// dbf files
func cleanText(s string) string {
	s = strings.Trim(s, "\x00 \t\r\n")
	if !utf8.ValidString(s) {
		if decoded, err := charmap.ISO8859_1.NewDecoder().String(s); err == nil {
			s = decoded
		}
	}
	return s
}

func parseNumber(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, fmt.Errorf("%w: empty number", ErrInvalidValue)
	}
	if strings.Contains(s, ",") && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidValue, raw)
	}
	return v, nil
}

func parseYear(raw string) (int, error) {
	v, err := parseNumber(raw)
	if err != nil {
		return 0, err
	}
	if v != math.Trunc(v) || v <= 0 {
		return 0, fmt.Errorf("%w: %q is not a year", ErrInvalidValue, raw)
	}
	return int(v), nil
}

func parseCount(raw string) (int64, error) {
	v, err := parseNumber(raw)
	if err != nil {
		return 0, err
	}
	if v != math.Trunc(v) || v < 0 {
		return 0, fmt.Errorf("%w: %q is not a case count", ErrInvalidValue, raw)
	}
	return int64(v), nil
}

func parseRate(raw string) (float64, error) {
	v, err := parseNumber(raw)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, fmt.Errorf("%w: negative rate %q", ErrInvalidValue, raw)
	}
	return v, nil
}
