package rotator

import (
	"strconv"
	"strings"
)

// ParseNumber parses the digits and decimal points of s as a float,
// ignoring every other character, so "az045.0" yields 45 and "AZ=12\r"
// yields 12. Signs are dropped along with the other characters.
func ParseNumber(s string) (float64, error) {
	digits := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, s)
	return strconv.ParseFloat(digits, 64)
}
