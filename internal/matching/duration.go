package matching

import (
	"regexp"
	"strconv"
)

// leadingNumber matches a decimal number at the start of a duration string
var leadingNumber = regexp.MustCompile(`^\s*(\d+(?:\.\d+)?)`)

// Duration is the outcome of parsing a free-text duration such as "2 years".
// Unparsed durations count as zero years.
type Duration struct {
	Years  float64
	Parsed bool
}

// ParseDuration reads the leading decimal number of text. Text that does not start with a
// number ("several years", "") is Unparsed. The unit is not interpreted, so "18 months"
// counts as 18.
func ParseDuration(text string) Duration {
	m := leadingNumber.FindStringSubmatch(text)
	if m == nil {
		return Duration{}
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Duration{}
	}
	return Duration{Years: v, Parsed: true}
}

// Value returns the parsed number of years, or 0 when unparsed
func (d Duration) Value() float64 {
	if !d.Parsed {
		return 0
	}
	return d.Years
}
