package records

import "regexp"

// ISO 8601 durations as YouTube emits them: PT1H2M3S, PT45S, P1DT2H.
var isoDurationRe = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$`)

// ParseISODuration converts an ISO 8601 duration string to seconds.
// Unparseable input yields 0.
func ParseISODuration(value string) int64 {
	match := isoDurationRe.FindStringSubmatch(value)
	if match == nil {
		return 0
	}
	days := atoiDefault(match[1])
	hours := atoiDefault(match[2])
	minutes := atoiDefault(match[3])
	seconds := atoiDefault(match[4])
	return days*24*3600 + hours*3600 + minutes*60 + seconds
}

func atoiDefault(value string) int64 {
	var n int64
	for _, r := range value {
		n = n*10 + int64(r-'0')
	}
	return n
}
