package engine

import (
	"regexp"
	"strconv"
	"strings"
)

// positionPrefix matches a leading list position like "3. buy milk",
// "2: call mom" or "1 - pack".
var positionPrefix = regexp.MustCompile(`^(\d+)[.:\s-]+(.+)`)

// ParsePositionPrefix splits an optional leading position number off a
// task text. When no prefix is present the text comes back unchanged
// with a nil position.
func ParsePositionPrefix(text string) (*int, string) {
	m := positionPrefix.FindStringSubmatch(text)
	if m == nil {
		return nil, text
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return nil, text
	}
	return &n, strings.TrimSpace(m[2])
}

// ClampPosition keeps a requested insert position within the active
// list: anything past the end lands at the end, anything below 1 is
// dropped.
func ClampPosition(pos *int, activeCount int) *int {
	if pos == nil {
		return nil
	}
	if *pos < 1 {
		return nil
	}
	if *pos > activeCount+1 {
		p := activeCount + 1
		return &p
	}
	return pos
}
