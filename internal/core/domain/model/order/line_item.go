package order

import (
	"regexp"
	"strconv"
)

// Item lines are free text that end with a price annotation, e.g.
// "Sonkás szendvics (890 Ft)". The annotation is part of the line-item
// contract: totals are computed from it.
var priceAnnotation = regexp.MustCompile(`\((\d+)\s*Ft\)\s*$`)

// LinePrice returns the forint price annotated at the end of line, or 0 when
// the line carries no annotation.
func LinePrice(line string) int {
	match := priceAnnotation.FindStringSubmatch(line)
	if match == nil {
		return 0
	}
	price, err := strconv.Atoi(match[1])
	if err != nil {
		return 0
	}
	return price
}

// Total sums LinePrice over all lines.
func Total(lines []string) int {
	total := 0
	for _, line := range lines {
		total += LinePrice(line)
	}
	return total
}
