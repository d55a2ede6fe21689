package matching

import (
	"strings"

	"golang.org/x/text/cases"
)

// Ordered education scale. Unknown labels (e.g. "Graduate") have no level.
var educationLevels = map[string]int{
	"high school": 0,
	"bachelor's":  1,
	"bachelors":   1,
	"bachelor":    1,
	"master's":    2,
	"masters":     2,
	"master":      2,
	"phd":         3,
	"ph.d.":       3,
	"doctorate":   3,
}

// EducationLevel maps an education label onto the ordered scale
func EducationLevel(education string) (int, bool) {
	level, ok := educationLevels[fold(strings.TrimSpace(education))]
	return level, ok
}

func fold(s string) string {
	return cases.Fold().String(s)
}
