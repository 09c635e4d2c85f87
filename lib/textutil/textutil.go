package textutil

import (
	"regexp"
	"strings"
)

// \p{Zs} catches the non-breaking spaces the menu site pads cells with
var whitespaceRegex = regexp.MustCompile(`[\s\p{Zs}]+`)

func NormalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.Trim(name, " \n\t")
	name = whitespaceRegex.ReplaceAllString(name, " ")
	return name
}

// allergen/diet annotations the dining site appends to dish names,
// e.g. "(contains soy)", "(GF)", "(120 cal)"
var annotationRegex = regexp.MustCompile(
	`(?i)\((?:contains|gf|v|vegan|vegetarian|halal|kosher|kcal|cal|soy|milk|egg|wheat|gluten|tree nuts|peanut|shellfish|fish|sesame)[^)]*\)`,
)

func CleanDishName(name string) string {
	name = whitespaceRegex.ReplaceAllString(name, " ")
	name = annotationRegex.ReplaceAllString(name, "")
	name = whitespaceRegex.ReplaceAllString(name, " ")
	return strings.Trim(name, " -•·,")
}
