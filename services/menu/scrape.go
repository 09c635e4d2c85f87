package menu

import (
	"strings"

	"hudsmenu-backend/lib/textutil"

	"github.com/PuerkitoBio/goquery"
)

// classifyStation maps a raw category header (usually rendered like
// "-- Today's Soup --") to a recognized station. Categories outside the
// recognized set (salad bar, grill, breakfast items, ...) are dropped.
func classifyStation(raw string) (Station, bool) {
	label := textutil.NormalizeName(raw)
	label = strings.Trim(label, "- ")

	switch label {
	case "today's soup":
		return Soups, true
	case "entrees", "entrée", "entrées", "veg,vegan":
		return Entrees, true
	case "starch and potatoes":
		return StarchPotatoes, true
	case "vegetables":
		return Vegetables, true
	case "delish":
		return Delish, true
	case "desserts":
		return Desserts, true
	}
	return "", false
}

// ExtractDay walks one day's menu markup and yields the entries found in
// its Lunch and Dinner columns. A missing meal column or station section
// is valid (the hall omits categories on some days) and simply produces
// no entries; only unreadable markup is an error.
func ExtractDay(rawHtml string, day Weekday) ([]MenuEntry, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHtml))
	if err != nil {
		return nil, errorf(ParseFailed, "parse menu markup: %w", err)
	}

	var entries []MenuEntry

	// meal columns are the top-level 30%-wide cells, each labeled by an
	// anchor reading Breakfast/Lunch/Dinner
	doc.Find(`td[valign="top"][width="30%"]`).Each(func(_ int, td *goquery.Selection) {
		meal, ok := mealOfColumn(td)
		if !ok {
			return
		}

		current := Station("")
		recognized := false
		td.Find("div.shortmenucats, div.shortmenurecipes").Each(func(_ int, div *goquery.Selection) {
			if div.HasClass("shortmenucats") {
				current, recognized = classifyStation(div.Text())
				return
			}
			if !recognized {
				return
			}
			if current == Delish && meal == Dinner {
				// the smoothie bar only runs at lunch, the site
				// sometimes repeats it under dinner anyway
				return
			}
			dish := textutil.CleanDishName(div.Text())
			if dish == "" {
				return
			}
			entries = append(entries, MenuEntry{
				Day:     day,
				Meal:    meal,
				Station: current,
				Dish:    dish,
			})
		})
	})

	return entries, nil
}

func mealOfColumn(td *goquery.Selection) (Meal, bool) {
	name := ""
	td.Find("a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		switch textutil.NormalizeName(a.Text()) {
		case "breakfast", "lunch", "dinner":
			name = textutil.NormalizeName(a.Text())
			return false
		}
		return true
	})

	switch name {
	case "lunch":
		return Lunch, true
	case "dinner":
		return Dinner, true
	}
	return "", false
}
