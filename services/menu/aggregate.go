package menu

import "time"

// Aggregate groups extracted entries into a complete week document.
// Every day/meal/station slot exists in the output regardless of source
// completeness, so the API and dashboard can index a fixed 7x2 grid
// without existence checks. Dishes are deduplicated preserving first
// occurrence; station order follows StationOrder.
func Aggregate(entries []MenuEntry, week Week, generatedAt time.Time) WeekDocument {
	byDay := map[Weekday]map[Meal]map[Station][]string{}
	for _, e := range entries {
		if _, ok := byDay[e.Day]; !ok {
			byDay[e.Day] = map[Meal]map[Station][]string{}
		}
		if _, ok := byDay[e.Day][e.Meal]; !ok {
			byDay[e.Day][e.Meal] = map[Station][]string{}
		}
		byDay[e.Day][e.Meal][e.Station] = append(byDay[e.Day][e.Meal][e.Station], e.Dish)
	}

	startISO, endISO := week.Bounds()
	doc := WeekDocument{
		WeekStart:   startISO,
		WeekEnd:     endISO,
		GeneratedAt: generatedAt,
		Days:        map[Weekday]DayMenu{},
	}

	for i, date := range week.Dates() {
		day := Weekdays[i]
		dayMenu := DayMenu{
			Date:  isoDate(date),
			Meals: map[Meal][]StationMenu{},
		}
		for _, meal := range Meals {
			stations := StationsFor(meal)
			mealMenu := make([]StationMenu, 0, len(stations))
			for _, st := range stations {
				mealMenu = append(mealMenu, StationMenu{
					Station: st,
					Dishes:  dedupe(byDay[day][meal][st]),
				})
			}
			dayMenu.Meals[meal] = mealMenu
		}
		doc.Days[day] = dayMenu
	}

	return doc
}

// EmptyDayMenu returns a fully shaped day with no dishes, used when the
// cached week doesn't cover the requested date.
func EmptyDayMenu(date time.Time) DayMenu {
	day := DayMenu{
		Date:  isoDate(date),
		Meals: map[Meal][]StationMenu{},
	}
	for _, meal := range Meals {
		stations := StationsFor(meal)
		mealMenu := make([]StationMenu, 0, len(stations))
		for _, st := range stations {
			mealMenu = append(mealMenu, StationMenu{Station: st, Dishes: []string{}})
		}
		day.Meals[meal] = mealMenu
	}
	return day
}

func dedupe(dishes []string) []string {
	out := []string{}
	seen := map[string]bool{}
	for _, d := range dishes {
		if d == "" || seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	return out
}
