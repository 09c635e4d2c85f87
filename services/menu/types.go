package menu

import "time"

type Weekday string

const (
	Mon Weekday = "Mon"
	Tue Weekday = "Tue"
	Wed Weekday = "Wed"
	Thu Weekday = "Thu"
	Fri Weekday = "Fri"
	Sat Weekday = "Sat"
	Sun Weekday = "Sun"
)

// Weekdays is the canonical Monday-first ordering of the menu week.
var Weekdays = [7]Weekday{Mon, Tue, Wed, Thu, Fri, Sat, Sun}

func WeekdayOf(t time.Time) Weekday {
	// time.Weekday has Sunday = 0
	return Weekdays[(int(t.Weekday())+6)%7]
}

type Meal string

const (
	Lunch  Meal = "Lunch"
	Dinner Meal = "Dinner"
)

// Meals is the set of recognized meals; breakfast is deliberately not
// served by this system.
var Meals = [2]Meal{Lunch, Dinner}

type Station string

const (
	Soups          Station = "Soups"
	Entrees        Station = "Entrées"
	StarchPotatoes Station = "Starch & Potatoes"
	Vegetables     Station = "Vegetables"
	Delish         Station = "Delish"
	Desserts       Station = "Desserts"
)

// StationOrder is the canonical display order of recognized stations.
var StationOrder = [6]Station{Soups, Entrees, StarchPotatoes, Vegetables, Delish, Desserts}

// StationsFor returns the stations shown for a meal in display order.
// Delish (the smoothie bar) only runs at lunch.
func StationsFor(meal Meal) []Station {
	stations := make([]Station, 0, len(StationOrder))
	for _, st := range StationOrder {
		if st == Delish && meal != Lunch {
			continue
		}
		stations = append(stations, st)
	}
	return stations
}

// MenuEntry is a single extracted dish. Immutable once created.
type MenuEntry struct {
	Day     Weekday
	Meal    Meal
	Station Station
	Dish    string
}

type StationMenu struct {
	Station Station  `json:"station"`
	Dishes  []string `json:"dishes"`
}

type DayMenu struct {
	Date  string                 `json:"date"`
	Meals map[Meal][]StationMenu `json:"meals"`
}

// WeekDocument is the complete 7-day x 2-meal menu snapshot produced by
// one scrape cycle. Every day/meal/station slot is always present, even
// when empty, so readers can index the grid without existence checks.
type WeekDocument struct {
	WeekStart   string              `json:"week_start"`
	WeekEnd     string              `json:"week_end"`
	GeneratedAt time.Time           `json:"generated_at"`
	Days        map[Weekday]DayMenu `json:"days"`
}

// StatusRecord is created/overwritten on every scrape attempt.
type StatusRecord struct {
	LastRefreshed time.Time `json:"last_refreshed"`
	Success       bool      `json:"success"`
	Error         string    `json:"error_message,omitempty"`
}
