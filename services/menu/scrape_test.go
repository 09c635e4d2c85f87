package menu

import (
	"testing"

	"github.com/stretchr/testify/require"

	_ "embed"
)

//go:embed testdata/day_menu.html
var dayMenuHtml string

func entriesFor(entries []MenuEntry, meal Meal, station Station) []string {
	var dishes []string
	for _, e := range entries {
		if e.Meal == meal && e.Station == station {
			dishes = append(dishes, e.Dish)
		}
	}
	return dishes
}

func TestExtractDay(t *testing.T) {
	entries, err := ExtractDay(dayMenuHtml, Mon)
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	for _, e := range entries {
		require.Equal(t, Mon, e.Day)
	}

	// entrée order is preserved; the duplicate survives extraction and
	// is dropped later by aggregation
	require.Equal(t,
		[]string{"Grilled Chicken", "Tofu Stir-fry", "Grilled Chicken"},
		entriesFor(entries, Lunch, Entrees),
	)

	// allergen annotations are stripped from dish names
	require.Equal(t, []string{"Herb Roasted Salmon"}, entriesFor(entries, Dinner, Entrees))

	require.Equal(t, []string{"Minestrone Soup"}, entriesFor(entries, Lunch, Soups))
	require.Equal(t, []string{"Roasted Red Bliss Potatoes"}, entriesFor(entries, Lunch, StarchPotatoes))
	require.Equal(t, []string{"Chocolate Chip Cookies"}, entriesFor(entries, Lunch, Desserts))
}

func TestExtractDropsUnrecognizedStations(t *testing.T) {
	entries, err := ExtractDay(dayMenuHtml, Mon)
	require.NoError(t, err)

	for _, e := range entries {
		require.NotEqual(t, "Mixed Greens", e.Dish, "salad bar items must be ignored")
		require.NotEqual(t, "Scrambled Eggs", e.Dish, "breakfast column must be ignored")
		require.NotEqual(t, "Pancakes", e.Dish, "breakfast column must be ignored")
	}
}

func TestExtractDelishIsLunchOnly(t *testing.T) {
	entries, err := ExtractDay(dayMenuHtml, Mon)
	require.NoError(t, err)

	require.Equal(t, []string{"Berry Smoothie"}, entriesFor(entries, Lunch, Delish))
	require.Empty(t, entriesFor(entries, Dinner, Delish))
}

func TestExtractMissingStationIsNotAnError(t *testing.T) {
	entries, err := ExtractDay(dayMenuHtml, Mon)
	require.NoError(t, err)

	// the fixture's lunch column has no vegetables section
	require.Empty(t, entriesFor(entries, Lunch, Vegetables))
}

func TestExtractEmptyMarkup(t *testing.T) {
	entries, err := ExtractDay("<html><body></body></html>", Tue)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestClassifyStation(t *testing.T) {
	cases := []struct {
		raw     string
		station Station
		ok      bool
	}{
		{"-- Today's Soup --", Soups, true},
		{"-- Entrees --", Entrees, true},
		{"-- Veg,Vegan --", Entrees, true},
		{"-- Starch and Potatoes --", StarchPotatoes, true},
		{"-- Vegetables --", Vegetables, true},
		{"-- Delish --", Delish, true},
		{"-- Desserts --", Desserts, true},
		{"-- Salad Bar --", "", false},
		{"-- Brown Rice Station --", "", false},
		{"", "", false},
	}

	for _, test := range cases {
		station, ok := classifyStation(test.raw)
		require.Equal(t, test.ok, ok, "classifying %q", test.raw)
		require.Equal(t, test.station, station, "classifying %q", test.raw)
	}
}
