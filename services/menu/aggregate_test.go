package menu

import (
	"testing"
	"time"

	"hudsmenu-backend/lib/timezone"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func testWeek() Week {
	return CurrentWeek(time.Date(2024, time.September, 4, 12, 0, 0, 0, timezone.Location))
}

func TestAggregateProducesCompleteGrid(t *testing.T) {
	doc := Aggregate(nil, testWeek(), time.Now())

	require.Len(t, doc.Days, 7)
	for _, day := range Weekdays {
		dayMenu, ok := doc.Days[day]
		require.True(t, ok, "day %s missing", day)
		require.Len(t, dayMenu.Meals, 2)

		lunch := dayMenu.Meals[Lunch]
		require.Len(t, lunch, 6)
		for i, st := range StationOrder {
			require.Equal(t, st, lunch[i].Station)
			require.NotNil(t, lunch[i].Dishes)
			require.Empty(t, lunch[i].Dishes)
		}

		dinner := dayMenu.Meals[Dinner]
		require.Len(t, dinner, 5)
		for _, sm := range dinner {
			require.NotEqual(t, Delish, sm.Station)
		}
	}

	require.Equal(t, "2024-09-02", doc.WeekStart)
	require.Equal(t, "2024-09-08", doc.WeekEnd)
	require.Equal(t, "2024-09-02", doc.Days[Mon].Date)
	require.Equal(t, "2024-09-08", doc.Days[Sun].Date)
}

func TestAggregateOrderingScenario(t *testing.T) {
	entries := []MenuEntry{
		{Day: Mon, Meal: Lunch, Station: Entrees, Dish: "Grilled Chicken"},
		{Day: Mon, Meal: Lunch, Station: Entrees, Dish: "Tofu Stir-fry"},
	}
	doc := Aggregate(entries, testWeek(), time.Now())

	lunch := doc.Days[Mon].Meals[Lunch]
	require.Equal(t, Entrees, lunch[1].Station)
	require.Equal(t, []string{"Grilled Chicken", "Tofu Stir-fry"}, lunch[1].Dishes)
}

func TestAggregateDedupesPreservingOrder(t *testing.T) {
	entries := []MenuEntry{
		{Day: Fri, Meal: Dinner, Station: Desserts, Dish: "Apple Pie"},
		{Day: Fri, Meal: Dinner, Station: Desserts, Dish: "Brownies"},
		{Day: Fri, Meal: Dinner, Station: Desserts, Dish: "Apple Pie"},
	}
	doc := Aggregate(entries, testWeek(), time.Now())

	dinner := doc.Days[Fri].Meals[Dinner]
	require.Equal(t, []string{"Apple Pie", "Brownies"}, dinner[4].Dishes)
}

func TestExtractAggregateIdempotence(t *testing.T) {
	generatedAt := time.Date(2024, time.September, 4, 7, 0, 0, 0, timezone.Location)

	run := func() WeekDocument {
		entries, err := ExtractDay(dayMenuHtml, Mon)
		require.NoError(t, err)
		return Aggregate(entries, testWeek(), generatedAt)
	}

	first := run()
	second := run()
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("aggregated documents differ (-first +second):\n%s", diff)
	}
}
