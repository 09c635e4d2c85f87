package menu

import (
	"context"
	"errors"
	"testing"
	"time"

	"hudsmenu-backend/lib/sqliteutil"
	"hudsmenu-backend/lib/telemetry"
	"hudsmenu-backend/services/menu/history"

	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	html string
	err  error
}

func (f fakeFetcher) FetchDay(ctx context.Context, date time.Time) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.html, nil
}

// memStore is an in-memory Store double.
type memStore struct {
	doc      WeekDocument
	status   StatusRecord
	saved    bool
	saveErr  error
	saveHits int
}

func (m *memStore) Save(ctx context.Context, doc WeekDocument, status StatusRecord) error {
	m.saveHits++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.doc = doc
	m.status = status
	m.saved = true
	return nil
}

func (m *memStore) Load(ctx context.Context) (WeekDocument, StatusRecord, error) {
	return m.doc, m.status, nil
}

func setup(t testing.TB, fetcher Fetcher) (Service, *memStore, history.Archive) {
	cleanup := telemetry.SetupForTesting(t, "test:services/menu")
	t.Cleanup(cleanup)

	db, err := sqliteutil.OpenDB(history.Schema, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	archive := history.NewArchive(db)
	store := &memStore{}
	return NewService(fetcher, store, &archive), store, archive
}

func TestRefreshSuccess(t *testing.T) {
	svc, store, archive := setup(t, fakeFetcher{html: dayMenuHtml})
	ctx := context.Background()

	status := svc.Refresh(ctx)
	require.True(t, status.Success)
	require.Empty(t, status.Error)

	require.True(t, store.saved)
	require.Len(t, store.doc.Days, 7)

	// the same fixture markup is served for all 7 days, so monday's
	// lunch entrées show up across the whole grid
	lunch := store.doc.Days[Wed].Meals[Lunch]
	require.Equal(t, []string{"Grilled Chicken", "Tofu Stir-fry"}, lunch[1].Dishes)

	attempts, err := archive.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, attempts, 1)
	require.True(t, attempts[0].Success)
	require.Greater(t, attempts[0].DishCount, 0)
}

func TestRefreshFetchFailure(t *testing.T) {
	svc, store, archive := setup(t, fakeFetcher{err: errors.New("connection refused")})
	ctx := context.Background()

	// pre-seed a previously cached document
	prior := Aggregate([]MenuEntry{
		{Day: Mon, Meal: Lunch, Station: Soups, Dish: "Minestrone"},
	}, testWeek(), time.Now())
	store.doc = prior

	status := svc.Refresh(ctx)
	require.False(t, status.Success)
	require.Equal(t, string(FetchFailed), status.Error)

	// the prior week document stays untouched
	doc, _, err := svc.Week(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"Minestrone"}, doc.Days[Mon].Meals[Lunch][0].Dishes)

	attempts, err := archive.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, attempts, 1)
	require.False(t, attempts[0].Success)
	require.Equal(t, string(FetchFailed), attempts[0].Error)
}

func TestRefreshParseFailure(t *testing.T) {
	svc, _, _ := setup(t, fakeFetcher{html: "<html><body><p>maintenance</p></body></html>"})

	status := svc.Refresh(context.Background())
	require.False(t, status.Success)
	require.Equal(t, string(ParseFailed), status.Error)
}

func TestRefreshSurvivesStoreFailure(t *testing.T) {
	svc, store, _ := setup(t, fakeFetcher{html: dayMenuHtml})
	store.saveErr = errors.New("read-only file system")

	// the write failure is swallowed, the scrape still reports success
	status := svc.Refresh(context.Background())
	require.True(t, status.Success)
	require.Greater(t, store.saveHits, 0)
}

func TestTodayFallsBackToEmptyDay(t *testing.T) {
	svc, store, _ := setup(t, fakeFetcher{html: dayMenuHtml})

	// cached week is from 2024, so it cannot cover today
	store.doc = Aggregate([]MenuEntry{
		{Day: Mon, Meal: Lunch, Station: Entrees, Dish: "Grilled Chicken"},
	}, testWeek(), time.Now())

	day, err := svc.Today(context.Background())
	require.NoError(t, err)
	require.Len(t, day.Meals, 2)
	require.Len(t, day.Meals[Lunch], 6)
	for _, sm := range day.Meals[Lunch] {
		require.Empty(t, sm.Dishes)
	}
}
