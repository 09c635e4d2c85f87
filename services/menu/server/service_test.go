package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"hudsmenu-backend/lib/sqliteutil"
	"hudsmenu-backend/lib/telemetry"
	"hudsmenu-backend/services/menu"
	"hudsmenu-backend/services/menu/history"
	"hudsmenu-backend/services/menu/store"

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

func setup(t testing.TB, fetcher menu.Fetcher) http.Handler {
	cleanup := telemetry.SetupForTesting(t, "test:services/menu/server")
	t.Cleanup(cleanup)

	fileStore, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)

	db, err := sqliteutil.OpenDB(history.Schema, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	archive := history.NewArchive(db)

	svc := menu.NewService(fetcher, fileStore, &archive)
	return NewRouter(NewHandler(svc))
}

func fixtureHtml(t testing.TB) string {
	raw, err := os.ReadFile("../testdata/day_menu.html")
	require.NoError(t, err)
	return string(raw)
}

func doRequest(t testing.TB, handler http.Handler, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestGetWeekColdStart(t *testing.T) {
	handler := setup(t, fakeFetcher{err: errors.New("unreachable")})

	rec := doRequest(t, handler, "GET", "/api/week")
	require.Equal(t, http.StatusOK, rec.Code)

	var doc menu.WeekDocument
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	require.Len(t, doc.Days, 7)
	for _, day := range menu.Weekdays {
		require.Contains(t, doc.Days, day)
	}
}

func TestRefreshThenWeek(t *testing.T) {
	handler := setup(t, fakeFetcher{html: fixtureHtml(t)})

	rec := doRequest(t, handler, "POST", "/api/refresh")
	require.Equal(t, http.StatusOK, rec.Code)

	var status menu.StatusRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	require.True(t, status.Success)

	rec = doRequest(t, handler, "GET", "/api/week")
	require.Equal(t, http.StatusOK, rec.Code)

	var doc menu.WeekDocument
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	lunch := doc.Days[menu.Mon].Meals[menu.Lunch]
	require.Equal(t, menu.Entrees, lunch[1].Station)
	require.Equal(t, []string{"Grilled Chicken", "Tofu Stir-fry"}, lunch[1].Dishes)
}

func TestRefreshFailureReportsStatusNot5xx(t *testing.T) {
	handler := setup(t, fakeFetcher{err: errors.New("unreachable")})

	rec := doRequest(t, handler, "POST", "/api/refresh")
	require.Equal(t, http.StatusOK, rec.Code)

	var status menu.StatusRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	require.False(t, status.Success)
	require.Equal(t, string(menu.FetchFailed), status.Error)

	rec = doRequest(t, handler, "GET", "/api/health")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"ok": false}`, rec.Body.String())
}

func TestGetToday(t *testing.T) {
	handler := setup(t, fakeFetcher{html: fixtureHtml(t)})

	doRequest(t, handler, "POST", "/api/refresh")
	rec := doRequest(t, handler, "GET", "/api/today")
	require.Equal(t, http.StatusOK, rec.Code)

	var day menu.DayMenu
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &day))
	require.Len(t, day.Meals, 2)
	require.Len(t, day.Meals[menu.Lunch], 6)
	require.Len(t, day.Meals[menu.Dinner], 5)
}

func TestGetHistory(t *testing.T) {
	handler := setup(t, fakeFetcher{html: fixtureHtml(t)})

	doRequest(t, handler, "POST", "/api/refresh")
	doRequest(t, handler, "POST", "/api/refresh")

	rec := doRequest(t, handler, "GET", "/api/history?limit=1")
	require.Equal(t, http.StatusOK, rec.Code)

	var attempts []history.Attempt
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &attempts))
	require.Len(t, attempts, 1)
	require.True(t, attempts[0].Success)
}

func TestDashboardRenders(t *testing.T) {
	handler := setup(t, fakeFetcher{html: fixtureHtml(t)})

	doRequest(t, handler, "POST", "/api/refresh")
	rec := doRequest(t, handler, "GET", "/")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "text/html")

	body := rec.Body.String()
	require.Contains(t, body, "Grilled Chicken")
	require.Contains(t, body, "Lunch")
	require.Contains(t, body, "Dinner")
	require.Contains(t, body, "Sunday Sundae!")
}
