package server

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"hudsmenu-backend/lib/timezone"
	"hudsmenu-backend/services/menu"
)

//go:embed templates/dashboard.html
var templateFs embed.FS

var dashboardTemplate = template.Must(
	template.ParseFS(templateFs, "templates/dashboard.html"),
)

type stationView struct {
	Label  string
	Dishes []string
}

type mealView struct {
	Name     string
	Stations []stationView
	Empty    bool
}

type dayView struct {
	Title string
	Meals []mealView
}

type bannerView struct {
	Kind string
	Text string
}

type dashboardView struct {
	WeekStart string
	WeekEnd   string
	Banner    *bannerView
	Days      []dayView
}

func (h *Handler) getDashboard(w http.ResponseWriter, r *http.Request) {
	doc, status, err := h.svc.Week(r.Context())
	if err != nil {
		http.Error(w, "failed to load menu", http.StatusInternalServerError)
		return
	}

	view := buildDashboardView(doc, status, timezone.Now())

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err = dashboardTemplate.Execute(w, view)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to render dashboard", "err", err)
	}
}

func buildDashboardView(doc menu.WeekDocument, status menu.StatusRecord, now time.Time) dashboardView {
	view := dashboardView{
		WeekStart: doc.WeekStart,
		WeekEnd:   doc.WeekEnd,
		Banner:    statusBanner(doc, status, now),
	}

	for _, day := range menu.Weekdays {
		dayMenu := doc.Days[day]
		dv := dayView{Title: dayTitle(day, dayMenu.Date)}
		for _, meal := range menu.Meals {
			dv.Meals = append(dv.Meals, buildMealView(day, meal, dayMenu.Meals[meal]))
		}
		view.Days = append(view.Days, dv)
	}
	return view
}

func buildMealView(day menu.Weekday, meal menu.Meal, stations []menu.StationMenu) mealView {
	mv := mealView{Name: string(meal), Empty: true}
	for _, sm := range stations {
		dishes := sm.Dishes

		// longstanding dining hall traditions the scraped page never
		// lists: sunday lunch is brunch, sunday dinner ends in sundaes
		if day == menu.Sun && meal == menu.Lunch && sm.Station == menu.Entrees {
			dishes = []string{"Sunday Brunch"}
		}
		if sm.Station == menu.Desserts {
			if day == menu.Sun && meal == menu.Dinner {
				dishes = []string{"Sunday Sundae!"}
			} else if len(dishes) > 1 {
				// the dessert list is long and repetitive, show the headliner
				dishes = dishes[:1]
			}
		}

		if len(dishes) == 0 {
			continue
		}
		mv.Empty = false
		mv.Stations = append(mv.Stations, stationView{
			Label:  string(sm.Station),
			Dishes: dishes,
		})
	}
	return mv
}

func dayTitle(day menu.Weekday, dateISO string) string {
	date, err := time.ParseInLocation("2006-01-02", dateISO, timezone.Location)
	if err != nil {
		return string(day)
	}
	return date.Format("Monday Jan 2")
}

func statusBanner(doc menu.WeekDocument, status menu.StatusRecord, now time.Time) *bannerView {
	if status.Error == string(menu.ParseFailed) {
		return &bannerView{Kind: "error", Text: "Menu format changed — the last scrape failed."}
	}
	if !status.Success && status.Error != "" {
		return &bannerView{Kind: "error", Text: "Menu fetch failed — showing the last known menu (may be stale)."}
	}
	if !doc.GeneratedAt.IsZero() && now.Sub(doc.GeneratedAt) > 48*time.Hour {
		return &bannerView{Kind: "warn", Text: "Data may be stale — the last successful scrape was over 48h ago."}
	}
	return nil
}
