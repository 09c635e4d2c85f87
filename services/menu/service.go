package menu

import (
	"context"
	"log/slog"

	"hudsmenu-backend/lib/telemetry"
	"hudsmenu-backend/lib/timezone"
	"hudsmenu-backend/services/menu/history"

	"go.opentelemetry.io/otel/codes"
)

var tracer = telemetry.Tracer("hudsmenu.services.menu")

// Store persists the aggregated week document together with the status
// record of the scrape that produced it. It is injected (rather than a
// package singleton) so tests can substitute doubles.
type Store interface {
	Save(ctx context.Context, doc WeekDocument, status StatusRecord) error
	Load(ctx context.Context) (WeekDocument, StatusRecord, error)
}

type Service struct {
	fetcher Fetcher
	store   Store
	archive *history.Archive
}

// NewService wires the refresh pipeline. `archive` may be nil to disable
// the scrape-attempt archive.
func NewService(fetcher Fetcher, store Store, archive *history.Archive) Service {
	return Service{
		fetcher: fetcher,
		store:   store,
		archive: archive,
	}
}

// Refresh runs one full Fetch -> Extract -> Aggregate -> Save cycle for
// the current week. It never propagates pipeline failures to the caller:
// any stage error is recorded in the returned StatusRecord and the
// previously cached document stays untouched.
func (s Service) Refresh(ctx context.Context) StatusRecord {
	ctx, span := tracer.Start(ctx, "Refresh")
	defer span.End()

	now := timezone.Now()
	week := CurrentWeek(now)

	entries, scrapeErr := s.scrapeWeek(ctx, week)

	status := StatusRecord{
		LastRefreshed: now,
		Success:       scrapeErr == nil,
	}
	if scrapeErr != nil {
		span.RecordError(scrapeErr)
		span.SetStatus(codes.Error, "scrape failed")
		slog.ErrorContext(ctx, "scrape failed", "kind", scrapeErr.Kind, "err", scrapeErr.Err)

		status.Error = string(scrapeErr.Kind)
		s.recordStatus(ctx, status)
		s.recordAttempt(ctx, status, 0)
		return status
	}

	doc := Aggregate(entries, week, now)
	err := s.store.Save(ctx, doc, status)
	if err != nil {
		// write failures must not break the read path, which keeps
		// serving the last successfully stored document
		span.RecordError(err)
		slog.ErrorContext(ctx, "failed to persist week document", "err", err)
	}

	s.recordAttempt(ctx, status, len(entries))
	slog.InfoContext(ctx, "refresh complete", "week_start", doc.WeekStart, "dishes", len(entries))
	return status
}

// scrapeWeek fetches and extracts each day of the week. A single day
// failing to fetch degrades to an empty day; a week with no dishes at
// all means either the site is down or its format changed.
func (s Service) scrapeWeek(ctx context.Context, week Week) ([]MenuEntry, *ScrapeError) {
	ctx, span := tracer.Start(ctx, "scrapeWeek")
	defer span.End()

	var entries []MenuEntry
	fetchFailures := 0

	for i, date := range week.Dates() {
		day := Weekdays[i]

		rawHtml, err := s.fetcher.FetchDay(ctx, date)
		if err != nil {
			fetchFailures++
			slog.WarnContext(ctx, "failed to fetch day, treating as empty",
				"date", isoDate(date), "err", err)
			continue
		}

		dayEntries, err := ExtractDay(rawHtml, day)
		if err != nil {
			slog.WarnContext(ctx, "failed to extract day, treating as empty",
				"date", isoDate(date), "err", err)
			continue
		}
		entries = append(entries, dayEntries...)
	}

	if len(entries) == 0 {
		if fetchFailures == len(week.Dates()) {
			return nil, errorf(FetchFailed, "no menu page could be fetched")
		}
		return nil, errorf(ParseFailed, "menu format changed (no dishes found)")
	}
	return entries, nil
}

// recordStatus overwrites the status record while leaving the cached
// week document alone, used when a scrape fails outright.
func (s Service) recordStatus(ctx context.Context, status StatusRecord) {
	doc, _, err := s.store.Load(ctx)
	if err == nil {
		err = s.store.Save(ctx, doc, status)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to persist status record", "err", err)
	}
}

func (s Service) recordAttempt(ctx context.Context, status StatusRecord, dishCount int) {
	if s.archive == nil {
		return
	}
	err := s.archive.Append(ctx, history.Attempt{
		Time:      status.LastRefreshed,
		Success:   status.Success,
		Error:     status.Error,
		DishCount: dishCount,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to archive scrape attempt", "err", err)
	}
}

// Week returns the cached week document and its status.
func (s Service) Week(ctx context.Context) (WeekDocument, StatusRecord, error) {
	return s.store.Load(ctx)
}

// Today returns the cached menu for the current day, or a fully shaped
// empty day when the cached week doesn't cover today.
func (s Service) Today(ctx context.Context) (DayMenu, error) {
	doc, _, err := s.store.Load(ctx)
	if err != nil {
		return DayMenu{}, err
	}

	now := timezone.Now()
	day := doc.Days[WeekdayOf(now)]
	if day.Date != isoDate(now) {
		return EmptyDayMenu(now), nil
	}
	return day, nil
}

// History returns recent scrape attempts, newest first. Returns nil when
// no archive is configured.
func (s Service) History(ctx context.Context, limit int) ([]history.Attempt, error) {
	if s.archive == nil {
		return nil, nil
	}
	return s.archive.Recent(ctx, limit)
}
