package services

import (
	"context"
	"fmt"
	"time"

	"github.com/mindora/wellness/internal/analytics"
	"github.com/mindora/wellness/internal/metrics"
	"github.com/mindora/wellness/internal/models"
	"github.com/mindora/wellness/internal/report"
	"github.com/mindora/wellness/internal/repository"
)

// Report formats.
const (
	FormatHTML     = "html"
	FormatCSV      = "csv"
	FormatWorkbook = "xlsx"
)

const (
	summaryFetchLimit  = 200
	workbookFetchLimit = 500
)

// ReportRequest selects the window and redaction of a report. An empty Range
// uses the per-format default.
type ReportRequest struct {
	Range           string
	IncludePersonal bool
}

type ReportService struct {
	store *repository.Store
	loc   *time.Location
	now   func() time.Time
}

func NewReportService(store *repository.Store, loc *time.Location) *ReportService {
	if loc == nil {
		loc = time.Local
	}
	return &ReportService{store: store, loc: loc, now: time.Now}
}

func (s *ReportService) clock() time.Time {
	return s.now().In(s.loc)
}

// Analytics summarises the caller's mood data for the dashboard.
func (s *ReportService) Analytics(ctx context.Context, userID, rng string) (*analytics.Summary, error) {
	moods, journals, err := s.entries(ctx, userID, summaryFetchLimit)
	if err != nil {
		return nil, err
	}
	summary := analytics.Summarize(moods, journals, analytics.ParseRange(rng, analytics.RangeWeek), s.clock())
	return &summary, nil
}

// Render builds the report in format. The workbook always covers the last
// workbookFetchLimit entries; the other formats the last summaryFetchLimit.
func (s *ReportService) Render(ctx context.Context, userID, format string, req ReportRequest) (*report.Document, error) {
	started := time.Now()

	user, err := s.store.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, mapUserErr(err)
	}

	limit, fallback := summaryFetchLimit, analytics.RangeMonth
	if format == FormatWorkbook {
		limit, fallback = workbookFetchLimit, analytics.RangeWeek
	}
	moods, journals, err := s.entries(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	rng := analytics.ParseRange(req.Range, fallback)
	model := report.NewModel(user, moods, journals, report.Options{
		Range:           rng,
		IncludePersonal: req.IncludePersonal,
		Now:             s.clock(),
	})

	var doc *report.Document
	switch format {
	case FormatHTML:
		doc, err = report.RenderHTML(model)
	case FormatCSV:
		doc, err = report.RenderCSV(model)
	case FormatWorkbook:
		doc, err = report.RenderWorkbook(model)
	default:
		return nil, fmt.Errorf("unknown report format %q", format)
	}
	if err != nil {
		metrics.TrackError("report")
		return nil, fmt.Errorf("render %s report: %w", format, err)
	}

	label := string(rng)
	if !rng.Known() {
		label = "other"
	}
	metrics.TrackReport(format, label, started)
	return doc, nil
}

func (s *ReportService) entries(ctx context.Context, userID string, limit int) ([]models.MoodEntry, []models.JournalEntry, error) {
	moods, err := s.store.Moods.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, nil, fmt.Errorf("list moods: %w", err)
	}
	journals, err := s.store.Journals.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, nil, fmt.Errorf("list journals: %w", err)
	}
	return moods, journals, nil
}
