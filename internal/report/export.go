package report

import (
	"fmt"
	"time"

	"github.com/mindora/wellness/internal/models"
	"github.com/xuri/excelize/v2"
)

// ExportData is the full platform dataset for the admin export.
type ExportData struct {
	Users     []models.User
	Moods     []models.MoodEntry
	Journals  []models.JournalEntry
	Exercises []models.ExerciseSession
}

const exportTimeLayout = "1/2/2006, 3:04:05 PM"

var headerStyle = &excelize.Style{
	Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
	Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"6366F1"}},
	Alignment: &excelize.Alignment{
		Horizontal: "center",
		Vertical:   "center",
	},
}

type exportSheet struct {
	name    string
	headers []string
	widths  []float64
	rows    [][]interface{}
}

// RenderAdminExport writes one sheet per collection with a styled header row.
func RenderAdminExport(data ExportData, now time.Time) (*Document, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetDocProps(&excelize.DocProperties{
		Creator: "Mental Wellness Admin",
		Created: now.UTC().Format(time.RFC3339),
	}); err != nil {
		return nil, fmt.Errorf("failed to set workbook properties: %w", err)
	}

	style, err := f.NewStyle(headerStyle)
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	loc := now.Location()
	sheets := []exportSheet{
		{
			name:    "Users",
			headers: []string{"User ID", "Name", "Email", "Created At", "Is Admin"},
			widths:  []float64{30, 25, 30, 20, 10},
		},
		{
			name:    "Mood Entries",
			headers: []string{"Entry ID", "User ID", "Mood Score", "Notes", "Date"},
			widths:  []float64{30, 30, 12, 40, 20},
		},
		{
			name:    "Journal Entries",
			headers: []string{"Entry ID", "User ID", "Title", "Content", "Date"},
			widths:  []float64{30, 30, 30, 50, 20},
		},
		{
			name:    "Exercise Sessions",
			headers: []string{"Session ID", "User ID", "Exercise Name", "Duration (min)", "Completed At"},
			widths:  []float64{30, 30, 25, 15, 20},
		},
	}

	for _, u := range data.Users {
		admin := "No"
		if u.IsAdmin || u.IsSuperAdmin {
			admin = "Yes"
		}
		sheets[0].rows = append(sheets[0].rows, []interface{}{u.ID, u.Name, u.Email, u.CreatedAt.In(loc).Format(exportTimeLayout), admin})
	}
	for _, e := range data.Moods {
		sheets[1].rows = append(sheets[1].rows, []interface{}{e.ID, e.UserID, e.Mood, e.Note, e.Date.In(loc).Format(exportTimeLayout)})
	}
	for _, j := range data.Journals {
		sheets[2].rows = append(sheets[2].rows, []interface{}{j.ID, j.UserID, j.Title, j.Content, j.Date.In(loc).Format(exportTimeLayout)})
	}
	for _, s := range data.Exercises {
		duration := notApplicable
		if s.Duration > 0 {
			duration = fmt.Sprintf("%.1f", float64(s.Duration)/60)
		}
		sheets[3].rows = append(sheets[3].rows, []interface{}{s.ID, s.UserID, s.ExerciseName, duration, s.CompletedAt.In(loc).Format(exportTimeLayout)})
	}

	for i, sheet := range sheets {
		if i == 0 {
			err = f.SetSheetName("Sheet1", sheet.name)
		} else {
			_, err = f.NewSheet(sheet.name)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to create sheet %q: %w", sheet.name, err)
		}
		if err := writeExportSheet(f, sheet, style); err != nil {
			return nil, fmt.Errorf("failed to write sheet %q: %w", sheet.name, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to encode export workbook: %w", err)
	}

	return &Document{
		Filename:    "wellness-data-" + now.Format("2006-01-02") + ".xlsx",
		ContentType: ContentTypeXLSX,
		Body:        buf.Bytes(),
	}, nil
}

func writeExportSheet(f *excelize.File, sheet exportSheet, style int) error {
	w := &sheetWriter{f: f, name: sheet.name}

	header := make([]interface{}, len(sheet.headers))
	for i, h := range sheet.headers {
		header[i] = h
	}
	w.line(header...)
	for _, row := range sheet.rows {
		w.line(row...)
	}
	w.widths(sheet.widths...)
	if w.err != nil {
		return w.err
	}

	last, err := excelize.CoordinatesToCellName(len(sheet.headers), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet.name, "A1", last, style)
}
