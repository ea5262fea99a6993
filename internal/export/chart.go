// Package export renders chart series as spreadsheet workbooks.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/maxviazov/diary-stats-service/internal/model"
)

// SheetChart is the name of the only sheet in a chart workbook.
const SheetChart = "Chart"

// firstDataRow is the first row below the header.
const firstDataRow = 2

// ChartWorkbook lays the series out as Day/Value rows and adds a line chart
// over them. The chart is omitted for an empty series.
func ChartWorkbook(title string, series model.CalendarSeries) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetChart); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"2E75B6"}, Pattern: 1},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("header style: %w", err)
	}
	f.SetCellValue(SheetChart, "A1", "Day")
	f.SetCellValue(SheetChart, "B1", title)
	f.SetCellStyle(SheetChart, "A1", "B1", headerStyle)
	f.SetColWidth(SheetChart, "A", "A", 26)
	f.SetColWidth(SheetChart, "B", "B", 14)

	for i, p := range series {
		row := firstDataRow + i
		f.SetCellValue(SheetChart, fmt.Sprintf("A%d", row), p.Day)
		f.SetCellValue(SheetChart, fmt.Sprintf("B%d", row), p.Value)
	}

	if len(series) > 0 {
		last := firstDataRow + len(series) - 1
		chart := &excelize.Chart{
			Type: excelize.Line,
			Series: []excelize.ChartSeries{
				{
					Name:       fmt.Sprintf("'%s'!$B$1", SheetChart),
					Categories: fmt.Sprintf("'%s'!$A$%d:$A$%d", SheetChart, firstDataRow, last),
					Values:     fmt.Sprintf("'%s'!$B$%d:$B$%d", SheetChart, firstDataRow, last),
				},
			},
			Title:     []excelize.RichTextRun{{Text: title}},
			Legend:    excelize.ChartLegend{Position: "bottom"},
			Dimension: excelize.ChartDimension{Width: 640, Height: 320},
		}
		if err := f.AddChart(SheetChart, "D2", chart); err != nil {
			f.Close()
			return nil, fmt.Errorf("add chart: %w", err)
		}
	}

	f.SetActiveSheet(0)
	return f, nil
}

// WriteChartWorkbook builds the workbook and writes it to w.
func WriteChartWorkbook(w io.Writer, title string, series model.CalendarSeries) error {
	f, err := ChartWorkbook(title, series)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// Filename names a chart export, e.g. "u1_hours_2024-03-01_2024-03-31.xlsx".
// Characters outside [A-Za-z0-9._-] in the owner and metric become '_'.
func Filename(ownerID, metric string, series model.CalendarSeries) string {
	ownerID, metric = safeName(ownerID), safeName(metric)
	if len(series) == 0 {
		return fmt.Sprintf("%s_%s.xlsx", ownerID, metric)
	}
	return fmt.Sprintf("%s_%s_%s_%s.xlsx", ownerID, metric, firstDay(series[0].Day), lastDay(series[len(series)-1].Day))
}

func safeName(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '_', r == '-':
			return r
		}
		return '_'
	}, s)
}

// Period labels are "start - end"; a plain day is its own start and end.
func firstDay(label string) string {
	if len(label) >= 10 {
		return label[:10]
	}
	return label
}

func lastDay(label string) string {
	if len(label) >= 10 {
		return label[len(label)-10:]
	}
	return label
}
