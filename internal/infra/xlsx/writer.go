// Package xlsx writes reports as Excel workbooks.
package xlsx

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/runoshun/jira-reports/internal/domain"
	"github.com/xuri/excelize/v2"
)

// Layout of every sheet.
const (
	titleRow     = 1
	headerRow    = 3
	firstDataRow = 4
	headerHeight = 30
	minColWidth  = 10
	maxColWidth  = 60
)

// Ensure Writer implements domain.ExcelWriter.
var _ domain.ExcelWriter = (*Writer)(nil)

// Writer writes one worksheet per report table.
type Writer struct {
	headerColor string
}

// NewWriter creates a Writer filling header cells with headerColor ("#RRGGBB").
func NewWriter(headerColor string) *Writer {
	if headerColor == "" {
		headerColor = domain.DefaultHeaderColor
	}
	return &Writer{headerColor: headerColor}
}

// styles holds the style IDs registered in a workbook.
type styles struct {
	title  int
	header int
	group  int
	cell   int
}

// WriteExcel writes report to path, replacing any existing file.
func (w *Writer) WriteExcel(report *domain.Report, path string) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	st, err := w.registerStyles(f)
	if err != nil {
		return err
	}

	const defaultSheet = "Sheet1"
	for i, table := range report.Tables {
		sheet := domain.SheetName(i, table.Name)
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, sheet); err != nil {
				return fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("create sheet %q: %w", sheet, err)
		}
		if err := writeTable(f, sheet, table, st); err != nil {
			return fmt.Errorf("sheet %q: %w", sheet, err)
		}
	}
	f.SetActiveSheet(0)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func (w *Writer) registerStyles(f *excelize.File) (styles, error) {
	var st styles
	var err error
	centered := &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true}

	if st.title, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: centered,
	}); err != nil {
		return st, fmt.Errorf("title style: %w", err)
	}
	if st.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: centered,
		Fill:      excelize.Fill{Type: "pattern", Color: []string{w.headerColor}, Pattern: 1},
		Border:    borders(),
	}); err != nil {
		return st, fmt.Errorf("header style: %w", err)
	}
	if st.group, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: centered,
		Border:    borders(),
	}); err != nil {
		return st, fmt.Errorf("group style: %w", err)
	}
	if st.cell, err = f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
		Border:    borders(),
	}); err != nil {
		return st, fmt.Errorf("cell style: %w", err)
	}
	return st, nil
}

func borders() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: "#000000", Style: 1},
		{Type: "top", Color: "#000000", Style: 1},
		{Type: "right", Color: "#000000", Style: 1},
		{Type: "bottom", Color: "#000000", Style: 1},
	}
}

func writeTable(f *excelize.File, sheet string, table domain.TableData, st styles) error {
	cols := len(table.Headers)
	if cols == 0 {
		cols = 1
	}
	widths := make([]int, cols)
	for i := range widths {
		widths[i] = minColWidth
	}

	// Title
	if err := setRow(f, sheet, titleRow, []string{table.Name}, st.title); err != nil {
		return err
	}
	if err := mergeRow(f, sheet, titleRow, cols); err != nil {
		return err
	}

	// Header
	if err := setRow(f, sheet, headerRow, table.Headers, st.header); err != nil {
		return err
	}
	if err := f.SetRowHeight(sheet, headerRow, headerHeight); err != nil {
		return err
	}
	measure(widths, table.Headers)

	row := firstDataRow
	for _, group := range table.Groups {
		if table.Grouped() {
			if err := setRow(f, sheet, row, []string{group.Name}, st.group); err != nil {
				return err
			}
			if err := mergeRow(f, sheet, row, cols); err != nil {
				return err
			}
			if err := styleRow(f, sheet, row, cols, st.group); err != nil {
				return err
			}
			row++
		}
		for _, record := range group.Rows {
			values := record.Values()
			if err := setRow(f, sheet, row, values, st.cell); err != nil {
				return err
			}
			if err := styleRow(f, sheet, row, cols, st.cell); err != nil {
				return err
			}
			measure(widths, values)
			row++
		}
	}

	for i, width := range widths {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, name, name, float64(width)); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []string, style int) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellStr(sheet, cell, v); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return err
		}
	}
	return nil
}

func styleRow(f *excelize.File, sheet string, row, cols, style int) error {
	first, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(cols, row)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, first, last, style)
}

func mergeRow(f *excelize.File, sheet string, row, cols int) error {
	if cols < 2 {
		return nil
	}
	first, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(cols, row)
	if err != nil {
		return err
	}
	return f.MergeCell(sheet, first, last)
}

// measure widens columns to fit the longest line of each value.
func measure(widths []int, values []string) {
	for i, v := range values {
		if i >= len(widths) {
			return
		}
		for _, line := range strings.Split(v, "\n") {
			n := utf8.RuneCountInString(line) + 2
			if n > maxColWidth {
				n = maxColWidth
			}
			if n > widths[i] {
				widths[i] = n
			}
		}
	}
}
