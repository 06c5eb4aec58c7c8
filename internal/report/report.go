// Package report writes the categorized shipment workbook: one sheet per
// populated lifecycle stage plus a Summary sheet of counts.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/Ricky512227/MedshipmentTrackingTool/internal/textnorm"
	"github.com/Ricky512227/MedshipmentTrackingTool/internal/tracking"
	"github.com/Ricky512227/MedshipmentTrackingTool/internal/workbook"
)

// NotFound stands in for an empty or missing cell.
const NotFound = "NotFound"

// SummarySheet is the name of the counts sheet.
const SummarySheet = "Summary"

const timestampLayout = "20060102-150405"

// Writer writes category reports into a directory.
type Writer struct {
	dir string
	now func() time.Time
}

// Option configures a Writer.
type Option func(*Writer)

// WithClock replaces time.Now for file naming.
func WithClock(now func() time.Time) Option {
	return func(w *Writer) { w.now = now }
}

// NewWriter creates a Writer storing reports in dir.
func NewWriter(dir string, opts ...Option) *Writer {
	w := &Writer{dir: dir, now: time.Now}
	for _, o := range opts {
		o(w)
	}
	return w
}

// Write builds the report from the consolidated data rows (header excluded)
// and the category map, and returns the path of the new file. Row numbers in
// cats are 1-based into rows; numbers with no row are logged and skipped.
func (w *Writer) Write(rows [][]string, cats tracking.CategoryMap) (string, error) {
	book := workbook.NewBook()

	for _, c := range tracking.Categories() {
		nums := cats[c]
		if len(nums) == 0 {
			continue
		}
		sheet, err := book.AddSheet(string(c), tracking.Headers)
		if err != nil {
			return "", err
		}
		for _, n := range nums {
			if n < 1 || n > len(rows) {
				zap.L().Warn("report: row out of range, skipping",
					zap.String("sheet", string(c)),
					zap.Int("row", n),
					zap.Int("rows", len(rows)),
				)
				continue
			}
			sheet.Append(normalizeRow(rows[n-1]))
		}
	}

	summary, err := book.AddSheet(SummarySheet, []string{"ITEMS", "COUNT"})
	if err != nil {
		return "", err
	}
	for _, c := range tracking.SummaryOrder() {
		summary.AppendCount(c.SummaryLabel(), cats.Count(c))
	}
	summary.AppendCount("TOTAL ITEMS", cats.Total())

	path := w.nextPath()
	if err := book.Save(path); err != nil {
		return "", err
	}

	zap.L().Info("report: categorized report generated", zap.String("path", path))
	return path, nil
}

// normalizeRow fits a consolidated row to the report columns.
func normalizeRow(row []string) []string {
	out := make([]string, len(tracking.Headers))
	for i := range out {
		v := workbook.Cell(row, i)
		if v == "" {
			out[i] = NotFound
			continue
		}
		out[i] = textnorm.Fold(v)
	}
	return out
}

// nextPath returns Data<timestamp>.xlsx, suffixed -1, -2 ... when a report
// with that name already exists.
func (w *Writer) nextPath() string {
	base := "Data" + w.now().Format(timestampLayout)
	path := filepath.Join(w.dir, base+".xlsx")
	for n := 1; fileExists(path); n++ {
		path = filepath.Join(w.dir, fmt.Sprintf("%s-%d.xlsx", base, n))
	}
	return path
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
