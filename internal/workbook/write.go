package workbook

import (
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// Book is an xlsx workbook being assembled sheet by sheet.
type Book struct {
	file *xlsx.File
	bold *xlsx.Style
}

// NewBook returns an empty workbook.
func NewBook() *Book {
	bold := xlsx.NewStyle()
	bold.Font.Bold = true
	bold.ApplyFont = true
	return &Book{file: xlsx.NewFile(), bold: bold}
}

// Sheet is a worksheet of a Book.
type Sheet struct {
	sheet *xlsx.Sheet
	bold  *xlsx.Style
}

// AddSheet appends a sheet named name with a bold header row.
func (b *Book) AddSheet(name string, header []string) (*Sheet, error) {
	sh, err := b.file.AddSheet(name)
	if err != nil {
		return nil, eris.Wrapf(err, "workbook: add sheet %q", name)
	}
	s := &Sheet{sheet: sh, bold: b.bold}
	if len(header) > 0 {
		row := sh.AddRow()
		for _, h := range header {
			cell := row.AddCell()
			cell.SetString(h)
			cell.SetStyle(b.bold)
		}
	}
	return s, nil
}

// Append writes a row of string cells.
func (s *Sheet) Append(values []string) {
	row := s.sheet.AddRow()
	for _, v := range values {
		row.AddCell().SetString(v)
	}
}

// AppendCount writes a label and an integer cell.
func (s *Sheet) AppendCount(label string, n int) {
	row := s.sheet.AddRow()
	row.AddCell().SetString(label)
	row.AddCell().SetInt(n)
}

// Save writes the workbook to path, creating the parent directory.
func (b *Book) Save(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return eris.Wrapf(err, "workbook: create dir %s", dir)
		}
	}
	if err := b.file.Save(path); err != nil {
		return eris.Wrapf(err, "workbook: save %s", path)
	}
	return nil
}

// WriteSheet writes a single-sheet workbook with a bold header row.
func WriteSheet(path, sheetName string, header []string, rows [][]string) error {
	b := NewBook()
	s, err := b.AddSheet(sheetName, header)
	if err != nil {
		return err
	}
	for _, r := range rows {
		s.Append(r)
	}
	return b.Save(path)
}
