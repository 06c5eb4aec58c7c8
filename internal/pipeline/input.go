package pipeline

import (
	"github.com/rotisserie/eris"

	"github.com/Ricky512227/MedshipmentTrackingTool/internal/tracking"
	"github.com/Ricky512227/MedshipmentTrackingTool/internal/workbook"
)

// Input sheet columns.
const (
	colOrderID = iota
	colFirstName
	colLastName
	colTrackingNumber
)

// ReadInput reads the shipments from columns A-D of the first sheet of the
// workbook at path, skipping the header row. Rows are read whole so a blank
// cell in one column cannot shift the others.
func ReadInput(path string) ([]tracking.InputRow, error) {
	rows, err := workbook.ReadRows(path, workbook.Options{SkipRows: 1})
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: read input workbook")
	}

	out := make([]tracking.InputRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, tracking.InputRow{
			OrderID:        workbook.Cell(r, colOrderID),
			FirstName:      workbook.Cell(r, colFirstName),
			LastName:       workbook.Cell(r, colLastName),
			TrackingNumber: workbook.Cell(r, colTrackingNumber),
		})
	}
	return out, nil
}

// finalDataSheet is the sheet name of the consolidated workbook.
const finalDataSheet = "Sheet1"

// WriteFinalData writes records to path under the standard headers,
// replacing any existing file.
func WriteFinalData(path string, records []tracking.Record) error {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, rec.Row())
	}
	return workbook.WriteSheet(path, finalDataSheet, tracking.Headers, rows)
}

// ReadFinalData reads the data rows of a consolidated workbook.
func ReadFinalData(path string) ([][]string, error) {
	rows, err := workbook.ReadRows(path, workbook.Options{SkipRows: 1})
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: read final data")
	}
	return rows, nil
}

// EventTypes returns the event type column of consolidated data rows.
func EventTypes(rows [][]string) []string {
	return workbook.Column(rows, tracking.EventTypeColumn)
}
