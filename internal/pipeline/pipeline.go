// Package pipeline runs one tracking batch: it reads the input workbook,
// fetches and enriches the latest event per tracking number, writes the
// consolidated workbook, classifies it and writes the category report.
package pipeline

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/Ricky512227/MedshipmentTrackingTool/internal/config"
	"github.com/Ricky512227/MedshipmentTrackingTool/internal/tracking"
)

// ErrNoData is returned when no tracking number produced a record. No files
// are written in that case.
var ErrNoData = eris.New("pipeline: no tracking data was successfully retrieved")

// Tracker fetches the latest event for a tracking number.
type Tracker interface {
	Track(ctx context.Context, trackingNumber string) (tracking.Event, error)
}

// ZipLookup resolves a zip code to a place string.
type ZipLookup interface {
	Lookup(ctx context.Context, zip string) (string, error)
}

// ReportWriter writes the category report and returns its path.
type ReportWriter interface {
	Write(rows [][]string, cats tracking.CategoryMap) (string, error)
}

// Outcome is the terminal state of one input row.
type Outcome string

const (
	Recorded Outcome = "recorded"
	Skipped  Outcome = "skipped"
	Failed   Outcome = "failed"
)

// RunResult summarises a batch run.
type RunResult struct {
	RunID     string
	InputRows int
	Records   []tracking.Record
	Skipped   int
	// Miscellaneous lists tracking numbers whose fetch failed, in input order.
	Miscellaneous []string
	Categories    tracking.CategoryMap
	FinalDataPath string
	ReportPath    string
	StartedAt     time.Time
	FinishedAt    time.Time
}

// Pipeline processes the configured input workbook sequentially.
type Pipeline struct {
	cfg     *config.Config
	tracker Tracker
	zips    ZipLookup
	reports ReportWriter
	now     func() time.Time
}

// New creates a Pipeline. zips may be nil to disable location enrichment.
func New(cfg *config.Config, tracker Tracker, zips ZipLookup, reports ReportWriter) *Pipeline {
	return &Pipeline{
		cfg:     cfg,
		tracker: tracker,
		zips:    zips,
		reports: reports,
		now:     time.Now,
	}
}

// Run executes the batch. A failed row never stops the batch; only an input
// read error, an output write error or ctx cancellation end it early. When
// nothing was recorded the result is returned together with ErrNoData.
func (p *Pipeline) Run(ctx context.Context) (*RunResult, error) {
	result := &RunResult{
		RunID:     uuid.NewString(),
		StartedAt: p.now(),
	}
	log := zap.L().With(zap.String("run_id", result.RunID))
	log.Info("pipeline: starting tracking run", zap.String("input", p.cfg.InputFile))

	rows, err := ReadInput(p.cfg.InputFile)
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: read input")
	}
	result.InputRows = len(rows)
	log.Info("pipeline: collected input rows", zap.Int("rows", len(rows)))

	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			result.FinishedAt = p.now()
			return result, eris.Wrap(err, "pipeline: interrupted")
		}

		rec, outcome := p.processRow(ctx, log, i, len(rows), row)
		if outcome == Failed && ctx.Err() != nil {
			// The fetch was cut short by the interrupt, not by the site.
			result.FinishedAt = p.now()
			return result, eris.Wrap(ctx.Err(), "pipeline: interrupted")
		}
		switch outcome {
		case Recorded:
			result.Records = append(result.Records, rec)
		case Failed:
			result.Miscellaneous = append(result.Miscellaneous, rec.TrackingNumber)
		case Skipped:
			result.Skipped++
		}
	}

	if err := ctx.Err(); err != nil {
		result.FinishedAt = p.now()
		return result, eris.Wrap(err, "pipeline: interrupted")
	}

	if len(result.Records) == 0 {
		result.FinishedAt = p.now()
		log.Warn("pipeline: no tracking data was successfully retrieved",
			zap.Int("failed", len(result.Miscellaneous)),
			zap.Int("skipped", result.Skipped),
		)
		return result, ErrNoData
	}

	log.Info("pipeline: writing consolidated data",
		zap.Int("records", len(result.Records)),
		zap.String("path", p.cfg.FinalDataFile),
	)
	if err := WriteFinalData(p.cfg.FinalDataFile, result.Records); err != nil {
		return result, eris.Wrap(err, "pipeline: write final data")
	}
	result.FinalDataPath = p.cfg.FinalDataFile

	// Categorize from the file as written, not from memory.
	data, err := ReadFinalData(p.cfg.FinalDataFile)
	if err != nil {
		return result, eris.Wrap(err, "pipeline: read final data")
	}
	result.Categories = tracking.Categorize(EventTypes(data))

	path, err := p.reports.Write(data, result.Categories)
	if err != nil {
		return result, eris.Wrap(err, "pipeline: write report")
	}
	result.ReportPath = path
	result.FinishedAt = p.now()

	log.Info("pipeline: run complete",
		zap.Int("records", len(result.Records)),
		zap.Int("classified", result.Categories.Total()),
		zap.Int("failed", len(result.Miscellaneous)),
		zap.Int("skipped", result.Skipped),
		zap.String("report", path),
	)
	return result, nil
}

// processRow takes one input row to a terminal Outcome. For Failed rows
// only the record's TrackingNumber is set.
func (p *Pipeline) processRow(ctx context.Context, log *zap.Logger, i, total int, row tracking.InputRow) (tracking.Record, Outcome) {
	row.TrackingNumber = strings.TrimSpace(row.TrackingNumber)
	if row.TrackingNumber == "" {
		return tracking.Record{}, Skipped
	}

	log = log.With(zap.String("tracking_number", row.TrackingNumber))
	log.Info(fmt.Sprintf("[%d/%d] processing", i+1, total))

	ev, err := p.tracker.Track(ctx, row.TrackingNumber)
	if err != nil {
		log.Debug("pipeline: fetch failed", zap.Error(err))
		return tracking.Record{TrackingNumber: row.TrackingNumber}, Failed
	}

	rec := tracking.BuildRecord(row, ev)

	if zip, ok := zipCode(ev.Location()); ok && p.zips != nil {
		place, err := p.zips.Lookup(ctx, zip)
		if err != nil {
			log.Debug("pipeline: zip enrichment failed, keeping raw location", zap.String("zip", zip), zap.Error(err))
		} else {
			rec.Location = place
		}
	}

	return rec, Recorded
}

// zipCode reports whether a location field is a bare integer and returns it
// trimmed. Leading zeros are kept; an explicit sign is normalised away.
func zipCode(location string) (string, bool) {
	s := strings.TrimSpace(location)
	n, err := strconv.Atoi(s)
	if err != nil {
		return "", false
	}
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return strconv.Itoa(n), true
	}
	return s, true
}
