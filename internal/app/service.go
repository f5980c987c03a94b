// Package app provides the batch service that classifies a season's roster
// into performance sectors and persists the outcome.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/okian/medley/internal/adapters/repository"
	"github.com/okian/medley/internal/domain/model"
	"github.com/okian/medley/internal/domain/nqt"
	"github.com/okian/medley/internal/domain/reason"
	"github.com/okian/medley/internal/domain/sector"
	"github.com/okian/medley/pkg/logger"
	"github.com/okian/medley/pkg/metrics"
)

// Default batch configuration constants.
const (
	defaultBPercent      = 120
	defaultProgressEvery = 100
	defaultSheetName     = "Sheet1"
)

// RowSource supplies spreadsheet rows for qualifying-time sheets.
type RowSource interface {
	LoadRows(ctx context.Context, path, sheetName string) ([][]string, error)
}

// Summary reports what one run did.
type Summary struct {
	RunID     string
	Total     int
	BySector  map[model.Sector]int
	Anomalies int
	Elapsed   time.Duration
}

// Service runs the sector classification batch. One swimmer is fully
// classified and persisted before the next begins; the qualifying-time
// tables are built once and read-only thereafter.
type Service struct {
	store repository.Store
	rows  RowSource

	year          int
	bPercent      int
	progressEvery int
	scySheet      string
	lcmSheet      string
	sheetName     string

	log logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithYear sets the season year being processed.
func WithYear(year int) Option {
	return func(s *Service) {
		if year > 0 {
			s.year = year
		}
	}
}

// WithBPercent sets the B-sector percentage, e.g. 120 for 120% of the NQT.
func WithBPercent(percent int) Option {
	return func(s *Service) {
		if percent > 0 {
			s.bPercent = percent
		}
	}
}

// WithProgressInterval sets how many swimmers pass between progress logs.
func WithProgressInterval(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.progressEvery = n
		}
	}
}

// WithSheets sets the workbook paths and the sheet name holding the rows.
func WithSheets(scyPath, lcmPath, sheetName string) Option {
	return func(s *Service) {
		s.scySheet = scyPath
		s.lcmSheet = lcmPath
		if sheetName != "" {
			s.sheetName = sheetName
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// New constructs a Service over a store and a sheet row source.
func New(store repository.Store, rows RowSource, opts ...Option) *Service {
	s := &Service{
		store:         store,
		rows:          rows,
		year:          time.Now().Year(),
		bPercent:      defaultBPercent,
		progressEvery: defaultProgressEvery,
		sheetName:     defaultSheetName,
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	if s.log == nil {
		s.log = logger.Get()
	}

	return s
}

// Run executes one full classification pass over the roster.
func (s *Service) Run(ctx context.Context) (Summary, error) {
	started := time.Now()
	runID := uuid.New().String()
	log := s.log.Named("run")

	log.Info(ctx, "starting sector classification",
		logger.String("runID", runID),
		logger.Int("year", s.year),
		logger.Int("bPercent", s.bPercent),
	)

	tables, err := s.buildTables(ctx)
	if err != nil {
		return Summary{RunID: runID}, err
	}

	classifier := sector.New(tables, sector.WithBPercent(s.bPercent))
	formatter := reason.New(s.store, reason.WithBPercent(s.bPercent))

	roster, err := s.store.Roster(ctx)
	if err != nil {
		return Summary{RunID: runID}, fmt.Errorf("fetch roster: %w", err)
	}
	metrics.SetRosterSize(len(roster))
	log.Info(ctx, "roster fetched", logger.String("runID", runID), logger.Int("swimmers", len(roster)))

	summary := Summary{
		RunID:    runID,
		BySector: make(map[model.Sector]int),
	}

	for i, sw := range roster {
		if err := ctx.Err(); err != nil {
			return summary, fmt.Errorf("run cancelled after %d swimmers: %w", i, err)
		}

		if err := s.classifyOne(ctx, sw, classifier, formatter, &summary); err != nil {
			return summary, err
		}

		if (i+1)%s.progressEvery == 0 {
			log.Info(ctx, "progress",
				logger.String("runID", runID),
				logger.Int("processed", i+1),
				logger.Int("total", len(roster)),
			)
		}
	}

	summary.Total = len(roster)
	summary.Elapsed = time.Since(started)

	log.Info(ctx, "sector classification finished",
		logger.String("runID", runID),
		logger.Int("swimmers", summary.Total),
		logger.Int("sectorA", summary.BySector[model.SectorA]),
		logger.Int("sectorB", summary.BySector[model.SectorB]),
		logger.Int("sectorC", summary.BySector[model.SectorC]),
		logger.Int("sectorD", summary.BySector[model.SectorD]),
		logger.Int("anomalies", summary.Anomalies),
		logger.Duration("elapsed", summary.Elapsed),
	)

	return summary, nil
}

// buildTables loads the two published sheets and assembles the course Set.
// The SCM table is never built: it aliases LCM inside the Set.
func (s *Service) buildTables(ctx context.Context) (*nqt.Set, error) {
	builder := nqt.NewBuilder(s.store, nqt.WithLogger(s.log.Named("nqt")))

	scyRows, err := s.rows.LoadRows(ctx, s.scySheet, s.sheetName)
	if err != nil {
		return nil, fmt.Errorf("load SCY sheet: %w", err)
	}
	scy, err := builder.Build(ctx, model.CourseSCY, scyRows)
	if err != nil {
		return nil, fmt.Errorf("build SCY table: %w", err)
	}

	lcmRows, err := s.rows.LoadRows(ctx, s.lcmSheet, s.sheetName)
	if err != nil {
		return nil, fmt.Errorf("load LCM sheet: %w", err)
	}
	lcm, err := builder.Build(ctx, model.CourseLCM, lcmRows)
	if err != nil {
		return nil, fmt.Errorf("build LCM table: %w", err)
	}

	return nqt.NewSet(scy, lcm), nil
}

// classifyOne runs the full pipeline for a single swimmer.
func (s *Service) classifyOne(ctx context.Context, sw model.Swimmer, classifier *sector.Classifier, formatter *reason.Formatter, summary *Summary) error {
	results, err := s.store.PoolResults(ctx, sw.ID)
	if err != nil {
		return fmt.Errorf("fetch results for swimmer %d: %w", sw.ID, err)
	}

	classifyStart := time.Now()
	decision := classifier.Classify(ctx, sw.Gender, results)
	metrics.ObserveClassifyLatency(time.Since(classifyStart))

	reasonText, err := formatter.Format(ctx, sw.FullName(), decision)
	if err != nil {
		// The sector itself is still sound; persist it without prose.
		s.log.Error(ctx, "reason formatting failed",
			logger.Int64("swimmerID", sw.ID),
			logger.String("sector", string(decision.Sector)),
			logger.Error(err),
		)
		reasonText = ""
	}

	if err := s.store.PersistSector(ctx, sw.ID, decision.Sector, reasonText); err != nil {
		if errors.Is(err, repository.ErrNoRowsUpdated) {
			s.log.Warn(ctx, "sector write affected no rows",
				logger.Int64("swimmerID", sw.ID),
				logger.Error(err),
			)
			metrics.RecordPersistAnomaly()
			summary.Anomalies++
		} else {
			metrics.RecordPersistError()
			return fmt.Errorf("persist sector for swimmer %d: %w", sw.ID, err)
		}
	}

	summary.BySector[decision.Sector]++
	metrics.RecordSwimmerClassified(string(decision.Sector))

	s.log.Debug(ctx, "swimmer classified",
		logger.Int64("swimmerID", sw.ID),
		logger.String("sector", string(decision.Sector)),
		logger.Int("results", len(results)),
	)

	return nil
}
