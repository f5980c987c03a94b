// Package sheet loads qualifying-time spreadsheets into plain string rows.
package sheet

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/okian/medley/pkg/logger"
)

// Excel reads rows from xlsx workbooks. File-format details stay here;
// consumers only ever see [][]string.
type Excel struct {
	log logger.Logger
}

// Option applies a configuration option to the Excel loader.
type Option func(*Excel)

// WithLogger sets a custom logger for the loader.
func WithLogger(log logger.Logger) Option {
	return func(e *Excel) {
		if log != nil {
			e.log = log
		}
	}
}

// NewExcel creates an xlsx row loader.
func NewExcel(opts ...Option) *Excel {
	e := &Excel{}

	// Apply all options
	for _, opt := range opts {
		opt(e)
	}

	if e.log == nil {
		e.log = logger.Get()
	}

	return e
}

// LoadRows opens the workbook and returns every row of the named sheet.
// Cell values come back as displayed strings, which is what the
// qualifying-time builder parses.
func (e *Excel) LoadRows(ctx context.Context, path, sheetName string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrOpenWorkbook, path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			e.log.Warn(ctx, "failed to close workbook", logger.String("path", path), logger.Error(cerr))
		}
	}()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("%w: %q in %s: %v", ErrMissingSheet, sheetName, path, err)
	}

	e.log.Debug(ctx, "workbook sheet loaded",
		logger.String("path", path),
		logger.String("sheet", sheetName),
		logger.Int("rows", len(rows)),
	)

	return rows, nil
}
