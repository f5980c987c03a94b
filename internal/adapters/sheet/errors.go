package sheet

import "errors"

// Sentinel kinds for workbook loading errors.
var (
	ErrOpenWorkbook = errors.New("open workbook failed")
	ErrMissingSheet = errors.New("sheet not found")
)
