// Command gen-times writes sample qualifying-time workbooks for local runs.
//
// It produces one SCY and one LCM workbook in the layout the loader expects:
// a MEN marker row, event rows with one time per age group, then a WOMEN
// marker and its event rows. A few cells are left as NO TIME so the
// auto-qualify path can be exercised end to end.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/okian/medley/internal/domain/model"
)

// Base times in hundredths for a 50; longer events scale linearly.
const (
	baseFifty    = 2600
	ageSlope     = 140 // added per age-group step
	womenOffset  = 300
	noTimeOdds   = 20 // one in N cells
	noTimeMarker = "NO TIME"
)

var events = []struct {
	distance int
	stroke   string
}{
	{50, "FREE"},
	{100, "FREE"},
	{200, "FREE"},
	{50, "BACK"},
	{100, "BACK"},
	{50, "BREAST"},
	{100, "BREAST"},
	{50, "FLY"},
	{100, "FLY"},
	{200, "IM"},
}

func main() {
	var (
		scyPath   = flag.String("scy", "scy.xlsx", "Output path for the short-course-yards workbook")
		lcmPath   = flag.String("lcm", "lcm.xlsx", "Output path for the long-course-meters workbook")
		sheetName = flag.String("sheet", "Sheet1", "Sheet name inside each workbook")
		seed      = flag.Int64("seed", 1, "Random seed for time jitter and NO TIME placement")
	)
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))

	// Yard times run a touch faster than meter times for the same event.
	if err := writeWorkbook(*scyPath, *sheetName, rng, -150); err != nil {
		os.Stderr.WriteString("failed to write SCY workbook: " + err.Error() + "\n")
		os.Exit(1)
	}
	if err := writeWorkbook(*lcmPath, *sheetName, rng, 0); err != nil {
		os.Stderr.WriteString("failed to write LCM workbook: " + err.Error() + "\n")
		os.Exit(1)
	}
}

func writeWorkbook(path, sheetName string, rng *rand.Rand, courseOffset int) error {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return err
	}
	f.SetActiveSheet(idx)

	row := 1
	for _, gender := range []model.Gender{model.GenderMen, model.GenderWomen} {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, string(gender)); err != nil {
			return err
		}
		row++

		genderOffset := 0
		if gender == model.GenderWomen {
			genderOffset = womenOffset
		}

		for _, ev := range events {
			cells := make([]interface{}, 0, len(model.AgeGroups)+1)
			cells = append(cells, fmt.Sprintf("%d %s", ev.distance, ev.stroke))
			for i := range model.AgeGroups {
				if rng.Intn(noTimeOdds) == 0 {
					cells = append(cells, noTimeMarker)
					continue
				}
				t := eventTime(ev.distance, i, genderOffset+courseOffset, rng)
				cells = append(cells, t.Clock())
			}

			start, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(sheetName, start, &cells); err != nil {
				return err
			}
			row++
		}
	}

	return f.SaveAs(path)
}

// eventTime scales the base 50 time to the distance and age group with
// a little jitter so no two runs look identical.
func eventTime(distance, ageIdx, offset int, rng *rand.Rand) model.Hundredths {
	per50 := baseFifty + ageIdx*ageSlope + offset
	t := per50 * distance / 50
	t += rng.Intn(100)
	return model.Hundredths(t)
}
