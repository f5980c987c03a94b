package nqt_test

import (
	"context"
	"fmt"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/medley/internal/domain/model"
	"github.com/okian/medley/internal/domain/nqt"
	"github.com/okian/medley/pkg/logger"
)

// fakeResolver hands out sequential ids and remembers what it resolved.
type fakeResolver struct {
	next    int64
	known   map[string]int64
	failFor map[string]bool
}

func newFakeResolver() *fakeResolver {
	return &fakeResolver{known: make(map[string]int64), failFor: make(map[string]bool)}
}

func (r *fakeResolver) ResolveEventID(_ context.Context, distance int, units model.Unit, stroke string) (int64, error) {
	k := fmt.Sprintf("%d/%s/%s", distance, units, stroke)
	if r.failFor[stroke] {
		return 0, fmt.Errorf("unknown stroke %q", stroke)
	}
	if id, ok := r.known[k]; ok {
		return id, nil
	}
	r.next++
	r.known[k] = r.next
	return r.next, nil
}

func init() {
	_ = logger.Init()
}

func TestBuilder_Build(t *testing.T) {
	Convey("Given a builder over a two-age-group sheet layout", t, func() {
		resolver := newFakeResolver()
		builder := nqt.NewBuilder(resolver, nqt.WithAgeGroups([]string{"25-29", "30-34"}))
		ctx := context.Background()

		Convey("When the sheet has both gender sections", func() {
			rows := [][]string{
				{"National Qualifying Times"},
				{"MEN"},
				{"50 FREE", "25.00", "26.50"},
				{"100 BACK", "NO TIME", "1:10.00"},
				{"WOMEN"},
				{"50 FREE", "28.00", "NO TIME"},
			}

			table, err := builder.Build(ctx, model.CourseLCM, rows)
			So(err, ShouldBeNil)

			Convey("Then entries land under the active gender", func() {
				free := resolver.known["50/Meters/FREE"]
				back := resolver.known["100/Meters/BACK"]

				d, ok := table.Lookup(free, "25-29", model.GenderMen)
				So(ok, ShouldBeTrue)
				So(d, ShouldEqual, model.Hundredths(2500))

				d, ok = table.Lookup(free, "25-29", model.GenderWomen)
				So(ok, ShouldBeTrue)
				So(d, ShouldEqual, model.Hundredths(2800))

				d, ok = table.Lookup(back, "30-34", model.GenderMen)
				So(ok, ShouldBeTrue)
				So(d, ShouldEqual, model.Hundredths(7000))
			})

			Convey("Then NO TIME cells leave their keys absent", func() {
				free := resolver.known["50/Meters/FREE"]
				back := resolver.known["100/Meters/BACK"]

				_, ok := table.Lookup(back, "25-29", model.GenderMen)
				So(ok, ShouldBeFalse)
				_, ok = table.Lookup(free, "30-34", model.GenderWomen)
				So(ok, ShouldBeFalse)
				So(table.Len(), ShouldEqual, 4)
			})
		})

		Convey("When building for short-course yards", func() {
			rows := [][]string{
				{"MEN"},
				{"100 FLY", "55.00", "57.00"},
			}

			_, err := builder.Build(ctx, model.CourseSCY, rows)
			So(err, ShouldBeNil)

			Convey("Then events resolve with yard units", func() {
				_, ok := resolver.known["100/Yards/FLY"]
				So(ok, ShouldBeTrue)
			})
		})

		Convey("When an event cannot be resolved", func() {
			resolver.failFor["MYSTERY"] = true
			rows := [][]string{
				{"MEN"},
				{"200 MYSTERY", "2:00.00", "2:05.00"},
				{"200 FREE", "1:55.00", "2:00.00"},
			}

			table, err := builder.Build(ctx, model.CourseLCM, rows)

			Convey("Then the row is skipped and building continues", func() {
				So(err, ShouldBeNil)
				So(table.Len(), ShouldEqual, 2)
			})
		})

		Convey("When event rows appear before any gender marker", func() {
			rows := [][]string{
				{"50 FREE", "25.00", "26.50"},
				{"MEN"},
				{"50 FREE", "25.00", "26.50"},
			}

			table, err := builder.Build(ctx, model.CourseLCM, rows)

			Convey("Then only the marked rows contribute", func() {
				So(err, ShouldBeNil)
				So(table.Len(), ShouldEqual, 2)
			})
		})

		Convey("When cells are malformed or rows are noise", func() {
			rows := [][]string{
				{"MEN"},
				{""},
				{"Relay events below"},
				{"50 FREE", "not-a-time", "26.50"},
				{"50"},
			}

			table, err := builder.Build(ctx, model.CourseLCM, rows)

			Convey("Then bad cells are skipped without failing the build", func() {
				So(err, ShouldBeNil)
				So(table.Len(), ShouldEqual, 1)
			})
		})

		Convey("When the context is cancelled", func() {
			cancelled, cancel := context.WithCancel(ctx)
			cancel()

			_, err := builder.Build(cancelled, model.CourseLCM, [][]string{{"MEN"}})
			So(err, ShouldNotBeNil)
		})

		Convey("When the same event name appears twice", func() {
			rows := [][]string{
				{"MEN"},
				{"50 FREE", "25.00"},
				{"WOMEN"},
				{"50 FREE", "28.00"},
			}

			_, err := builder.Build(ctx, model.CourseLCM, rows)
			So(err, ShouldBeNil)

			Convey("Then resolution is idempotent", func() {
				So(len(resolver.known), ShouldEqual, 1)
			})
		})
	})
}
