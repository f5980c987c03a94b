package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/medley/pkg/metrics"
)

func TestManager_Recording(t *testing.T) {
	Convey("Given a metrics manager with its own registry", t, func() {
		reg := prometheus.NewRegistry()
		m := metrics.NewManager(metrics.WithRegistry(reg))

		Convey("When recording classification outcomes", func() {
			m.RecordSwimmerClassified("A")
			m.RecordSwimmerClassified("A")
			m.RecordSwimmerClassified("D")
			m.ObserveClassifyLatency(12 * time.Millisecond)
			m.SetRosterSize(42)

			Convey("Then the registry should expose the counters", func() {
				families, err := reg.Gather()
				So(err, ShouldBeNil)
				So(len(families), ShouldBeGreaterThan, 0)

				found := false
				for _, f := range families {
					if f.GetName() == "medley_sectors_swimmers_classified_total" {
						found = true
						var total float64
						for _, metric := range f.GetMetric() {
							total += metric.GetCounter().GetValue()
						}
						So(total, ShouldEqual, 3)
					}
				}
				So(found, ShouldBeTrue)
			})
		})

		Convey("When recording table and persistence anomalies", func() {
			m.SetTableEntries("SCY", 120)
			m.SetTableEntries("LCM", 118)
			m.RecordTableRowSkipped()
			m.RecordLookupMiss()
			m.RecordPersistAnomaly()
			m.RecordPersistError()

			Convey("Then gathering should not fail", func() {
				families, err := reg.Gather()
				So(err, ShouldBeNil)
				names := make(map[string]bool, len(families))
				for _, f := range families {
					names[f.GetName()] = true
				}
				So(names["medley_sectors_qualifying_time_entries"], ShouldBeTrue)
				So(names["medley_sectors_qualifying_time_rows_skipped_total"], ShouldBeTrue)
				So(names["medley_sectors_persist_anomalies_total"], ShouldBeTrue)
			})
		})
	})
}

func TestManager_Disabled(t *testing.T) {
	Convey("Given a disabled metrics manager", t, func() {
		reg := prometheus.NewRegistry()
		m := metrics.NewManager(
			metrics.WithRegistry(reg),
			metrics.WithMetricsEnabled(false),
		)

		Convey("When recording", func() {
			m.RecordSwimmerClassified("B")
			m.SetRosterSize(10)

			Convey("Then counters should stay at zero", func() {
				families, err := reg.Gather()
				So(err, ShouldBeNil)
				for _, f := range families {
					if f.GetName() == "medley_sectors_swimmers_classified_total" {
						for _, metric := range f.GetMetric() {
							So(metric.GetCounter().GetValue(), ShouldEqual, 0)
						}
					}
				}
			})
		})
	})
}

func TestManager_Handler(t *testing.T) {
	Convey("Given a metrics manager", t, func() {
		reg := prometheus.NewRegistry()
		m := metrics.NewManager(metrics.WithRegistry(reg))
		m.RecordSwimmerClassified("C")

		Convey("When scraping the handler", func() {
			srv := httptest.NewServer(m.Handler())
			defer srv.Close()

			resp, err := http.Get(srv.URL)

			Convey("Then it should serve the exposition format", func() {
				So(err, ShouldBeNil)
				defer resp.Body.Close()
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
			})
		})
	})
}

func TestManager_CustomNamespace(t *testing.T) {
	Convey("Given a manager with a custom namespace", t, func() {
		reg := prometheus.NewRegistry()
		m := metrics.NewManager(
			metrics.WithRegistry(reg),
			metrics.WithNamespace("custom"),
			metrics.WithSubsystem("batch"),
		)
		m.RecordLookupMiss()

		Convey("Then metric names should carry the namespace", func() {
			families, err := reg.Gather()
			So(err, ShouldBeNil)
			found := false
			for _, f := range families {
				if f.GetName() == "custom_batch_qualifying_time_lookup_misses_total" {
					found = true
				}
			}
			So(found, ShouldBeTrue)
		})
	})
}
