// Package viralload reconciles lab viral-load results with results embedded
// in the registration dataset into one longitudinal view per subject, and
// derives the suppression-band and yearly-trend summaries.
package viralload

import (
	"time"

	"github.com/ovc/insights/internal/domain/registry"
	"github.com/ovc/insights/internal/platform/apperr"
	"github.com/ovc/insights/internal/platform/tabular"
)

// Observation is one viral-load measurement for a subject, from either
// source. A subject may have zero, one, or many observations.
type Observation struct {
	OVCID     string
	ViralLoad *float64
	EventDate *time.Time
}

// ParseTable converts a canonical lab-dataset table into observations.
func ParseTable(t *tabular.Table) ([]Observation, error) {
	if !t.HasColumn("cpims_ovc_id") {
		return nil, apperr.New(apperr.KindFormat, "viral-load dataset is missing column %q", "cpims_ovc_id")
	}

	obs := make([]Observation, 0, len(t.Rows))
	for _, row := range t.Rows {
		obs = append(obs, Observation{
			OVCID:     t.Get(row, "cpims_ovc_id"),
			ViralLoad: tabular.ParseNumber(t.Get(row, "viral_load")),
			EventDate: tabular.ParseDate(t.Get(row, "date_of_event")),
		})
	}
	return obs, nil
}

// FromRegistry projects the observations embedded in the registration
// dataset: one per HIV-positive record, whatever its load and date cells
// hold.
func FromRegistry(records []registry.Record) []Observation {
	var obs []Observation
	for _, r := range records {
		if r.HIVStatus != registry.HIVPositive {
			continue
		}
		obs = append(obs, Observation{
			OVCID:     r.OVCID,
			ViralLoad: r.ViralLoad,
			EventDate: r.EventDate,
		})
	}
	return obs
}

// Merge unions the embedded and external observation sets. No join key
// beyond the subject id is involved; duplicate resolution happens in Latest
// and Trend.
func Merge(embedded, external []Observation) []Observation {
	merged := make([]Observation, 0, len(embedded)+len(external))
	merged = append(merged, embedded...)
	merged = append(merged, external...)
	return merged
}

// moreRecent orders observations by event date, nil dates oldest. Used as
// the explicit tie-break ordering for per-subject deduplication.
func moreRecent(a, b Observation) bool {
	if a.EventDate == nil {
		return false
	}
	if b.EventDate == nil {
		return true
	}
	return a.EventDate.After(*b.EventDate)
}
