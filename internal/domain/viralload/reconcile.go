package viralload

import (
	"sort"

	"github.com/ovc/insights/pkg/dedupe"
)

// Latest reduces an observation set to the most recent observation per
// subject. Dates win over nil dates; among equal dates the earlier row wins,
// so the reduction is order-independent for distinct dates.
func Latest(obs []Observation) []Observation {
	return dedupe.Best(obs, func(o Observation) string { return o.OVCID }, moreRecent)
}

// BandCounts tallies the current suppression band per subject over the most
// recent observation of each.
func BandCounts(obs []Observation) map[string]int {
	counts := make(map[string]int)
	for _, o := range Latest(obs) {
		counts[o.Band()]++
	}
	return counts
}

// YearCount is one point of the unsuppressed-history trend.
type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

type subjectYear struct {
	ovcID string
	year  int
}

type subjectDate struct {
	ovcID string
	date  string
}

// Trend counts, per calendar year from floorYear onward, the subjects who
// recorded an unsuppressed result (load above 199) in that year. A subject
// with several unsuppressed results in one year counts once; the same
// subject may appear under several years.
func Trend(obs []Observation, floorYear int) []YearCount {
	var unsuppressed []Observation
	for _, o := range obs {
		if o.ViralLoad == nil || *o.ViralLoad <= 199 || o.EventDate == nil {
			continue
		}
		if o.EventDate.Year() < floorYear {
			continue
		}
		unsuppressed = append(unsuppressed, o)
	}

	// Embedded and lab sources often report the same draw; collapse exact
	// subject+date repeats before the per-year reduction.
	unsuppressed = dedupe.First(unsuppressed, func(o Observation) subjectDate {
		return subjectDate{ovcID: o.OVCID, date: o.EventDate.Format("2006-01-02")}
	})
	unsuppressed = dedupe.Best(unsuppressed, func(o Observation) subjectYear {
		return subjectYear{ovcID: o.OVCID, year: o.EventDate.Year()}
	}, moreRecent)

	byYear := make(map[int]int)
	for _, o := range unsuppressed {
		byYear[o.EventDate.Year()]++
	}

	trend := make([]YearCount, 0, len(byYear))
	for year, count := range byYear {
		trend = append(trend, YearCount{Year: year, Count: count})
	}
	sort.Slice(trend, func(i, j int) bool { return trend[i].Year < trend[j].Year })
	return trend
}
