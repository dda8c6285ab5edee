package registry

import (
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/ovc/insights/pkg/dedupe"
)

// ProjectSentinel in a partner filter means "no partner filter".
const ProjectSentinel = "Project"

// Percentage distinguishes a computed whole-percent value from an undefined
// one (zero denominator). An undefined percentage renders as "N/A" instead of
// faulting at division time.
type Percentage struct {
	value   int
	defined bool
}

// Percent computes count/denom as a nearest-integer percentage. A zero
// denominator yields an undefined Percentage.
func Percent(count, denom int) Percentage {
	if denom == 0 {
		return Percentage{}
	}
	return Percentage{
		value:   int(math.Round(float64(count) / float64(denom) * 100)),
		defined: true,
	}
}

// Defined reports whether the percentage was computable.
func (p Percentage) Defined() bool { return p.defined }

// Value returns the whole-percent value; zero when undefined.
func (p Percentage) Value() int { return p.value }

func (p Percentage) String() string {
	if !p.defined {
		return "N/A"
	}
	return strconv.Itoa(p.value) + "%"
}

// MarshalJSON renders the percentage as its display string.
func (p Percentage) MarshalJSON() ([]byte, error) {
	return []byte(`"` + p.String() + `"`), nil
}

// CountBy tallies records by the given label function. Empty labels (missing
// values) are skipped rather than counted under "".
func CountBy(records []Record, label func(Record) string) map[string]int {
	counts := make(map[string]int)
	for _, r := range records {
		if l := label(r); l != "" {
			counts[l]++
		}
	}
	return counts
}

// CategoryStat is one row of the category summary: a count plus its share of
// the category's own denominator.
type CategoryStat struct {
	Count      int        `json:"Count"`
	Percentage Percentage `json:"Percentage"`
}

// Summary is the aggregate response consumed by the dashboard.
type Summary struct {
	ExitReasons      map[string]int          `json:"exit_reasons"`
	BirthCertUptake  map[string]int          `json:"birth_cert_uptake"`
	ReportingSummary map[string]int          `json:"reporting_summary"`
	HIVStatusSummary map[string]int          `json:"hivstatus_summary"`
	CategorySummary  map[string]CategoryStat `json:"category_summary"`
}

// Filter restricts records by set membership before eligibility filtering.
// An empty list (or a partner list containing ProjectSentinel) leaves that
// dimension unfiltered.
type Filter struct {
	Partners       []string
	Constituencies []string
	Wards          []string
}

// Apply returns the records passing every active dimension of the filter.
func (f Filter) Apply(records []Record) []Record {
	partnerSet := toSet(f.Partners)
	if _, ok := partnerSet[ProjectSentinel]; ok {
		partnerSet = nil
	}
	constituencySet := toSet(f.Constituencies)
	wardSet := toSet(f.Wards)

	out := make([]Record, 0, len(records))
	for _, r := range records {
		if partnerSet != nil {
			if _, ok := partnerSet[r.Partner]; !ok {
				continue
			}
		}
		if constituencySet != nil {
			if _, ok := constituencySet[r.Constituency]; !ok {
				continue
			}
		}
		if wardSet != nil {
			if _, ok := wardSet[r.Ward]; !ok {
				continue
			}
		}
		out = append(out, r)
	}
	return out
}

func toSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// Summarize computes the full reporting summary over the reportable
// population derived from records. Counts are per unique subject: the first
// row per subject id in source order represents the subject, matching the
// upstream data-entry convention.
func Summarize(records []Record, windowStart time.Time) *Summary {
	byID := func(r Record) string { return r.OVCID }

	reportable := Reportable(records, windowStart)
	unique := dedupe.First(reportable, byID)

	var activeOnly []Record
	for _, r := range reportable {
		if r.ExitStatus == StatusActive {
			activeOnly = append(activeOnly, r)
		}
	}
	active := dedupe.First(activeOnly, byID)

	totalActive := len(active)
	var above5, hasBirth, hasDisability, schoolGoing int
	for _, r := range active {
		if IsAboveAgeFive(r) {
			above5++
		}
		if HasBirthCertificate(r) {
			hasBirth++
		}
		if HasDisabilityStatus(r) {
			hasDisability++
		}
		if IsSchoolGoing(r) {
			schoolGoing++
		}
	}

	return &Summary{
		ExitReasons:      CountBy(unique, func(r Record) string { return r.ExitReason }),
		BirthCertUptake:  CountBy(active, func(r Record) string { return r.BirthCert }),
		ReportingSummary: CountBy(unique, ReportingStatus),
		HIVStatusSummary: CountBy(active, func(r Record) string { return r.HIVStatus }),
		CategorySummary: map[string]CategoryStat{
			"Has Birth Certificate": {Count: hasBirth, Percentage: Percent(hasBirth, totalActive)},
			"School Going":          {Count: schoolGoing, Percentage: Percent(schoolGoing, above5)},
			"Has Disability":        {Count: hasDisability, Percentage: Percent(hasDisability, totalActive)},
		},
	}
}

// FilterOptions is the distinct-value vocabulary for the dashboard's filter
// controls.
type FilterOptions struct {
	Partners       []string `json:"lip"`
	Constituencies []string `json:"constituency"`
	Wards          []string `json:"ward"`
}

// Options derives the filter vocabulary from records: sorted distinct values
// per dimension, with the ProjectSentinel prepended to the partner list.
func Options(records []Record) *FilterOptions {
	partners := distinctSorted(records, func(r Record) string { return r.Partner })
	if !contains(partners, ProjectSentinel) {
		partners = append([]string{ProjectSentinel}, partners...)
	}
	return &FilterOptions{
		Partners:       partners,
		Constituencies: distinctSorted(records, func(r Record) string { return r.Constituency }),
		Wards:          distinctSorted(records, func(r Record) string { return r.Ward }),
	}
}

func distinctSorted(records []Record, value func(Record) string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range records {
		v := value(r)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
