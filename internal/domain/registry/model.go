// Package registry holds the typed registration dataset and every
// registration-side reporting rule: partner classification, the eligibility
// filter, reporting-status categories, and the summary aggregations consumed
// by the dashboard.
package registry

import (
	"time"

	"github.com/ovc/insights/internal/platform/apperr"
	"github.com/ovc/insights/internal/platform/tabular"
)

// Enrollment status values carried by the exit_status column.
const (
	StatusActive = "ACTIVE"
	StatusExited = "EXITED"
	StatusVoided = "VOIDED"
)

// Controlled vocabulary values the rules key on.
const (
	ExitReasonDuplicated  = "Duplicated"
	ExitReasonAchievement = "Case Plan Achievement"
	HIVPositive           = "POSITIVE"
	HasBirthCert          = "HAS BIRTHCERT"
	HasDisability         = "HAS DISABILITY"
	NotInSchool           = "Not in School"
)

// Record is one row of the registration dataset. A subject may appear on
// several rows from repeat data entry; uniqueness is established only after
// deduplication, scoped to a specific view. Nullable fields use pointers and
// stay nil when the source cell was empty or unparseable.
type Record struct {
	OVCID            string
	CBO              string
	Partner          string
	ExitStatus       string
	ExitReason       string
	ExitDate         *time.Time
	RegistrationDate *time.Time
	Age              *float64
	HIVStatus        string
	BirthCert        string
	Disability       string
	SchoolLevel      string
	Ward             string
	Constituency     string
	ViralLoad        *float64
	EventDate        *time.Time
}

// requiredColumns must be present for a table to count as a registration
// upload at all; everything else degrades to null per-cell.
var requiredColumns = []string{"cpims_ovc_id", "exit_status"}

// ParseTable converts a canonical table into typed records. Rows voided at
// source (void_person == VOIDED) are removed, and the normalized partner code
// is derived from the free-text cbo column. A table missing the identifying
// columns is rejected as a FORMAT error.
func ParseTable(t *tabular.Table) ([]Record, error) {
	for _, col := range requiredColumns {
		if !t.HasColumn(col) {
			return nil, apperr.New(apperr.KindFormat, "registration dataset is missing column %q", col)
		}
	}

	records := make([]Record, 0, len(t.Rows))
	for _, row := range t.Rows {
		if t.Get(row, "void_person") == StatusVoided {
			continue
		}
		records = append(records, Record{
			OVCID:            t.Get(row, "cpims_ovc_id"),
			CBO:              t.Get(row, "cbo"),
			Partner:          ClassifyPartner(t.Get(row, "cbo")),
			ExitStatus:       t.Get(row, "exit_status"),
			ExitReason:       t.Get(row, "exit_reason"),
			ExitDate:         tabular.ParseDate(t.Get(row, "exit_date")),
			RegistrationDate: tabular.ParseDate(t.Get(row, "registration_date")),
			Age:              tabular.ParseNumber(t.Get(row, "age")),
			HIVStatus:        t.Get(row, "ovchivstatus"),
			BirthCert:        t.Get(row, "birthcert"),
			Disability:       t.Get(row, "ovcdisability"),
			SchoolLevel:      t.Get(row, "schoollevel"),
			Ward:             t.Get(row, "ward"),
			Constituency:     t.Get(row, "constituency"),
			ViralLoad:        tabular.ParseNumber(t.Get(row, "viral_load")),
			EventDate:        tabular.ParseDate(t.Get(row, "date_of_event")),
		})
	}
	return records, nil
}
