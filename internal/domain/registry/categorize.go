package registry

import "strings"

// Reporting-status labels. Every reportable record gets exactly one.
const (
	LabelCaseLoad  = "Case Load"
	LabelGraduated = "Graduated"
	LabelTransfers = "Transfers"
	LabelExits     = "Exits"
)

// ReportingStatus assigns the mutually-exclusive reporting label: an ordered
// sequence of predicates where the first match wins and LabelExits covers the
// remainder of exited records.
func ReportingStatus(r Record) string {
	switch {
	case r.ExitStatus == StatusActive:
		return LabelCaseLoad
	case r.ExitReason == ExitReasonAchievement:
		return LabelGraduated
	case strings.Contains(strings.ToLower(r.ExitReason), "transfer"):
		return LabelTransfers
	default:
		return LabelExits
	}
}

// HasBirthCertificate reports whether the record's birth-certificate status
// is confirmed.
func HasBirthCertificate(r Record) bool {
	return r.BirthCert == HasBirthCert
}

// HasDisabilityStatus reports whether the record carries a confirmed
// disability status.
func HasDisabilityStatus(r Record) bool {
	return r.Disability == HasDisability
}

// IsAboveAgeFive reports whether the record's age is known and above five,
// the school-going denominator. A nil age fails the check.
func IsAboveAgeFive(r Record) bool {
	return r.Age != nil && *r.Age > 5
}

// IsSchoolGoing reports whether the subject is of school-going age and
// enrolled at any level.
func IsSchoolGoing(r Record) bool {
	return r.SchoolLevel != NotInSchool && IsAboveAgeFive(r)
}
