package registry

import "time"

// IsReportable reports whether a record is in scope for the reporting cycle
// starting at windowStart: still ACTIVE, or EXITED for a real reason (not a
// data-integrity "Duplicated" exit) with a known exit date on or after the
// window start.
func IsReportable(r Record, windowStart time.Time) bool {
	if r.ExitStatus == StatusActive {
		return true
	}
	return r.ExitStatus == StatusExited &&
		r.ExitReason != ExitReasonDuplicated &&
		r.ExitDate != nil &&
		!r.ExitDate.Before(windowStart)
}

// Reportable derives the reportable population: the subset of records that
// satisfy IsReportable. The result is always a subset of the input and an
// empty result is valid.
func Reportable(records []Record, windowStart time.Time) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if IsReportable(r, windowStart) {
			out = append(out, r)
		}
	}
	return out
}
