package viralload

// Suppression bands. The set is total and mutually exclusive: every
// observation falls in exactly one band.
const (
	BandMissing      = "missing vl"
	BandLDL          = "a.LDL"
	BandLow          = "b.50-199"
	BandUnsuppressed = "c.200-999 (unsuppressed)"
	BandFailure      = "d.1000+ (suspected treatment failure)"
)

// Band classifies one observation into its suppression band. An observation
// without an event date carries no reportable result; one with a date but no
// numeric load is treated as below detection limit.
func (o Observation) Band() string {
	if o.EventDate == nil {
		return BandMissing
	}
	if o.ViralLoad == nil {
		return BandLDL
	}
	switch vl := *o.ViralLoad; {
	case vl <= 49:
		return BandLDL
	case vl <= 199:
		return BandLow
	case vl <= 999:
		return BandUnsuppressed
	default:
		return BandFailure
	}
}
