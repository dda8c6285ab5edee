package registry

import "strings"

// PartnerRule maps a case-insensitive substring of the free-text cbo field to
// a normalized implementing-partner code.
type PartnerRule struct {
	Pattern string
	Code    string
}

// DefaultPartner is assigned when no rule matches.
const DefaultPartner = "WOFAK"

// DefaultPartnerRules is the ordered rule list for partner classification.
// First match wins; extending the program with a new partner means appending
// a rule here, nothing else.
var DefaultPartnerRules = []PartnerRule{
	{Pattern: "AMURT", Code: "AMURT"},
	{Pattern: "CIPK", Code: "CIPK"},
	{Pattern: "KWETU", Code: "KWETU"},
}

// ClassifyPartner derives the normalized partner code from the free-text
// organization field using DefaultPartnerRules.
func ClassifyPartner(cbo string) string {
	return ClassifyPartnerWith(DefaultPartnerRules, cbo)
}

// ClassifyPartnerWith runs an explicit rule list: case-insensitive substring
// match, first match wins, DefaultPartner when nothing matches.
func ClassifyPartnerWith(rules []PartnerRule, cbo string) string {
	upper := strings.ToUpper(cbo)
	for _, r := range rules {
		if strings.Contains(upper, strings.ToUpper(r.Pattern)) {
			return r.Code
		}
	}
	return DefaultPartner
}
