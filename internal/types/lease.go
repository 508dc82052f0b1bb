package types

// LeaseTerms is the structured data pulled out of a lease document by the
// term-extraction stage. Every section is optional: the extractor records
// whatever it could find and leaves the rest nil.
type LeaseTerms struct {
	Parties    *Parties      `json:"parties,omitempty"`
	Dates      *LeaseDates   `json:"dates,omitempty"`
	Rent       *RentInfo     `json:"rent,omitempty"`
	Options    *LeaseOptions `json:"options,omitempty"`
	UseClauses []string      `json:"use_clauses,omitempty"`
	Assignment []string      `json:"assignment,omitempty"`
}

type Parties struct {
	Landlord string `json:"landlord,omitempty"`
	Tenant   string `json:"tenant,omitempty"`
}

type LeaseDates struct {
	EffectiveDate  string `json:"effectiveDate,omitempty"`
	ExpirationDate string `json:"expirationDate,omitempty"`
	Duration       string `json:"duration,omitempty"`
}

type RentInfo struct {
	BaseRent          string   `json:"baseRent,omitempty"`
	EscalationClauses []string `json:"escalationClauses,omitempty"`
}

type LeaseOptions struct {
	RenewalOptions     []string `json:"renewalOptions,omitempty"`
	TerminationClauses []string `json:"terminationClauses,omitempty"`
}

// IsEmpty reports whether the extractor found nothing at all.
func (t *LeaseTerms) IsEmpty() bool {
	if t == nil {
		return true
	}
	return t.Parties == nil && t.Dates == nil && t.Rent == nil &&
		t.Options == nil && len(t.UseClauses) == 0 && len(t.Assignment) == 0
}
