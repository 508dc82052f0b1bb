package extraction

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lvxn0va/legal-ease-ai/internal/types"
)

const maxSummaryLength = 500

// Summarizer builds a short human-readable summary of a lease from whatever
// structured terms are available, with a raw-text scan as fallback.
type Summarizer struct{}

func NewSummarizer() *Summarizer {
	return &Summarizer{}
}

// Summarize implements the pipeline's Summarizer contract. terms may be nil.
func (s *Summarizer) Summarize(text string, terms *types.LeaseTerms) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no text to summarize")
	}

	var parts []string

	if terms != nil {
		if p := terms.Parties; p != nil && p.Landlord != "" && p.Tenant != "" {
			parts = append(parts, fmt.Sprintf("This lease agreement is between %s (Landlord) and %s (Tenant).", p.Landlord, p.Tenant))
		}

		if d := terms.Dates; d != nil && d.EffectiveDate != "" && d.ExpirationDate != "" {
			parts = append(parts, fmt.Sprintf("The lease term runs from %s to %s.", d.EffectiveDate, d.ExpirationDate))
		}

		if r := terms.Rent; r != nil && r.BaseRent != "" {
			rentText := fmt.Sprintf("The base rent is %s", r.BaseRent)
			if len(r.EscalationClauses) > 0 {
				rentText += " with " + r.EscalationClauses[0]
			}
			parts = append(parts, rentText+".")
		}

		if o := terms.Options; o != nil && len(o.RenewalOptions) > 0 {
			if renewal := o.RenewalOptions[0]; len(renewal) < 200 {
				parts = append(parts, "Renewal terms: "+renewal)
			}
		}

		if len(terms.UseClauses) > 0 {
			if use := terms.UseClauses[0]; len(use) < 150 {
				parts = append(parts, "Permitted use: "+use)
			}
		}
	}

	if len(parts) == 0 {
		parts = summarizeFromText(text)
	}

	summary := strings.Join(parts, " ")
	if len(summary) > maxSummaryLength {
		summary = summary[:maxSummaryLength-3] + "..."
	}

	return summary, nil
}

var summaryDatePattern = regexp.MustCompile(`[A-Z][a-z]+ \d{1,2}, \d{4}`)
var summaryRentPattern = regexp.MustCompile(`\$[\d,]+\.?\d*`)

// summarizeFromText scans the raw text when no structured terms were found.
func summarizeFromText(text string) []string {
	var parts []string
	lower := strings.ToLower(text)

	if strings.Contains(lower, "landlord") && strings.Contains(lower, "tenant") {
		parts = append(parts, "This is a lease agreement between a landlord and tenant.")
	}

	if dates := summaryDatePattern.FindAllString(text, 2); len(dates) >= 2 {
		parts = append(parts, fmt.Sprintf("The lease term is from %s to %s.", dates[0], dates[1]))
	}

	if rent := summaryRentPattern.FindString(text); rent != "" {
		parts = append(parts, fmt.Sprintf("The rent amount is %s.", rent))
	}

	if len(parts) == 0 {
		parts = append(parts, "This document contains lease agreement terms and conditions.")
	}

	return parts
}

// SummaryValidation is the outcome of the summary quality check.
type SummaryValidation struct {
	Valid        bool
	QualityScore float64
	Issues       []string
}

var leaseVocabulary = []string{"lease", "rent", "tenant", "landlord", "term", "agreement"}

const minSummaryScore = 0.3

// ValidateSummary scores a generated summary in [0,1]: lease-vocabulary
// overlap, sentence count, and length bounds all contribute. Summaries below
// the minimum score are rejected and the caller stores a placeholder instead.
func ValidateSummary(summary string) SummaryValidation {
	result := SummaryValidation{Valid: true}

	if strings.TrimSpace(summary) == "" {
		result.Valid = false
		result.Issues = append(result.Issues, "summary is empty")
		return result
	}

	score := 0.0

	if len(summary) < 20 {
		result.Issues = append(result.Issues, "summary is too short")
		score -= 0.3
	}
	if len(summary) > 1000 {
		result.Issues = append(result.Issues, "summary is too long")
		score -= 0.2
	}

	lower := strings.ToLower(summary)
	termsFound := 0
	for _, term := range leaseVocabulary {
		if strings.Contains(lower, term) {
			termsFound++
		}
	}
	switch {
	case termsFound >= 3:
		score += 0.5
	case termsFound >= 1:
		score += 0.2
	default:
		result.Issues = append(result.Issues, "summary lacks key lease terminology")
		score -= 0.3
	}

	sentences := 0
	for _, s := range strings.Split(summary, ".") {
		if strings.TrimSpace(s) != "" {
			sentences++
		}
	}
	switch {
	case sentences >= 2:
		score += 0.3
	case sentences == 1:
		score += 0.1
	default:
		result.Issues = append(result.Issues, "summary lacks proper sentence structure")
		score -= 0.2
	}

	result.QualityScore = clamp(score+0.5, 0.0, 1.0)
	result.Valid = result.QualityScore >= minSummaryScore

	return result
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
