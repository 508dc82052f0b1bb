package extraction

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/lvxn0va/legal-ease-ai/internal/types"
)

// TermExtractor pulls structured lease terms out of extracted text with
// pattern matching. It is deliberately heuristic: any section it cannot find
// is left nil and the caller degrades gracefully.
type TermExtractor struct{}

func NewTermExtractor() *TermExtractor {
	return &TermExtractor{}
}

var landlordPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)landlord["\s]*:?\s*([^,\n]+(?:LLC|Inc|Corporation|Corp|Company|LP|LLP|Partnership))`),
	regexp.MustCompile(`(?i)lessor["\s]*:?\s*([^,\n]+(?:LLC|Inc|Corporation|Corp|Company|LP|LLP|Partnership))`),
	regexp.MustCompile(`(?i)between\s+([^,\n]+(?:LLC|Inc|Corporation|Corp|Company|LP|LLP|Partnership))[^,]*(?:landlord|lessor)`),
	regexp.MustCompile(`(?i)([^,\n]+(?:LLC|Inc|Corporation|Corp|Company|LP|LLP|Partnership))[^,]*(?:landlord|lessor)`),
}

var tenantPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)tenant["\s]*:?\s*([^,\n]+)`),
	regexp.MustCompile(`(?i)lessee["\s]*:?\s*([^,\n]+)`),
	regexp.MustCompile(`(?i)and\s+([^,\n]+)[^,]*(?:tenant|lessee)`),
	regexp.MustCompile(`(?i)([A-Z][a-z]+\s+[A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)\s*(?:DBA|d/b/a)`),
}

var effectiveDatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:effective|commencement|start|beginning)\s+date[:\s]*([A-Za-z]+\s+\d{1,2},?\s+\d{4})`),
	regexp.MustCompile(`(?i)(?:effective|commence|begin)[s\w]*\s+on\s+([A-Za-z]+\s+\d{1,2},?\s+\d{4})`),
	regexp.MustCompile(`(?i)lease\s+(?:term\s+)?(?:shall\s+)?(?:commence|begin)[s\w]*\s+([A-Za-z]+\s+\d{1,2},?\s+\d{4})`),
}

var expirationDatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:expir|terminat|end)[es\w]*\s+(?:date[:\s]*)?([A-Za-z]+\s+\d{1,2},?\s+\d{4})`),
	regexp.MustCompile(`(?i)(?:expir|terminat|end)[es\w]*\s+on\s+([A-Za-z]+\s+\d{1,2},?\s+\d{4})`),
}

var durationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:term|period)\s+of\s+(\d+)\s+(?:year|month)`),
	regexp.MustCompile(`(?i)(\d+)[-\s](?:year|month)\s+(?:term|lease)`),
	regexp.MustCompile(`(?i)for\s+a\s+(?:term|period)\s+of\s+(\d+)\s+(?:year|month)`),
}

var baseRentPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)base\s+rent[:\s]*\$?([\d,]+\.?\d*)\s*(?:per\s+month|monthly|/month)`),
	regexp.MustCompile(`(?i)monthly\s+rent[:\s]*\$?([\d,]+\.?\d*)`),
	regexp.MustCompile(`(?i)rent[:\s]*\$?([\d,]+\.?\d*)\s*(?:per\s+month|monthly|/month)`),
	regexp.MustCompile(`(?i)\$([\d,]+\.?\d*)\s*(?:per\s+month|monthly|/month)`),
}

var escalationPattern = regexp.MustCompile(`(?i)(?:annual\s+|yearly\s+)?(?:escalat|increas)[es\w]*[^.%]*\d+(?:\.\d+)?%`)

var renewalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:renewal|extension)\s+options?[^.]*\.`),
	regexp.MustCompile(`(?i)tenant\s+(?:may|shall have|has)\s+(?:the\s+)?(?:right|option)\s+to\s+(?:renew|extend)[^.]*\.`),
	regexp.MustCompile(`(?i)(?:renew|extend)\s+(?:this\s+)?lease[^.]*\.`),
}

var terminationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:early\s+)?termination[^.]*\.`),
	regexp.MustCompile(`(?i)tenant\s+(?:may|shall have|has)\s+(?:the\s+)?(?:right|option)\s+to\s+terminate[^.]*\.`),
}

var usePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:permitted|allowed)\s+uses?[^.]*\.`),
	regexp.MustCompile(`(?i)(?:prohibited|forbidden|not\s+permitted)\s+uses?[^.]*\.`),
	regexp.MustCompile(`(?i)premises\s+(?:shall|may)\s+(?:only\s+)?be\s+used[^.]*\.`),
	regexp.MustCompile(`(?i)tenant\s+(?:shall|may)\s+use\s+(?:the\s+)?premises[^.]*\.`),
}

var assignmentPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)assignment[^.]*\.`),
	regexp.MustCompile(`(?i)(?:sublet|subletting|sublease)[^.]*\.`),
	regexp.MustCompile(`(?i)tenant\s+(?:may|shall)\s+not\s+(?:assign|sublet)[^.]*\.`),
}

// ExtractTerms implements the pipeline's TermExtractor contract.
func (e *TermExtractor) ExtractTerms(text string) (*types.LeaseTerms, error) {
	terms := &types.LeaseTerms{
		Parties:    e.extractParties(text),
		Dates:      e.extractDates(text),
		Rent:       e.extractRent(text),
		Options:    e.extractOptions(text),
		UseClauses: matchClauses(text, usePatterns, 300, 5),
		Assignment: matchClauses(text, assignmentPatterns, 300, 3),
	}

	return terms, nil
}

func (e *TermExtractor) extractParties(text string) *types.Parties {
	parties := &types.Parties{}

	for _, p := range landlordPatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			candidate := strings.TrimSpace(m[1])
			if len(candidate) > 5 && len(candidate) < 100 {
				parties.Landlord = candidate
				break
			}
		}
	}

	for _, p := range tenantPatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			candidate := strings.TrimSpace(m[1])
			if len(candidate) > 2 && len(candidate) < 100 {
				parties.Tenant = candidate
				break
			}
		}
	}

	if parties.Landlord == "" && parties.Tenant == "" {
		return nil
	}
	return parties
}

func (e *TermExtractor) extractDates(text string) *types.LeaseDates {
	dates := &types.LeaseDates{
		EffectiveDate:  firstSubmatch(text, effectiveDatePatterns),
		ExpirationDate: firstSubmatch(text, expirationDatePatterns),
		Duration:       firstSubmatch(text, durationPatterns),
	}

	if dates.EffectiveDate == "" && dates.ExpirationDate == "" && dates.Duration == "" {
		return nil
	}
	return dates
}

func (e *TermExtractor) extractRent(text string) *types.RentInfo {
	rent := &types.RentInfo{}

	for _, p := range baseRentPatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			raw := strings.ReplaceAll(m[1], ",", "")
			amount, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				continue
			}
			// Sanity range: monthly rent between $100 and $100k.
			if amount >= 100 && amount <= 100000 {
				rent.BaseRent = "$" + m[1]
				break
			}
		}
	}

	for _, m := range escalationPattern.FindAllString(text, -1) {
		clause := strings.TrimSpace(m)
		if len(clause) < 200 {
			rent.EscalationClauses = append(rent.EscalationClauses, clause)
		}
		if len(rent.EscalationClauses) == 3 {
			break
		}
	}

	if rent.BaseRent == "" && len(rent.EscalationClauses) == 0 {
		return nil
	}
	return rent
}

func (e *TermExtractor) extractOptions(text string) *types.LeaseOptions {
	options := &types.LeaseOptions{
		RenewalOptions:     matchClauses(text, renewalPatterns, 300, 3),
		TerminationClauses: matchClauses(text, terminationPatterns, 300, 3),
	}

	if len(options.RenewalOptions) == 0 && len(options.TerminationClauses) == 0 {
		return nil
	}
	return options
}

func firstSubmatch(text string, patterns []*regexp.Regexp) string {
	for _, p := range patterns {
		if m := p.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

func matchClauses(text string, patterns []*regexp.Regexp, maxLen, limit int) []string {
	var clauses []string
	for _, p := range patterns {
		for _, m := range p.FindAllString(text, -1) {
			clause := strings.TrimSpace(m)
			if len(clause) < maxLen {
				clauses = append(clauses, clause)
			}
			if len(clauses) == limit {
				return clauses
			}
		}
	}
	return clauses
}
