package rates

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidRateTable marks malformed rate tables. It is an initialization
// failure: a process must not start calculating with such tables.
var ErrInvalidRateTable = errors.New("invalid rate table")

var one = decimal.NewFromInt(1)

// Validate checks every structural invariant of the tables and reports all
// violations at once.
func (t Tables) Validate() error {
	var problems []string

	if !t.MinimumWage.IsPositive() {
		problems = append(problems, "minimum wage must be positive")
	}

	problems = append(problems, validateSchedule("income tax", t.IncomeTax)...)
	problems = append(problems, validateSchedule("northern income tax", t.NorthernIncomeTax)...)

	c := t.Contributions
	if !c.Threshold.IsPositive() {
		problems = append(problems, "contributions: threshold must be positive")
	}
	if !isFraction(c.BaseRate) {
		problems = append(problems, fmt.Sprintf("contributions: base rate %s outside [0, 1]", c.BaseRate))
	}
	if !isFraction(c.AboveRate) {
		problems = append(problems, fmt.Sprintf("contributions: above-cap rate %s outside [0, 1]", c.AboveRate))
	}

	if len(t.VAT) == 0 {
		problems = append(problems, "vat: no rates configured")
	}
	seenVAT := make(map[VATRate]struct{}, len(t.VAT))
	for _, p := range t.VAT {
		if _, err := ParseVATRate(int(p.Rate)); err != nil {
			problems = append(problems, "vat: "+err.Error())
		}
		if _, dup := seenVAT[p.Rate]; dup {
			problems = append(problems, fmt.Sprintf("vat: duplicate rate %s", p.Rate))
		}
		seenVAT[p.Rate] = struct{}{}
	}

	if len(t.Territories) == 0 {
		problems = append(problems, "territories: none configured")
	}
	for _, key := range Territories() {
		p, ok := t.Territories[key]
		if !ok {
			continue
		}
		problems = append(problems, validateTerritory(key, p)...)
	}
	for key := range t.Territories {
		if key.Key() == "" {
			problems = append(problems, fmt.Sprintf("territories: unknown key %d", int(key)))
		}
	}

	if len(t.Transport) == 0 {
		problems = append(problems, "transport: no categories configured")
	}
	for _, category := range VehicleCategories() {
		bands, ok := t.Transport[category]
		if !ok {
			continue
		}
		problems = append(problems, validateBands(category, bands)...)
	}
	for category := range t.Transport {
		if category.Key() == "" {
			problems = append(problems, fmt.Sprintf("transport: unknown category %d", int(category)))
		}
	}

	s := t.Simplified
	for _, r := range []struct {
		name string
		rate decimal.Decimal
	}{
		{"income standard", s.IncomeStandard},
		{"income reduced", s.IncomeReduced},
		{"income-expense standard", s.IncomeExpenseStandard},
		{"income-expense reduced", s.IncomeExpenseReduced},
		{"preferential share", s.MinPreferentialShare},
	} {
		if !isFraction(r.rate) {
			problems = append(problems, fmt.Sprintf("simplified: %s rate %s outside [0, 1]", r.name, r.rate))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidRateTable, strings.Join(problems, "; "))
	}
	return nil
}

func validateSchedule(name string, s Schedule) []string {
	if len(s) == 0 {
		return []string{name + ": schedule is empty"}
	}

	var problems []string
	previous := decimal.Zero
	for i, tier := range s {
		if !isFraction(tier.Rate) {
			problems = append(problems, fmt.Sprintf("%s: tier %d rate %s outside [0, 1]", name, i+1, tier.Rate))
		}
		last := i == len(s)-1
		if tier.Unbounded() {
			if !last {
				problems = append(problems, fmt.Sprintf("%s: unbounded tier %d is not the last tier", name, i+1))
			}
			continue
		}
		if last {
			problems = append(problems, fmt.Sprintf("%s: last tier must be unbounded", name))
		}
		if !tier.UpTo.GreaterThan(previous) {
			problems = append(problems, fmt.Sprintf("%s: tier %d bound %s does not exceed previous bound %s",
				name, i+1, tier.UpTo, previous))
			continue
		}
		previous = *tier.UpTo
	}
	return problems
}

func validateTerritory(key Territory, p TerritoryProfile) []string {
	var problems []string
	if strings.TrimSpace(p.Name) == "" {
		problems = append(problems, fmt.Sprintf("territory %s: name is empty", key))
	}
	if p.Coefficient.LessThan(one) {
		problems = append(problems, fmt.Sprintf("territory %s: coefficient %s below 1", key, p.Coefficient))
	}
	if !isFraction(p.MaxAllowance) {
		problems = append(problems, fmt.Sprintf("territory %s: allowance ceiling %s outside [0, 1]", key, p.MaxAllowance))
	}
	if p.ExtraVacationDays < 0 || p.ReducedWorkWeekHours < 0 {
		problems = append(problems, fmt.Sprintf("territory %s: negative vacation or work week", key))
	}
	return problems
}

func validateBands(category VehicleCategory, bands []TransportBand) []string {
	if len(bands) == 0 {
		return []string{fmt.Sprintf("transport %s: no bands", category)}
	}

	var problems []string
	for i, b := range bands {
		if b.Rate.IsNegative() {
			problems = append(problems, fmt.Sprintf("transport %s: band %d has negative rate", category, i+1))
		}
		if i == 0 && b.Low < 0 {
			problems = append(problems, fmt.Sprintf("transport %s: first band starts below zero", category))
		}
		if b.High != nil && *b.High < b.Low {
			problems = append(problems, fmt.Sprintf("transport %s: band %d has high %d below low %d",
				category, i+1, *b.High, b.Low))
		}
		if i == 0 {
			continue
		}
		prev := bands[i-1]
		if prev.High == nil {
			problems = append(problems, fmt.Sprintf("transport %s: open-ended band %d is not the last band", category, i))
			continue
		}
		if b.Low != *prev.High+1 {
			problems = append(problems, fmt.Sprintf("transport %s: band %d starts at %d, expected %d (gap or overlap)",
				category, i+1, b.Low, *prev.High+1))
		}
	}
	return problems
}

func isFraction(d decimal.Decimal) bool {
	return !d.IsNegative() && d.LessThanOrEqual(one)
}
