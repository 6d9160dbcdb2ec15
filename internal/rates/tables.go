// Package rates holds the immutable rate tables the calculators consume:
// income tax schedules, contribution caps, VAT rates, territory profiles and
// transport tax bands for a single region and year.
package rates

import (
	"github.com/shopspring/decimal"
)

// Tier is one step of a progressive schedule. UpTo is the inclusive upper
// bound of the tier; nil marks the final, unbounded tier.
type Tier struct {
	UpTo *decimal.Decimal
	Rate decimal.Decimal
}

// Unbounded reports whether the tier has no upper bound.
func (t Tier) Unbounded() bool {
	return t.UpTo == nil
}

// Schedule is an ordered list of tiers partitioning [0, ∞).
type Schedule []Tier

// TerritoryProfile describes the payroll rules of a territory group.
type TerritoryProfile struct {
	Name                 string
	Coefficient          decimal.Decimal
	MaxAllowance         decimal.Decimal
	ExtraVacationDays    int
	ReducedWorkWeekHours int
}

// TransportBand is an inclusive horsepower range with a per-horsepower rate.
// High is nil for the open-ended top band.
type TransportBand struct {
	Low  int             `json:"low"`
	High *int            `json:"high"`
	Rate decimal.Decimal `json:"rate"`
}

// Contains reports whether hp falls within the band, bounds included.
func (b TransportBand) Contains(hp int) bool {
	if hp < b.Low {
		return false
	}
	return b.High == nil || hp <= *b.High
}

// ContributionRates are the insurance contribution parameters.
type ContributionRates struct {
	Threshold decimal.Decimal // annual contribution base cap
	BaseRate  decimal.Decimal
	AboveRate decimal.Decimal
}

// VATProfile describes an enabled VAT rate.
type VATProfile struct {
	Rate  VATRate
	Label string
}

// SimplifiedTaxRates are the regional simplified tax system rates.
type SimplifiedTaxRates struct {
	Law                    string
	IncomeStandard         decimal.Decimal
	IncomeReduced          decimal.Decimal
	IncomeExpenseStandard  decimal.Decimal
	IncomeExpenseReduced   decimal.Decimal
	MinPreferentialShare   decimal.Decimal
	PreferentialActivities []string
}

// Tables is the complete, validated rate configuration. Calculators keep
// their own copy (see Clone), so later changes to a loaded value never
// reach them.
type Tables struct {
	Region            string
	Year              int
	MinimumWage       decimal.Decimal
	IncomeTax         Schedule
	NorthernIncomeTax Schedule
	Contributions     ContributionRates
	VAT               []VATProfile
	Territories       map[Territory]TerritoryProfile
	TransportLaw      string
	Transport         map[VehicleCategory][]TransportBand
	Simplified        SimplifiedTaxRates
}

// Territory looks up a territory profile.
func (t Tables) Territory(key Territory) (TerritoryProfile, bool) {
	p, ok := t.Territories[key]
	return p, ok
}

// Bands returns the ordered transport bands of a category.
func (t Tables) Bands(category VehicleCategory) ([]TransportBand, bool) {
	bands, ok := t.Transport[category]
	return bands, ok && len(bands) > 0
}

// VATProfile looks up an enabled VAT rate.
func (t Tables) VATProfile(rate VATRate) (VATProfile, bool) {
	for _, p := range t.VAT {
		if p.Rate == rate {
			return p, true
		}
	}
	return VATProfile{}, false
}

// TerritoryKeys returns the territories present in the tables in key order.
func (t Tables) TerritoryKeys() []Territory {
	keys := make([]Territory, 0, len(t.Territories))
	for _, key := range Territories() {
		if _, ok := t.Territories[key]; ok {
			keys = append(keys, key)
		}
	}
	return keys
}

// Clone returns a deep copy sharing no maps, slices or bound pointers
// with t.
func (t Tables) Clone() Tables {
	c := t
	c.IncomeTax = t.IncomeTax.clone()
	c.NorthernIncomeTax = t.NorthernIncomeTax.clone()
	if t.VAT != nil {
		c.VAT = append([]VATProfile(nil), t.VAT...)
	}
	if t.Territories != nil {
		c.Territories = make(map[Territory]TerritoryProfile, len(t.Territories))
		for key, p := range t.Territories {
			c.Territories[key] = p
		}
	}
	if t.Transport != nil {
		c.Transport = make(map[VehicleCategory][]TransportBand, len(t.Transport))
		for category, bands := range t.Transport {
			copied := make([]TransportBand, len(bands))
			for i, b := range bands {
				if b.High != nil {
					b.High = HP(*b.High)
				}
				copied[i] = b
			}
			c.Transport[category] = copied
		}
	}
	if t.Simplified.PreferentialActivities != nil {
		c.Simplified.PreferentialActivities = append([]string(nil), t.Simplified.PreferentialActivities...)
	}
	return c
}

func (s Schedule) clone() Schedule {
	if s == nil {
		return nil
	}
	c := make(Schedule, len(s))
	for i, tier := range s {
		if tier.UpTo != nil {
			upTo := *tier.UpTo
			tier.UpTo = &upTo
		}
		c[i] = tier
	}
	return c
}

// Bound is a convenience constructor for tier upper bounds.
func Bound(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

// HP is a convenience constructor for band upper bounds.
func HP(v int) *int {
	return &v
}
