package rates

import (
	"errors"
	"fmt"

	"github.com/iwvelando/buhcalc/pkg/money"
	"github.com/shopspring/decimal"
)

// ErrUnknownVATRate is returned for a VAT percentage outside the legal set.
var ErrUnknownVATRate = errors.New("unsupported VAT rate")

// VATRate is one of the legally defined VAT percentages.
type VATRate int

const (
	VATUnknown     VATRate = 0
	VATStandard    VATRate = 22
	VATReduced     VATRate = 10
	VATSimplified5 VATRate = 5
	VATSimplified7 VATRate = 7
)

// VATRates lists every legal rate in menu order.
func VATRates() []VATRate {
	return []VATRate{VATStandard, VATReduced, VATSimplified5, VATSimplified7}
}

// ParseVATRate validates an integer percentage.
func ParseVATRate(pct int) (VATRate, error) {
	for _, r := range VATRates() {
		if int(r) == pct {
			return r, nil
		}
	}
	return VATUnknown, fmt.Errorf("%w: %d%%", ErrUnknownVATRate, pct)
}

// Percent returns the rate in percent points.
func (r VATRate) Percent() int {
	return int(r)
}

// Fraction returns the rate as a multiplier (22 -> 0.22).
func (r VATRate) Fraction() decimal.Decimal {
	return money.Percent(int(r))
}

func (r VATRate) String() string {
	return fmt.Sprintf("%d%%", int(r))
}
