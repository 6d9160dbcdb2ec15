package calc

import (
	"fmt"
	"strings"

	"github.com/iwvelando/buhcalc/internal/rates"
	"github.com/iwvelando/buhcalc/pkg/money"
	"github.com/shopspring/decimal"
)

// TransportTaxResult is the annual transport tax for one vehicle.
type TransportTaxResult struct {
	Category   rates.VehicleCategory `json:"category"`
	Title      string                `json:"title"`
	Law        string                `json:"law"`
	Horsepower int                   `json:"horsepower"`
	Band       rates.TransportBand   `json:"band"`
	Rate       decimal.Decimal       `json:"rate"` // rubles per horsepower
	Tax        decimal.Decimal       `json:"tax"`
}

// TransportTax finds the horsepower band of a vehicle and applies its rate.
func (e *Engine) TransportTax(category string, hp int) (TransportTaxResult, error) {
	cat, err := rates.ParseVehicleCategory(category)
	if err != nil {
		return TransportTaxResult{}, unknownKey("category", category, err, e.categoryHint())
	}
	bands, ok := e.tables.Bands(cat)
	if !ok {
		return TransportTaxResult{}, unknownKey("category", category, rates.ErrUnknownVehicleCategory, e.categoryHint())
	}
	if hp < 0 {
		return TransportTaxResult{}, outOfRange("horsepower", hp, "must not be negative",
			"enter engine power in horsepower, for example 150")
	}

	for _, band := range bands {
		if !band.Contains(hp) {
			continue
		}
		return TransportTaxResult{
			Category:   cat,
			Title:      cat.Title(),
			Law:        e.tables.TransportLaw,
			Horsepower: hp,
			Band:       band,
			Rate:       band.Rate,
			Tax:        money.Round(money.FromInt(hp).Mul(band.Rate)),
		}, nil
	}

	noBand := outOfRange("horsepower", hp, "no band covers this power", bandHint(bands))
	noBand.cause = ErrNoBand
	return TransportTaxResult{}, noBand
}

func (e *Engine) categoryHint() string {
	keys := make([]string, 0, len(e.tables.Transport))
	for _, c := range rates.VehicleCategories() {
		if _, ok := e.tables.Bands(c); ok {
			keys = append(keys, c.Key())
		}
	}
	return "choose a vehicle category: " + strings.Join(keys, ", ")
}

func bandHint(bands []rates.TransportBand) string {
	first, last := bands[0], bands[len(bands)-1]
	if last.High == nil {
		return fmt.Sprintf("enter a power of %d hp or more", first.Low)
	}
	return fmt.Sprintf("enter a power between %d and %d hp", first.Low, *last.High)
}
