// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/buhcalc/internal/rates"
	"github.com/shopspring/decimal"
)

// D parses a decimal literal and panics on malformed input.
func D(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// SyntheticTables returns small, valid rate tables with round numbers so
// tests can reason about expected figures by hand. Territory A has a 1.3
// coefficient and a 30% allowance ceiling; territory Б has 1.7 and 80%.
func SyntheticTables() rates.Tables {
	return rates.Tables{
		Region:      "Test region",
		Year:        2026,
		MinimumWage: D("30000"),
		IncomeTax: rates.Schedule{
			{UpTo: rates.Bound(1000), Rate: D("0.10")},
			{UpTo: rates.Bound(5000), Rate: D("0.20")},
			{Rate: D("0.30")},
		},
		NorthernIncomeTax: rates.Schedule{
			{UpTo: rates.Bound(5000000), Rate: D("0.13")},
			{Rate: D("0.15")},
		},
		Contributions: rates.ContributionRates{
			Threshold: D("1200000"),
			BaseRate:  D("0.30"),
			AboveRate: D("0.151"),
		},
		VAT: []rates.VATProfile{
			{Rate: rates.VATStandard, Label: "standard"},
			{Rate: rates.VATReduced, Label: "reduced"},
		},
		Territories: map[rates.Territory]rates.TerritoryProfile{
			rates.TerritoryA: {
				Name:                 "Test south",
				Coefficient:          D("1.3"),
				MaxAllowance:         D("0.30"),
				ExtraVacationDays:    8,
				ReducedWorkWeekHours: 36,
			},
			rates.TerritoryB: {
				Name:                 "Test north",
				Coefficient:          D("1.7"),
				MaxAllowance:         D("0.80"),
				ExtraVacationDays:    24,
				ReducedWorkWeekHours: 36,
			},
		},
		TransportLaw: "Test law",
		Transport: map[rates.VehicleCategory][]rates.TransportBand{
			rates.VehicleCar: {
				{Low: 0, High: rates.HP(100), Rate: D("10")},
				{Low: 101, High: rates.HP(150), Rate: D("20")},
				{Low: 151, Rate: D("50")},
			},
			// Starts at 1 and is capped so 0 and 501 have no band.
			rates.VehicleMotorcycle: {
				{Low: 1, High: rates.HP(20), Rate: D("5")},
				{Low: 21, High: rates.HP(500), Rate: D("12.5")},
			},
		},
		Simplified: rates.SimplifiedTaxRates{
			Law:                   "Test USN law",
			IncomeStandard:        D("0.06"),
			IncomeReduced:         D("0.01"),
			IncomeExpenseStandard: D("0.15"),
			IncomeExpenseReduced:  D("0.05"),
			MinPreferentialShare:  D("0.7"),
		},
	}
}
