package calc_test

import (
	"errors"
	"testing"

	"github.com/iwvelando/buhcalc/internal/calc"
	"github.com/iwvelando/buhcalc/internal/rates"
	"github.com/iwvelando/buhcalc/pkg/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSalary(t *testing.T) {
	e := syntheticEngine(t)

	r, err := e.Salary("A", 50000, 30)
	require.NoError(t, err)

	assert.Equal(t, rates.TerritoryA, r.Territory)
	assert.Equal(t, "Test south", r.TerritoryName)
	assert.Equal(t, 30, r.AllowancePercent)
	assert.False(t, r.AllowanceClamped)
	assertMoney(t, "15000.00", r.CoefficientAddition, "CoefficientAddition")
	assertMoney(t, "15000.00", r.AllowanceAddition, "AllowanceAddition")
	assertMoney(t, "80000.00", r.Gross, "Gross")

	assertMoney(t, "600000", r.AnnualBase, "AnnualBase")
	assertMoney(t, "360000", r.AnnualNorthern, "AnnualNorthern")
	// 1000×10% + 4000×20% + 595000×30%
	assertMoney(t, "179400", r.AnnualIncomeTax, "AnnualIncomeTax")
	assertMoney(t, "46800", r.AnnualNorthernTax, "AnnualNorthernTax")
	assertMoney(t, "14950", r.IncomeTaxBase, "IncomeTaxBase")
	assertMoney(t, "3900", r.IncomeTaxNorthern, "IncomeTaxNorthern")
	assertMoney(t, "18850", r.IncomeTaxWithheld, "IncomeTaxWithheld")
	assertMoney(t, "61150", r.Net, "Net")

	assertMoney(t, "24000", r.EmployerContributions, "EmployerContributions")
	assertMoney(t, "104000", r.EmployerCost, "EmployerCost")
	assert.False(t, r.BelowMinimumWage)
	assert.Equal(t, 8, r.ExtraVacationDays)
	assert.Equal(t, 36, r.ReducedWorkWeekHours)
}

func TestSalaryDefaultTables(t *testing.T) {
	e := defaultEngine(t)

	r, err := e.Salary("Д", 50000, 30)
	require.NoError(t, err)
	assertMoney(t, "80000", r.Gross, "Gross")
	// 600000×13% and 360000×13%
	assertMoney(t, "78000", r.AnnualIncomeTax, "AnnualIncomeTax")
	assertMoney(t, "46800", r.AnnualNorthernTax, "AnnualNorthernTax")
	assertMoney(t, "10400", r.IncomeTaxWithheld, "IncomeTaxWithheld")
	assertMoney(t, "69600", r.Net, "Net")
}

func TestSalaryClampsAllowance(t *testing.T) {
	e := syntheticEngine(t)

	tests := []struct {
		name      string
		requested int
		applied   int
		clamped   bool
	}{
		{"Below ceiling", 10, 10, false},
		{"At ceiling", 30, 30, false},
		{"Above ceiling", 50, 30, true},
		{"Maximum request", 100, 30, true},
		{"Zero", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := e.Salary("A", 50000, tt.requested)
			require.NoError(t, err)
			assert.Equal(t, tt.requested, r.RequestedPercent)
			assert.Equal(t, tt.applied, r.AllowancePercent)
			assert.Equal(t, tt.clamped, r.AllowanceClamped)
			assert.False(t, r.AllowanceAddition.GreaterThan(r.Base.Mul(money.Percent(30))))
		})
	}
}

func TestSalaryBelowMinimumWage(t *testing.T) {
	e := syntheticEngine(t)

	r, err := e.Salary("Б", 20000, 80)
	require.NoError(t, err)
	assert.True(t, r.BelowMinimumWage)
	assertMoney(t, "14000", r.CoefficientAddition, "CoefficientAddition")
	assertMoney(t, "16000", r.AllowanceAddition, "AllowanceAddition")
	assertMoney(t, "50000", r.Gross, "Gross")
	assertMoney(t, "30000", r.MinimumWage, "MinimumWage")
}

func TestSalaryRejectsInvalidInput(t *testing.T) {
	e := syntheticEngine(t)

	tests := []struct {
		name      string
		territory string
		base      int
		allowance int
		kind      error
		hint      string
	}{
		{"Unknown key", "Z", 50000, 10, calc.ErrUnknownKey, "choose a territory group: А, Б"},
		{"Known key missing from tables", "В", 50000, 10, calc.ErrUnknownKey, "choose a territory group: А, Б"},
		{"Zero base", "A", 0, 10, calc.ErrOutOfRange, "enter a salary greater than 0, for example 50000"},
		{"Negative base", "A", -100, 10, calc.ErrOutOfRange, "enter a salary greater than 0, for example 50000"},
		{"Allowance above 100", "A", 50000, 101, calc.ErrOutOfRange, "enter a number between 0 and 30"},
		{"Negative allowance", "A", 50000, -1, calc.ErrOutOfRange, "enter a number between 0 and 30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Salary(tt.territory, tt.base, tt.allowance)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.kind), "expected %v, got %v", tt.kind, err)

			var inputErr *calc.InputError
			require.True(t, errors.As(err, &inputErr))
			assert.Equal(t, tt.hint, inputErr.Hint)
		})
	}
}

func TestSalaryAcceptsLatinAndLowercaseKeys(t *testing.T) {
	e := syntheticEngine(t)

	for _, key := range []string{"А", "A", "a", " a "} {
		r, err := e.Salary(key, 50000, 30)
		require.NoError(t, err, "key %q", key)
		assert.Equal(t, rates.TerritoryA, r.Territory, "key %q", key)
	}
}
