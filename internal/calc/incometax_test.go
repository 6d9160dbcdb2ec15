package calc_test

import (
	"errors"
	"testing"

	"github.com/iwvelando/buhcalc/internal/calc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncomeTax(t *testing.T) {
	tests := []struct {
		name       string
		income     int
		tax        string
		effective  string
		netAnnual  string
		netMonthly string
		tiers      int
	}{
		{"Zero income", 0, "0", "0", "0", "0", 1},
		{"First tier", 1000, "100", "10", "900", "75", 1},
		{"Top tier", 6000, "1200", "20", "4800", "400", 3},
		{"Uneven monthly share", 1001, "100.2", "10.01", "900.8", "75.07", 2},
	}

	e := syntheticEngine(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := e.IncomeTax(tt.income)
			require.NoError(t, err)
			assertMoney(t, tt.tax, r.Tax, "Tax")
			assertMoney(t, tt.effective, r.EffectiveRate, "EffectiveRate")
			assertMoney(t, tt.netAnnual, r.NetAnnual, "NetAnnual")
			assertMoney(t, tt.netMonthly, r.NetMonthly, "NetMonthly")
			assert.Len(t, r.Tiers, tt.tiers)
		})
	}
}

func TestIncomeTaxDefaultTables(t *testing.T) {
	r, err := defaultEngine(t).IncomeTax(3000000)
	require.NoError(t, err)
	assertMoney(t, "402000", r.Tax, "Tax")
	assertMoney(t, "13.4", r.EffectiveRate, "EffectiveRate")
	assertMoney(t, "2598000", r.NetAnnual, "NetAnnual")
	assertMoney(t, "216500", r.NetMonthly, "NetMonthly")
	require.Len(t, r.Tiers, 2)
	assertMoney(t, "312000", r.Tiers[0].Tax, "Tiers[0].Tax")
	assertMoney(t, "90000", r.Tiers[1].Tax, "Tiers[1].Tax")
}

func TestIncomeTaxRejectsNegativeIncome(t *testing.T) {
	_, err := syntheticEngine(t).IncomeTax(-1)
	assert.True(t, errors.Is(err, calc.ErrOutOfRange))
}
