// Package calc implements the payroll and tax calculations: salary with
// regional coefficient and northern allowance, progressive income tax,
// insurance contributions, VAT and transport tax.
//
// Every calculation is a pure function of its inputs and the rate tables the
// Engine was built with; an Engine is safe for concurrent use.
package calc

import (
	"fmt"

	"github.com/iwvelando/buhcalc/internal/rates"
)

// Engine runs calculations against one immutable set of rate tables.
type Engine struct {
	tables rates.Tables
}

// NewEngine validates the tables and returns an Engine bound to a private
// copy of them.
func NewEngine(tables rates.Tables) (*Engine, error) {
	owned := tables.Clone()
	if err := owned.Validate(); err != nil {
		return nil, fmt.Errorf("failed to initialize calculator: %w", err)
	}
	return &Engine{tables: owned}, nil
}

// NewDefaultEngine returns an Engine over the built-in 2026 tables.
func NewDefaultEngine() (*Engine, error) {
	tables, err := rates.Default()
	if err != nil {
		return nil, fmt.Errorf("failed to load default rate tables: %w", err)
	}
	return NewEngine(tables)
}
