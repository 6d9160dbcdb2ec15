package rates

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed irkutsk2026.yaml
var defaultTables []byte

type document struct {
	Region        string           `yaml:"region"`
	Year          int              `yaml:"year"`
	MinimumWage   decimal.Decimal  `yaml:"minimumWage"`
	IncomeTax     incomeTaxDoc     `yaml:"incomeTax"`
	Contributions contributionsDoc `yaml:"contributions"`
	VAT           []vatDoc         `yaml:"vat"`
	Territories   []territoryDoc   `yaml:"territories"`
	Transport     transportDoc     `yaml:"transport"`
	Simplified    simplifiedDoc    `yaml:"simplified"`
}

type incomeTaxDoc struct {
	Standard []tierDoc `yaml:"standard"`
	Northern []tierDoc `yaml:"northern"`
}

type tierDoc struct {
	UpTo *decimal.Decimal `yaml:"upTo"`
	Rate decimal.Decimal  `yaml:"rate"`
}

type contributionsDoc struct {
	Threshold decimal.Decimal `yaml:"threshold"`
	BaseRate  decimal.Decimal `yaml:"baseRate"`
	AboveRate decimal.Decimal `yaml:"aboveRate"`
}

type vatDoc struct {
	Percent int    `yaml:"percent"`
	Label   string `yaml:"label"`
}

type territoryDoc struct {
	Key                  string          `yaml:"key"`
	Name                 string          `yaml:"name"`
	Coefficient          decimal.Decimal `yaml:"coefficient"`
	MaxAllowance         decimal.Decimal `yaml:"maxAllowance"`
	ExtraVacationDays    int             `yaml:"extraVacationDays"`
	ReducedWorkWeekHours int             `yaml:"reducedWorkWeekHours"`
}

type transportDoc struct {
	Law        string               `yaml:"law"`
	Categories map[string][]bandDoc `yaml:"categories"`
}

type bandDoc struct {
	Low  int             `yaml:"low"`
	High *int            `yaml:"high"`
	Rate decimal.Decimal `yaml:"rate"`
}

type simplifiedDoc struct {
	Law                    string          `yaml:"law"`
	IncomeStandard         decimal.Decimal `yaml:"incomeStandard"`
	IncomeReduced          decimal.Decimal `yaml:"incomeReduced"`
	IncomeExpenseStandard  decimal.Decimal `yaml:"incomeExpenseStandard"`
	IncomeExpenseReduced   decimal.Decimal `yaml:"incomeExpenseReduced"`
	MinPreferentialShare   decimal.Decimal `yaml:"minPreferentialShare"`
	PreferentialActivities []string        `yaml:"preferentialActivities"`
}

// Default returns the built-in Irkutsk region 2026 tables.
func Default() (Tables, error) {
	return Load(bytes.NewReader(defaultTables))
}

// LoadFile reads and validates rate tables from a YAML file.
func LoadFile(path string) (Tables, error) {
	f, err := os.Open(path)
	if err != nil {
		return Tables{}, fmt.Errorf("failed to open rate tables %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()
	return Load(f)
}

// Load decodes YAML rate tables and checks their invariants. Any problem is
// reported as ErrInvalidRateTable.
func Load(r io.Reader) (Tables, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Tables{}, fmt.Errorf("%w: empty document", ErrInvalidRateTable)
		}
		return Tables{}, fmt.Errorf("%w: %v", ErrInvalidRateTable, err)
	}

	tables, err := doc.tables()
	if err != nil {
		return Tables{}, err
	}
	if err := tables.Validate(); err != nil {
		return Tables{}, err
	}
	return tables, nil
}

func (doc document) tables() (Tables, error) {
	t := Tables{
		Region:            doc.Region,
		Year:              doc.Year,
		MinimumWage:       doc.MinimumWage,
		IncomeTax:         schedule(doc.IncomeTax.Standard),
		NorthernIncomeTax: schedule(doc.IncomeTax.Northern),
		Contributions: ContributionRates{
			Threshold: doc.Contributions.Threshold,
			BaseRate:  doc.Contributions.BaseRate,
			AboveRate: doc.Contributions.AboveRate,
		},
		Territories:  make(map[Territory]TerritoryProfile, len(doc.Territories)),
		TransportLaw: doc.Transport.Law,
		Transport:    make(map[VehicleCategory][]TransportBand, len(doc.Transport.Categories)),
		Simplified: SimplifiedTaxRates{
			Law:                    doc.Simplified.Law,
			IncomeStandard:         doc.Simplified.IncomeStandard,
			IncomeReduced:          doc.Simplified.IncomeReduced,
			IncomeExpenseStandard:  doc.Simplified.IncomeExpenseStandard,
			IncomeExpenseReduced:   doc.Simplified.IncomeExpenseReduced,
			MinPreferentialShare:   doc.Simplified.MinPreferentialShare,
			PreferentialActivities: doc.Simplified.PreferentialActivities,
		},
	}

	for _, v := range doc.VAT {
		rate, err := ParseVATRate(v.Percent)
		if err != nil {
			return Tables{}, fmt.Errorf("%w: vat: %v", ErrInvalidRateTable, err)
		}
		t.VAT = append(t.VAT, VATProfile{Rate: rate, Label: v.Label})
	}

	for _, td := range doc.Territories {
		key, err := ParseTerritory(td.Key)
		if err != nil {
			return Tables{}, fmt.Errorf("%w: territories: %v", ErrInvalidRateTable, err)
		}
		if _, dup := t.Territories[key]; dup {
			return Tables{}, fmt.Errorf("%w: territories: duplicate key %s", ErrInvalidRateTable, key)
		}
		t.Territories[key] = TerritoryProfile{
			Name:                 td.Name,
			Coefficient:          td.Coefficient,
			MaxAllowance:         td.MaxAllowance,
			ExtraVacationDays:    td.ExtraVacationDays,
			ReducedWorkWeekHours: td.ReducedWorkWeekHours,
		}
	}

	for name, bands := range doc.Transport.Categories {
		category, err := ParseVehicleCategory(name)
		if err != nil {
			return Tables{}, fmt.Errorf("%w: transport: %v", ErrInvalidRateTable, err)
		}
		converted := make([]TransportBand, 0, len(bands))
		for _, b := range bands {
			converted = append(converted, TransportBand{Low: b.Low, High: b.High, Rate: b.Rate})
		}
		t.Transport[category] = converted
	}

	return t, nil
}

func schedule(tiers []tierDoc) Schedule {
	s := make(Schedule, 0, len(tiers))
	for _, td := range tiers {
		s = append(s, Tier{UpTo: td.UpTo, Rate: td.Rate})
	}
	return s
}
