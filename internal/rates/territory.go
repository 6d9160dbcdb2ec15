package rates

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownTerritory is returned when a territory key is not recognised.
var ErrUnknownTerritory = errors.New("unknown territory")

// Territory identifies a group of Irkutsk region territories sharing a
// regional coefficient and northern allowance ceiling.
type Territory int

const (
	TerritoryUnknown Territory = iota
	TerritoryA                 // А: Far North districts
	TerritoryB                 // Б: areas equated to the Far North
	TerritoryV                 // В: northern districts equated to the Far North
	TerritoryG                 // Г: northern districts with a raised coefficient
	TerritoryD                 // Д: southern districts
)

var territoryKeys = [...]string{
	TerritoryUnknown: "",
	TerritoryA:       "А",
	TerritoryB:       "Б",
	TerritoryV:       "В",
	TerritoryG:       "Г",
	TerritoryD:       "Д",
}

// Latin aliases let callers that cannot type Cyrillic address the same groups.
var territoryAliases = map[string]Territory{
	"А": TerritoryA, "A": TerritoryA,
	"Б": TerritoryB, "B": TerritoryB,
	"В": TerritoryV, "V": TerritoryV,
	"Г": TerritoryG, "G": TerritoryG,
	"Д": TerritoryD, "D": TerritoryD,
}

// Territories lists every known territory in key order.
func Territories() []Territory {
	return []Territory{TerritoryA, TerritoryB, TerritoryV, TerritoryG, TerritoryD}
}

// ParseTerritory resolves a key (Cyrillic or Latin, case-insensitive) into a Territory.
func ParseTerritory(key string) (Territory, error) {
	normalized := strings.ToUpper(strings.TrimSpace(key))
	if t, ok := territoryAliases[normalized]; ok {
		return t, nil
	}
	return TerritoryUnknown, fmt.Errorf("%w: %q", ErrUnknownTerritory, key)
}

// Key returns the stable short key of the territory.
func (t Territory) Key() string {
	if t < TerritoryUnknown || int(t) >= len(territoryKeys) {
		return ""
	}
	return territoryKeys[t]
}

func (t Territory) String() string {
	if key := t.Key(); key != "" {
		return key
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (t Territory) MarshalText() ([]byte, error) {
	if t.Key() == "" {
		return nil, fmt.Errorf("%w: %d", ErrUnknownTerritory, int(t))
	}
	return []byte(t.Key()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Territory) UnmarshalText(text []byte) error {
	parsed, err := ParseTerritory(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
