package rates

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownVehicleCategory is returned when a vehicle category is not recognised.
var ErrUnknownVehicleCategory = errors.New("unknown vehicle category")

// VehicleCategory is a transport tax vehicle class.
type VehicleCategory int

const (
	VehicleUnknown VehicleCategory = iota
	VehicleCar
	VehicleTruck
	VehicleBus
	VehicleMotorcycle
)

var vehicleKeys = [...]string{
	VehicleUnknown:    "",
	VehicleCar:        "car",
	VehicleTruck:      "truck",
	VehicleBus:        "bus",
	VehicleMotorcycle: "motorcycle",
}

var vehicleTitles = [...]string{
	VehicleUnknown:    "",
	VehicleCar:        "Легковой автомобиль",
	VehicleTruck:      "Грузовой автомобиль",
	VehicleBus:        "Автобус",
	VehicleMotorcycle: "Мотоцикл",
}

// VehicleCategories lists every known category.
func VehicleCategories() []VehicleCategory {
	return []VehicleCategory{VehicleCar, VehicleTruck, VehicleBus, VehicleMotorcycle}
}

// ParseVehicleCategory resolves a key such as "car" or "veh_car".
func ParseVehicleCategory(key string) (VehicleCategory, error) {
	normalized := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(key)), "veh_")
	for i, k := range vehicleKeys {
		if k != "" && k == normalized {
			return VehicleCategory(i), nil
		}
	}
	return VehicleUnknown, fmt.Errorf("%w: %q", ErrUnknownVehicleCategory, key)
}

// Key returns the stable identifier of the category.
func (c VehicleCategory) Key() string {
	if c < VehicleUnknown || int(c) >= len(vehicleKeys) {
		return ""
	}
	return vehicleKeys[c]
}

// Title returns the display name of the category.
func (c VehicleCategory) Title() string {
	if c < VehicleUnknown || int(c) >= len(vehicleTitles) {
		return ""
	}
	return vehicleTitles[c]
}

func (c VehicleCategory) String() string {
	if key := c.Key(); key != "" {
		return key
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (c VehicleCategory) MarshalText() ([]byte, error) {
	if c.Key() == "" {
		return nil, fmt.Errorf("%w: %d", ErrUnknownVehicleCategory, int(c))
	}
	return []byte(c.Key()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *VehicleCategory) UnmarshalText(text []byte) error {
	parsed, err := ParseVehicleCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
