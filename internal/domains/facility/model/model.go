package model

import (
	"slices"

	"merobooking/shared/model"
)

const (
	TableName  = "facilities"
	EntityName = "facility"

	FieldID   = "id"
	FieldName = "name"
	FieldIcon = "icon"
)

// Icon tags form a closed set; anything else renders as the default tag.
const (
	IconWifi      = "Wifi"
	IconWaves     = "Waves"
	IconDumbbell  = "Dumbbell"
	IconCar       = "Car"
	IconCoffee    = "Coffee"
	IconUtensils  = "Utensils"
	IconSpa       = "Spa"
	IconConcierge = "Concierge"

	DefaultIcon = "Star"
)

var allowedIcons = []string{
	IconWifi,
	IconWaves,
	IconDumbbell,
	IconCar,
	IconCoffee,
	IconUtensils,
	IconSpa,
	IconConcierge,
	DefaultIcon,
}

// NormalizeIcon maps unknown icon tags to the default tag.
func NormalizeIcon(icon string) string {
	if slices.Contains(allowedIcons, icon) {
		return icon
	}

	return DefaultIcon
}

type Facility struct {
	ID   string `db:"id"`
	Name string `db:"name"`
	Icon string `db:"icon"`
	model.Metadata
}
