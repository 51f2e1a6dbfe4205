package models

import "strings"

// AuraColor is the intuitive colour type read from the client's field.
type AuraColor string

const (
	AuraRed    AuraColor = "Red / Deep Red"
	AuraOrange AuraColor = "Orange"
	AuraYellow AuraColor = "Yellow"
	AuraGreen  AuraColor = "Green"
	AuraBlue   AuraColor = "Blue"
	AuraIndigo AuraColor = "Indigo"
	AuraViolet AuraColor = "Violet / White"
)

// AuraColors lists the selectable aura colours.
var AuraColors = []AuraColor{
	AuraRed,
	AuraOrange,
	AuraYellow,
	AuraGreen,
	AuraBlue,
	AuraIndigo,
	AuraViolet,
}

// AuraSize describes how far the client's field radiates.
type AuraSize string

const (
	AuraLarge  AuraSize = "Large (75-100) - strong outgoing field"
	AuraMedium AuraSize = "Medium (40-75) - good daily radiance"
	AuraSmall  AuraSize = "Small (0-40) - low energy / introverted"
)

// AuraSizes lists the selectable aura sizes, largest first.
var AuraSizes = []AuraSize{
	AuraLarge,
	AuraMedium,
	AuraSmall,
}

// Band returns "large", "medium" or "small". Matching is on the leading word
// so labels typed with a different dash still classify; anything else is small.
func (s AuraSize) Band() string {
	lower := strings.ToLower(strings.TrimSpace(string(s)))
	switch {
	case strings.HasPrefix(lower, "large"):
		return "large"
	case strings.HasPrefix(lower, "medium"):
		return "medium"
	default:
		return "small"
	}
}

// Gender is optional client information printed on the cover.
type Gender string

const (
	GenderFemale Gender = "Female"
	GenderMale   Gender = "Male"
	GenderOther  Gender = "Other / Prefer not to say"
)

// Genders lists the selectable genders.
var Genders = []Gender{GenderFemale, GenderMale, GenderOther}
