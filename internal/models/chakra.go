package models

import "strings"

// Chakra identifies one of the seven energy centres covered by a report.
type Chakra string

const (
	ChakraRoot     Chakra = "Root (Muladhara)"
	ChakraSacral   Chakra = "Sacral (Svadhisthana)"
	ChakraSolar    Chakra = "Solar Plexus (Manipura)"
	ChakraHeart    Chakra = "Heart (Anahata)"
	ChakraThroat   Chakra = "Throat (Vishuddha)"
	ChakraThirdEye Chakra = "Third Eye (Ajna)"
	ChakraCrown    Chakra = "Crown (Sahasrara)"
)

// Chakras lists every chakra in canonical (root to crown) order.
var Chakras = []Chakra{
	ChakraRoot,
	ChakraSacral,
	ChakraSolar,
	ChakraHeart,
	ChakraThroat,
	ChakraThirdEye,
	ChakraCrown,
}

// Valid reports whether c is one of the seven known chakras.
func (c Chakra) Valid() bool {
	return c.Index() >= 0
}

// Index returns the canonical position of c, or -1 when unknown.
func (c Chakra) Index() int {
	for i, known := range Chakras {
		if known == c {
			return i
		}
	}
	return -1
}

// ShortName drops the Sanskrit suffix: "Third Eye (Ajna)" -> "Third Eye".
func (c Chakra) ShortName() string {
	name := string(c)
	if i := strings.Index(name, " ("); i > 0 {
		return name[:i]
	}
	return name
}

// Status is the practitioner's qualitative reading of a chakra.
type Status string

const (
	StatusBalanced   Status = "Balanced / Radiant"
	StatusWeak       Status = "Slightly Weak"
	StatusBlocked    Status = "Blocked / Underactive"
	StatusOveractive Status = "Overactive / Dominant"
)

// Statuses lists the selectable statuses in form order.
var Statuses = []Status{
	StatusBalanced,
	StatusWeak,
	StatusBlocked,
	StatusOveractive,
}

// Valid reports whether s is one of the four known statuses.
func (s Status) Valid() bool {
	for _, known := range Statuses {
		if known == s {
			return true
		}
	}
	return false
}

// RGB is a colour triple in the 0-255 range, the form fpdf expects.
type RGB [3]int

var (
	statusColors = map[Status]RGB{
		StatusBalanced:   {110, 231, 183}, // green
		StatusWeak:       {252, 211, 77},  // yellow
		StatusBlocked:    {248, 113, 113}, // red
		StatusOveractive: {129, 140, 248}, // indigo
	}
	statusScores = map[Status]int{
		StatusBalanced:   100,
		StatusWeak:       75,
		StatusBlocked:    40,
		StatusOveractive: 55,
	}

	// UnknownStatusColor is used for statuses outside the closed set.
	UnknownStatusColor = RGB{200, 200, 200}
)

// StatusColor returns the bar colour for a status.
func StatusColor(s Status) RGB {
	if c, ok := statusColors[s]; ok {
		return c
	}
	return UnknownStatusColor
}

// StatusScore returns the fixed bar percentage for a status. It is a lookup,
// not a measurement; unknown statuses score 0.
func StatusScore(s Status) int {
	return statusScores[s]
}
