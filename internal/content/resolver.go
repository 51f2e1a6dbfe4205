// Package content resolves the canned text printed in a report: per-chakra
// notes, remedies and crystal suggestions, aura descriptions, and the
// quick-reading paragraph derived from all seven statuses.
package content

import (
	"fmt"
	"strings"

	"github.com/soulful-academy/chakra-report/internal/models"
)

// Fields is the editable text attached to one chakra.
type Fields struct {
	Notes    string `json:"notes"`
	Remedies string `json:"remedies"`
	Crystals string `json:"crystals"`
}

// Resolve looks up the template text for a chakra in a given status.
// Unknown keys resolve to empty strings.
func Resolve(c models.Chakra, s models.Status) Fields {
	return Fields{
		Notes:    notesTable[c][s],
		Remedies: remediesTable[c][s],
		Crystals: crystalsTable[c][s],
	}
}

// Explanation returns what the centre holds, independent of status.
func Explanation(c models.Chakra) string {
	return explanations[c]
}

// StatusGuidance returns the general guidance sentence for a status.
func StatusGuidance(s models.Status) string {
	return statusGuidance[s]
}

// ChakraText joins the explanation of c with the guidance for s.
func ChakraText(c models.Chakra, s models.Status) string {
	return strings.TrimSpace(Explanation(c) + " " + StatusGuidance(s))
}

// AuraText describes an aura colour, with a generic reading for anything unknown.
func AuraText(color models.AuraColor) string {
	if text, ok := auraTexts[color]; ok {
		return text
	}
	return auraFallback
}

// AuraSizeText describes what the aura size means for the client.
func AuraSizeText(size models.AuraSize) string {
	return auraSizeTexts[size.Band()]
}

var namedTables = []struct {
	name string
	t    table
}{
	{"notes", notesTable},
	{"remedies", remediesTable},
	{"crystals", crystalsTable},
}

// Validate checks that every lookup table covers the full chakra x status
// cross-product and every aura option. It is run once at startup.
func Validate() error {
	var missing []string
	for _, c := range models.Chakras {
		if explanations[c] == "" {
			missing = append(missing, fmt.Sprintf("explanation[%s]", c))
		}
		for _, s := range models.Statuses {
			for _, nt := range namedTables {
				if nt.t[c][s] == "" {
					missing = append(missing, fmt.Sprintf("%s[%s][%s]", nt.name, c, s))
				}
			}
		}
	}
	for _, s := range models.Statuses {
		if statusGuidance[s] == "" {
			missing = append(missing, fmt.Sprintf("guidance[%s]", s))
		}
	}
	for _, color := range models.AuraColors {
		if auraTexts[color] == "" {
			missing = append(missing, fmt.Sprintf("aura[%s]", color))
		}
	}
	for _, size := range models.AuraSizes {
		if AuraSizeText(size) == "" {
			missing = append(missing, fmt.Sprintf("aura_size[%s]", size))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("content tables incomplete: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Fill replaces blank notes, remedies and crystal suggestions in rec with
// the templates for each chakra's status. Text the practitioner typed is kept.
func Fill(rec *models.Record) {
	if rec.Chakras == nil {
		rec.Chakras = make(map[models.Chakra]models.Assessment, len(models.Chakras))
	}
	for _, a := range rec.Ordered() {
		tmpl := Resolve(a.Chakra, a.Status)
		if strings.TrimSpace(a.Notes) == "" {
			a.Notes = tmpl.Notes
		}
		if strings.TrimSpace(a.Remedies) == "" {
			a.Remedies = tmpl.Remedies
		}
		if strings.TrimSpace(a.Crystals) == "" {
			a.Crystals = tmpl.Crystals
		}
		rec.Chakras[a.Chakra] = a
	}
}

// OnStatusChange computes the fields a form should show after the status of
// c moves from oldStatus to newStatus. A field is re-filled when it is blank
// or still holds the old template; anything the practitioner edited stays.
func OnStatusChange(c models.Chakra, newStatus, oldStatus models.Status, current Fields) Fields {
	oldTmpl := Resolve(c, oldStatus)
	newTmpl := Resolve(c, newStatus)

	pick := func(cur, oldText, newText string) string {
		if strings.TrimSpace(cur) == "" || cur == oldText {
			return newText
		}
		return cur
	}

	return Fields{
		Notes:    pick(current.Notes, oldTmpl.Notes, newTmpl.Notes),
		Remedies: pick(current.Remedies, oldTmpl.Remedies, newTmpl.Remedies),
		Crystals: pick(current.Crystals, oldTmpl.Crystals, newTmpl.Crystals),
	}
}
