package reporting

import (
	"fmt"
	"strings"

	"github.com/soulful-academy/chakra-report/internal/models"
)

// Variant selects which optional sections a report carries.
type Variant string

const (
	// VariantAura is the aura reading with chakra guidance, no crystals.
	VariantAura Variant = "aura"
	// VariantCrystal is chakra guidance with crystal suggestions.
	VariantCrystal Variant = "crystal"
	// VariantFull adds the quick-reading paragraph to the crystal report.
	VariantFull Variant = "full"
)

// Variants lists the supported variants.
var Variants = []Variant{VariantAura, VariantCrystal, VariantFull}

// Sections enumerates the optional blocks of a report.
type Sections struct {
	Aura         bool // aura colour/size fields and explanation page
	Crystals     bool // crystal column and per-chakra crystal remedies
	QuickReading bool // auto-generated summary paragraph on the cover
}

// Sections returns the blocks enabled for v.
func (v Variant) Sections() Sections {
	switch v {
	case VariantAura:
		return Sections{Aura: true}
	case VariantCrystal:
		return Sections{Crystals: true}
	default:
		return Sections{Crystals: true, QuickReading: true}
	}
}

// Filename returns the download name for a client's report.
func (v Variant) Filename(client string) string {
	name := strings.TrimSpace(client)
	if v == VariantAura {
		return name + "_aura_chakra_report.pdf"
	}
	return name + "_chakra_report.pdf"
}

// ParseVariant accepts a variant name; empty selects VariantFull.
func ParseVariant(s string) (Variant, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return VariantFull, nil
	}
	for _, v := range Variants {
		if string(v) == s {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown report variant %q (want aura, crystal or full)", s)
}

// Engine defines the interface for report generation.
type Engine interface {
	Generate(rec *models.Record, v Variant) ([]byte, error)
}
