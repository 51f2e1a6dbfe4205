package models

import (
	"fmt"
	"strings"

	"github.com/soulful-academy/chakra-report/internal/errors"
)

// Assessment is the practitioner's reading of a single chakra.
type Assessment struct {
	Chakra   Chakra `json:"chakra" yaml:"chakra"`
	Status   Status `json:"status" yaml:"status"`
	Notes    string `json:"notes" yaml:"notes"`
	Remedies string `json:"remedies" yaml:"remedies"`
	Crystals string `json:"crystals,omitempty" yaml:"crystals,omitempty"`
}

// Record is one submitted session, created fresh per submission and
// discarded once the document is rendered.
type Record struct {
	ClientName   string                `json:"client_name" yaml:"client_name"`
	CoachName    string                `json:"coach_name" yaml:"coach_name"`
	SessionDate  string                `json:"session_date" yaml:"session_date"`
	Gender       Gender                `json:"gender,omitempty" yaml:"gender,omitempty"`
	Intent       string                `json:"intent" yaml:"intent"`
	AuraColor    AuraColor             `json:"aura_color,omitempty" yaml:"aura_color,omitempty"`
	AuraSize     AuraSize              `json:"aura_size,omitempty" yaml:"aura_size,omitempty"`
	Chakras      map[Chakra]Assessment `json:"chakras" yaml:"chakras"`
	FollowUp     string                `json:"follow_up" yaml:"follow_up"`
	Affirmations string                `json:"affirmations" yaml:"affirmations"`
}

// NewRecord returns a record for client with every chakra read as balanced.
func NewRecord(client string) *Record {
	rec := &Record{
		ClientName: client,
		Chakras:    make(map[Chakra]Assessment, len(Chakras)),
	}
	for _, c := range Chakras {
		rec.Chakras[c] = Assessment{Chakra: c, Status: StatusBalanced}
	}
	return rec
}

// Validate rejects records that must not reach the renderer.
func (r *Record) Validate() error {
	if strings.TrimSpace(r.ClientName) == "" {
		return errors.WrapValidationError("validate_record", errors.ErrMissingClientName)
	}
	var missing []string
	for _, c := range Chakras {
		if _, ok := r.Chakras[c]; !ok {
			missing = append(missing, string(c))
		}
	}
	if len(missing) > 0 {
		return errors.WrapValidationError("validate_record",
			fmt.Errorf("%w: %s", errors.ErrMissingChakra, strings.Join(missing, ", ")))
	}
	return nil
}

// Assessment returns the reading for c. The Chakra field is always set, even
// for an absent entry, so callers can label empty rows.
func (r *Record) Assessment(c Chakra) Assessment {
	a := r.Chakras[c]
	a.Chakra = c
	return a
}

// Ordered returns all seven assessments in canonical order.
func (r *Record) Ordered() []Assessment {
	out := make([]Assessment, 0, len(Chakras))
	for _, c := range Chakras {
		out = append(out, r.Assessment(c))
	}
	return out
}

// SetStatus updates the status of c, keeping any existing text.
func (r *Record) SetStatus(c Chakra, s Status) {
	if r.Chakras == nil {
		r.Chakras = make(map[Chakra]Assessment, len(Chakras))
	}
	a := r.Assessment(c)
	a.Status = s
	r.Chakras[c] = a
}

// BlockedStats counts chakras read as blocked and their share of all seven.
func BlockedStats(r *Record) (count int, pct float64) {
	for _, a := range r.Ordered() {
		if a.Status == StatusBlocked {
			count++
		}
	}
	return count, float64(count) / float64(len(Chakras)) * 100
}
