package models

import (
	"encoding/json"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/soulful-academy/chakra-report/internal/errors"
)

func TestRecordValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(r *Record)
		wantErr   bool
		wantValid bool
	}{
		{name: "complete", mutate: func(r *Record) {}},
		{name: "blank client", mutate: func(r *Record) { r.ClientName = "  " }, wantErr: true, wantValid: true},
		{name: "missing chakra", mutate: func(r *Record) { delete(r.Chakras, ChakraThroat) }, wantErr: true, wantValid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := NewRecord("Asha")
			tt.mutate(rec)
			err := rec.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantValid && !errors.IsValidationError(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestBlockedStats(t *testing.T) {
	rec := NewRecord("Asha")
	if count, pct := BlockedStats(rec); count != 0 || pct != 0 {
		t.Fatalf("BlockedStats() = %d, %.1f, want 0, 0", count, pct)
	}
	for _, c := range Chakras {
		rec.SetStatus(c, StatusBlocked)
	}
	count, pct := BlockedStats(rec)
	if count != 7 || pct != 100.0 {
		t.Fatalf("BlockedStats() = %d, %.1f, want 7, 100.0", count, pct)
	}
}

func TestOrderedIsCanonical(t *testing.T) {
	rec := &Record{Chakras: map[Chakra]Assessment{ChakraCrown: {Status: StatusWeak}}}
	ordered := rec.Ordered()
	if len(ordered) != len(Chakras) {
		t.Fatalf("expected %d assessments, got %d", len(Chakras), len(ordered))
	}
	for i, a := range ordered {
		if a.Chakra != Chakras[i] {
			t.Fatalf("position %d: got %s, want %s", i, a.Chakra, Chakras[i])
		}
	}
	if ordered[6].Status != StatusWeak {
		t.Fatalf("crown status lost: %q", ordered[6].Status)
	}
}

func TestStatusLookups(t *testing.T) {
	want := map[Status]int{StatusBalanced: 100, StatusWeak: 75, StatusBlocked: 40, StatusOveractive: 55}
	for s, score := range want {
		if got := StatusScore(s); got != score {
			t.Errorf("StatusScore(%q) = %d, want %d", s, got, score)
		}
		if StatusColor(s) == UnknownStatusColor {
			t.Errorf("StatusColor(%q) fell back to unknown colour", s)
		}
	}
	if StatusScore("Glowing") != 0 || StatusColor("Glowing") != UnknownStatusColor {
		t.Error("unknown status should score 0 with the unknown colour")
	}
}

func TestShortName(t *testing.T) {
	if got := ChakraThirdEye.ShortName(); got != "Third Eye" {
		t.Fatalf("ShortName() = %q", got)
	}
	if got := Chakra("Spleen").ShortName(); got != "Spleen" {
		t.Fatalf("ShortName() = %q", got)
	}
}

func TestRecordDecoding(t *testing.T) {
	doc := `
client_name: Asha
coach_name: Rekha
session_date: "01-10-2026"
aura_color: Indigo
aura_size: Medium (40-75) - good daily radiance
chakras:
  Root (Muladhara):
    status: Blocked / Underactive
    notes: Money fear
follow_up: Call in a week
`
	var rec Record
	if err := yaml.Unmarshal([]byte(doc), &rec); err != nil {
		t.Fatalf("yaml.Unmarshal: %v", err)
	}
	root := rec.Assessment(ChakraRoot)
	if root.Status != StatusBlocked || root.Notes != "Money fear" || root.Chakra != ChakraRoot {
		t.Fatalf("unexpected root assessment: %+v", root)
	}
	if rec.AuraSize.Band() != "medium" {
		t.Fatalf("aura size band = %q", rec.AuraSize.Band())
	}

	raw, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("json.Marshal: %v", err)
	}
	var back Record
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	if back.ClientName != "Asha" || back.Assessment(ChakraRoot).Status != StatusBlocked {
		t.Fatalf("json decode lost data: %+v", back)
	}
}
