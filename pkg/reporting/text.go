package reporting

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// CrystalCellLimit is the rune cap for crystal text in the summary table.
const CrystalCellLimit = 72

const ellipsis = "..."

var asciiReplacer = strings.NewReplacer(
	"\u2022", "- ", // bullet
	"\u2013", "-", // en dash
	"\u2014", "-", // em dash
	"\u2018", "'",
	"\u2019", "'",
	"\u201c", `"`,
	"\u201d", `"`,
	"\u2026", "...",
	"\u00a0", " ",
)

// Sanitize makes s safe for the PDF core fonts. Bullets, dashes and curly
// quotes become ASCII; any rune Windows-1252 cannot represent is dropped.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	s = asciiReplacer.Replace(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == utf8.RuneError {
			continue
		}
		if r < 0x80 {
			b.WriteRune(r)
			continue
		}
		if _, ok := charmap.Windows1252.EncodeRune(r); ok {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// encodeText sanitises s and converts it to the single-byte encoding the
// core fonts use.
func encodeText(s string) string {
	clean := Sanitize(s)
	out, err := charmap.Windows1252.NewEncoder().String(clean)
	if err != nil {
		// Sanitize already removed unencodable runes; keep the ASCII subset.
		return asciiOnly(clean)
	}
	return out
}

func asciiOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r < 0x80 {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Truncate cuts s to at most limit runes and appends "..." when it did.
// No word-boundary handling.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return strings.TrimRight(string(runes[:limit]), " ") + ellipsis
}
