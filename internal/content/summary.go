package content

import (
	"strings"

	"github.com/soulful-academy/chakra-report/internal/models"
)

const (
	// AllBalancedSummary is the quick reading when no chakra needs attention.
	AllBalancedSummary = "All seven chakras are reading balanced and radiant. " +
		"Keep nurturing this flow with daily meditation, gratitude and grounding."

	summaryClosing = "Start the healing work with the blocked centres, then strengthen the weak ones, " +
		"and calm any overactive centre with grounding and forgiveness rituals."
)

var summaryBuckets = []struct {
	status models.Status
	prefix string
}{
	{models.StatusBlocked, "Blocked or underactive energy is showing in: "},
	{models.StatusWeak, "Slightly weak energy is showing in: "},
	{models.StatusOveractive, "Overactive or dominant energy is showing in: "},
}

// Summarize builds the quick-reading paragraph. Buckets are always written
// blocked, weak, overactive, and chakra names within a bucket follow canonical
// order, so the result does not depend on the order of assessments.
func Summarize(assessments []models.Assessment) string {
	byStatus := make(map[models.Status]map[models.Chakra]bool, len(summaryBuckets))
	for _, a := range assessments {
		if byStatus[a.Status] == nil {
			byStatus[a.Status] = make(map[models.Chakra]bool)
		}
		byStatus[a.Status][a.Chakra] = true
	}

	var sentences []string
	for _, bucket := range summaryBuckets {
		members := byStatus[bucket.status]
		if len(members) == 0 {
			continue
		}
		var names []string
		for _, c := range models.Chakras {
			if members[c] {
				names = append(names, string(c))
			}
		}
		if len(names) == 0 {
			continue
		}
		sentences = append(sentences, bucket.prefix+strings.Join(names, ", ")+".")
	}

	if len(sentences) == 0 {
		return AllBalancedSummary
	}
	sentences = append(sentences, summaryClosing)
	return strings.Join(sentences, " ")
}
