package notifications

import (
	"fmt"
	"strings"
)

// DefaultSubject is used when the sender leaves the subject blank.
func DefaultSubject(client string) string {
	client = strings.TrimSpace(client)
	if client == "" {
		return "Your Chakra Report"
	}
	return fmt.Sprintf("Your Chakra Report - %s", client)
}

// DefaultBody is used when the sender leaves the message blank.
func DefaultBody(client, coach string) string {
	greeting := "Dear friend,"
	if c := strings.TrimSpace(client); c != "" {
		greeting = fmt.Sprintf("Dear %s,", c)
	}
	signature := "Soulful Academy"
	if c := strings.TrimSpace(coach); c != "" {
		signature = fmt.Sprintf("%s\nSoulful Academy", c)
	}

	var b strings.Builder
	b.WriteString(greeting)
	b.WriteString("\n\n")
	b.WriteString("Thank you for your session. Your personalised chakra report is attached as a PDF.\n")
	b.WriteString("Take a few quiet minutes with it and note anything that resonates before our follow-up.\n\n")
	b.WriteString("With love and light,\n")
	b.WriteString(signature)
	b.WriteString("\n")
	return b.String()
}
