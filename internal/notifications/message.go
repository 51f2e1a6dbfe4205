package notifications

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/textproto"
	"strings"
	"time"

	"github.com/google/uuid"
)

const base64LineLength = 76

// Attachment is a file carried by a report email.
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Message is a single-recipient report email.
type Message struct {
	To          string
	Subject     string
	Body        string
	Attachments []Attachment
}

var nowFn = time.Now

// buildMessage renders msg as a multipart/mixed RFC 5322 message: a text
// part followed by one base64 part per attachment.
func buildMessage(from string, msg Message) ([]byte, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	header := []struct{ key, value string }{
		{"From", from},
		{"To", msg.To},
		{"Subject", mime.QEncoding.Encode("utf-8", msg.Subject)},
		{"Date", nowFn().Format(time.RFC1123Z)},
		{"Message-ID", fmt.Sprintf("<%s@%s>", uuid.NewString(), senderDomain(from))},
		{"MIME-Version", "1.0"},
		{"Content-Type", fmt.Sprintf("multipart/mixed; boundary=%q", mw.Boundary())},
	}
	for _, h := range header {
		fmt.Fprintf(&buf, "%s: %s\r\n", h.key, h.value)
	}
	buf.WriteString("\r\n")

	textHeader := textproto.MIMEHeader{}
	textHeader.Set("Content-Type", "text/plain; charset=utf-8")
	textHeader.Set("Content-Transfer-Encoding", "quoted-printable")
	part, err := mw.CreatePart(textHeader)
	if err != nil {
		return nil, fmt.Errorf("create text part: %w", err)
	}
	qp := quotedprintable.NewWriter(part)
	if _, err := qp.Write([]byte(normalizeNewlines(msg.Body))); err != nil {
		return nil, fmt.Errorf("encode text part: %w", err)
	}
	if err := qp.Close(); err != nil {
		return nil, fmt.Errorf("encode text part: %w", err)
	}

	for _, att := range msg.Attachments {
		contentType := att.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		name := mime.QEncoding.Encode("utf-8", att.Filename)

		attHeader := textproto.MIMEHeader{}
		attHeader.Set("Content-Type", fmt.Sprintf("%s; name=%q", contentType, name))
		attHeader.Set("Content-Transfer-Encoding", "base64")
		attHeader.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
		part, err := mw.CreatePart(attHeader)
		if err != nil {
			return nil, fmt.Errorf("create attachment part: %w", err)
		}
		if _, err := part.Write(wrapBase64(att.Content)); err != nil {
			return nil, fmt.Errorf("write attachment %s: %w", att.Filename, err)
		}
	}

	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}
	return buf.Bytes(), nil
}

func wrapBase64(data []byte) []byte {
	encoded := base64.StdEncoding.EncodeToString(data)
	var out bytes.Buffer
	out.Grow(len(encoded) + 2*(len(encoded)/base64LineLength+1))
	for len(encoded) > base64LineLength {
		out.WriteString(encoded[:base64LineLength])
		out.WriteString("\r\n")
		encoded = encoded[base64LineLength:]
	}
	out.WriteString(encoded)
	out.WriteString("\r\n")
	return out.Bytes()
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\n", "\r\n")
}

func senderDomain(from string) string {
	if at := strings.LastIndex(from, "@"); at >= 0 && at < len(from)-1 {
		return strings.Trim(from[at+1:], "<> ")
	}
	return "localhost"
}
