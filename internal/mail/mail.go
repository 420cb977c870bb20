// Package mail holds the email plumbing between the Gmail tool output
// and the extraction prompt: stable dedupe keys, unread/recent merging
// and prompt formatting.
package mail

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Email is one message as returned by the Google.ListEmails tool.
type Email struct {
	ID         string `json:"id"`
	MessageID  string `json:"message_id"`
	ThreadID   string `json:"thread_id,omitempty"`
	Subject    string `json:"subject"`
	Sender     string `json:"sender"`
	Snippet    string `json:"snippet"`
	Date       string `json:"date"`
	ReceivedAt string `json:"received_at,omitempty"`
}

// Key returns a stable identifier for an email. Official IDs win; the
// fallback hashes sender, subject and date so re-fetched messages keep
// deduplicating even when the tool omits IDs. A fully empty message
// gets a random key rather than colliding with other empty ones.
func Key(e Email) string {
	if e.ID != "" {
		return e.ID
	}
	if e.MessageID != "" {
		return e.MessageID
	}
	date := e.Date
	if date == "" {
		date = e.ReceivedAt
	}
	composite := e.Sender + e.Subject + date
	if composite == "" {
		return "unknown_" + uuid.NewString()[:8]
	}
	sum := sha256.Sum256([]byte(composite))
	return hex.EncodeToString(sum[:])
}

// Merge combines the unread and recent fetches, keeping unread-first
// order and dropping messages already seen.
func Merge(unread, recent []Email) []Email {
	seen := make(map[string]struct{}, len(unread)+len(recent))
	var out []Email
	for _, batch := range [][]Email{unread, recent} {
		for _, e := range batch {
			k := Key(e)
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, e)
		}
	}
	return out
}

// FormatForPrompt renders the batch as the numbered block the
// extraction prompt expects.
func FormatForPrompt(emails []Email) string {
	var b strings.Builder
	for i, e := range emails {
		subject := e.Subject
		if subject == "" {
			subject = "No subject"
		}
		sender := e.Sender
		if sender == "" {
			sender = "Unknown"
		}
		fmt.Fprintf(&b, "\n%d. From: %s\n   Subject: %s\n   Preview: %s\n", i+1, sender, subject, e.Snippet)
	}
	return b.String()
}
