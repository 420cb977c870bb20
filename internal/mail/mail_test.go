package mail

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyPrefersOfficialIDs(t *testing.T) {
	assert.Equal(t, "msg-1", Key(Email{ID: "msg-1", MessageID: "mid-1", Subject: "x"}))
	assert.Equal(t, "mid-1", Key(Email{MessageID: "mid-1", Subject: "x"}))
}

func TestKeyHashFallbackIsStable(t *testing.T) {
	a := Email{Sender: "boss@example.com", Subject: "Q3 report", Date: "2026-08-28"}
	b := a
	assert.Equal(t, Key(a), Key(b))
	assert.NotEqual(t, Key(a), Key(Email{Sender: "boss@example.com", Subject: "Q4 report", Date: "2026-08-28"}))

	// received_at substitutes for date.
	c := Email{Sender: "boss@example.com", Subject: "Q3 report", ReceivedAt: "2026-08-28"}
	assert.Equal(t, Key(a), Key(c))
}

func TestKeyEmptyEmailNeverCollides(t *testing.T) {
	k1 := Key(Email{})
	k2 := Key(Email{})
	assert.True(t, strings.HasPrefix(k1, "unknown_"))
	assert.NotEqual(t, k1, k2)
}

func TestMergeKeepsUnreadFirstAndDedupes(t *testing.T) {
	unread := []Email{{ID: "a", Subject: "urgent"}, {ID: "b", Subject: "also urgent"}}
	recent := []Email{{ID: "b", Subject: "also urgent"}, {ID: "c", Subject: "newsletter"}}

	merged := Merge(unread, recent)
	require.Len(t, merged, 3)
	assert.Equal(t, "a", merged[0].ID)
	assert.Equal(t, "b", merged[1].ID)
	assert.Equal(t, "c", merged[2].ID)
}

func TestFormatForPrompt(t *testing.T) {
	out := FormatForPrompt([]Email{
		{Sender: "alice@example.com", Subject: "Invoice", Snippet: "please pay"},
		{},
	})
	assert.Contains(t, out, "1. From: alice@example.com")
	assert.Contains(t, out, "Subject: Invoice")
	assert.Contains(t, out, "Preview: please pay")
	assert.Contains(t, out, "2. From: Unknown")
	assert.Contains(t, out, "Subject: No subject")
}
