package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitDraftStripsHeadingMarkers(t *testing.T) {
	raw := "## The Quiet Power of Reishi\n\nReishi has been used for centuries.\n\n### Benefits\nCalm."

	d := SplitDraft(raw, "reishi")
	assert.Equal(t, "The Quiet Power of Reishi", d.Title)
	assert.Equal(t, "Reishi has been used for centuries.\n\n### Benefits\nCalm.", d.Content)
}

func TestSplitDraftSingleLine(t *testing.T) {
	d := SplitDraft("Just a title", "reishi")
	assert.Equal(t, "Just a title", d.Title)
	assert.Equal(t, "Just a title", d.Content)
}

func TestSplitDraftEmptyFallsBackToKeywords(t *testing.T) {
	d := SplitDraft("", "lion's mane focus")
	assert.Equal(t, "lion's mane focus", d.Title)
}

func TestNewChatWriterRequiresKey(t *testing.T) {
	_, err := NewChatWriter("", "", "gemini-2.0-flash-lite")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
