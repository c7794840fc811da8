package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ranilearn/rani/internal/i18n"
	"github.com/ranilearn/rani/internal/store"
	"github.com/ranilearn/rani/internal/translate"
)

func llmEvent(id int, seq int64, purpose string, ok bool) store.LLMRequestEventRecord {
	return store.LLMRequestEventRecord{
		ID:       id,
		Sequence: seq,
		LLMRequestEventData: store.LLMRequestEventData{
			Model:   "claude-haiku-4-5",
			Purpose: purpose,
			Success: ok,
		},
	}
}

func TestGroupByLanguage(t *testing.T) {
	events := []store.LLMRequestEventRecord{
		llmEvent(1, 1, translate.Purpose(i18n.BN), true),
		llmEvent(2, 2, translate.Purpose(i18n.HI), true),
		llmEvent(3, 3, "unknown", true),
		llmEvent(4, 4, translate.Purpose(i18n.HI), false),
	}

	groups := groupByLanguage(events)
	require.Len(t, groups, 2)
	assert.Equal(t, i18n.HI, groups[0].Lang, "languages follow display order")
	assert.Equal(t, i18n.BN, groups[1].Lang)
	require.Len(t, groups[0].Events, 2)
	assert.Equal(t, 4, groups[0].Events[0].ID, "newest first")

	var buf bytes.Buffer
	printGroups(&buf, groups)
	assert.Contains(t, buf.String(), "हिंदी (hi): 2 calls, 1 failed")
	assert.Contains(t, buf.String(), "বাংলা (bn): 1 calls, 0 failed")
}

func TestUsageByLanguage(t *testing.T) {
	rows := usageByLanguage([]store.LLMUsage{
		{Key: translate.Purpose(i18n.BN), Calls: 3, InputTokens: 900},
		{Key: "unknown", Calls: 7},
	})
	require.Len(t, rows, 2)
	assert.Equal(t, i18n.HI, rows[0].Lang)
	assert.Zero(t, rows[0].Calls)
	assert.Equal(t, i18n.BN, rows[1].Lang)
	assert.Equal(t, 3, rows[1].Calls)
	assert.Equal(t, 900, rows[1].InputTokens)
}

func TestPrintEntries_ShowsEnglishSource(t *testing.T) {
	tables := i18n.Tables{i18n.EN: {"pay": "Pay"}}
	var buf bytes.Buffer
	printEntries(&buf, tables, []translate.Entry{{Key: "pay", Text: "भुगतान करें"}, {Key: "new_key", Text: "नया"}})

	out := buf.String()
	assert.Contains(t, out, "2 strings")
	assert.Contains(t, out, "भुगतान करें")
	assert.Contains(t, out, "(Pay)")
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("(")), "keys without an English source get no source line")
}
