package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ranilearn/rani/internal/i18n"
	"github.com/ranilearn/rani/internal/llm"
)

func testTables() i18n.Tables {
	return i18n.Tables{
		i18n.EN: {"welcome": "Welcome to Rani", "next": "Next", "pay": "Pay", "success": "Payment Successful"},
		i18n.HI: {"welcome": "रानी में आपका स्वागत है"},
		i18n.BN: {"welcome": "রানীতে স্বাগতম", "next": "পরবর্তী", "pay": "পে করুন", "success": "পেমেন্ট সফল"},
	}
}

func reply(pairs ...string) llm.MockResponse {
	var out struct {
		Translations []map[string]string `json:"translations"`
	}
	out.Translations = []map[string]string{}
	for i := 0; i+1 < len(pairs); i += 2 {
		out.Translations = append(out.Translations, map[string]string{"key": pairs[i], "text": pairs[i+1]})
	}
	data, _ := json.Marshal(out)
	return llm.MockResponse{Content: data}
}

func TestFill(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	mock := llm.NewMockProvider(reply("next", "अगला", "pay", "भुगतान करें", "success", "भुगतान सफल", "bogus", "x"))
	f := NewFiller(mock, testTables(), logger)

	res, err := f.Fill(context.Background(), i18n.HI)
	require.NoError(t, err)

	assert.Equal(t, []string{"next", "pay", "success"}, res.Added)
	assert.Equal(t, "रानी में आपका स्वागत है", res.Table["welcome"], "existing strings kept")
	assert.Equal(t, "अगला", res.Table["next"])
	assert.NotContains(t, res.Table, "bogus")

	require.Equal(t, 1, mock.CallCount())
	prompt := mock.Calls[0].Messages[0].Content
	assert.Contains(t, prompt, "Hindi")
	assert.Contains(t, prompt, "- pay: Pay")
	assert.NotContains(t, prompt, "welcome")
	assert.Equal(t, TranslationSchema, mock.Calls[0].Schema)

	assert.Empty(t, testTables()[i18n.HI]["next"], "source tables untouched")
}

func TestFill_Batches(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	mock := llm.NewMockProvider(
		reply("next", "अगला", "pay", "भुगतान करें"),
		reply("success", "भुगतान सफल"),
	)
	f := NewFiller(mock, testTables(), logger)
	f.batchSize = 2

	res, err := f.Fill(context.Background(), i18n.HI)
	require.NoError(t, err)
	assert.Equal(t, 2, mock.CallCount())
	assert.Len(t, res.Table, 4)
}

func TestFill_MissingKeyInReply(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	mock := llm.NewMockProvider(reply("next", "अगला"))
	_, err := NewFiller(mock, testTables(), logger).Fill(context.Background(), i18n.HI)
	assert.ErrorContains(t, err, "pay")
}

func TestFill_NothingMissing(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	mock := llm.NewMockProvider()
	res, err := NewFiller(mock, testTables(), logger).Fill(context.Background(), i18n.BN)
	require.NoError(t, err)
	assert.Empty(t, res.Added)
	assert.Zero(t, mock.CallCount())
}

func TestFill_RejectsEnglish(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	_, err := NewFiller(llm.NewMockProvider(), testTables(), logger).Fill(context.Background(), i18n.EN)
	assert.ErrorIs(t, err, i18n.ErrUnknownLanguage)
}

func TestWriteYAML_RoundTrips(t *testing.T) {
	table := map[string]string{"b_key": "भुगतान: सफल", "a_key": "yes", "c_key": "₹50"}
	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, table))

	assert.Less(t, bytes.Index(buf.Bytes(), []byte("a_key")), bytes.Index(buf.Bytes(), []byte("b_key")))
	parsed, err := i18n.ParseTable(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, table, parsed)
}

func TestPurposeLanguage(t *testing.T) {
	lang, ok := PurposeLanguage(Purpose(i18n.BN))
	assert.True(t, ok)
	assert.Equal(t, i18n.BN, lang)

	for _, purpose := range []string{"translate-en", "translate-xx", "lesson", ""} {
		_, ok := PurposeLanguage(purpose)
		assert.False(t, ok, purpose)
	}
}

func TestDecodeReply(t *testing.T) {
	entries, err := DecodeReply(reply("pay", "भुगतान करें").Content)
	require.NoError(t, err)
	assert.Equal(t, []Entry{{Key: "pay", Text: "भुगतान करें"}}, entries)

	_, err = DecodeReply([]byte("not json"))
	assert.Error(t, err)
}
