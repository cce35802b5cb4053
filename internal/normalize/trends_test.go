package normalize

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bareArray = `[{"trend":"AI in Healthcare","source":"Twitter","category":"tech","engagement_score":85},{"topic":"Remote Work Tips"}]`

func TestParseTrendList_ProseWrappedEqualsBare(t *testing.T) {
	bare, err := ParseTrendList(bareArray)
	require.NoError(t, err)

	wrapped, err := ParseTrendList("Sure, here it is:\n" + bareArray + "\nEnjoy!")
	require.NoError(t, err)

	fenced, err := ParseTrendList("```json\n" + bareArray + "\n```")
	require.NoError(t, err)

	assert.Equal(t, bare, wrapped)
	assert.Equal(t, bare, fenced)
	require.Len(t, bare, 2)
	assert.Equal(t, TrendItem{Topic: "AI in Healthcare", Source: "Twitter", Category: "tech", Score: 85}, bare[0])
	assert.Equal(t, "Remote Work Tips", bare[1].Topic)
}

func TestParseTrendList_StringElements(t *testing.T) {
	items, err := ParseTrendList(`["Sustainable Fashion", "  ", "Digital Nomad Life"]`)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Sustainable Fashion", items[0].Topic)
	assert.Equal(t, "Digital Nomad Life", items[1].Topic)
}

func TestParseTrendList_StringScore(t *testing.T) {
	items, err := ParseTrendList(`[{"trend":"A","engagement_score":"72"}]`)
	require.NoError(t, err)
	assert.Equal(t, 72, items[0].Score)
}

func TestParseTrendList_Failures(t *testing.T) {
	_, err := ParseTrendList("no array here")
	assert.True(t, errors.Is(err, ErrNoJSONArray))

	_, err = ParseTrendList("[not, valid json]")
	assert.True(t, errors.Is(err, ErrNoJSONArray))

	_, err = ParseTrendList(`[{"category":"tech"}]`)
	assert.True(t, errors.Is(err, ErrEmptyContent))
}

func TestTrends_FromChatWithThinking(t *testing.T) {
	resp := chat(`{"choices":[{"message":{"content":"<think>[draft]</think>Here you go: [\"Mental Health Awareness\"]"}}]}`)

	items, err := Trends(resp)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Mental Health Awareness", items[0].Topic)
}
