package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON_Array(t *testing.T) {
	urls, err := ParseJSON[[]string]("  [\"https://a.example\", \"https://b.example\"]\n")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, urls)
}

func TestParseJSON_Object(t *testing.T) {
	type verdict struct {
		FinalVerdict string `json:"final_verdict"`
	}
	v, err := ParseJSON[verdict](`{"final_verdict": "Buy B."}`)
	require.NoError(t, err)
	assert.Equal(t, "Buy B.", v.FinalVerdict)
}

func TestParseJSON_Rejects(t *testing.T) {
	cases := map[string]string{
		"empty":           "   ",
		"null":            "null",
		"prose":           "Here are the links: [\"https://a.example\"]",
		"fenced":          "```json\n[\"https://a.example\"]\n```",
		"trailing":        `["https://a.example"] thanks`,
		"two values":      `["a"] ["b"]`,
		"wrong type":      `{"url": "https://a.example"}`,
		"non-string item": `["https://a.example", 3]`,
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseJSON[[]string](input)
			assert.Error(t, err)
		})
	}
}

func TestLinkLedger(t *testing.T) {
	ctx, ledger := WithLinkLedger(t.Context())
	ledger.Record("https://a.example", "https://b.example", "https://a.example")

	got := LinkLedgerFrom(ctx)
	require.NotNil(t, got)
	assert.True(t, got.Seen("https://a.example"))
	assert.False(t, got.Seen("https://c.example"))
	assert.Equal(t, 2, got.Len())

	assert.Nil(t, LinkLedgerFrom(t.Context()))
}
