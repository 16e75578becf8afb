package services

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockNewsArticles(t *testing.T) {
	t.Parallel()

	t.Run("all categories", func(t *testing.T) {
		articles := MockNewsArticles("All")
		require.Len(t, articles, len(mockNewsArticles))
		for _, a := range articles {
			assert.NotEmpty(t, a.Title)
			assert.NotEmpty(t, a.PublishedAt)
		}
	})

	t.Run("empty category means all", func(t *testing.T) {
		assert.Len(t, MockNewsArticles(""), len(mockNewsArticles))
	})

	t.Run("single category", func(t *testing.T) {
		articles := MockNewsArticles("Policy")
		require.Len(t, articles, 1)
		assert.Equal(t, "Policy", articles[0].Category)
	})

	t.Run("unknown category", func(t *testing.T) {
		assert.Empty(t, MockNewsArticles("Gossip"))
	})
}

func TestNewsKeywords(t *testing.T) {
	t.Parallel()

	base := NewsKeywords("All")
	assert.Contains(t, base, "travel advice")
	assert.NotContains(t, base, "all")

	policy := NewsKeywords("Policy")
	assert.Contains(t, policy, "policy")
	assert.Contains(t, policy, "visa")
	assert.Contains(t, policy, "travel restrictions")

	hacks := NewsKeywords("Hacks")
	assert.Contains(t, hacks, "cheap flights")

	destinations := NewsKeywords("Destinations")
	assert.Contains(t, destinations, "destinations")
}

func TestDecodeNewsArticles(t *testing.T) {
	t.Parallel()

	body := []byte(`{
		"articles": {
			"results": [
				{
					"title": "Night Trains Make a Comeback",
					"body": "Sleeper routes are reopening across Europe.",
					"dateTime": "2026-05-20T08:00:00Z",
					"image": "https://example.com/train.jpg",
					"url": "https://example.com/night-trains",
					"source": {"title": "Rail Journal"}
				},
				{
					"title": "No Image Or Source",
					"body": "",
					"date": "2026-05-19",
					"url": "https://example.com/bare",
					"source": {}
				}
			]
		}
	}`)

	articles, err := DecodeNewsArticles(body, "All")
	require.NoError(t, err)
	require.Len(t, articles, 2)

	first := articles[0]
	assert.Equal(t, "Night Trains Make a Comeback", first.Title)
	assert.Equal(t, "Rail Journal", first.Source.Name)
	assert.Equal(t, "2026-05-20T08:00:00Z", first.PublishedAt)
	assert.Equal(t, "https://example.com/train.jpg", first.URLToImage)
	assert.Equal(t, "General", first.Category)

	second := articles[1]
	assert.Equal(t, "Unknown Source", second.Source.Name)
	assert.Equal(t, "2026-05-19", second.PublishedAt)
	assert.Equal(t, fallbackNewsImage, second.URLToImage)

	t.Run("category is carried through", func(t *testing.T) {
		articles, err := DecodeNewsArticles(body, "Destinations")
		require.NoError(t, err)
		assert.Equal(t, "Destinations", articles[0].Category)
	})

	t.Run("long body is truncated", func(t *testing.T) {
		long := make([]byte, 300)
		for i := range long {
			long[i] = 'a'
		}
		body := []byte(`{"articles":{"results":[{"title":"t","body":"` + string(long) + `","url":"#","source":{"title":"s"}}]}}`)
		articles, err := DecodeNewsArticles(body, "All")
		require.NoError(t, err)
		assert.Len(t, articles[0].Description, 203)
	})

	t.Run("truncation keeps multibyte text valid", func(t *testing.T) {
		long := strings.Repeat("é", 300)
		body := []byte(`{"articles":{"results":[{"title":"t","body":"` + long + `","url":"#","source":{"title":"s"}}]}}`)
		articles, err := DecodeNewsArticles(body, "All")
		require.NoError(t, err)

		desc := articles[0].Description
		assert.True(t, utf8.ValidString(desc))
		assert.Equal(t, 203, utf8.RuneCountInString(desc))
		assert.True(t, strings.HasSuffix(desc, "..."))
	})

	t.Run("malformed body", func(t *testing.T) {
		_, err := DecodeNewsArticles([]byte("not json"), "All")
		assert.Error(t, err)
	})
}
