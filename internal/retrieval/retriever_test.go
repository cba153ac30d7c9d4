package retrieval

import (
	"strings"
	"testing"

	"github.com/futig/plan-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCorpus() []entity.PlanExample {
	return []entity.PlanExample{
		{
			ID: "basic-us", Title: "US Basic", Region: "US", Tier: "Basic",
			Devices: 1, Price: entity.Price{Monthly: 7.99, Currency: "USD"},
			VideoQuality: "SD", Notes: "entry level plan",
		},
		{
			ID: "premium-us", Title: "US Premium Family", Region: "US", Tier: "Premium",
			Devices: 4, Price: entity.Price{Monthly: 19.99, Currency: "USD"},
			VideoQuality: "UHD",
			AddOns:       []entity.AddOn{{Name: "Extra slot", PriceDelta: 5}},
			Notes:        "premium family plan with UHD quality",
		},
		{
			ID: "mobile-in", Title: "India Mobile", Region: "IN", Tier: "Mobile",
			Devices: 1, Price: entity.Price{Monthly: 149, Currency: "INR"},
			VideoQuality: "SD", Notes: "mobile only budget plan",
		},
	}
}

func TestRetrieve_EmptyQueryFallsBackToCorpusOrder(t *testing.T) {
	r := NewRetriever(testCorpus())

	got := r.Retrieve("", 2)

	require.Len(t, got, 2)
	assert.Equal(t, "basic-us", got[0].ID)
	assert.Equal(t, "premium-us", got[1].ID)
}

func TestRetrieve_UnmatchedQueryFallsBackToCorpusOrder(t *testing.T) {
	r := NewRetriever(testCorpus())

	got := r.Retrieve("zzz qqq 12345", 3)

	require.Len(t, got, 3)
	assert.Equal(t, "basic-us", got[0].ID)
	assert.Equal(t, "premium-us", got[1].ID)
	assert.Equal(t, "mobile-in", got[2].ID)
}

func TestRetrieve_RanksKeywordMatchesFirst(t *testing.T) {
	r := NewRetriever(testCorpus())

	got := r.Retrieve("premium family UHD", 2)

	require.NotEmpty(t, got)
	assert.Equal(t, "premium-us", got[0].ID)
}

func TestRetrieve_ExtraOccurrenceNeverLowersRank(t *testing.T) {
	corpus := testCorpus()
	base := NewRetriever(corpus)
	baseTop := base.Retrieve("premium", 1)
	require.Len(t, baseTop, 1)
	require.Equal(t, "premium-us", baseTop[0].ID)

	// Repeat the matched token in the winning example's notes.
	corpus[1].Notes += " premium premium"
	boosted := NewRetriever(corpus)
	boostedTop := boosted.Retrieve("premium", 1)

	require.Len(t, boostedTop, 1)
	assert.Equal(t, "premium-us", boostedTop[0].ID)
}

func TestRetrieve_DevicePriorBreaksNearTies(t *testing.T) {
	corpus := []entity.PlanExample{
		{ID: "small", Title: "Sports plan", Region: "US", Tier: "Standard", Devices: 1, Notes: "sports"},
		{ID: "large", Title: "Sports plan", Region: "US", Tier: "Standard", Devices: 4, Notes: "sports"},
	}
	r := NewRetriever(corpus)

	got := r.Retrieve("sports", 2)

	require.Len(t, got, 2)
	assert.Equal(t, "large", got[0].ID)
	assert.Equal(t, "small", got[1].ID)
}

func TestToPrompt_RendersHeaderAndSnippets(t *testing.T) {
	r := NewRetriever(testCorpus())

	text := r.ToPrompt("premium", 2)

	assert.True(t, strings.HasPrefix(text, "Reference OTT plan examples:"))
	assert.Contains(t, text, "US Premium Family (US)")
	assert.Contains(t, text, "add-ons: Extra slot")
}

func TestToPrompt_EmptyResultUsesSentinel(t *testing.T) {
	r := NewRetriever(nil)

	assert.Equal(t, "No reference examples available.", r.ToPrompt("anything", 3))
}

func TestToPrompt_CachedResultIsStable(t *testing.T) {
	r := NewRetriever(testCorpus())

	first := r.ToPrompt("mobile budget", 1)
	second := r.ToPrompt("mobile budget", 1)

	assert.Equal(t, first, second)
	assert.Contains(t, first, "India Mobile")
}

func TestLoadCorpus_EmbeddedSeed(t *testing.T) {
	examples, err := LoadCorpus("")

	require.NoError(t, err)
	require.NotEmpty(t, examples)
	for _, ex := range examples {
		assert.NotEmpty(t, ex.ID)
		assert.NotEmpty(t, ex.Tier)
		assert.Len(t, ex.Price.Currency, 3)
	}
}
