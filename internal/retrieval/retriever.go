package retrieval

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/futig/plan-backend/internal/entity"
	gocache "github.com/patrickmn/go-cache"
)

const (
	promptHeader     = "Reference OTT plan examples:"
	noExamplesPrompt = "No reference examples available."

	promptCacheTTL     = 5 * time.Minute
	promptCacheCleanup = 10 * time.Minute
)

var tokenPattern = regexp.MustCompile(`[a-zA-Z]+`)

// Retriever answers top-k keyword queries over a fixed corpus of plan
// examples. The corpus and index are built once and never mutated, so the
// retriever is safe for concurrent use.
type Retriever struct {
	examples      []entity.PlanExample
	invertedIndex map[string]map[int]struct{}
	promptCache   *gocache.Cache
}

func NewRetriever(examples []entity.PlanExample) *Retriever {
	return &Retriever{
		examples:      examples,
		invertedIndex: buildIndex(examples),
		promptCache:   gocache.New(promptCacheTTL, promptCacheCleanup),
	}
}

func tokenize(text string) []string {
	raw := tokenPattern.FindAllString(text, -1)
	tokens := make([]string, 0, len(raw))
	for _, t := range raw {
		tokens = append(tokens, strings.ToLower(t))
	}
	return tokens
}

func searchText(ex entity.PlanExample) string {
	return strings.Join([]string{ex.Title, ex.Region, ex.Tier, ex.Notes}, " ")
}

func buildIndex(examples []entity.PlanExample) map[string]map[int]struct{} {
	index := make(map[string]map[int]struct{})
	for idx, ex := range examples {
		for _, token := range tokenize(searchText(ex)) {
			postings, ok := index[token]
			if !ok {
				postings = make(map[int]struct{})
				index[token] = postings
			}
			postings[idx] = struct{}{}
		}
	}
	return index
}

// Retrieve returns up to topK examples ranked by keyword overlap with the
// query. Queries that match nothing (including the empty query) fall back to
// the first topK examples in corpus order, so the result is never empty for
// a non-empty corpus.
func (r *Retriever) Retrieve(query string, topK int) []entity.PlanExample {
	if topK <= 0 {
		return nil
	}
	if strings.TrimSpace(query) == "" {
		return r.head(topK)
	}

	tokens := tokenize(query)
	candidates := make(map[int]struct{})
	for _, token := range tokens {
		for idx := range r.invertedIndex[token] {
			candidates[idx] = struct{}{}
		}
	}
	if len(candidates) == 0 {
		return r.head(topK)
	}

	// Candidate order is fixed to corpus order so equal scores keep it.
	indices := make([]int, 0, len(candidates))
	for idx := range candidates {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	type scored struct {
		idx   int
		score float64
	}
	ranked := make([]scored, 0, len(indices))
	for _, idx := range indices {
		ranked = append(ranked, scored{idx: idx, score: r.score(r.examples[idx], tokens)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	if len(ranked) > topK {
		ranked = ranked[:topK]
	}
	result := make([]entity.PlanExample, 0, len(ranked))
	for _, s := range ranked {
		result = append(result, r.examples[s.idx])
	}
	return result
}

func (r *Retriever) head(topK int) []entity.PlanExample {
	if topK > len(r.examples) {
		topK = len(r.examples)
	}
	return append([]entity.PlanExample(nil), r.examples[:topK]...)
}

func (r *Retriever) score(ex entity.PlanExample, tokens []string) float64 {
	text := strings.ToLower(searchText(ex))
	score := 0.0
	for _, token := range tokens {
		if n := strings.Count(text, token); n > 0 {
			score += 1.0 + math.Log1p(float64(n))
		}
	}
	// Small prior favoring higher-capacity plans on near-ties.
	score += 0.1 * float64(ex.Devices)
	return score
}

// ToPrompt renders the retrieved examples as a prompt block. The block is a
// pure function of the immutable corpus, so results are cached per query.
func (r *Retriever) ToPrompt(query string, topK int) string {
	key := fmt.Sprintf("%d|%s", topK, query)
	if cached, ok := r.promptCache.Get(key); ok {
		return cached.(string)
	}

	examples := r.Retrieve(query, topK)
	var text string
	if len(examples) == 0 {
		text = noExamplesPrompt
	} else {
		snippets := make([]string, 0, len(examples))
		for _, ex := range examples {
			snippets = append(snippets, promptSnippet(ex))
		}
		text = promptHeader + "\n" + strings.Join(snippets, "\n")
	}

	r.promptCache.Set(key, text, gocache.DefaultExpiration)
	return text
}

func promptSnippet(ex entity.PlanExample) string {
	addOnNames := make([]string, 0, len(ex.AddOns))
	for _, a := range ex.AddOns {
		addOnNames = append(addOnNames, a.Name)
	}
	addOnSummary := strings.Join(addOnNames, ", ")
	if addOnSummary == "" {
		addOnSummary = "None"
	}
	return fmt.Sprintf("- %s (%s)\n  tier: %s, devices: %d, quality: %s\n  price: %g %s, add-ons: %s\n  notes: %s",
		ex.Title, ex.Region, ex.Tier, ex.Devices, ex.VideoQuality,
		ex.Price.Monthly, ex.Price.Currency, addOnSummary, ex.Notes)
}
