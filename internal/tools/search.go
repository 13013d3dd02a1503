package tools

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"concierge/internal/domain"
)

// NoResults is returned verbatim when a search matches nothing.
const NoResults = "No relevant information found."

const searchTopK = 4

// Search retrieves the most relevant guide chunks for a free-text query.
type Search struct {
	embedder domain.Embedder
	store    domain.VectorStore
}

func NewSearch(embedder domain.Embedder, store domain.VectorStore) *Search {
	return &Search{embedder: embedder, store: store}
}

func (t *Search) Name() string { return "SearchInfo" }

func (t *Search) Description() string {
	return "Useful for searching information in the guest guides. Input should be a specific question or search query."
}

func (t *Search) Parameters() string {
	return `{"type":"object","properties":{"query":{"type":"string","description":"A specific question or search query"}},"required":["query"]}`
}

// Run performs a similarity search and concatenates the top matches with a
// blank-line separator. Internal failures are reported as a descriptive
// string so the reasoning loop treats them as an unhelpful observation
// rather than a crash.
func (t *Search) Run(ctx context.Context, input string) (string, error) {
	query := stringArg(input, "query")
	result := t.SearchText(ctx, query)
	return result, nil
}

// SearchText is the raw search contract: query in, concatenated chunks out.
func (t *Search) SearchText(ctx context.Context, query string) string {
	vector, err := t.embedder.Embed(ctx, query)
	if err != nil {
		slog.Error("search embedding failed", "error", err)
		return fmt.Sprintf("Error during search: %v", err)
	}
	results, err := t.store.Search(vector, searchTopK)
	if err != nil {
		slog.Error("search failed", "error", err)
		return fmt.Sprintf("Error during search: %v", err)
	}
	if len(results) == 0 {
		return NoResults
	}
	texts := make([]string, len(results))
	for i, r := range results {
		texts[i] = r.Chunk.Text
	}
	return strings.Join(texts, "\n\n")
}

// AddToStore embeds new content and inserts it into the vector index so
// subsequent searches can surface it. Failures here propagate; this path
// has no fallback consumer.
func (t *Search) AddToStore(ctx context.Context, content, source, id string) error {
	vector, err := t.embedder.Embed(ctx, content)
	if err != nil {
		return fmt.Errorf("failed to embed content: %w", err)
	}
	chunk := domain.Chunk{
		DocumentID: id,
		ChunkID:    id,
		Source:     source,
		Text:       content,
	}
	if err := t.store.Insert([]domain.Chunk{chunk}, [][]float32{vector}); err != nil {
		return fmt.Errorf("failed to insert content: %w", err)
	}
	return nil
}
