// Package service orchestrates ingestion and request handling for the
// concierge.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"concierge/internal/agent"
	"concierge/internal/booking"
	"concierge/internal/domain"
	"concierge/internal/ingest"
	"concierge/internal/tools"
)

// ErrEmptyQuery reports a request whose query is empty after trimming.
// It is raised before any model call is made.
var ErrEmptyQuery = errors.New("query cannot be empty")

// BookingError carries a formatted booking-lookup failure to the request
// boundary, where it maps to a client error rather than a server fault.
type BookingError struct {
	Message string
}

func (e *BookingError) Error() string { return e.Message }

// Config holds service-level settings.
type Config struct {
	MaxIterations int
}

// Concierge wires the ingestion pipeline, the tools and the reasoning loop
// into one request-serving unit. It is built once at startup and shared.
type Concierge struct {
	loader   *ingest.Loader
	chunker  domain.Chunker
	embedder domain.Embedder
	store    domain.VectorStore
	search   *tools.Search
	userInfo *tools.UserInfo
	agent    *agent.Agent
}

func NewConcierge(
	loader *ingest.Loader,
	chunker domain.Chunker,
	embedder domain.Embedder,
	store domain.VectorStore,
	bookings *booking.Store,
	model domain.ChatModel,
	cfg Config,
) *Concierge {
	search := tools.NewSearch(embedder, store)
	userInfo := tools.NewUserInfo(bookings, search)
	loop := agent.New(model, agent.Config{
		SystemPrompt:  agent.SystemPrompt,
		MaxIterations: cfg.MaxIterations,
	}, []tools.Tool{search, userInfo})

	return &Concierge{
		loader:   loader,
		chunker:  chunker,
		embedder: embedder,
		store:    store,
		search:   search,
		userInfo: userInfo,
		agent:    loop,
	}
}

// IngestGuides loads the guide corpus, chunks it and fills the vector
// index. It runs once at startup; an empty corpus is fatal.
func (c *Concierge) IngestGuides(ctx context.Context) error {
	documents, err := c.loader.Load()
	if err != nil {
		return err
	}

	var chunks []domain.Chunk
	for _, doc := range documents {
		docChunks, err := c.chunker.Chunk(doc)
		if err != nil {
			return fmt.Errorf("failed to chunk %s: %w", doc.Path, err)
		}
		chunks = append(chunks, docChunks...)
	}
	if len(chunks) == 0 {
		return ingest.ErrNoDocuments
	}

	vectors := make([][]float32, len(chunks))
	for i := range chunks {
		vector, err := c.embedder.Embed(ctx, chunks[i].Text)
		if err != nil {
			return fmt.Errorf("failed to embed chunk %s: %w", chunks[i].ChunkID, err)
		}
		vectors[i] = vector
	}

	// Dimension is known only after the first embedding call.
	if err := c.store.Init(c.embedder.Dimension()); err != nil {
		return fmt.Errorf("failed to init vector store: %w", err)
	}
	if err := c.store.Insert(chunks, vectors); err != nil {
		return fmt.Errorf("failed to index chunks: %w", err)
	}
	slog.Info("ingested guide corpus", "documents", len(documents), "chunks", len(chunks))
	return nil
}

// Ask answers one guest question. When a booking number is given, the query
// sent to the reasoning loop is augmented with the formatted guest context;
// the augmented query is returned alongside the answer so callers can echo
// what was actually asked.
func (c *Concierge) Ask(ctx context.Context, query, bookingNumber string) (answer, finalQuery string, err error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", "", ErrEmptyQuery
	}

	finalQuery = query
	if bookingNumber != "" {
		result := c.userInfo.Lookup(ctx, bookingNumber)
		if result.Err != nil {
			return "", "", &BookingError{Message: tools.FormatUserInfo(result)}
		}
		finalQuery = composeQuery(tools.FormatUserInfo(result), query)
	}

	slog.Info("running reasoning loop", "query", truncate(query, 80), "booking", bookingNumber)
	answer, err = c.agent.Run(ctx, finalQuery)
	if err != nil {
		return "", "", err
	}
	return answer, finalQuery, nil
}

func composeQuery(guestInfo, question string) string {
	return fmt.Sprintf(`Based on the following guest information and hotel guide, provide a personalized response:

%s

Guest's Question: %s

Remember to:
1. Use the SearchInfo tool to find relevant information from the hotel guide
2. Consider the guest's preferences and details when providing recommendations
3. Speak directly to the guest
4. Provide specific, detailed recommendations`, guestInfo, question)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
