package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"concierge/internal/booking"
	"concierge/internal/chunker"
	"concierge/internal/domain"
	"concierge/internal/ingest"
	"concierge/internal/vectorstore/memory"
)

type fixedEmbedder struct{}

func (fixedEmbedder) Name() string   { return "fixed" }
func (fixedEmbedder) Dimension() int { return 3 }

func (fixedEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	return []float32{1, float32(len(text) % 7), 0}, nil
}

// scriptedModel answers every chat call with the same canned response and
// counts how often it was consulted.
type scriptedModel struct {
	answer string
	err    error
	calls  int
	inputs []string
}

func (m *scriptedModel) ChatWithTools(_ context.Context, messages []domain.Message, _ []domain.ToolDescriptor) (*domain.ChatResponse, error) {
	m.calls++
	for _, msg := range messages {
		if msg.Role == "user" {
			m.inputs = append(m.inputs, msg.Content)
		}
	}
	if m.err != nil {
		return nil, m.err
	}
	return &domain.ChatResponse{Content: m.answer}, nil
}

func testGuideDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	guide := "Breakfast is served from 7:00 to 10:00 in the main restaurant. " +
		"The spa offers vegetarian-friendly wellness menus on request."
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hotel_guide.txt"), []byte(guide), 0o644))
	return dir
}

func newTestConcierge(t *testing.T, model domain.ChatModel) *Concierge {
	t.Helper()
	bookings := booking.NewStore(map[string]domain.Booking{
		"BK001": {
			GuestName:  "Emma Thompson",
			GuestAge:   34,
			RoomNumber: "204",
			Preferences: domain.Preferences{
				RoomType: "Deluxe Sea View",
				Capacity: 2,
				Dietary:  "vegetarian",
			},
		},
	})
	c := NewConcierge(
		ingest.NewLoader(testGuideDir(t)),
		chunker.NewCharacterChunker(1000, 200),
		fixedEmbedder{},
		memory.NewStore(),
		bookings,
		model,
		Config{MaxIterations: 5},
	)
	require.NoError(t, c.IngestGuides(context.Background()))
	return c
}

func TestAskWithoutBookingKeepsQueryUnchanged(t *testing.T) {
	model := &scriptedModel{answer: "Breakfast runs 7 to 10."}
	c := newTestConcierge(t, model)

	answer, finalQuery, err := c.Ask(context.Background(), "When is breakfast?", "")
	require.NoError(t, err)
	assert.Equal(t, "Breakfast runs 7 to 10.", answer)
	assert.Equal(t, "When is breakfast?", finalQuery)
	assert.Equal(t, 1, model.calls)
}

func TestAskWithBookingAugmentsQuery(t *testing.T) {
	model := &scriptedModel{answer: "I recommend the garden restaurant."}
	c := newTestConcierge(t, model)

	_, finalQuery, err := c.Ask(context.Background(), "Where should I eat?", "BK001")
	require.NoError(t, err)
	assert.Contains(t, finalQuery, "Emma Thompson")
	assert.Contains(t, finalQuery, "vegetarian")
	assert.Contains(t, finalQuery, "Guest's Question: Where should I eat?")
	require.Len(t, model.inputs, 1)
	assert.Equal(t, finalQuery, model.inputs[0])
}

func TestAskUnknownBookingFailsBeforeModelCall(t *testing.T) {
	model := &scriptedModel{answer: "unused"}
	c := newTestConcierge(t, model)

	_, _, err := c.Ask(context.Background(), "Where should I eat?", "BK999")
	var bookingErr *BookingError
	require.ErrorAs(t, err, &bookingErr)
	assert.Contains(t, bookingErr.Message, "Booking number 'BK999' not found")
	assert.Equal(t, 0, model.calls)
}

func TestAskEmptyQuery(t *testing.T) {
	model := &scriptedModel{answer: "unused"}
	c := newTestConcierge(t, model)

	_, _, err := c.Ask(context.Background(), "   ", "")
	require.ErrorIs(t, err, ErrEmptyQuery)
	assert.Equal(t, 0, model.calls)
}

func TestAskModelFailurePropagates(t *testing.T) {
	model := &scriptedModel{err: errors.New("rate limited")}
	c := newTestConcierge(t, model)

	_, _, err := c.Ask(context.Background(), "When is breakfast?", "")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "rate limited"))
}

func TestIngestGuidesMissingDir(t *testing.T) {
	c := NewConcierge(
		ingest.NewLoader(filepath.Join(t.TempDir(), "missing")),
		chunker.NewCharacterChunker(1000, 200),
		fixedEmbedder{},
		memory.NewStore(),
		booking.NewStore(nil),
		&scriptedModel{},
		Config{},
	)
	err := c.IngestGuides(context.Background())
	require.ErrorIs(t, err, ingest.ErrNoDocuments)
}
