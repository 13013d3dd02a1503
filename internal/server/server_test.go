package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"concierge/internal/booking"
	"concierge/internal/chunker"
	"concierge/internal/domain"
	"concierge/internal/ingest"
	"concierge/internal/service"
	"concierge/internal/vectorstore/memory"
)

type fixedEmbedder struct{}

func (fixedEmbedder) Name() string   { return "fixed" }
func (fixedEmbedder) Dimension() int { return 3 }

func (fixedEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	return []float32{1, float32(len(text) % 5), 0}, nil
}

type cannedModel struct {
	answer string
	calls  int
}

func (m *cannedModel) ChatWithTools(_ context.Context, _ []domain.Message, _ []domain.ToolDescriptor) (*domain.ChatResponse, error) {
	m.calls++
	return &domain.ChatResponse{Content: m.answer}, nil
}

func newTestServer(t *testing.T, model *cannedModel) *Server {
	t.Helper()
	dir := t.TempDir()
	guide := "Breakfast is served from 7:00 to 10:00. The garden restaurant offers vegetarian dishes daily."
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hotel_guide.txt"), []byte(guide), 0o644))

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
	concierge := service.NewConcierge(
		ingest.NewLoader(dir),
		chunker.NewCharacterChunker(1000, 200),
		fixedEmbedder{},
		memory.NewStore(),
		bookings,
		model,
		service.Config{MaxIterations: 5},
	)
	require.NoError(t, concierge.IngestGuides(context.Background()))
	return New(concierge)
}

func postAsk(t *testing.T, s *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/ask", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)
	return rec
}

func TestAskPlainQuery(t *testing.T) {
	model := &cannedModel{answer: "Breakfast is served from 7 to 10."}
	s := newTestServer(t, model)

	rec := postAsk(t, s, `{"query":"What are the breakfast hours?"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Status   string `json:"status"`
		Response string `json:"response"`
		Query    string `json:"query"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "Breakfast is served from 7 to 10.", resp.Response)
	assert.Equal(t, "What are the breakfast hours?", resp.Query)
}

func TestAskWithBookingNumber(t *testing.T) {
	model := &cannedModel{answer: "The garden restaurant has great vegetarian options."}
	s := newTestServer(t, model)

	rec := postAsk(t, s, `{"query":"Where should I have dinner?","booking_number":"BK001"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Status string `json:"status"`
		Query  string `json:"query"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Contains(t, resp.Query, "Emma Thompson")
	assert.Contains(t, resp.Query, "vegetarian")
}

func TestAskUnknownBookingIsClientError(t *testing.T) {
	model := &cannedModel{answer: "unused"}
	s := newTestServer(t, model)

	rec := postAsk(t, s, `{"query":"Where should I eat?","booking_number":"BK999"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Contains(t, resp.Message, "BK999")
	assert.Equal(t, 0, model.calls)
}

func TestAskEmptyQuery(t *testing.T) {
	model := &cannedModel{answer: "unused"}
	s := newTestServer(t, model)

	rec := postAsk(t, s, `{"query":"  "}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Query cannot be empty", resp.Message)
	assert.Equal(t, 0, model.calls)
}

func TestAskMalformedBody(t *testing.T) {
	s := newTestServer(t, &cannedModel{answer: "unused"})

	rec := postAsk(t, s, `{"query":`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Request body must be valid JSON")
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, &cannedModel{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)
}

func TestHello(t *testing.T) {
	s := newTestServer(t, &cannedModel{})

	req := httptest.NewRequest(http.MethodGet, "/hello", nil)
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"version":"1.0.0"`)
	assert.Contains(t, rec.Body.String(), "/ask [POST]")
}

func TestAddr(t *testing.T) {
	assert.Equal(t, "0.0.0.0:5001", Addr("0.0.0.0", 5001))
}
