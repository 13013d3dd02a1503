package domain

import "context"

// Chunk source tags recorded in vector store metadata.
const (
	SourceGuide    = "guide"
	SourceUserInfo = "user_info"
)

// Document represents a single guide file loaded into the system.
type Document struct {
	ID      string
	Path    string
	Content string
}

// Chunk is a bounded slice of source text used for indexing.
type Chunk struct {
	DocumentID string
	ChunkID    string
	Source     string
	Text       string
	Index      int
}

// SearchResult represents a matching chunk with a relevance score.
type SearchResult struct {
	Chunk Chunk
	Score float64
}

// Preferences holds the guest preferences attached to a booking.
type Preferences struct {
	RoomType            string   `json:"room_type"`
	Capacity            int      `json:"capacity"`
	Dietary             string   `json:"dietary"`
	SpecialRequests     []string `json:"special_requests"`
	PreferredActivities []string `json:"preferred_activities"`
	Children            bool     `json:"children"`
}

// Booking is a guest reservation record keyed by booking number.
// Records are loaded once at startup and never mutated.
type Booking struct {
	GuestName   string      `json:"guest_name"`
	GuestAge    int         `json:"guest_age"`
	RoomNumber  string      `json:"room_number"`
	CheckIn     string      `json:"check_in"`
	CheckOut    string      `json:"check_out"`
	Preferences Preferences `json:"preferences"`
}

// Embedder converts free text into a numeric vector representation.
type Embedder interface {
	Name() string
	Dimension() int
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Chunker splits documents into chunks suitable for retrieval indexing.
type Chunker interface {
	Chunk(document Document) ([]Chunk, error)
}

// VectorStore persists vectors and supports similarity search. The index is
// append-only; implementations must tolerate concurrent Insert and Search.
type VectorStore interface {
	Init(dimension int) error
	Insert(chunks []Chunk, vectors [][]float32) error
	Search(vector []float32, topK int) ([]SearchResult, error)
}

// Message is a single chat turn sent to or received from the chat model.
type Message struct {
	Role       string // system, user, assistant, tool
	Content    string
	ToolCalls  []ToolCall
	ToolCallID string
}

// FunctionCall carries the tool name and raw JSON arguments the model chose.
type FunctionCall struct {
	Name      string
	Arguments string
}

// ToolCall is one tool invocation requested by the chat model.
type ToolCall struct {
	ID       string
	Type     string
	Function FunctionCall
}

// ToolDescriptor describes a callable tool to the chat model.
// Parameters is a JSON Schema document.
type ToolDescriptor struct {
	Name        string
	Description string
	Parameters  string
}

// ChatResponse is the model's next message: either tool calls to execute or,
// when ToolCalls is empty, the final answer.
type ChatResponse struct {
	Content   string
	ToolCalls []ToolCall
}

// ChatModel performs a chat completion with tool-calling support.
type ChatModel interface {
	ChatWithTools(ctx context.Context, messages []Message, tools []ToolDescriptor) (*ChatResponse, error)
}
