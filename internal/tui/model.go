// Package tui implements the terminal chat client for the concierge API.
package tui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Client posts guest questions to a running concierge server.
type Client struct {
	baseURL       string
	bookingNumber string
	http          *http.Client
}

func NewClient(baseURL, bookingNumber string) *Client {
	return &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		bookingNumber: bookingNumber,
		http:          &http.Client{Timeout: 120 * time.Second},
	}
}

// Ask sends one question and returns the assistant's reply. Error replies
// from the server are returned as display text, not as errors, so the
// transcript shows them inline.
func (c *Client) Ask(query string) (string, error) {
	body, _ := json.Marshal(map[string]string{
		"query":          query,
		"booking_number": c.bookingNumber,
	})
	resp, err := c.http.Post(c.baseURL+"/ask", "application/json", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var out struct {
		Status   string `json:"status"`
		Response string `json:"response"`
		Message  string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if out.Status != "success" {
		return out.Message, nil
	}
	return out.Response, nil
}

type turn struct {
	question string
	answer   string
}

// Model is the Bubble Tea model for the chat client.
type Model struct {
	client   *Client
	input    textinput.Model
	viewport viewport.Model
	turns    []turn
	status   string
	ready    bool
}

// New creates a new chat model instance.
func New(client *Client) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask the concierge and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{client: client, input: ti, viewport: vp, status: "Connected. Ask away."}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, th := transcriptBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 2 + qh + 1 // header, status, input frame, spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-th)
		m.viewport.SetContent(m.renderTranscript())
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			if q != "" {
				answer, err := m.client.Ask(q)
				if err != nil {
					m.status = "Error: " + err.Error()
				} else {
					m.turns = append(m.turns, turn{question: q, answer: answer})
					m.status = fmt.Sprintf("%d turns", len(m.turns))
					m.input.SetValue("")
				}
				m.viewport.SetContent(m.renderTranscript())
				m.viewport.GotoBottom()
				return m, nil
			}
		case "up":
			m.viewport.LineUp(1)
			return m, nil
		case "down":
			m.viewport.LineDown(1)
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the chat layout and transcript.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Hotel Concierge")
	transcript := transcriptBoxStyle.Render(m.viewport.View())
	input := queryBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	return header + "\n" + transcript + "\n" + input + "\n" + status
}

func (m Model) renderTranscript() string {
	if len(m.turns) == 0 {
		return "No conversation yet."
	}
	var b strings.Builder
	for i, t := range m.turns {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(questionStyle.Render("You: " + t.question))
		b.WriteString("\n")
		b.WriteString("Concierge: " + t.answer)
	}
	return b.String()
}

var (
	transcriptBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	questionStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
)

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
