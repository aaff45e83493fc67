package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/TiberiuRabi/LLM-Library/internal/service"
)

// RecommendPort is the TUI-facing subset of the recommendation service.
type RecommendPort interface {
	Recommend(ctx context.Context, query string, k int) (*service.Recommendation, error)
}

// Model is the Bubble Tea model for the interactive librarian client.
type Model struct {
	service RecommendPort
	input   textinput.Model
	view    viewport.Model
	result  *service.Recommendation
	status  string
	ready   bool
}

// New creates a new TUI model instance.
func New(svc RecommendPort) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Descrie tema și apasă Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{service: svc, input: ti, view: vp, status: "Gata. Scrie o temă pentru o recomandare."}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := resultBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 1 + 1 + qh + 1 // header + status + query box + spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.view.Width = max(20, msg.Width)
		m.view.Height = max(3, vh-rh)
		m.view.SetContent(m.renderResult())
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		if msg.String() == "enter" {
			q := strings.TrimSpace(m.input.Value())
			if q != "" {
				rec, err := m.service.Recommend(context.Background(), q, 0)
				if err != nil {
					m.status = "Eroare: " + err.Error()
					m.result = nil
				} else {
					m.status = fmt.Sprintf("Recomandare pentru %q", q)
					m.result = rec
				}
				m.view.SetContent(m.renderResult())
				return m, nil
			}
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the TUI layout and the current recommendation.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Smart Librarian")
	input := queryBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	result := resultBoxStyle.Render(m.view.View())
	return header + "\n" + result + "\n" + input + "\n" + status
}

func (m Model) renderResult() string {
	if m.result == nil {
		return "Nicio recomandare încă."
	}
	title := titleStyle.Render(m.result.RecommendedTitle)
	body := m.result.Message
	if len(m.result.Alternatives) > 0 {
		body += "\n\nAlternative: " + strings.Join(m.result.Alternatives, ", ")
	}
	return title + "\n\n" + body
}

var (
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	titleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
)

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
