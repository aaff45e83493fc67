package decision

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/TiberiuRabi/LLM-Library/internal/domain"
)

const systemPrompt = "Ești un bibliotecar prietenos. Ai primit o întrebare și o listă de cărți candidate. " +
	"Alege o singură carte care se potrivește cel mai bine cu tema, apoi răspunde cu JSON: " +
	"{\"title\": str, \"why\": str}. Răspuns scurt (2-4 propoziții)."

// FallbackWhy is the fixed rationale used when the model reply cannot be
// trusted and the first candidate is chosen instead.
const FallbackWhy = "Se potrivește cel mai bine dintre rezultatele recuperate."

const temperature = 0.5

// ErrNoCandidates is returned when Choose is invoked with an empty candidate
// list. Callers must check retrieval results before asking for a decision.
var ErrNoCandidates = errors.New("no candidates to choose from")

// Outcome is the result of a decision. FellBack marks the deterministic
// local substitute applied when the model reply was unusable, so the branch
// stays observable to callers and tests.
type Outcome struct {
	Title    string
	Why      string
	FellBack bool
}

// Maker asks the chat model to pick the best candidate for a query.
type Maker struct {
	chat domain.ChatModel
}

// NewMaker creates a Maker with an injected chat collaborator.
func NewMaker(chat domain.ChatModel) *Maker {
	return &Maker{chat: chat}
}

// Choose sends the fixed librarian exchange to the chat model and parses its
// JSON reply. A reply that is not valid JSON, lacks a title, or names a title
// outside the candidate set falls back to the first candidate; the fallback
// never fails. Transport errors from the model propagate unchanged.
func (m *Maker) Choose(ctx context.Context, query string, candidates []domain.CandidateHit) (Outcome, error) {
	if len(candidates) == 0 {
		return Outcome{}, ErrNoCandidates
	}
	titles := make([]string, len(candidates))
	for i, c := range candidates {
		titles[i] = c.Title
	}
	titleList, _ := json.Marshal(titles)
	reply, err := m.chat.Complete(ctx, domain.Completion{
		Messages: []domain.Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: fmt.Sprintf("Întrebare: %s\nCandidaturi: %s", query, titleList)},
		},
		Temperature: temperature,
		ForceJSON:   true,
	})
	if err != nil {
		return Outcome{}, fmt.Errorf("asking chat model: %w", err)
	}

	var parsed struct {
		Title string `json:"title"`
		Why   string `json:"why"`
	}
	if err := json.Unmarshal([]byte(reply), &parsed); err != nil || parsed.Title == "" || !inSet(titles, parsed.Title) {
		return Outcome{Title: titles[0], Why: FallbackWhy, FellBack: true}, nil
	}
	return Outcome{Title: parsed.Title, Why: parsed.Why}, nil
}

func inSet(titles []string, title string) bool {
	for _, t := range titles {
		if strings.EqualFold(strings.TrimSpace(t), strings.TrimSpace(title)) {
			return true
		}
	}
	return false
}
