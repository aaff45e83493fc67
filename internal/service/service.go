package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/TiberiuRabi/LLM-Library/internal/decision"
	"github.com/TiberiuRabi/LLM-Library/internal/domain"
)

// ErrNoMatches signals that retrieval produced zero candidates. It maps to a
// 404 with user-correctable guidance.
var ErrNoMatches = errors.New("Nicio potrivire găsită. Încearcă o altă temă sau adaugă mai multe cărți în dataset.")

// ErrNoTitle signals that even the decision fallback yielded no title. The
// fallback guarantees a title, so this guards an unreachable state.
var ErrNoTitle = errors.New("Răspunsul de la LLM nu a conținut un titlu valid.")

const noSummaryNote = "(Nu am găsit rezumatul complet pentru această carte.)"

// Recommendation is the assembled answer for one query.
type Recommendation struct {
	RecommendedTitle string   `json:"recommended_title"`
	Message          string   `json:"message"`
	Alternatives     []string `json:"alternatives"`
}

// Retriever finds candidate books for a query.
type Retriever interface {
	Search(ctx context.Context, query string, k int) ([]domain.CandidateHit, error)
}

// Chooser picks one candidate and a rationale.
type Chooser interface {
	Choose(ctx context.Context, query string, candidates []domain.CandidateHit) (decision.Outcome, error)
}

// SummarySource resolves a title to its full summary, empty when unknown.
type SummarySource interface {
	GetSummaryByTitle(title string) (string, error)
}

// Recommender orchestrates retrieval, the model decision, summary lookup and
// message assembly.
type Recommender struct {
	retriever Retriever
	chooser   Chooser
	summaries SummarySource
	defaultK  int
	log       zerolog.Logger
}

// New creates a Recommender with injected collaborators.
func New(retriever Retriever, chooser Chooser, summaries SummarySource, defaultK int, log zerolog.Logger) *Recommender {
	if defaultK <= 0 {
		defaultK = 3
	}
	return &Recommender{
		retriever: retriever,
		chooser:   chooser,
		summaries: summaries,
		defaultK:  defaultK,
		log:       log,
	}
}

// Recommend runs the full flow for one query. It returns ErrNoMatches when
// retrieval finds nothing and ErrNoTitle if no title survives the decision
// fallback; any other failure propagates unclassified.
func (r *Recommender) Recommend(ctx context.Context, query string, k int) (*Recommendation, error) {
	if k <= 0 {
		k = r.defaultK
	}

	hits, err := r.retriever.Search(ctx, query, k)
	if err != nil {
		return nil, err
	}
	if len(hits) == 0 {
		return nil, ErrNoMatches
	}

	outcome, err := r.chooser.Choose(ctx, query, hits)
	if err != nil {
		return nil, err
	}
	if outcome.Title == "" {
		return nil, ErrNoTitle
	}
	if outcome.FellBack {
		r.log.Warn().Str("query", query).Str("title", outcome.Title).
			Msg("model reply unusable, fell back to nearest candidate")
	}

	full, err := r.summaries.GetSummaryByTitle(outcome.Title)
	if err != nil {
		return nil, err
	}
	if full == "" {
		// Secondary source: the metadata carried by the matching hit.
		for _, h := range hits {
			if strings.EqualFold(h.Title, outcome.Title) {
				full = h.Meta.FullSummary
				break
			}
		}
	}

	message := fmt.Sprintf("Îți recomand **%s**. %s\n\n", outcome.Title, outcome.Why)
	if full != "" {
		message += "**Rezumat complet:** " + full
	} else {
		message += noSummaryNote
	}

	alternatives := make([]string, 0, len(hits))
	for _, h := range hits {
		if !strings.EqualFold(h.Title, outcome.Title) {
			alternatives = append(alternatives, h.Title)
		}
	}

	r.log.Info().Str("query", query).Int("k", k).
		Str("recommended", outcome.Title).Int("alternatives", len(alternatives)).
		Bool("fallback", outcome.FellBack).Msg("recommendation produced")

	return &Recommendation{
		RecommendedTitle: outcome.Title,
		Message:          message,
		Alternatives:     alternatives,
	}, nil
}
