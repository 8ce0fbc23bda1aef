package insights

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/brandbuddy-hq/brandbuddy-backend/pkg/logger"
	"github.com/brandbuddy-hq/brandbuddy-backend/pkg/openai"
)

var timeNowUTC = func() time.Time { return time.Now().UTC() }

var errNoInsightsParsed = errors.New("completion contained no usable insights")

// Service orchestrates insight generation: the LLM path when a completer
// is wired, the rule path otherwise or on any LLM failure. The LLM is
// never on the critical path; Generate always returns a usable list.
type Service struct {
	llm   openai.Completer
	model string
	log   *logger.Logger
}

// NewService wires the orchestrator. A nil completer pins the service to
// the rule path.
func NewService(llm openai.Completer, model string, log *logger.Logger) *Service {
	return &Service{llm: llm, model: model, log: log}
}

// Generate produces 0-5 insights for a page summary.
func (s *Service) Generate(ctx context.Context, summary Summary) []Insight {
	now := timeNowUTC()

	if s.llm == nil {
		return RuleInsights(summary, now)
	}

	raw, err := s.llm.Complete(ctx, s.model, systemPrompt(summary.Page), userPrompt(summary))
	if err != nil {
		s.warn(ctx, "insight completion failed, using rule path", err)
		return RuleInsights(summary, now)
	}

	parsed, err := parseInsights(raw, now)
	if err != nil {
		s.warn(ctx, "insight completion unparseable, using rule path", err)
		return RuleInsights(summary, now)
	}
	return parsed
}

// DailyBrief renders a short operations narrative for the insights page.
// Falls back to a deterministic sentence built from the summary.
func (s *Service) DailyBrief(ctx context.Context, summary Summary) string {
	if s.llm != nil {
		system := "You are a " + personaFor(summary.Page) +
			". Write a daily operations brief of two to three sentences, plain text, " +
			"referencing the concrete numbers provided. No markdown."
		brief, err := s.llm.Complete(ctx, s.model, system, userPrompt(summary))
		if err == nil {
			if trimmed := strings.TrimSpace(brief); trimmed != "" {
				return trimmed
			}
		} else {
			s.warn(ctx, "daily brief completion failed, using fallback", err)
		}
	}
	return fallbackBrief(summary)
}

func fallbackBrief(summary Summary) string {
	var b strings.Builder
	b.WriteString("Operations summary for ")
	b.WriteString(summary.Brand)
	b.WriteString(".")
	for _, line := range summary.Headline {
		b.WriteString(" ")
		b.WriteString(line.Label)
		b.WriteString(": ")
		b.WriteString(line.Value)
		b.WriteString(".")
	}
	if summary.IssueSummary != "" {
		b.WriteString(" Open issues: ")
		b.WriteString(summary.IssueSummary)
		b.WriteString(".")
	}
	return b.String()
}

func (s *Service) warn(ctx context.Context, msg string, err error) {
	if s.log == nil {
		return
	}
	s.log.Warn(s.log.WithField(ctx, "error", err.Error()), msg)
}

type rawInsight struct {
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Severity         string   `json:"severity"`
	DollarImpact     int      `json:"dollarImpact"`
	SuggestedActions []string `json:"suggestedActions"`
}

// parseInsights decodes an LLM reply into validated insights. The reply
// must contain a JSON array; items with a bad severity, empty title, or
// too few actions are dropped rather than repaired.
func parseInsights(raw string, now time.Time) ([]Insight, error) {
	body := extractJSONArray(raw)
	if body == "" {
		return nil, errNoInsightsParsed
	}

	var decoded []rawInsight
	if err := json.Unmarshal([]byte(body), &decoded); err != nil {
		return nil, err
	}

	var result []Insight
	for _, item := range decoded {
		title := strings.TrimSpace(item.Title)
		if title == "" || !validSeverity(item.Severity) || len(item.SuggestedActions) < minSuggestedActions {
			continue
		}
		// Truncate on rune boundaries so a multi-byte title is not cut
		// mid-character.
		if runes := []rune(title); len(runes) > maxTitleLength {
			title = string(runes[:maxTitleLength])
		}
		actions := item.SuggestedActions
		if len(actions) > maxSuggestedActions {
			actions = actions[:maxSuggestedActions]
		}
		impact := item.DollarImpact
		if impact < 0 {
			impact = 0
		}
		result = append(result, Insight{
			ID:               uuid.NewString(),
			Title:            title,
			Description:      strings.TrimSpace(item.Description),
			Severity:         item.Severity,
			DollarImpact:     impact,
			SuggestedActions: actions,
			CreatedAt:        timestamp(now),
			Source:           SourceAI,
		})
		if len(result) == maxInsights {
			break
		}
	}
	if len(result) == 0 {
		return nil, errNoInsightsParsed
	}
	return result, nil
}

// extractJSONArray tolerates code fences and surrounding prose by slicing
// from the first '[' to the last ']'.
func extractJSONArray(raw string) string {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return raw[start : end+1]
}
