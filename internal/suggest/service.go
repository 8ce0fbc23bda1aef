package suggest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/brandbuddy-hq/brandbuddy-backend/pkg/logger"
	"github.com/brandbuddy-hq/brandbuddy-backend/pkg/openai"
)

var errNoAnalysisParsed = errors.New("completion contained no usable analysis")

// impactShare maps priority to the slice of inventory value at stake.
var impactShare = map[string]float64{
	PriorityHigh:   1.0,
	PriorityMedium: 0.3,
	PriorityLow:    0.1,
}

// Service builds per-item suggestions: LLM analysis with a template
// fallback, enriched with sales history when the view is configured.
type Service struct {
	llm     openai.Completer
	model   string
	history *HistoryClient
	log     *logger.Logger
}

// NewService wires the explainer. Both the completer and history client
// are optional.
func NewService(llm openai.Completer, model string, history *HistoryClient, log *logger.Logger) *Service {
	return &Service{llm: llm, model: model, history: history, log: log}
}

// Suggest produces the explanation payload for one item. The LLM and the
// sales-history view are both best-effort; a fully offline deployment
// still gets the template analysis.
func (s *Service) Suggest(ctx context.Context, req Request) Suggestion {
	item := req.ItemData
	priority := PriorityFor(item)

	historyLine := ""
	if s.history != nil {
		records, err := s.history.History(ctx, item.SKU)
		if err != nil {
			s.warn(ctx, "sales history unavailable", err)
		} else {
			historyLine = SummarizeHistory(records)
		}
	}

	text, actions := s.analyze(ctx, item, req.Page, historyLine)

	return Suggestion{
		SKU:             item.SKU,
		Text:            text,
		Priority:        priority,
		Actions:         actions,
		EstimatedImpact: estimatedImpact(item, priority),
	}
}

func (s *Service) analyze(ctx context.Context, item Item, page, historyLine string) (string, []string) {
	if s.llm == nil {
		return templateAnalysis(item, historyLine)
	}

	raw, err := s.llm.Complete(ctx, s.model, suggestionSystemPrompt(page), suggestionUserPrompt(item, historyLine))
	if err != nil {
		s.warn(ctx, "suggestion completion failed, using template", err)
		return templateAnalysis(item, historyLine)
	}

	analysis, actions, err := parseAnalysis(raw)
	if err != nil {
		s.warn(ctx, "suggestion completion unparseable, using template", err)
		return templateAnalysis(item, historyLine)
	}
	return analysis, actions
}

func (s *Service) warn(ctx context.Context, msg string, err error) {
	if s.log == nil {
		return
	}
	s.log.Warn(s.log.WithField(ctx, "error", err.Error()), msg)
}

func suggestionSystemPrompt(page string) string {
	area := "inventory"
	if page == "replenishment" {
		area = "replenishment"
	}
	return "You are a supply chain analyst advising on a single " + area + " item. " +
		`Respond with a JSON object only, no prose and no code fences, shaped exactly as ` +
		`{"analysis": string, "actions": [string, ...]}. The analysis must reference the ` +
		"item's concrete numbers. Provide two to four short actions."
}

func suggestionUserPrompt(item Item, historyLine string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "SKU: %s\nName: %s\nSupplier: %s\nUnits on hand: %d\nActive: %t\n",
		item.SKU, item.Name, item.Supplier, item.UnitQuantity, item.Active)
	if item.UnitCost != nil {
		fmt.Fprintf(&b, "Unit cost: $%.2f\nInventory value: $%.2f\n", *item.UnitCost, item.TotalValue())
	}
	if item.Status != "" {
		fmt.Fprintf(&b, "Status: %s\n", item.Status)
	}
	if historyLine != "" {
		fmt.Fprintf(&b, "%s\n", historyLine)
	}
	return b.String()
}

// parseAnalysis decodes the strict {analysis, actions} contract.
func parseAnalysis(raw string) (string, []string, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return "", nil, errNoAnalysisParsed
	}

	var decoded struct {
		Analysis string   `json:"analysis"`
		Actions  []string `json:"actions"`
	}
	if err := json.Unmarshal([]byte(raw[start:end+1]), &decoded); err != nil {
		return "", nil, err
	}

	analysis := strings.TrimSpace(decoded.Analysis)
	if analysis == "" || len(decoded.Actions) == 0 {
		return "", nil, errNoAnalysisParsed
	}
	return analysis, decoded.Actions, nil
}

// templateAnalysis is the deterministic fallback built from the item's own
// fields.
func templateAnalysis(item Item, historyLine string) (string, []string) {
	var text string
	var actions []string

	switch {
	case item.Active && item.UnitQuantity == 0:
		text = fmt.Sprintf("%s (%s) is out of stock. Every day without inventory is lost sales for this SKU.",
			item.Name, item.SKU)
		actions = []string{
			fmt.Sprintf("Place an expedited purchase order with %s", displaySupplier(item)),
			"Confirm lead time before committing promise dates",
		}
	case item.Active && item.UnitQuantity < lowStockThreshold:
		text = fmt.Sprintf("%s (%s) is down to %d units, below the %d-unit reorder line.",
			item.Name, item.SKU, item.UnitQuantity, lowStockThreshold)
		actions = []string{
			fmt.Sprintf("Reorder from %s this week", displaySupplier(item)),
			"Review recent sell-through before sizing the order",
		}
	case !item.Active:
		text = fmt.Sprintf("%s (%s) is inactive with %d units on hand, tying up capital without selling.",
			item.Name, item.SKU, item.UnitQuantity)
		actions = []string{
			"Decide between reactivating and liquidating the remaining units",
			"Check whether a replacement SKU covers this demand",
		}
	default:
		text = fmt.Sprintf("%s (%s) holds %d units and shows no immediate risk signal.",
			item.Name, item.SKU, item.UnitQuantity)
		actions = []string{
			"Keep the current replenishment cadence",
			"Re-check after the next receiving cycle",
		}
	}

	if historyLine != "" {
		text += " " + historyLine
	}
	return text, actions
}

func displaySupplier(item Item) string {
	if strings.TrimSpace(item.Supplier) == "" {
		return "the primary supplier"
	}
	return item.Supplier
}

// estimatedImpact converts priority and inventory value into the display
// dollar string.
func estimatedImpact(item Item, priority string) string {
	value := item.TotalValue()
	share := impactShare[priority]
	return "$" + formatDollars(int(math.Round(value*share)))
}

// formatDollars groups thousands with commas, e.g. 12500 -> "12,500".
func formatDollars(amount int) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	digits := fmt.Sprintf("%d", amount)
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(",")
		}
		b.WriteString(digits[i : i+3])
	}

	if negative {
		return "-" + b.String()
	}
	return b.String()
}
