package insights

import (
	"fmt"
	"strings"
)

const maxPromptSKURefs = 10

func systemPrompt(page string) string {
	var b strings.Builder
	b.WriteString("You are a ")
	b.WriteString(personaFor(page))
	b.WriteString(". Analyze the operational data and respond with a JSON array of at most ")
	fmt.Fprintf(&b, "%d insight objects. Each object must have exactly these fields: ", maxInsights)
	b.WriteString(`"title" (string, 80 chars max), "description" (string referencing concrete `)
	b.WriteString(`suppliers, SKUs, dollar figures, or percentages from the data), `)
	b.WriteString(`"severity" (one of "critical", "warning", "info"), `)
	b.WriteString(`"dollarImpact" (non-negative integer), `)
	fmt.Fprintf(&b, `"suggestedActions" (array of %d to %d short action strings). `,
		minSuggestedActions, maxSuggestedActions)
	b.WriteString("Respond with the JSON array only, no prose and no code fences.")
	return b.String()
}

// userPrompt renders the summary as a deterministic data dump: same
// summary, same prompt, so cached completions stay valid.
func userPrompt(s Summary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Brand: %s\nPage: %s\n", s.Brand, s.Page)

	if len(s.Headline) > 0 {
		b.WriteString("\nHeadline KPIs:\n")
		for _, line := range s.Headline {
			fmt.Fprintf(&b, "- %s: %s\n", line.Label, line.Value)
		}
	}

	if len(s.TopSuppliers) > 0 {
		fmt.Fprintf(&b, "\nTop suppliers by issue count (%d affected in total):\n", s.AffectedSuppliers)
		for _, supplier := range s.TopSuppliers {
			fmt.Fprintf(&b, "- %s: %d issues\n", supplier.Supplier, supplier.IssueCount)
		}
	}

	if s.IssueSummary != "" {
		fmt.Fprintf(&b, "\nIssue breakdown: %s\n", s.IssueSummary)
	}

	if len(s.SKURefs) > 0 {
		refs := s.SKURefs
		if len(refs) > maxPromptSKURefs {
			refs = refs[:maxPromptSKURefs]
		}
		fmt.Fprintf(&b, "\nAffected SKUs: %s\n", strings.Join(refs, ", "))
	}

	return b.String()
}
