package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/buildplan/internal/domain"
	"github.com/alexanderramin/buildplan/internal/intelligence"
)

const adviceWrapWidth = 88

var suggestionTitles = map[intelligence.SuggestionKind]string{
	intelligence.SuggestCostSavings:          "Cost Savings",
	intelligence.SuggestMaterialAlternatives: "Material Alternatives",
	intelligence.SuggestDesignImprovements:   "Design Improvements",
}

// FormatSuggestions renders advisor output, one box per kind.
func FormatSuggestions(suggestions []intelligence.Suggestion) string {
	boxes := make([]string, 0, len(suggestions))
	for _, s := range suggestions {
		title := suggestionTitles[s.Kind]
		if title == "" {
			title = string(s.Kind)
		}
		source := "LLM"
		if s.Source == "deterministic" {
			source = "Local"
		}
		body := indentWrapped(s.Text, 0, adviceWrapWidth) + "\n\n" + Dim("["+source+"]")
		boxes = append(boxes, RenderBox(title, body))
	}
	return strings.Join(boxes, "\n")
}

// FormatChat renders the last n chat messages, oldest first. n <= 0 shows
// all of them.
func FormatChat(messages []domain.ChatMessage, n int) string {
	if len(messages) == 0 {
		return Dim("No messages yet.")
	}
	if n > 0 && len(messages) > n {
		messages = messages[len(messages)-n:]
	}
	var b strings.Builder
	for i, m := range messages {
		if i > 0 {
			b.WriteString("\n")
		}
		who := StyleBlue.Render("you")
		if m.Sender == domain.SenderAdvisor {
			who = StylePurple.Render("advisor")
		}
		b.WriteString(fmt.Sprintf("%s %s\n", who, Dim(m.Timestamp)))
		b.WriteString(indentWrapped(m.Text, 2, adviceWrapWidth))
	}
	return b.String()
}

func indentWrapped(text string, indent, width int) string {
	prefix := strings.Repeat(" ", indent)
	lines := strings.Split(wrapText(text, width), "\n")
	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteString("\n")
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		b.WriteString(prefix)
		b.WriteString(line)
	}
	return b.String()
}

func wrapText(text string, width int) string {
	if width <= 0 {
		return strings.TrimSpace(text)
	}

	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))

	for _, line := range lines {
		words := strings.Fields(line)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		current := words[0]
		for _, word := range words[1:] {
			if len(current)+1+len(word) <= width {
				current += " " + word
				continue
			}
			out = append(out, current)
			current = word
		}
		out = append(out, current)
	}
	return strings.Join(out, "\n")
}
