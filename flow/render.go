package flow

import (
	"fmt"
	"strings"

	"freelancebot/history"
)

const historySnippetLimit = 100

// renderHistory formats recent records newest-first for display.
func renderHistory(records []history.Record) string {
	var b strings.Builder
	b.WriteString(textHistoryHeader)
	for i, rec := range records {
		label, ok := kindLabels[rec.Kind]
		if !ok {
			label = string(rec.Kind)
		}
		fmt.Fprintf(&b, "%d. %s\n", i+1, label)
		fmt.Fprintf(&b, "   📅 %s\n", rec.Date.Format("02.01.2006 15:04"))
		fmt.Fprintf(&b, "   📥 Ввод: %s\n", snippet(rec.Input, historySnippetLimit))
		fmt.Fprintf(&b, "   📤 Результат: %s\n\n", snippet(rec.Output, historySnippetLimit))
	}
	return b.String()
}

func snippet(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit]) + "..."
}
