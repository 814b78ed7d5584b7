package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/goliatone/go-formpdf/pkg/contact"
	"github.com/goliatone/go-formpdf/pkg/layout"
)

const labelWidth = 16

// Preview renders a record as a card of "Label: value" rows. The
// description wraps at the same width as the PDF layout.
func Preview(rec contact.Record, styles Styles) string {
	blocks := []string{styles.Title.Render(contact.Title)}
	for _, entry := range rec.Normalize().Entries() {
		label := styles.Label.Render(entry.Label + ":")
		if entry.Field == contact.FieldDescription {
			lines := make([]string, 0, 4)
			for _, line := range layout.Wrap(entry.Value, layout.WrapColumns) {
				lines = append(lines, styles.Value.Render(line))
			}
			blocks = append(blocks, label, lipgloss.JoinVertical(lipgloss.Left, lines...))
			continue
		}
		blocks = append(blocks, lipgloss.JoinHorizontal(lipgloss.Top, label, styles.Value.Render(entry.Value)))
	}
	return styles.Card.Render(lipgloss.JoinVertical(lipgloss.Left, blocks...))
}
