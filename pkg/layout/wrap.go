package layout

import "strings"

// Wrap breaks text into lines of at most columns runes. Explicit newlines are
// kept, words are split on whitespace, and words longer than a line are
// hard-broken. Blank input yields no lines.
func Wrap(text string, columns int) []string {
	if columns < 1 {
		columns = WrapColumns
	}
	text = strings.NewReplacer("\r\n", "\n", "\r", "\n").Replace(text)
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		lines = append(lines, wrapParagraph(paragraph, columns)...)
	}
	return lines
}

func wrapParagraph(paragraph string, columns int) []string {
	words := strings.Fields(paragraph)
	if len(words) == 0 {
		return []string{""}
	}

	var (
		lines   []string
		current []rune
	)
	flush := func() {
		lines = append(lines, string(current))
		current = current[:0]
	}

	for _, word := range words {
		runes := []rune(word)
		for len(runes) > columns {
			if len(current) > 0 {
				flush()
			}
			lines = append(lines, string(runes[:columns]))
			runes = runes[columns:]
		}
		switch {
		case len(runes) == 0:
		case len(current) == 0:
			current = append(current, runes...)
		case len(current)+1+len(runes) <= columns:
			current = append(current, ' ')
			current = append(current, runes...)
		default:
			flush()
			current = append(current, runes...)
		}
	}
	if len(current) > 0 {
		flush()
	}
	return lines
}
