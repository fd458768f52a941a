package table

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// WrapCell wraps cell text to the given column width.
//
// Words that fit are never split. A word wider than the column is cut into
// chunks of width-1 columns, each but the last followed by a hyphen, before
// the words are greedily packed into lines. Empty text yields one empty line.
func WrapCell(text string, width int) []string {
	width = max(width, 1)

	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	tokens := make([]string, 0, len(words))
	for _, w := range words {
		if runewidth.StringWidth(w) <= width {
			tokens = append(tokens, w)
			continue
		}
		chunks := chunk(w, max(width-1, 1))
		for i, c := range chunks {
			if i < len(chunks)-1 {
				c += "-"
			}
			tokens = append(tokens, c)
		}
	}

	lines := fill(tokens, width)
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}

// chunk cuts s into pieces at most size columns wide. A rune wider than size
// forms a piece on its own.
func chunk(s string, size int) []string {
	var (
		chunks []string
		cur    strings.Builder
		curW   int
	)
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if curW > 0 && curW+rw > size {
			chunks = append(chunks, cur.String())
			cur.Reset()
			curW = 0
		}
		cur.WriteRune(r)
		curW += rw
	}
	if cur.Len() > 0 {
		chunks = append(chunks, cur.String())
	}
	return chunks
}

// fill packs tokens greedily into lines of at most width columns, joining
// tokens on a line with single spaces. Tokens still wider than width (only
// possible for width 1) are hard-split.
func fill(tokens []string, width int) []string {
	var (
		lines []string
		cur   strings.Builder
		curW  int
	)
	flush := func() {
		if curW > 0 {
			lines = append(lines, cur.String())
			cur.Reset()
			curW = 0
		}
	}

	for _, tok := range tokens {
		tw := runewidth.StringWidth(tok)
		if tw > width {
			flush()
			lines = append(lines, chunk(tok, width)...)
			continue
		}
		if curW > 0 && curW+1+tw > width {
			flush()
		}
		if curW > 0 {
			cur.WriteByte(' ')
			curW++
		}
		cur.WriteString(tok)
		curW += tw
	}
	flush()
	return lines
}
