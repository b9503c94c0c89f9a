// Package diffhighlight applies chroma syntax highlighting to the content
// of diffparse.Line values, for the TUI and any terminal renderer of
// detailed hunk blocks.
package diffhighlight

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/nbonventre/pickaxe/internal/diffparse"
)

// Token is a syntax-highlighted chunk of a line's content.
type Token struct {
	Text  string
	Color string // ANSI color string, empty for default
}

// Line is one diffparse.Line with its content tokenized for display.
type Line struct {
	Kind   diffparse.Line
	Tokens []Token
}

// Plain returns the concatenated plain text of all tokens.
func (hl Line) Plain() string {
	var b strings.Builder
	for _, t := range hl.Tokens {
		b.WriteString(t.Text)
	}
	return b.String()
}

// HighlightHunk tokenizes every line of h, choosing a lexer by h.File's
// extension. Lines fall back to a single plain token when no lexer
// matches or tokenizing fails.
func HighlightHunk(h *diffparse.Hunk) []Line {
	lexer := lexerForFile(h.File)
	if lexer == nil {
		return plainLines(h.Lines)
	}

	contents := make([]string, len(h.Lines))
	for i, l := range h.Lines {
		contents[i] = l.Content
	}
	source := strings.Join(contents, "\n")

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return plainLines(h.Lines)
	}

	style := styles.Get("dracula")
	if style == nil {
		style = styles.Fallback
	}

	result := make([]Line, 0, len(h.Lines))
	current := Line{}

	for _, token := range iterator.Tokens() {
		parts := strings.Split(token.Value, "\n")
		for i, part := range parts {
			if i > 0 {
				result = append(result, current)
				current = Line{}
			}
			if part != "" {
				current.Tokens = append(current.Tokens, Token{
					Text:  part,
					Color: tokenColor(style, token.Type),
				})
			}
		}
	}
	result = append(result, current)

	for i := range result {
		if i < len(h.Lines) {
			result[i].Kind = h.Lines[i]
		}
	}
	for len(result) < len(h.Lines) {
		result = append(result, Line{Kind: h.Lines[len(result)], Tokens: []Token{{Text: ""}}})
	}

	return result
}

func plainLines(lines []diffparse.Line) []Line {
	result := make([]Line, len(lines))
	for i, l := range lines {
		result[i] = Line{Kind: l, Tokens: []Token{{Text: l.Content}}}
	}
	return result
}

func lexerForFile(filename string) chroma.Lexer {
	lexer := lexers.Match(filename)
	if lexer == nil {
		ext := filepath.Ext(filename)
		if ext != "" {
			lexer = lexers.Match("file" + ext)
		}
	}
	if lexer != nil {
		lexer = chroma.Coalesce(lexer)
	}
	return lexer
}

func tokenColor(style *chroma.Style, tt chroma.TokenType) string {
	entry := style.Get(tt)
	if entry.Colour.IsSet() {
		return entry.Colour.String()
	}
	return ""
}
