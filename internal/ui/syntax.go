/*
MIT License

Copyright (c) 2025 Yuval Adar <adary@adary.org>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
*/

package ui

import (
	"bytes"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromastyles "github.com/alecthomas/chroma/v2/styles"
)

// highlighter colours clip content for the detail view with the chroma
// style of the active palette.
type highlighter struct {
	style     *chroma.Style
	formatter chroma.Formatter
}

func newHighlighter(palette Palette, basicColors bool) highlighter {
	h := highlighter{
		style:     chromastyles.Get(palette.Syntax),
		formatter: formatters.TTY256,
	}
	if basicColors {
		h.formatter = formatters.TTY8
	}
	return h
}

// detectLexer guesses the language of a clip. Most clips are a word, a
// URL or a sentence, so content needs at least two non-blank lines before
// chroma is asked.
func detectLexer(content string) chroma.Lexer {
	lines := 0
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) != "" {
			lines++
		}
	}
	if lines < 2 {
		return nil
	}

	lexer := lexers.Analyse(content)
	if lexer == nil || lexer.Config() == nil || lexer.Config().Name == "plaintext" {
		return nil
	}
	return lexer
}

// render returns the display lines for content and the detected language
// name, which is empty for plain text.
func (h highlighter) render(content string) ([]string, string) {
	lexer := detectLexer(content)
	if lexer == nil {
		return strings.Split(content, "\n"), ""
	}

	lines, err := h.highlight(content, lexer)
	if err != nil {
		return strings.Split(content, "\n"), ""
	}
	return lines, lexer.Config().Name
}

func (h highlighter) highlight(content string, lexer chroma.Lexer) ([]string, error) {
	iterator, err := chroma.Coalesce(lexer).Tokenise(nil, content)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := h.formatter.Format(&buf, h.style, iterator); err != nil {
		return nil, err
	}
	// Lexers append a newline, so the output can carry one line more than
	// the input. Drop it and keep the colour reset.
	lines := strings.Split(buf.String(), "\n")
	if want := strings.Count(content, "\n") + 1; len(lines) > want {
		tail := strings.Join(lines[want:], "")
		lines = lines[:want]
		lines[want-1] += tail
	}
	return lines, nil
}
