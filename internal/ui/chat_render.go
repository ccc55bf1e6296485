package ui

import (
	"bytes"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// renderContent expands a message body for display, syntax-highlighting any
// fenced code blocks and tinting hashtags.
func renderContent(content string) string {
	var out []string
	lines := strings.Split(content, "\n")

	i := 0
	for i < len(lines) {
		line := lines[i]
		if strings.HasPrefix(line, "```") {
			language := strings.TrimPrefix(line, "```")
			var code []string
			i++
			for i < len(lines) && !strings.HasPrefix(lines[i], "```") {
				code = append(code, lines[i])
				i++
			}
			if i < len(lines) {
				i++ // closing fence
			}
			highlighted := highlightCode(strings.Join(code, "\n"), language)
			out = append(out, strings.Split(strings.TrimRight(highlighted, "\n"), "\n")...)
			continue
		}
		out = append(out, tintHashtags(line))
		i++
	}

	return strings.Join(out, "\n")
}

// tintHashtags colors #word tokens in a line.
func tintHashtags(line string) string {
	words := strings.Split(line, " ")
	for i, w := range words {
		if len(w) > 1 && strings.HasPrefix(w, "#") {
			words[i] = hashtagStyle.Render(w)
		}
	}
	return strings.Join(words, " ")
}

var hashtagStyle = lipgloss.NewStyle().Foreground(ColorHashtag)

// highlightCode applies syntax highlighting to code using chroma
func highlightCode(code, language string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}

	return buf.String()
}
