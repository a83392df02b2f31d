package views

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

const defaultChromaStyleName = "catppuccin-mocha"

// highlightCode applies syntax highlighting to source text and returns
// ANSI-colored output. The language comes from the filename; when
// detection or highlighting fails the source comes back unchanged.
func highlightCode(source, filename, styleName string) string {
	if filename == "" {
		return source
	}
	lexer := lexers.Match(filepath.Base(filename))
	if lexer == nil {
		return source
	}
	lexer = chroma.Coalesce(lexer)

	if styleName == "" {
		styleName = defaultChromaStyleName
	}
	style := styles.Get(styleName)
	if style == nil {
		style = styles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return source
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return source
	}

	result := buf.String()
	// Chroma may add a trailing newline; trim to match original
	if !strings.HasSuffix(source, "\n") {
		result = strings.TrimRight(result, "\n")
	}
	return result
}
