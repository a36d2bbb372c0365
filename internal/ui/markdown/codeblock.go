// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package markdown renders assistant message content for the terminal.
package markdown

import (
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"

	"github.com/jeranaias/chatview/internal/ui/styles"
)

// =============================================================================
// CODE BLOCK RENDERER
// =============================================================================

// CodeRenderer renders a fenced code block. The Renderer delegates every
// fenced block to one.
type CodeRenderer interface {
	Render(language, source string, width int) string
}

// CodeBlockRenderer draws syntax-highlighted code with a language badge and
// an optional line-number gutter.
type CodeBlockRenderer struct {
	// Style is the chroma style name ("monokai", "github", ...).
	Style string
	// LineNumbers draws the gutter.
	LineNumbers bool
	// TrueColor selects the 24-bit terminal formatter.
	TrueColor bool

	theme *styles.Theme
}

// NewCodeBlockRenderer creates a renderer using the theme's code styles.
func NewCodeBlockRenderer(theme *styles.Theme, style string) *CodeBlockRenderer {
	if style == "" {
		style = "monokai"
	}
	return &CodeBlockRenderer{
		Style:       style,
		LineNumbers: true,
		TrueColor:   theme.HasTrueColor,
		theme:       theme,
	}
}

// Render renders source as a code block no wider than width. An empty
// language is detected from the source.
func (c *CodeBlockRenderer) Render(language, source string, width int) string {
	lang := language
	if lang == "" {
		lang = detectLanguage(source)
	}

	highlighted := c.highlight(source, lang)
	lines := strings.Split(highlighted, "\n")

	var rendered []string
	for i, line := range lines {
		if c.LineNumbers {
			line = c.theme.CodeLineNum.Render(strconv.Itoa(i+1)) + line
		}
		rendered = append(rendered, line)
	}
	body := strings.Join(rendered, "\n")

	var header string
	if language != "" {
		header = c.theme.CodeLangBadge.Render(language) + "\n"
	}

	maxWidth := width
	if maxWidth < 20 {
		maxWidth = 20
	}

	return c.theme.CodeBlock.
		MaxWidth(maxWidth).
		Render(header + body)
}

// highlight applies syntax highlighting, returning the source unchanged when
// chroma cannot tokenise it.
func (c *CodeBlockRenderer) highlight(code, language string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := chromaStyles.Get(c.Style)
	if style == nil {
		style = chromaStyles.Fallback
	}

	formatterName := "terminal256"
	if c.TrueColor {
		formatterName = "terminal16m"
	}
	formatter := formatters.Get(formatterName)
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf strings.Builder
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}
	// Some lexers append a newline to the last token.
	return strings.TrimSuffix(buf.String(), "\n")
}

// detectLanguage attempts to detect the programming language of the given code.
func detectLanguage(code string) string {
	lexer := lexers.Analyse(code)
	if lexer != nil {
		return lexer.Config().Name
	}
	return ""
}
