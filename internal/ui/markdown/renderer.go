// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package markdown renders assistant message content for the terminal.
package markdown

import (
	"log"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/chatview/internal/ui/styles"
)

// =============================================================================
// OPTIONS
// =============================================================================

// Extension is a bit in the renderer's extension set.
type Extension uint8

const (
	// ExtTables draws GFM tables with bordered cells.
	ExtTables Extension = 1 << iota
	// ExtMath renders $inline$ and $$display$$ math.
	ExtMath
	// ExtGFM delegates fenced code blocks to the CodeRenderer.
	ExtGFM
)

// DefaultExtensions enables everything.
const DefaultExtensions = ExtTables | ExtMath | ExtGFM

// Has reports whether e includes x.
func (e Extension) Has(x Extension) bool {
	return e&x != 0
}

// Element names a markdown element whose style can be overridden.
type Element int

const (
	// ElementCode wraps fenced code and display math after the CodeRenderer.
	ElementCode Element = iota
	ElementTable
	ElementTableHeaderCell
	ElementTableDataCell
	ElementMath
)

// Options configures a Renderer. Code replaces fenced-code rendering; Styles
// replaces the theme style of the keyed element.
type Options struct {
	Extensions   Extension
	Code         CodeRenderer
	Styles       map[Element]lipgloss.Style
	GlamourStyle string
	// WordWrap caps the wrap width; 0 follows the width passed to Render.
	WordWrap int
}

// DefaultOptions returns the theme's options with every extension enabled.
func DefaultOptions(theme *styles.Theme) Options {
	return Options{
		Extensions:   DefaultExtensions,
		Code:         NewCodeBlockRenderer(theme, ""),
		GlamourStyle: theme.GlamourStyle(),
	}
}

// =============================================================================
// RENDERER
// =============================================================================

const defaultWidth = 80

// Renderer turns assistant markdown into terminal output.
type Renderer struct {
	opts  Options
	theme *styles.Theme

	mu       sync.Mutex
	glamours map[int]*glamour.TermRenderer
}

// NewRenderer creates a renderer. A nil opts.Code falls back to a
// CodeBlockRenderer built from the theme.
func NewRenderer(theme *styles.Theme, opts Options) *Renderer {
	if opts.Code == nil {
		opts.Code = NewCodeBlockRenderer(theme, "")
	}
	if opts.GlamourStyle == "" {
		opts.GlamourStyle = theme.GlamourStyle()
	}
	return &Renderer{
		opts:     opts,
		theme:    theme,
		glamours: make(map[int]*glamour.TermRenderer),
	}
}

// Render renders content at width. Content that fails to render is returned
// as-is.
func (r *Renderer) Render(content string, width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	if r.opts.WordWrap > 0 && r.opts.WordWrap < width {
		width = r.opts.WordWrap
	}

	var out []string
	for _, b := range splitBlocks(content, r.opts.Extensions) {
		var s string
		switch b.kind {
		case blockCode:
			s = r.renderCode(b.lang, b.body, width)
		case blockMath:
			s = r.renderCode("latex", b.body, width)
		case blockTable:
			s = r.renderTable(b.table, width)
		default:
			s = r.renderProse(b.body, width)
		}
		if s != "" {
			out = append(out, s)
		}
	}
	return strings.Join(out, "\n")
}

func (r *Renderer) renderCode(lang, source string, width int) string {
	out := r.opts.Code.Render(lang, source, width)
	if s, ok := r.opts.Styles[ElementCode]; ok {
		out = s.Render(out)
	}
	return out
}

func (r *Renderer) style(e Element) lipgloss.Style {
	if s, ok := r.opts.Styles[e]; ok {
		return s
	}
	switch e {
	case ElementTable:
		return r.theme.TableBorder
	case ElementTableHeaderCell:
		return r.theme.TableHeader
	case ElementTableDataCell:
		return r.theme.TableCell
	default:
		return r.theme.Math
	}
}

// =============================================================================
// PROSE
// =============================================================================

// Placeholder delimiters for inline math, taken from the private use area so
// glamour passes them through untouched.
const (
	mathOpen  = '\uE000'
	mathClose = '\uE001'
)

func (r *Renderer) renderProse(text string, width int) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	var spans []string
	if r.opts.Extensions.Has(ExtMath) {
		text, spans = extractInlineMath(text)
	}

	tr, err := r.glamourFor(width)
	if err != nil {
		log.Printf("markdown: create renderer: %v", err)
		return restoreInlineMath(text, spans, r.style(ElementMath))
	}
	out, err := tr.Render(text)
	if err != nil {
		log.Printf("markdown: render: %v", err)
		return restoreInlineMath(text, spans, r.style(ElementMath))
	}
	return restoreInlineMath(strings.Trim(out, "\n"), spans, r.style(ElementMath))
}

func (r *Renderer) glamourFor(width int) (*glamour.TermRenderer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if tr, ok := r.glamours[width]; ok {
		return tr, nil
	}
	tr, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(r.opts.GlamourStyle),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	r.glamours[width] = tr
	return tr, nil
}

// extractInlineMath swaps $...$ spans outside code spans for placeholders and
// returns the expressions in order. A span opens on a $ followed by a
// non-space and closes on a $ preceded by a non-space and not followed by a
// digit, so "$5 and $10" stays text.
func extractInlineMath(text string) (string, []string) {
	var (
		b     strings.Builder
		spans []string
	)
	rs := []rune(text)
	for i := 0; i < len(rs); i++ {
		c := rs[i]
		switch {
		case c == '\\' && i+1 < len(rs) && rs[i+1] == '$':
			b.WriteRune(c)
			b.WriteRune(rs[i+1])
			i++
		case c == '`':
			// Copy the whole code span verbatim.
			n := runLength(rs, i, '`')
			end := findBacktickRun(rs, i+n, n)
			if end < 0 {
				b.WriteString(string(rs[i : i+n]))
				i += n - 1
				continue
			}
			b.WriteString(string(rs[i : end+n]))
			i = end + n - 1
		case c == '$':
			end := findMathClose(rs, i)
			if end < 0 {
				b.WriteRune(c)
				continue
			}
			b.WriteRune(mathOpen)
			b.WriteString(strconv.Itoa(len(spans)))
			b.WriteRune(mathClose)
			spans = append(spans, string(rs[i+1:end]))
			i = end
		default:
			b.WriteRune(c)
		}
	}
	return b.String(), spans
}

func findMathClose(rs []rune, open int) int {
	if open+1 >= len(rs) || rs[open+1] == '$' || isSpace(rs[open+1]) {
		return -1
	}
	if open > 0 && rs[open-1] == '$' {
		return -1
	}
	for j := open + 1; j < len(rs); j++ {
		switch rs[j] {
		case '\n':
			if j+1 < len(rs) && rs[j+1] == '\n' {
				return -1
			}
		case '\\':
			j++
		case '$':
			if isSpace(rs[j-1]) {
				continue
			}
			if j+1 < len(rs) && (rs[j+1] == '$' || (rs[j+1] >= '0' && rs[j+1] <= '9')) {
				continue
			}
			return j
		}
	}
	return -1
}

func restoreInlineMath(text string, spans []string, style lipgloss.Style) string {
	if len(spans) == 0 {
		return text
	}
	for i, expr := range spans {
		token := string(mathOpen) + strconv.Itoa(i) + string(mathClose)
		text = strings.Replace(text, token, style.Render(expr), 1)
	}
	return text
}

func runLength(rs []rune, i int, c rune) int {
	n := 0
	for i+n < len(rs) && rs[i+n] == c {
		n++
	}
	return n
}

func findBacktickRun(rs []rune, from, n int) int {
	for j := from; j < len(rs); j++ {
		if rs[j] != '`' {
			continue
		}
		m := runLength(rs, j, '`')
		if m == n {
			return j
		}
		j += m - 1
	}
	return -1
}

func isSpace(c rune) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
