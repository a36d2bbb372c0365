// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package markdown

import (
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// =============================================================================
// BLOCK SPLITTING
// =============================================================================

var blockParser = goldmark.New(goldmark.WithExtensions(extension.Table)).Parser()

type blockKind int

const (
	blockProse blockKind = iota
	blockCode
	blockMath
	blockTable
)

// block is a region of the source handled by one renderer.
type block struct {
	kind  blockKind
	lang  string
	body  string
	table parsedTable
}

// region is a block cut out of the source, spanning lines first..last.
type region struct {
	first, last int
	block       block
}

// splitBlocks cuts src into prose, fenced code, display math and table
// regions. goldmark finds the fences and tables, including those nested in
// lists and block quotes; the prose left between them is scanned for $$
// blocks. Only the regions whose extension is enabled are cut out. An
// unterminated fence or $$ runs to the end of its container, which is what a
// reply still being streamed looks like.
func splitBlocks(src string, ext Extension) []block {
	src = strings.ReplaceAll(src, "\r\n", "\n")
	lines := strings.Split(src, "\n")

	var regions []region
	if ext.Has(ExtGFM) || ext.Has(ExtTables) {
		source := []byte(src)
		idx := newLineIndex(src)
		doc := blockParser.Parse(text.NewReader(source))
		_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
			if !entering {
				return ast.WalkContinue, nil
			}
			switch v := n.(type) {
			case *ast.FencedCodeBlock:
				if ext.Has(ExtGFM) {
					if r, ok := fenceRegion(v, source, lines, idx); ok {
						regions = append(regions, r)
					}
				}
				return ast.WalkSkipChildren, nil
			case *extast.Table:
				if ext.Has(ExtTables) {
					if r, ok := tableRegion(v, source, idx); ok {
						regions = append(regions, r)
					}
				}
				return ast.WalkSkipChildren, nil
			}
			return ast.WalkContinue, nil
		})
	}

	var blocks []block
	next := 0
	for _, r := range regions {
		if r.first < next {
			continue
		}
		blocks = appendProse(blocks, lines[next:r.first], ext)
		blocks = append(blocks, r.block)
		next = r.last + 1
	}
	if next < len(lines) {
		blocks = appendProse(blocks, lines[next:], ext)
	}
	return blocks
}

// appendProse appends lines as prose, cutting out display math when enabled.
func appendProse(blocks []block, lines []string, ext Extension) []block {
	var prose []string
	flush := func() {
		if len(prose) > 0 {
			blocks = append(blocks, block{kind: blockProse, body: strings.Join(prose, "\n")})
			prose = nil
		}
	}

	for i := 0; i < len(lines); i++ {
		if ext.Has(ExtMath) {
			if body, end, ok := displayMath(lines, i); ok {
				flush()
				blocks = append(blocks, block{kind: blockMath, body: body})
				i = end
				continue
			}
		}
		prose = append(prose, lines[i])
	}
	flush()
	return blocks
}

// lineIndex holds the byte offset at which each line of a source starts.
type lineIndex []int

func newLineIndex(src string) lineIndex {
	idx := lineIndex{0}
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			idx = append(idx, i+1)
		}
	}
	return idx
}

// line returns the line holding byte offset off.
func (x lineIndex) line(off int) int {
	return sort.Search(len(x), func(i int) bool { return x[i] > off }) - 1
}

// =============================================================================
// FENCES
// =============================================================================

// fenceRegion locates a fenced block by its info string or first content
// line. A fence with neither has nothing to highlight and stays prose.
func fenceRegion(n *ast.FencedCodeBlock, source []byte, lines []string, idx lineIndex) (region, bool) {
	segs := n.Lines()
	var first int
	switch {
	case n.Info != nil:
		first = idx.line(n.Info.Segment.Start)
	case segs.Len() > 0:
		first = idx.line(segs.At(0).Start) - 1
	default:
		return region{}, false
	}

	last := first
	if segs.Len() > 0 {
		last = idx.line(segs.At(segs.Len() - 1).Start)
	}
	if last+1 < len(lines) && isFenceLine(lines[last+1]) {
		last++
	}

	var body strings.Builder
	for i := 0; i < segs.Len(); i++ {
		seg := segs.At(i)
		body.Write(seg.Value(source))
	}

	var lang string
	if l := n.Language(source); l != nil {
		lang = strings.Trim(string(l), "{}.")
	}
	return region{
		first: first,
		last:  last,
		block: block{kind: blockCode, lang: lang, body: strings.TrimSuffix(body.String(), "\n")},
	}, true
}

// isFenceLine reports whether line is a bare closing fence, after any block
// quote markers and indentation.
func isFenceLine(line string) bool {
	s := strings.TrimLeft(line, " \t>")
	if len(s) < 3 || (s[0] != '`' && s[0] != '~') {
		return false
	}
	rest := strings.TrimLeft(s, s[:1])
	return len(s)-len(rest) >= 3 && strings.TrimSpace(rest) == ""
}

// =============================================================================
// TABLES
// =============================================================================

// tableRegion spans a table from its first to its last cell line.
func tableRegion(n *extast.Table, source []byte, idx lineIndex) (region, bool) {
	first, last := -1, -1
	for row := n.FirstChild(); row != nil; row = row.NextSibling() {
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			if cell.Lines().Len() == 0 {
				continue
			}
			l := idx.line(cell.Lines().At(0).Start)
			if first < 0 || l < first {
				first = l
			}
			if l > last {
				last = l
			}
		}
	}
	pt := tableFrom(n, source)
	if first < 0 || len(pt.header) == 0 {
		return region{}, false
	}
	return region{first: first, last: last, block: block{kind: blockTable, table: pt}}, true
}

// =============================================================================
// DISPLAY MATH
// =============================================================================

// displayMath recognises a $$ block starting at lines[i]. It returns the
// expression and the index of the closing line.
func displayMath(lines []string, i int) (string, int, bool) {
	first := strings.TrimSpace(lines[i])
	if !strings.HasPrefix(first, "$$") {
		return "", 0, false
	}
	inner := first[2:]
	if strings.HasSuffix(inner, "$$") {
		return strings.TrimSpace(strings.TrimSuffix(inner, "$$")), i, true
	}
	if strings.Contains(inner, "$$") {
		return "", 0, false
	}

	var body []string
	if s := strings.TrimSpace(inner); s != "" {
		body = append(body, s)
	}
	j := i + 1
	for ; j < len(lines); j++ {
		t := strings.TrimSpace(lines[j])
		if strings.HasSuffix(t, "$$") {
			if s := strings.TrimSpace(strings.TrimSuffix(t, "$$")); s != "" {
				body = append(body, s)
			}
			break
		}
		body = append(body, lines[j])
	}
	if j >= len(lines) {
		j = len(lines) - 1
	}
	return strings.Join(body, "\n"), j, true
}
