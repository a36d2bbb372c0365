// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/jeranaias/chatview/internal/i18n"
	"github.com/jeranaias/chatview/internal/ui/styles"
)

// =============================================================================
// MESSAGE EDITOR
// =============================================================================

// EditorFocus is the focused part of the editor.
type EditorFocus int

const (
	FocusText EditorFocus = iota
	FocusSave
	FocusCancel
	focusCount
)

// Editor is the in-place edit surface for a user message: an autosizing text
// area with "Save & Submit" and "Cancel" buttons. It never scrolls; its height
// always equals the wrapped height of the draft.
type Editor struct {
	textarea textarea.Model
	focus    EditorFocus
	width    int

	theme *styles.Theme
	tr    *i18n.Translator
}

// NewEditor creates an editor. Newline bindings come from keys.
func NewEditor(theme *styles.Theme, tr *i18n.Translator, keys EditorKeyMap) Editor {
	ta := textarea.New()
	ta.Prompt = ""
	ta.Placeholder = ""
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.KeyMap.InsertNewline = keys.Newline
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle()
	ta.BlurredStyle.Base = lipgloss.NewStyle()
	ta.Cursor.SetMode(cursor.CursorStatic)
	ta.SetHeight(1)

	return Editor{
		textarea: ta,
		theme:    theme,
		tr:       tr,
		width:    40,
	}
}

// Reset loads content as the draft, focuses the text and resizes.
func (e *Editor) Reset(content string) tea.Cmd {
	e.textarea.SetValue(content)
	e.focus = FocusText
	e.autosize()
	return e.textarea.Focus()
}

// SetValue replaces the draft.
func (e *Editor) SetValue(s string) {
	e.textarea.SetValue(s)
	e.autosize()
}

// Value returns the draft.
func (e *Editor) Value() string {
	return e.textarea.Value()
}

// CanSave reports whether the draft has non-whitespace content.
func (e *Editor) CanSave() bool {
	return strings.TrimSpace(e.textarea.Value()) != ""
}

// Focus returns the focused part.
func (e *Editor) Focus() EditorFocus {
	return e.focus
}

// CycleFocus moves focus by delta through text, save and cancel, skipping
// save while it is disabled.
func (e *Editor) CycleFocus(delta int) tea.Cmd {
	next := e.focus
	for i := 0; i < int(focusCount); i++ {
		next = EditorFocus((int(next) + delta + int(focusCount)) % int(focusCount))
		if next != FocusSave || e.CanSave() {
			break
		}
	}
	e.focus = next
	if next == FocusText {
		return e.textarea.Focus()
	}
	e.textarea.Blur()
	return nil
}

// SetWidth sets the outer width and resizes.
func (e *Editor) SetWidth(width int) {
	if width < 1 {
		width = 1
	}
	e.width = width
	e.textarea.SetWidth(width)
	e.autosize()
}

// Height returns the text area height in rows.
func (e *Editor) Height() int {
	return e.textarea.Height()
}

// Update forwards input to the text area while it has focus.
func (e *Editor) Update(msg tea.Msg) tea.Cmd {
	if e.focus != FocusText {
		return nil
	}
	var cmd tea.Cmd
	e.textarea, cmd = e.textarea.Update(msg)
	e.autosize()
	return cmd
}

// autosize collapses the text area to one row, then grows it to the draft's
// wrapped height.
func (e *Editor) autosize() {
	e.textarea.SetHeight(1)
	e.textarea.SetHeight(visualLines(e.textarea.Value(), e.textarea.Width()))
}

// visualLines counts the rows text occupies when word-wrapped at width,
// including the extra row the cursor takes when a line is exactly full.
func visualLines(text string, width int) int {
	lines := strings.Split(text, "\n")
	if width <= 1 {
		return len(lines)
	}
	total := 0
	for _, line := range lines {
		total += wrappedRows(line, width)
	}
	return total
}

// wrappedRows mirrors the textarea's soft wrap: words move whole to the next
// row, a word wider than the row is split, and a full last row adds one for
// the cursor.
func wrappedRows(line string, width int) int {
	var (
		rows     = 1
		rowWidth int
		rowEmpty = true
		word     []rune
		spaces   int
	)
	for _, r := range line {
		if unicode.IsSpace(r) {
			spaces++
		} else {
			word = append(word, r)
		}

		if spaces > 0 {
			w := uniseg.StringWidth(string(word))
			if rowWidth+w+spaces > width {
				rows++
				rowWidth = 0
			}
			rowWidth += w + spaces
			rowEmpty = false
			spaces = 0
			word = word[:0]
			continue
		}

		w := uniseg.StringWidth(string(word))
		if w+runewidth.RuneWidth(word[len(word)-1]) > width {
			if !rowEmpty {
				rows++
				rowWidth = 0
			}
			rowWidth += w
			rowEmpty = false
			word = word[:0]
		}
	}

	if rowWidth+uniseg.StringWidth(string(word))+spaces >= width {
		rows++
	}
	return rows
}

// View renders the text surface and the buttons.
func (e *Editor) View() string {
	text := e.theme.Editor.Width(e.width).Render(e.textarea.View())

	save := e.theme.ButtonPrimary
	if !e.CanSave() {
		save = e.theme.ButtonDisabled
	}
	if e.focus == FocusSave {
		save = e.theme.ButtonFocused.Inherit(save)
	}
	cancel := e.theme.ButtonSecondary
	if e.focus == FocusCancel {
		cancel = e.theme.ButtonFocused.Inherit(cancel)
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Top,
		save.Render(e.tr.T(i18n.SaveAndSubmit)),
		" ",
		cancel.Render(e.tr.T(i18n.Cancel)),
	)
	return lipgloss.JoinVertical(lipgloss.Left, text, buttons)
}
