// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"log"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/jeranaias/chatview/internal/i18n"
	"github.com/jeranaias/chatview/internal/model"
	"github.com/jeranaias/chatview/internal/ui/markdown"
	"github.com/jeranaias/chatview/internal/ui/styles"
)

// CopyFeedbackDuration is how long the "Copied!" badge stays up.
const CopyFeedbackDuration = 2000 * time.Millisecond

// ItemState is the edit state of a message item.
type ItemState int

const (
	Viewing ItemState = iota
	Editing
)

func (s ItemState) String() string {
	switch s {
	case Viewing:
		return "viewing"
	case Editing:
		return "editing"
	default:
		return "unknown"
	}
}

// ItemOptions carries the collaborators shared by all items of a list.
// Nil Clipboard or Sounder disables copying or sound; a nil Schedule uses
// TickScheduler.
type ItemOptions struct {
	Theme      *styles.Theme
	Renderer   *markdown.Renderer
	Translator *i18n.Translator
	Clipboard  Clipboard
	Sounder    Sounder
	Schedule   Scheduler
	Keys       EditorKeyMap
	PulseFPS   int
	// PulseEasing shapes the pulse cycle; nil is linear.
	PulseEasing styles.EasingFunc
}

// =============================================================================
// ITEM
// =============================================================================

// Item renders one message and owns its ephemeral UI state: whether it is
// being edited, whether an input-method composition is open, and whether the
// copy badge is showing. That state lives only as long as the item; a new
// item starts Viewing with every flag cleared.
type Item struct {
	id    string
	index int
	msg   model.Message
	last  bool
	width int

	selected bool

	state          ItemState
	composing      bool
	copiedFeedback bool
	copyGen        int
	disposed       bool

	editor Editor
	view   MessageView
	pulse  Pulse

	theme     *styles.Theme
	tr        *i18n.Translator
	clipboard Clipboard
	sounder   Sounder
	schedule  Scheduler
	keys      EditorKeyMap
}

// NewItem mounts an item for msg at index.
func NewItem(index int, msg model.Message, opts ItemOptions) *Item {
	if opts.Theme == nil {
		opts.Theme = styles.NewTheme()
	}
	if opts.Renderer == nil {
		opts.Renderer = markdown.NewRenderer(opts.Theme, markdown.DefaultOptions(opts.Theme))
	}
	if opts.Schedule == nil {
		opts.Schedule = TickScheduler
	}
	if opts.Keys.Confirm.Keys() == nil {
		opts.Keys = DefaultEditorKeyMap(opts.Translator)
	}
	pulse := styles.AssistantPulse
	if opts.PulseEasing != nil {
		pulse = pulse.WithEasing(opts.PulseEasing)
	}

	return &Item{
		id:        uuid.NewString(),
		index:     index,
		msg:       msg,
		width:     80,
		editor:    NewEditor(opts.Theme, opts.Translator, opts.Keys),
		view:      NewMessageView(opts.Theme, opts.Renderer),
		pulse:     NewPulse(pulse, opts.PulseFPS),
		theme:     opts.Theme,
		tr:        opts.Translator,
		clipboard: opts.Clipboard,
		sounder:   opts.Sounder,
		schedule:  opts.Schedule,
		keys:      opts.Keys,
	}
}

// Init plays the notification for the freshly shown content and starts the
// pulse if the item is already the newest assistant message.
func (it *Item) Init() tea.Cmd {
	return tea.Batch(it.playSound(), it.syncPulse())
}

// =============================================================================
// ACCESSORS
// =============================================================================

// ID returns the instance id used to route timer messages.
func (it *Item) ID() string { return it.id }

// Index returns the item's position in the conversation.
func (it *Item) Index() int { return it.index }

// Message returns the current authoritative message.
func (it *Item) Message() model.Message { return it.msg }

// State returns Viewing or Editing.
func (it *Item) State() ItemState { return it.state }

// IsEditing reports whether the editor is shown.
func (it *Item) IsEditing() bool { return it.state == Editing }

// Composing reports whether an input-method composition is open.
func (it *Item) Composing() bool { return it.composing }

// CopiedFeedback reports whether the "Copied!" badge is showing.
func (it *Item) CopiedFeedback() bool { return it.copiedFeedback }

// IsLast reports whether the item is the newest message.
func (it *Item) IsLast() bool { return it.last }

// Draft returns the editor contents.
func (it *Item) Draft() string { return it.editor.Value() }

// CanCommit reports whether Save & Submit is enabled.
func (it *Item) CanCommit() bool { return it.state == Editing && it.editor.CanSave() }

// Pulsing reports whether the background animation is running.
func (it *Item) Pulsing() bool { return it.pulse.Running() }

// Disposed reports whether the item has been torn down.
func (it *Item) Disposed() bool { return it.disposed }

// =============================================================================
// PARENT-DRIVEN UPDATES
// =============================================================================

// SetIndex moves the item to a new position.
func (it *Item) SetIndex(i int) { it.index = i }

// SetSelected marks the item as the list cursor.
func (it *Item) SetSelected(selected bool) { it.selected = selected }

// SetWidth sets the render width.
func (it *Item) SetWidth(width int) {
	it.width = width
	it.editor.SetWidth(it.bodyWidth())
}

// SetMessage pushes the authoritative message. A content change plays the
// notification sound once.
func (it *Item) SetMessage(msg model.Message) tea.Cmd {
	changed := msg.Content != it.msg.Content
	it.msg = msg
	if it.state == Editing && !msg.Role.Editable() {
		it.state = Viewing
		it.composing = false
	}
	pulse := it.syncPulse()
	if !changed {
		return pulse
	}
	return tea.Batch(it.playSound(), pulse)
}

// SetLast sets the newest-message flag.
func (it *Item) SetLast(last bool) tea.Cmd {
	it.last = last
	return it.syncPulse()
}

// Dispose stops the pulse and invalidates any pending copy-feedback timer.
func (it *Item) Dispose() {
	it.disposed = true
	it.copyGen++
	it.copiedFeedback = false
	it.pulse.Stop()
}

// =============================================================================
// ACTIONS
// =============================================================================

// StartEditing opens the editor with the current content. Only user messages
// can be edited.
func (it *Item) StartEditing() tea.Cmd {
	if it.state != Viewing || !it.msg.Role.Editable() || it.disposed {
		return nil
	}
	it.state = Editing
	it.composing = false
	it.editor.SetWidth(it.bodyWidth())
	return it.editor.Reset(it.msg.Content)
}

// Commit closes the editor. A draft that differs from the content is emitted
// as an EditMessageMsg; an unchanged draft emits nothing. A blank draft
// cannot be committed.
func (it *Item) Commit() tea.Cmd {
	if it.state != Editing || !it.editor.CanSave() {
		return nil
	}
	draft := it.editor.Value()
	it.state = Viewing
	it.composing = false
	if draft == it.msg.Content {
		return nil
	}

	edited := EditMessageMsg{Message: it.msg.WithContent(draft), Index: it.index}
	return func() tea.Msg {
		return edited
	}
}

// Cancel discards the draft and closes the editor without emitting.
func (it *Item) Cancel() {
	if it.state != Editing {
		return
	}
	it.editor.SetValue(it.msg.Content)
	it.state = Viewing
	it.composing = false
}

// Copy writes the content to the clipboard in the background. Without a
// clipboard it does nothing.
func (it *Item) Copy() tea.Cmd {
	if it.state != Viewing || it.disposed || it.clipboard == nil || !it.clipboard.Available() {
		return nil
	}
	cb := it.clipboard
	id := it.id
	content := it.msg.Content
	return func() tea.Msg {
		return CopiedMsg{ID: id, Err: cb.WriteText(content)}
	}
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Update handles messages addressed to this item and, while editing, keys.
func (it *Item) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case CopiedMsg:
		if msg.ID != it.id || it.disposed {
			return nil
		}
		if msg.Err != nil {
			log.Printf("clipboard write failed: %v", msg.Err)
			return nil
		}
		it.copiedFeedback = true
		it.copyGen++
		return it.schedule(CopyFeedbackDuration, CopyFeedbackExpiredMsg{ID: it.id, Gen: it.copyGen})

	case CopyFeedbackExpiredMsg:
		if msg.ID == it.id && msg.Gen == it.copyGen {
			it.copiedFeedback = false
		}
		return nil

	case PulseTickMsg:
		if msg.ID != it.id {
			return nil
		}
		return it.pulse.Tick(msg, it.schedule)

	case CompositionStartMsg:
		if it.state == Editing {
			it.composing = true
		}
		return nil

	case CompositionEndMsg:
		it.composing = false
		return nil

	case tea.KeyMsg:
		if it.state != Editing {
			return nil
		}
		return it.handleEditKey(msg)
	}

	if it.state == Editing {
		return it.editor.Update(msg)
	}
	return nil
}

func (it *Item) handleEditKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, it.keys.Cancel):
		it.Cancel()
		return nil

	case key.Matches(msg, it.keys.Save):
		return it.Commit()

	case key.Matches(msg, it.keys.NextFocus):
		return it.editor.CycleFocus(1)

	case key.Matches(msg, it.keys.PrevFocus):
		return it.editor.CycleFocus(-1)

	case key.Matches(msg, it.keys.Confirm):
		switch it.editor.Focus() {
		case FocusSave:
			return it.Commit()
		case FocusCancel:
			it.Cancel()
			return nil
		}
		if it.composing {
			return nil
		}
		return it.Commit()
	}

	return it.editor.Update(msg)
}

// View renders the role marker beside either the message or the editor.
func (it *Item) View() string {
	marker := it.theme.Marker
	if it.selected {
		marker = it.theme.MarkerSelected
	}
	gutter := marker.Render(it.msg.Role.Marker())

	var body string
	if it.state == Editing && it.msg.Role.Editable() {
		body = it.editor.View()
	} else {
		body = it.view.Render(it.msg, it.bodyWidth(), it.pulse.Color(it.theme.Background()))
		if hint := it.hint(); hint != "" {
			body = lipgloss.JoinVertical(lipgloss.Left, body, hint)
		}
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, gutter, body)
}

func (it *Item) hint() string {
	if it.copiedFeedback {
		return it.theme.CopiedBadge.Render(it.tr.T(i18n.Copied))
	}
	if !it.selected {
		return ""
	}
	h := "y " + it.tr.T(i18n.Copy)
	if it.msg.Role.Editable() {
		h = "e " + it.tr.T(i18n.Edit) + " · " + h
	}
	return it.theme.ActionHint.Render(h)
}

// =============================================================================
// EFFECTS
// =============================================================================

func (it *Item) bodyWidth() int {
	w := it.width - it.theme.Marker.GetWidth()
	if w < 1 {
		w = 1
	}
	return w
}

func (it *Item) playSound() tea.Cmd {
	if it.sounder == nil || it.disposed {
		return nil
	}
	s := it.sounder
	return func() tea.Msg {
		if err := s.Play(); err != nil {
			log.Printf("notification sound failed: %v", err)
		}
		return nil
	}
}

// syncPulse runs the pulse exactly while the item is the newest assistant
// message.
func (it *Item) syncPulse() tea.Cmd {
	want := !it.disposed && it.last && it.msg.Role == model.RoleAssistant
	switch {
	case want && !it.pulse.Running():
		return it.pulse.Start(it.id, it.schedule)
	case !want && it.pulse.Running():
		it.pulse.Stop()
	}
	return nil
}
