// Package overlay implements the modal dialogs of the contact book TUI:
// help, contact card, contact editor and delete confirmation.
package overlay

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/entrhq/rubrica/pkg/executor/tui/types"
)

// Key names shared by the overlays.
const (
	keyEsc      = "esc"
	keyCtrlC    = "ctrl+c"
	keyEnter    = "enter"
	keyTab      = "tab"
	keyShiftTab = "shift+tab"
	keyUp       = "up"
	keyDown     = "down"
	keyLeft     = "left"
	keyRight    = "right"
	keyCtrlS    = "ctrl+s"
)

// BaseOverlay holds what the scrolling overlays share: a viewport, the
// overlay size and the close/scroll key handling.
type BaseOverlay struct {
	viewport viewport.Model
	width    int
	height   int
	focused  bool

	onClose      func(actions types.ActionHandler) tea.Cmd
	onCustomKey  func(msg tea.KeyMsg, actions types.ActionHandler) (bool, tea.Cmd) // returns (handled, cmd)
	renderHeader func() string
	renderFooter func() string
}

// BaseOverlayConfig configures a base overlay
type BaseOverlayConfig struct {
	Width          int
	Height         int
	ViewportWidth  int
	ViewportHeight int
	Content        string
	OnClose        func(actions types.ActionHandler) tea.Cmd
	OnCustomKey    func(msg tea.KeyMsg, actions types.ActionHandler) (bool, tea.Cmd)
	RenderHeader   func() string
	RenderFooter   func() string
}

// NewBaseOverlay creates a new base overlay with the given configuration
func NewBaseOverlay(config BaseOverlayConfig) *BaseOverlay {
	vp := viewport.New(config.ViewportWidth, config.ViewportHeight)
	vp.Style = lipgloss.NewStyle()
	if config.Content != "" {
		vp.SetContent(config.Content)
	}

	return &BaseOverlay{
		viewport:     vp,
		width:        config.Width,
		height:       config.Height,
		focused:      true,
		onClose:      config.OnClose,
		onCustomKey:  config.OnCustomKey,
		renderHeader: config.RenderHeader,
		renderFooter: config.RenderFooter,
	}
}

// Update handles keys and resizes. closed reports that a close key was
// pressed; the embedding overlay should then return nil.
func (b *BaseOverlay) Update(msg tea.Msg, actions types.ActionHandler) (handled, closed bool, cmd tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return b.handleKeyMsg(msg, actions)
	case tea.WindowSizeMsg:
		b.viewport, cmd = b.viewport.Update(msg)
		return true, false, cmd
	}
	return false, false, nil
}

func (b *BaseOverlay) handleKeyMsg(msg tea.KeyMsg, actions types.ActionHandler) (bool, bool, tea.Cmd) {
	if b.isCloseKey(msg) {
		return true, true, b.close(actions)
	}

	// Custom handler gets priority over scrolling.
	if b.onCustomKey != nil {
		if handled, cmd := b.onCustomKey(msg, actions); handled {
			return true, false, cmd
		}
	}

	if b.isScrollKey(msg) {
		var cmd tea.Cmd
		b.viewport, cmd = b.viewport.Update(msg)
		return true, false, cmd
	}

	return false, false, nil
}

func (b *BaseOverlay) isCloseKey(msg tea.KeyMsg) bool {
	return msg.String() == keyEsc || msg.String() == keyCtrlC
}

func (b *BaseOverlay) isScrollKey(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown:
		return true
	}
	return false
}

func (b *BaseOverlay) close(actions types.ActionHandler) tea.Cmd {
	if b.onClose != nil {
		return b.onClose(actions)
	}
	return nil
}

// View renders header, viewport and footer inside the overlay container.
func (b *BaseOverlay) View(contentWidth int) string {
	var sections []string

	if b.renderHeader != nil {
		sections = append(sections, b.renderHeader())
	}
	sections = append(sections, b.viewport.View())
	if b.renderFooter != nil {
		sections = append(sections, b.renderFooter())
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	return types.CreateOverlayContainerStyle(contentWidth).Render(content)
}

// SetContent updates the viewport content
func (b *BaseOverlay) SetContent(content string) {
	b.viewport.SetContent(content)
}

// Viewport returns the underlying viewport for advanced manipulation
func (b *BaseOverlay) Viewport() *viewport.Model {
	return &b.viewport
}

// Focused returns whether this overlay should handle input
func (b *BaseOverlay) Focused() bool {
	return b.focused
}

// SetFocused sets the focus state
func (b *BaseOverlay) SetFocused(focused bool) {
	b.focused = focused
}

// Width returns the overlay width
func (b *BaseOverlay) Width() int {
	return b.width
}

// Height returns the overlay height
func (b *BaseOverlay) Height() int {
	return b.height
}

// SetDimensions updates the overlay dimensions
func (b *BaseOverlay) SetDimensions(width, height int) {
	b.width = width
	b.height = height
}
