package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Header represents the top header bar
type Header struct {
	width       int
	identity    string
	channelName string
}

// NewHeader creates a new header
func NewHeader() *Header {
	return &Header{}
}

// SetWidth sets the header width
func (h *Header) SetWidth(width int) {
	h.width = width
}

// SetIdentity sets the signed-in identity to display
func (h *Header) SetIdentity(identity string) {
	h.identity = identity
}

// SetChannelName sets the selected channel name to display
func (h *Header) SetChannelName(name string) {
	h.channelName = name
}

// View renders the header
func (h *Header) View() string {
	titleText := " hashdeck"
	var rightText string
	if h.channelName != "" {
		rightText = "#" + h.channelName
	}
	if h.identity != "" {
		if rightText != "" {
			rightText += " · "
		}
		rightText += h.identity
	}
	if rightText != "" {
		rightText += " "
	}

	padding := h.width - runewidth.StringWidth(titleText) - runewidth.StringWidth(rightText)
	if padding < 0 {
		padding = 0
	}

	return HeaderStyle.Width(h.width).Render(titleText + strings.Repeat(" ", padding) + rightText)
}
