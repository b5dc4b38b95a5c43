package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type action string

const (
	actionQuit    action = "quit"
	actionNext    action = "next"
	actionPrev    action = "prev"
	actionClick   action = "click"
	actionShuffle action = "shuffle"
	actionFan     action = "fan"
)

type keyBinding struct {
	Keys        []string
	Action      action
	Description string
}

var defaultBindings = []keyBinding{
	{Keys: []string{"tab", "right", "l"}, Action: actionNext, Description: "select"},
	{Keys: []string{"shift+tab", "left", "h"}, Action: actionPrev},
	{Keys: []string{"enter", "space"}, Action: actionClick, Description: "click"},
	{Keys: []string{"s"}, Action: actionShuffle, Description: "shuffle"},
	{Keys: []string{"f"}, Action: actionFan, Description: "fan"},
	{Keys: []string{"q", "ctrl+c"}, Action: actionQuit, Description: "quit"},
}

type keyMap struct {
	bindings []keyBinding
}

func (k keyMap) lookup(msg tea.KeyMsg) (action, bool) {
	pressed := normalizeKey(msg.String())
	for _, b := range k.bindings {
		for _, key := range b.Keys {
			if normalizeKey(key) == pressed {
				return b.Action, true
			}
		}
	}
	return "", false
}

// help lists the first key of every described binding.
func (k keyMap) help() string {
	parts := make([]string, 0, len(k.bindings))
	for _, b := range k.bindings {
		if b.Description == "" {
			continue
		}
		parts = append(parts, b.Keys[0]+" "+b.Description)
	}
	return strings.Join(parts, " • ")
}

func normalizeKey(k string) string {
	if k == " " {
		return "space"
	}
	return strings.ToLower(strings.TrimSpace(k))
}
