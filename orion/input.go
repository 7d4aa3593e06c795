package orion

import (
	"log/slog"
	"maps"
	"slices"

	"github.com/oliverbestmann/daylight/glimpse"
)

type Action int

const (
	ActionNone Action = iota
	ActionNext
	ActionPrevious
	ActionFirst
	ActionLast
	ActionReload
	ActionClose
)

var actionNames = []string{"None", "Next", "Previous", "First", "Last", "Reload", "Close"}

func (a Action) String() string {
	if int(a) < 0 || int(a) >= len(actionNames) {
		return "Unknown"
	}

	return actionNames[a]
}

type KeyBindings map[glimpse.Key]Action

func DefaultKeyBindings() KeyBindings {
	return KeyBindings{
		glimpse.KeyRight:     ActionNext,
		glimpse.KeySpace:     ActionNext,
		glimpse.KeyPageDown:  ActionNext,
		glimpse.KeyLeft:      ActionPrevious,
		glimpse.KeyBackspace: ActionPrevious,
		glimpse.KeyPageUp:    ActionPrevious,
		glimpse.KeyHome:      ActionFirst,
		glimpse.KeyEnd:       ActionLast,
		glimpse.KeyR:         ActionReload,
		glimpse.KeyEscape:    ActionClose,
	}
}

// Actions returns the actions bound to the keys pressed since the last tick,
// ordered by key.
func (b KeyBindings) Actions(keys glimpse.KeysState) []Action {
	var actions []Action

	for _, key := range slices.Sorted(maps.Keys(keys.JustPressed)) {
		if !keys.JustPressed[key] {
			continue
		}

		if action, ok := b[key]; ok && action != ActionNone {
			actions = append(actions, action)
		}
	}

	return actions
}

type Navigator interface {
	Next() error
	Previous() error
	First() error
	Last() error
	Reload() error
}

type Closer interface {
	Close()
}

// Dispatch runs action against the navigator or closes the window.
func Dispatch(action Action, nav Navigator, win Closer) error {
	slog.Debug("Dispatch action", slog.String("action", action.String()))

	switch action {
	case ActionNext:
		return nav.Next()
	case ActionPrevious:
		return nav.Previous()
	case ActionFirst:
		return nav.First()
	case ActionLast:
		return nav.Last()
	case ActionReload:
		return nav.Reload()
	case ActionClose:
		win.Close()
	}

	return nil
}
