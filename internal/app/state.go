// Package app provides application lifecycle management, shared state,
// and events.
package app

import (
	"os"
	"sync"

	"driftboard/internal/board"
	"driftboard/internal/item"
)

// State holds the application state: the item collection, the board file
// path, and UI flags shared between the canvas and the window chrome.
type State struct {
	mu sync.RWMutex

	// Board
	BoardPath string
	Modified  bool

	// Items
	Items *item.Collection

	// UI
	HelpVisible bool

	// Event listeners
	listeners map[EventType][]EventListener
}

// EventType identifies different application events.
type EventType int

const (
	EventBoardLoaded EventType = iota
	EventBoardSaved
	EventItemMoved
	EventItemsChanged
	EventModified
	EventHelpToggled
)

// EventListener is a callback for application events.
type EventListener func(data interface{})

// NewState creates application state seeded with the demo board.
func NewState() *State {
	return &State{
		Items:     board.Default(),
		listeners: make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// SetModified marks the board as modified and emits an event.
func (s *State) SetModified(modified bool) {
	s.mu.Lock()
	s.Modified = modified
	s.mu.Unlock()
	s.Emit(EventModified, modified)
}

// LoadBoard replaces the item collection with the contents of a board
// file.
func (s *State) LoadBoard(path string) error {
	items, err := board.Load(path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.BoardPath = path
	s.Items = items
	s.Modified = false
	s.mu.Unlock()

	s.Emit(EventBoardLoaded, path)
	s.Emit(EventItemsChanged, nil)
	return nil
}

// LoadBoardIfPresent loads the board file at path when it exists, and
// keeps the default board otherwise.
func (s *State) LoadBoardIfPresent(path string) error {
	if _, err := os.Stat(path); err != nil {
		s.mu.Lock()
		s.BoardPath = path
		s.mu.Unlock()
		return nil
	}
	return s.LoadBoard(path)
}

// SaveBoard writes the current items to a board file.
func (s *State) SaveBoard(path string) error {
	s.mu.RLock()
	items := s.Items
	s.mu.RUnlock()

	if err := board.Save(path, items); err != nil {
		return err
	}

	s.mu.Lock()
	s.BoardPath = path
	s.Modified = false
	s.mu.Unlock()

	s.Emit(EventBoardSaved, path)
	return nil
}

// ItemMoved records an item drag commit and emits the move event.
func (s *State) ItemMoved(it *item.Item) {
	s.SetModified(true)
	s.Emit(EventItemMoved, it)
}

// ToggleHelp flips the help overlay flag and emits the new value.
func (s *State) ToggleHelp() {
	s.mu.Lock()
	s.HelpVisible = !s.HelpVisible
	visible := s.HelpVisible
	s.mu.Unlock()
	s.Emit(EventHelpToggled, visible)
}

// SetHelpVisible sets the help overlay flag and emits it when changed.
func (s *State) SetHelpVisible(visible bool) {
	s.mu.Lock()
	changed := s.HelpVisible != visible
	s.HelpVisible = visible
	s.mu.Unlock()
	if changed {
		s.Emit(EventHelpToggled, visible)
	}
}
