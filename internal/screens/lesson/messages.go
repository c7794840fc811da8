package lesson

import (
	"github.com/ranilearn/rani/internal/player"
	"github.com/ranilearn/rani/internal/progress"
)

// OpenFailedMsg is sent when a lesson could not be opened, e.g. because
// it is still locked.
type OpenFailedMsg struct {
	Err error
}

// appliedMsg is sent once player events have been persisted.
type appliedMsg struct {
	Events []player.Event
	Route  progress.Route
	Err    error
}
