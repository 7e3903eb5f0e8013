package tui

import (
	"github.com/Mech-Kal/nasasky/internal/nasa"
)

// pictureMsg is a completed fetch. record is true for user-initiated
// queries, which go into the history; the passive initial load does not.
type pictureMsg struct {
	date   string
	pic    *nasa.Picture
	record bool
}

// fetchErrMsg is a failed fetch for a date.
type fetchErrMsg struct {
	date string
	err  error
}

// historyMsg carries the current history, most recent first. saveErr is set
// when a record could not be written through to the store.
type historyMsg struct {
	dates   []string
	saveErr error
}
