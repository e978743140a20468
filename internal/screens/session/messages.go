package session

import "time"

// timerTickMsg drives the time-attack countdown once per second.
type timerTickMsg time.Time

// bookmarkToggledMsg reports the bookmark state after a toggle.
type bookmarkToggledMsg struct {
	On bool
}
