package wallet

import "errors"

// Route tells the caller where to go after a controller operation settles.
type Route int

const (
	// Stay keeps the current view.
	Stay Route = iota
	// ToEntry sends the user back to the create/import entry screen.
	ToEntry
	// ToDashboard opens the authenticated dashboard.
	ToDashboard
)

func (r Route) String() string {
	switch r {
	case Stay:
		return "stay"
	case ToEntry:
		return "entry"
	case ToDashboard:
		return "dashboard"
	default:
		return "unknown"
	}
}

var (
	// ErrBusy is returned when a controller already has a request in flight.
	ErrBusy = errors.New("a request is already in progress")
	// ErrStale is returned when a response arrived after a newer request was issued.
	ErrStale = errors.New("response superseded by a newer request")
)
