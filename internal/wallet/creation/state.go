package creation

import "fmt"

// State is a step of the create-wallet flow.
type State int

const (
	Welcome State = iota
	Terms
	Generating
	SeedPhraseDisplay
	Verify
	Confirmed
)

func (s State) String() string {
	switch s {
	case Welcome:
		return "welcome"
	case Terms:
		return "terms"
	case Generating:
		return "generating"
	case SeedPhraseDisplay:
		return "seed-phrase"
	case Verify:
		return "verify"
	case Confirmed:
		return "confirmed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

type Event int

const (
	EventStart Event = iota
	EventCreate
	EventGenerated
	EventGenerateFailed
	EventContinue
	EventVerified
)

func (e Event) String() string {
	switch e {
	case EventStart:
		return "start"
	case EventCreate:
		return "create"
	case EventGenerated:
		return "generated"
	case EventGenerateFailed:
		return "generate-failed"
	case EventContinue:
		return "continue"
	case EventVerified:
		return "verified"
	default:
		return fmt.Sprintf("event(%d)", int(e))
	}
}

// Generation failures land on Welcome, not Terms.
var transitions = map[State]map[Event]State{
	Welcome:           {EventStart: Terms},
	Terms:             {EventCreate: Generating},
	Generating:        {EventGenerated: SeedPhraseDisplay, EventGenerateFailed: Welcome},
	SeedPhraseDisplay: {EventContinue: Verify},
	Verify:            {EventVerified: Confirmed},
}

func transition(from State, ev Event) (State, error) {
	next, ok := transitions[from][ev]
	if !ok {
		return from, fmt.Errorf("no transition from %s on %s", from, ev)
	}
	return next, nil
}
