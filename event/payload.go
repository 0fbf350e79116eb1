package event

// Cause records why a ball was spawned or removed
type Cause uint8

const (
	CauseStartup Cause = iota
	CauseBoundaryContact
	CauseManual
	CauseBallContact
	CauseOutOfBounds
)

var causeNames = [...]string{
	CauseStartup:         "startup",
	CauseBoundaryContact: "boundary_contact",
	CauseManual:          "manual",
	CauseBallContact:     "ball_contact",
	CauseOutOfBounds:     "out_of_bounds",
}

func (c Cause) String() string {
	if int(c) < len(causeNames) {
		return causeNames[c]
	}
	return "unknown"
}

// BallPayload describes a spawned or destroyed ball
type BallPayload struct {
	ID     uint64
	X, Y   float64
	Radius float64
	Cause  Cause
}

// ContactPayload describes a classified begin-contact
type ContactPayload struct {
	Ball  uint64
	Other uint64
}
