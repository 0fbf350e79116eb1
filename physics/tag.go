package physics

// Tag classifies a body's role in the simulation
// Attached once at creation, never changed
type Tag uint8

const (
	TagNone Tag = iota
	TagBall
	TagCircle
	TagWall
)

var tagNames = [...]string{
	TagNone:   "none",
	TagBall:   "ball",
	TagCircle: "circle",
	TagWall:   "wall",
}

func (t Tag) String() string {
	if int(t) < len(tagNames) {
		return tagNames[t]
	}
	return "unknown"
}

// IsBoundary reports whether the tag marks containment geometry
func (t Tag) IsBoundary() bool {
	return t == TagCircle || t == TagWall
}
