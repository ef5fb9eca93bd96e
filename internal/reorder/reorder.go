// Package reorder turns a drag gesture over item blocks into a single move.
//
// The Controller knows nothing about mice or keys; the TUI feeds it Start, Over,
// Leave, Drop and Cancel from whichever input produced the gesture.
package reorder

type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// Region is the part of a block a gesture started on.
type Region int

const (
	// RegionBlock is the non-interactive surface of a block (header text, padding).
	RegionBlock Region = iota
	// RegionInteractive covers editors, buttons, checkboxes and the collapse twisty.
	RegionInteractive
)

// Move is handed to mutate.MoveItem.
type Move struct {
	FromID string
	ToID   string
}

type Controller struct {
	state   State
	dragged string
	target  string
}

func (c *Controller) State() State { return c.state }

func (c *Controller) Dragging() bool { return c.state == Dragging }

func (c *Controller) DraggedID() string { return c.dragged }

// DropTarget is the block currently carrying the drop marker, or "".
func (c *Controller) DropTarget() string { return c.target }

// Start begins a drag of id. It refuses interactive regions, empty ids and a
// second Start while already dragging.
func (c *Controller) Start(id string, region Region) bool {
	if c.state != Idle || id == "" || region != RegionBlock {
		return false
	}
	c.state = Dragging
	c.dragged = id
	c.target = ""
	return true
}

// Over marks id as the drop target. The dragged block never becomes a target.
func (c *Controller) Over(id string) {
	if c.state != Dragging {
		return
	}
	if id == c.dragged {
		c.target = ""
		return
	}
	c.target = id
}

// Leave clears the marker if it is on id.
func (c *Controller) Leave(id string) {
	if c.state == Dragging && c.target == id {
		c.target = ""
	}
}

// Drop ends the gesture on targetID. It returns ok=false for self drops and
// drops outside any block ("").
func (c *Controller) Drop(targetID string) (Move, bool) {
	if c.state != Dragging {
		return Move{}, false
	}
	from := c.dragged
	c.reset()
	if targetID == "" || targetID == from {
		return Move{}, false
	}
	return Move{FromID: from, ToID: targetID}, true
}

// Cancel ends the gesture without a move.
func (c *Controller) Cancel() {
	c.reset()
}

func (c *Controller) reset() {
	c.state = Idle
	c.dragged = ""
	c.target = ""
}
