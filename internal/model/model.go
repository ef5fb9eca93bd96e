package model

type Kind string

const (
	KindNote      Kind = "note"
	KindChecklist Kind = "checklist"
)

func ParseKind(s string) (Kind, bool) {
	switch Kind(s) {
	case KindNote:
		return KindNote, true
	case KindChecklist:
		return KindChecklist, true
	default:
		return "", false
	}
}

// Color is a named color tag. The zero value means "no color".
type Color string

const (
	ColorNone   Color = ""
	ColorRed    Color = "red"
	ColorOrange Color = "orange"
	ColorYellow Color = "yellow"
	ColorGreen  Color = "green"
	ColorBlue   Color = "blue"
	ColorPurple Color = "purple"
	ColorGray   Color = "gray"
)

// Palette lists the valid colors in cycle order.
var Palette = []Color{ColorRed, ColorOrange, ColorYellow, ColorGreen, ColorBlue, ColorPurple, ColorGray}

func (c Color) Valid() bool {
	if c == ColorNone {
		return true
	}
	for _, p := range Palette {
		if p == c {
			return true
		}
	}
	return false
}

// Next returns the color after c in the palette; the last color wraps to none.
func (c Color) Next() Color {
	if c == ColorNone {
		return Palette[0]
	}
	for i, p := range Palette {
		if p == c {
			if i == len(Palette)-1 {
				return ColorNone
			}
			return Palette[i+1]
		}
	}
	return ColorNone
}

type Entry struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Done bool   `json:"done"`
}

type Note struct {
	ID          string
	Title       string
	Content     string
	IsCollapsed bool
	Color       Color
}

type Checklist struct {
	ID          string
	Title       string
	Description string
	IsCollapsed bool
	Color       Color
	Items       []Entry
}

// Item is one entry of Document.Content. It is implemented only by *Note and
// *Checklist; callers switch on the concrete type.
type Item interface {
	ItemID() string
	Kind() Kind
	isItem()
}

func (n *Note) ItemID() string { return n.ID }
func (n *Note) Kind() Kind     { return KindNote }
func (*Note) isItem()          {}

func (c *Checklist) ItemID() string { return c.ID }
func (c *Checklist) Kind() Kind     { return KindChecklist }
func (*Checklist) isItem()          {}

// FindEntry returns the entry with id, or nil.
func (c *Checklist) FindEntry(id string) *Entry {
	for i := range c.Items {
		if c.Items[i].ID == id {
			return &c.Items[i]
		}
	}
	return nil
}

// Document is the whole persisted value. Content order is display order.
type Document struct {
	Content []Item
}

func NewDocument() *Document {
	return &Document{Content: []Item{}}
}

// Title returns the item's title regardless of kind.
func Title(it Item) string {
	switch x := it.(type) {
	case *Note:
		return x.Title
	case *Checklist:
		return x.Title
	default:
		return ""
	}
}

// Collapsed reports whether the item is collapsed.
func Collapsed(it Item) bool {
	switch x := it.(type) {
	case *Note:
		return x.IsCollapsed
	case *Checklist:
		return x.IsCollapsed
	default:
		return false
	}
}

// ItemColor returns the item's color tag.
func ItemColor(it Item) Color {
	switch x := it.(type) {
	case *Note:
		return x.Color
	case *Checklist:
		return x.Color
	default:
		return ColorNone
	}
}
