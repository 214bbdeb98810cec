package visibility

// Kind identifies which variant a Node is.
type Kind int

const (
	KindWindow Kind = iota
	KindDocument
	KindElement
)

func (k Kind) String() string {
	switch k {
	case KindWindow:
		return "window"
	case KindDocument:
		return "document"
	case KindElement:
		return "element"
	default:
		return "unknown"
	}
}

// Node is a reference into a host's visual tree. It is one of Window,
// Document or Element; hosts resolve their own handles into one of these
// before anything is classified.
type Node interface {
	Kind() Kind
}

// Window is the host's top-level window (the viewport).
type Window struct{}

// Document is the host's document node.
type Document struct{}

// Element is a rendered element. Ref is issued by the host and is only
// meaningful to the host that issued it.
type Element struct {
	Ref string
}

func (Window) Kind() Kind   { return KindWindow }
func (Document) Kind() Kind { return KindDocument }
func (Element) Kind() Kind  { return KindElement }
