package geometry

// Edge identifies one of the four boundaries of a rectangle.
type Edge int

const (
	EdgeLeft Edge = iota
	EdgeRight
	EdgeTop
	EdgeBottom
)

// edgeCount is the number of Edge values; per-edge state arrays index by Edge.
const edgeCount = 4

// Edges lists every edge, in a stable order.
var Edges = [edgeCount]Edge{EdgeLeft, EdgeRight, EdgeTop, EdgeBottom}

func (e Edge) String() string {
	switch e {
	case EdgeLeft:
		return "left"
	case EdgeRight:
		return "right"
	case EdgeTop:
		return "top"
	case EdgeBottom:
		return "bottom"
	default:
		return "unknown"
	}
}
