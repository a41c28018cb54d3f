package fdrtrace

import "fmt"

// Code is a D8 flow direction value: 0 for a sink or one of eight powers of two,
// clockwise from east.
type Code int32

const (
	Sink      Code = 0
	East      Code = 1
	SouthEast Code = 2
	South     Code = 4
	SouthWest Code = 8
	West      Code = 16
	NorthWest Code = 32
	North     Code = 64
	NorthEast Code = 128
)

// Codes lists the eight directional codes in clockwise order from east.
var Codes = [8]Code{East, SouthEast, South, SouthWest, West, NorthWest, North, NorthEast}

//	| 32| 64|128|    |-1,-1|-1, 0|-1, 1|
//	| 16| x | 1 |    | 0,-1|  x  | 0, 1|
//	| 8 | 4 | 2 |    | 1,-1| 1, 0| 1, 1|

// Offset returns the (row, col) step to the neighbouring cell for c. Rows increase
// southward. ok is false for codes outside the D8 table; Sink yields (0,0,true).
func (c Code) Offset() (drow, dcol int, ok bool) {
	switch c {
	case Sink:
		return 0, 0, true
	case East:
		return 0, 1, true
	case SouthEast:
		return 1, 1, true
	case South:
		return 1, 0, true
	case SouthWest:
		return 1, -1, true
	case West:
		return 0, -1, true
	case NorthWest:
		return -1, -1, true
	case North:
		return -1, 0, true
	case NorthEast:
		return -1, 1, true
	}
	return 0, 0, false
}

// Valid reports whether c is in the D8 table.
func (c Code) Valid() bool {
	_, _, ok := c.Offset()
	return ok
}

func (c Code) String() string {
	switch c {
	case Sink:
		return "sink"
	case East:
		return "E"
	case SouthEast:
		return "SE"
	case South:
		return "S"
	case SouthWest:
		return "SW"
	case West:
		return "W"
	case NorthWest:
		return "NW"
	case North:
		return "N"
	case NorthEast:
		return "NE"
	}
	return fmt.Sprintf("Code(%d)", int32(c))
}
