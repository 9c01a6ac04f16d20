// Package layout places rendered ledgers on a printed page: one of four
// fixed quadrants, or the whole page.
package layout

import (
	"fmt"
	"strings"
)

// Position is the print position chosen for a single ledger.
type Position string

// Print positions.
const (
	TopLeft     Position = "top-left"
	TopRight    Position = "top-right"
	BottomLeft  Position = "bottom-left"
	BottomRight Position = "bottom-right"
	Full        Position = "full"
)

// DefaultPosition is used when no preference has been stored.
const DefaultPosition = TopRight

// Positions lists every position in selector order.
var Positions = []Position{TopLeft, TopRight, BottomLeft, BottomRight, Full}

// Quadrant indexes the 2x2 page grid in reading order.
type Quadrant int

// Page quadrants. The numeric order is the multi-print slot order.
const (
	QuadTopLeft Quadrant = iota
	QuadTopRight
	QuadBottomLeft
	QuadBottomRight
)

// Quadrants lists the grid cells in slot order.
var Quadrants = [4]Quadrant{QuadTopLeft, QuadTopRight, QuadBottomLeft, QuadBottomRight}

func (q Quadrant) String() string {
	switch q {
	case QuadTopLeft:
		return string(TopLeft)
	case QuadTopRight:
		return string(TopRight)
	case QuadBottomLeft:
		return string(BottomLeft)
	case QuadBottomRight:
		return string(BottomRight)
	}
	return fmt.Sprintf("quadrant(%d)", int(q))
}

// Column is 0 for the left half and 1 for the right half.
func (q Quadrant) Column() int { return int(q) % 2 }

// Row is 0 for the top half and 1 for the bottom half.
func (q Quadrant) Row() int { return int(q) / 2 }

// ParsePosition accepts a position name, case-insensitively.
func ParsePosition(s string) (Position, error) {
	p := Position(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Positions {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown print position %q", s)
}

// Next cycles through Positions.
func (p Position) Next() Position {
	for i, known := range Positions {
		if known == p {
			return Positions[(i+1)%len(Positions)]
		}
	}
	return DefaultPosition
}

// quadrant maps a single-ledger position to its grid cell.
func (p Position) quadrant() (Quadrant, bool) {
	switch p {
	case TopLeft:
		return QuadTopLeft, true
	case TopRight:
		return QuadTopRight, true
	case BottomLeft:
		return QuadBottomLeft, true
	case BottomRight:
		return QuadBottomRight, true
	}
	return 0, false
}

// Empty marks an unfilled slot in an Assignment.
const Empty = -1

// Assignment maps each quadrant to a document index, or Empty.
// When Full is set the page is one region holding document 0.
type Assignment struct {
	Slots [4]int
	Full  bool
}

// Assign decides which document goes where.
//
// One document follows pos: a named quadrant, or the whole page for Full.
// Two to four documents fill TL, TR, BL, BR in order and ignore pos.
// Documents past the fourth are not placed.
func Assign(n int, pos Position) Assignment {
	a := Assignment{Slots: [4]int{Empty, Empty, Empty, Empty}}

	switch {
	case n <= 0:
		return a
	case n == 1:
		if pos == Full {
			a.Full = true
			a.Slots[QuadTopLeft] = 0
			return a
		}
		q, ok := pos.quadrant()
		if !ok {
			q, _ = DefaultPosition.quadrant()
		}
		a.Slots[q] = 0
		return a
	}

	for i := 0; i < n && i < len(a.Slots); i++ {
		a.Slots[i] = i
	}
	return a
}

// Filled returns the occupied quadrants in slot order.
func (a Assignment) Filled() []Quadrant {
	var out []Quadrant
	for _, q := range Quadrants {
		if a.Slots[q] != Empty {
			out = append(out, q)
		}
	}
	return out
}
