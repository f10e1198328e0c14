// Package browse pages through a decoded record collection on a terminal.
package browse

// Navigator holds a cursor over a fixed number of records.
// It never moves below 0 or past the last record.
type Navigator struct {
	index  int
	length int
}

// NewNavigator creates a navigator positioned on the first record
func NewNavigator(length int) *Navigator {
	if length < 0 {
		length = 0
	}
	return &Navigator{length: length}
}

// Index returns the current position
func (n *Navigator) Index() int {
	return n.index
}

// Len returns the number of records
func (n *Navigator) Len() int {
	return n.length
}

// Next advances the cursor. It reports false, leaving the cursor unchanged, on the last record.
func (n *Navigator) Next() bool {
	if n.index >= n.length-1 {
		return false
	}
	n.index++
	return true
}

// Prev moves the cursor back. It reports false, leaving the cursor unchanged, on the first record.
func (n *Navigator) Prev() bool {
	if n.index <= 0 {
		return false
	}
	n.index--
	return true
}

// Seek moves to i, clamped to the valid range
func (n *Navigator) Seek(i int) {
	switch {
	case n.length == 0 || i < 0:
		n.index = 0
	case i >= n.length:
		n.index = n.length - 1
	default:
		n.index = i
	}
}
