package field

import (
	"strconv"
	"time"
)

// Cell is a mutable storage slot carrying a single typed value plus the
// stored/indexed/term-vector attributes of the field that produced it.
// Cells are reused across documents by a write worker's per-index
// template cache (§4.5) — CreateCell/WriteCell/WriteDefault never
// allocate a new Cell on the hot path once a template is warm.
type Cell struct {
	Descriptor *Descriptor

	StringVal string
	IntVal    int64
	FloatVal  float64
	BoolVal   bool

	// Parsed reports whether the last WriteCell call parsed the input
	// successfully, or fell back to WriteDefault.
	Parsed bool
}

// CreateCell allocates a fresh, default-valued cell for field.
func CreateCell(f *Descriptor) *Cell {
	c := &Cell{Descriptor: f}
	WriteDefault(f, c)
	return c
}

// WriteDefault resets cell to the zero value for field's kind.
func WriteDefault(f *Descriptor, c *Cell) {
	c.Descriptor = f
	c.StringVal = ""
	c.IntVal = 0
	c.FloatVal = 0
	c.BoolVal = false
	c.Parsed = false
}

// WriteCell parses value according to field's kind and stores it into
// cell. On parse failure, cell is reset to its default value rather than
// propagating an error — a single malformed field must never fail the
// whole document (§4.1).
func WriteCell(f *Descriptor, c *Cell, value string) {
	switch f.Kind {
	case Int:
		n, err := strconv.ParseInt(value, 10, 32)
		if err != nil {
			WriteDefault(f, c)
			return
		}
		c.Descriptor = f
		c.IntVal = n
		c.StringVal = value
		c.Parsed = true

	case Long, Date:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			WriteDefault(f, c)
			return
		}
		c.Descriptor = f
		c.IntVal = n
		c.StringVal = value
		c.Parsed = true

	case DateTime:
		t, err := time.Parse(time.RFC3339, value)
		if err != nil {
			WriteDefault(f, c)
			return
		}
		c.Descriptor = f
		c.IntVal = t.UnixMilli()
		c.StringVal = value
		c.Parsed = true

	case Double:
		n, err := strconv.ParseFloat(value, 64)
		if err != nil {
			WriteDefault(f, c)
			return
		}
		c.Descriptor = f
		c.FloatVal = n
		c.StringVal = value
		c.Parsed = true

	case Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			WriteDefault(f, c)
			return
		}
		c.Descriptor = f
		c.BoolVal = b
		c.StringVal = value
		c.Parsed = true

	case ExactText, Text, Highlight, Custom, Stored:
		c.Descriptor = f
		c.StringVal = value
		c.Parsed = true

	default:
		WriteDefault(f, c)
	}
}
