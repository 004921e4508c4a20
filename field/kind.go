// Package field implements the typed field model (spec component C1):
// field descriptors, storable cells, and the parse/default rules that
// keep a single malformed field from failing an entire document.
package field

// Kind enumerates the recognized field kinds.
type Kind int

const (
	Int Kind = iota
	Long
	Double
	Bool
	Date
	DateTime
	ExactText
	Text
	Highlight
	Custom
	Stored
)

func (k Kind) String() string {
	switch k {
	case Int:
		return "Int"
	case Long:
		return "Long"
	case Double:
		return "Double"
	case Bool:
		return "Bool"
	case Date:
		return "Date"
	case DateTime:
		return "DateTime"
	case ExactText:
		return "ExactText"
	case Text:
		return "Text"
	case Highlight:
		return "Highlight"
	case Custom:
		return "Custom"
	case Stored:
		return "Stored"
	default:
		return "Unknown"
	}
}

// IsNumeric reports whether kind admits numeric range queries (§4.1).
func (k Kind) IsNumeric() bool {
	switch k {
	case Int, Long, Double, Date, DateTime:
		return true
	default:
		return false
	}
}

// SortKind is the underlying primitive sort codec a field kind maps to.
type SortKind int

const (
	SortString SortKind = iota
	SortInt
	SortLong
	SortDouble
)

// SortType maps a field kind to its underlying primitive sort codec.
func SortType(k Kind) SortKind {
	switch k {
	case Int:
		return SortInt
	case Long, Date, DateTime:
		return SortLong
	case Double:
		return SortDouble
	default:
		return SortString
	}
}
