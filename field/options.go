package field

// PostingsOptions controls what a field's inverted-index postings record.
// The source enumeration collided two members on the same discriminator;
// the duplicate is resolved here to DocsAndFreqsAndPositionsAndOffsets,
// the richer of the two (see Open Question (c)).
type PostingsOptions int

const (
	DocsOnly PostingsOptions = iota
	DocsAndFreqs
	DocsAndFreqsAndPositions
	DocsAndFreqsAndPositionsAndOffsets
)

// TermVectorOptions controls whether a field stores term vectors for
// highlighting and phrase scoring.
type TermVectorOptions int

const (
	NoTermVectors TermVectorOptions = iota
	TermVectorsWithPositions
	TermVectorsWithPositionsAndOffsets
)

// ValueSource computes a field's value from the rest of a document's
// input fields. It must be pure and side-effect free (§9).
type ValueSource func(fields map[string]string) (string, error)

// Descriptor is the typed description of a single field, as declared in
// an index setting.
type Descriptor struct {
	Name            string
	Kind            Kind
	StoredOnly      bool
	IndexAnalyzer   string
	SearchAnalyzer  string
	Postings        PostingsOptions
	TermVectors     TermVectorOptions
	ValueSource     ValueSource
}
