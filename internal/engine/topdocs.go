package engine

import "sort"

// SortField names a field and direction a result set is ordered by. A nil
// *SortField means relevance (score descending).
type SortField struct {
	Field string
	Kind  SortKindGetter
	Desc  bool
}

// SortKindGetter reports whether a field sorts numerically; searchexecutor
// supplies it from field.SortType of the resolved descriptor so engine does
// not need to import field-descriptor resolution itself.
type SortKindGetter func(fieldName string) (numeric bool)

// ScoreDoc is a single scored hit.
type ScoreDoc struct {
	Doc   *Document
	Score float32
}

// TopDocs is a shard's (or, after Merge, the merged) top-k result set.
type TopDocs struct {
	TotalHits int
	ScoreDocs []ScoreDoc
}

// Merge combines several shards' TopDocs into a single globally sorted
// top-k list, mirroring Lucene's TopDocs.merge (§4.8.5).
func Merge(sortBy *SortField, k int, perShard []*TopDocs) *TopDocs {
	merged := &TopDocs{}
	for _, td := range perShard {
		if td == nil {
			continue
		}
		merged.TotalHits += td.TotalHits
		merged.ScoreDocs = append(merged.ScoreDocs, td.ScoreDocs...)
	}
	sortScoreDocs(merged.ScoreDocs, sortBy)
	if k >= 0 && len(merged.ScoreDocs) > k {
		merged.ScoreDocs = merged.ScoreDocs[:k]
	}
	return merged
}

func sortScoreDocs(docs []ScoreDoc, sortBy *SortField) {
	if sortBy == nil {
		sort.SliceStable(docs, func(i, j int) bool { return docs[i].Score > docs[j].Score })
		return
	}
	numeric := sortBy.Kind != nil && sortBy.Kind(sortBy.Field)
	sort.SliceStable(docs, func(i, j int) bool {
		a, aok := docs[i].Doc.Get(sortBy.Field)
		b, bok := docs[j].Doc.Get(sortBy.Field)
		var less bool
		switch {
		case !aok && !bok:
			return false
		case !aok:
			return false
		case !bok:
			return true
		case numeric:
			less = numericValue(a) < numericValue(b)
		default:
			less = a.String < b.String
		}
		if sortBy.Desc {
			return !less
		}
		return less
	})
}
