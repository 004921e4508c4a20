package searchexecutor

import (
	"strings"
	"sync"

	"github.com/Enielezi/FlexSearch/field"
	"github.com/Enielezi/FlexSearch/internal/engine"
)

// Execute runs query across every shard of rt in parallel, merges the
// per-shard top-k results, and hydrates result documents, following
// spec.md §4.8's eight steps. Every searcher acquired is released before
// Execute returns, on every path including error.
func Execute(rt Runtime, query engine.Query, sq SearchQuery) (*Result, error) {
	n := rt.ShardCount()
	handles := make([]*engine.SearcherHandle, n)
	for i := 0; i < n; i++ {
		handles[i] = rt.Shard(i).AcquireSearcher()
	}
	defer func() {
		for i := 0; i < n; i++ {
			rt.Shard(i).ReleaseSearcher(handles[i])
		}
	}()

	var sortBy *engine.SortField
	if sq.OrderBy != "" {
		if desc, ok := rt.Field(sq.OrderBy); ok {
			numeric := field.SortType(desc.Kind) != field.SortString
			sortBy = &engine.SortField{
				Field: sq.OrderBy,
				Desc:  sq.OrderByDesc,
				Kind:  func(string) bool { return numeric },
			}
		}
	}

	count := sq.Count
	if count == 0 {
		count = 10
	}
	k := count + sq.Skip

	perShard := make([]*engine.TopDocs, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			perShard[i] = handles[i].Search(query, k, sortBy)
		}(i)
	}
	wg.Wait()

	merged := engine.Merge(sortBy, k, perShard)

	result := &Result{TotalAvailable: merged.TotalHits}
	scoreDocs := merged.ScoreDocs
	if sq.Skip < len(scoreDocs) {
		scoreDocs = scoreDocs[sq.Skip:]
	} else {
		scoreDocs = nil
	}

	for _, sd := range scoreDocs {
		result.Documents = append(result.Documents, hydrate(rt, sd, sq))
	}
	result.RecordsReturned = len(result.Documents)
	return result, nil
}

func hydrate(rt Runtime, sd engine.ScoreDoc, sq SearchQuery) ResultDocument {
	doc := ResultDocument{Score: sd.Score, Fields: make(map[string]string)}

	if fv, ok := sd.Doc.Get("id"); ok {
		doc.ID = fv.String
	}
	if fv, ok := sd.Doc.Get("type"); ok {
		doc.Index = fv.String
	}
	if fv, ok := sd.Doc.Get("lastmodified"); ok {
		doc.LastModified = fv.Int
	}

	switch {
	case len(sq.Columns) == 0:
		// no other fields
	case len(sq.Columns) == 1 && sq.Columns[0] == "*":
		for name, desc := range rt.Fields() {
			if !desc.StoredOnly && !isReserved(name) {
				if fv, ok := sd.Doc.Get(name); ok && fv.Stored {
					doc.Fields[name] = fv.String
				}
			}
		}
	default:
		for _, col := range sq.Columns {
			if fv, ok := sd.Doc.Get(col); ok {
				doc.Fields[col] = fv.String
			}
		}
	}

	if sq.Highlight != nil {
		doc.Highlights = highlight(sd.Doc, sq.Highlight)
	}

	return doc
}

func isReserved(name string) bool {
	switch name {
	case "id", "type", "lastmodified", "version":
		return true
	default:
		return false
	}
}

// highlight emits up to req.Fragments fragments of the highlighted
// field's stored text, wrapping the first case-insensitive occurrence of
// each term in req.Terms with PreTag/PostTag. A fragment with no matched
// term is skipped (score <= 0, per §4.8 step 7) since the field/document
// pair did not actually contribute to the hit under this highlighted
// field.
func highlight(doc *engine.Document, req *HighlightRequest) []string {
	fv, ok := doc.Get(req.Field)
	if !ok || len(req.Terms) == 0 {
		return nil
	}

	frag := fv.String
	matched := false
	for _, term := range req.Terms {
		if term == "" {
			continue
		}
		idx := strings.Index(strings.ToLower(frag), strings.ToLower(term))
		if idx == -1 {
			continue
		}
		matched = true
		frag = frag[:idx] + req.PreTag + frag[idx:idx+len(term)] + req.PostTag + frag[idx+len(term):]
	}
	if !matched {
		return nil
	}

	fragments := []string{frag}
	if req.Fragments > 0 && len(fragments) > req.Fragments {
		fragments = fragments[:req.Fragments]
	}
	return fragments
}
