package meilisearch

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ncobase/geocontent/paging"
)

// DefaultIDAttribute is the document attribute holding the record id.
const DefaultIDAttribute = "id"

// Searcher resolves free text to record ids through one index.
type Searcher struct {
	client *Client
	index  string
	idAttr string
}

var _ paging.Searcher = (*Searcher)(nil)

// NewSearcher searches index. An empty idAttr uses DefaultIDAttribute.
func NewSearcher(c *Client, index, idAttr string) *Searcher {
	if idAttr == "" {
		idAttr = DefaultIDAttribute
	}
	return &Searcher{client: c, index: index, idAttr: idAttr}
}

// SearchIDs returns the ids of up to limit documents matching text, in
// relevance order.
func (s *Searcher) SearchIDs(ctx context.Context, text string, limit int) ([]string, error) {
	resp, err := s.client.Search(ctx, s.index, text, &SearchParams{
		Limit:                int64(limit),
		AttributesToRetrieve: []string{s.idAttr},
	})
	if err != nil {
		return nil, err
	}
	return hitIDs(resp.Hits, s.idAttr)
}

// hitIDs reads attr from every hit. Hits are re-read through JSON so raw
// and decoded hit values are handled alike.
func hitIDs(hits any, attr string) ([]string, error) {
	data, err := json.Marshal(hits)
	if err != nil {
		return nil, fmt.Errorf("meilisearch: encode hits: %w", err)
	}
	var docs []map[string]any
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("meilisearch: decode hits: %w", err)
	}

	ids := make([]string, 0, len(docs))
	for _, d := range docs {
		v, ok := d[attr]
		if !ok || v == nil {
			continue
		}
		if f, isNumber := v.(float64); isNumber && f == float64(int64(f)) {
			ids = append(ids, fmt.Sprint(int64(f)))
			continue
		}
		ids = append(ids, fmt.Sprint(v))
	}
	return ids, nil
}
