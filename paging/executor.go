package paging

import (
	"context"
	"fmt"

	"github.com/google/wire"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/ncobase/geocontent/cursor"
	"github.com/ncobase/geocontent/ecode"
	"github.com/ncobase/geocontent/logging/logger"
	"github.com/ncobase/geocontent/logging/observes"
	"github.com/ncobase/geocontent/query"
)

// DefaultSearchLimit bounds the ids a Searcher may return for one request.
const DefaultSearchLimit = 1000

// ProviderSet is the wire provider set of the paging package.
var ProviderSet = wire.NewSet(NewExecutor)

// Executor runs compiled list queries against a Collection.
type Executor struct {
	coll        Collection
	idField     string
	searcher    Searcher
	known       KnownValuesResolver
	searchLimit int
}

// Option configures an Executor.
type Option func(*Executor)

// WithIDField sets the unique id field. Defaults to DefaultIDField.
func WithIDField(field string) Option {
	return func(e *Executor) {
		if field != "" {
			e.idField = field
		}
	}
}

// WithSearcher resolves search text through an external index.
func WithSearcher(s Searcher) Option {
	return func(e *Executor) { e.searcher = s }
}

// WithKnownValues sets the resolver merged into facet counts.
func WithKnownValues(r KnownValuesResolver) Option {
	return func(e *Executor) { e.known = r }
}

// WithSearchLimit bounds the ids taken from the Searcher.
func WithSearchLimit(n int) Option {
	return func(e *Executor) {
		if n > 0 {
			e.searchLimit = n
		}
	}
}

// NewExecutor creates an executor over coll.
func NewExecutor(coll Collection, opts ...Option) *Executor {
	e := &Executor{coll: coll, idField: DefaultIDField, searchLimit: DefaultSearchLimit}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// List reads one page of records for o, with its total and cursors.
//
// A non-nil cursor selects cursor mode, otherwise Skip and Limit select the
// page. Counts for each facet field are computed over the unpaginated
// filter. The page, count and facet reads run concurrently.
func (e *Executor) List(ctx context.Context, o query.Options, facets ...string) (r *Result[Record], err error) {
	ctx, span := observes.Start(ctx, "paging.List",
		attribute.Int("page.limit", o.Limit),
		attribute.Bool("page.cursor", o.CursorMode()),
		attribute.StringSlice("page.facets", facets),
	)
	defer func() { observes.End(span, err) }()

	where, err := e.where(ctx, o)
	if err != nil {
		return nil, err
	}

	sel, added := widenSelect(o.Select, e.pagePaths(o.Sort))
	find := FindQuery{
		Where:    where,
		Select:   sel,
		Populate: o.Populate,
		Sort:     offsetSort(o.Sort, e.idField),
		Offset:   o.Offset(),
		Limit:    o.Limit,
	}
	reverse := false
	if o.CursorMode() {
		reverse = o.Cursor.Reverse
		find.Where = query.All(where, seekCondition(o.Sort, o.Cursor, e.idField))
		find.Sort = scanSort(o.Sort, o.Cursor, e.idField)
		find.Offset = 0
		find.Limit = o.Limit + 1
	}

	var (
		items   []Record
		total   int64
		buckets = make([][]Bucket, len(facets))
	)
	g, gctx := errgroup.WithContext(ctx)
	if o.Limit > 0 {
		g.Go(func() (err error) {
			ctx, span := observes.Start(gctx, "paging.find")
			defer func() { observes.End(span, err) }()

			records, err := e.coll.Find(ctx, find)
			if err != nil {
				return storeError("find", err)
			}
			items = records
			return nil
		})
	}
	g.Go(func() (err error) {
		ctx, span := observes.Start(gctx, "paging.count")
		defer func() { observes.End(span, err) }()

		n, err := e.coll.Count(ctx, where)
		if err != nil {
			return storeError("count", err)
		}
		total = n
		return nil
	})
	for i, field := range facets {
		g.Go(func() (err error) {
			ctx, span := observes.Start(gctx, "paging.facet", attribute.String("facet.field", field))
			defer func() { observes.End(span, err) }()

			b, err := e.facet(ctx, where, field)
			if err != nil {
				return err
			}
			buckets[i] = b
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	more := false
	if o.CursorMode() {
		if len(items) > o.Limit {
			more = true
			items = items[:o.Limit]
		}
		if reverse {
			reverseRecords(items)
		}
	}
	if items == nil {
		items = make([]Record, 0)
	}

	r = &Result[Record]{Items: items, Total: total}
	if len(facets) > 0 {
		r.Facets = make(map[string][]Bucket, len(facets))
		for i, field := range facets {
			r.Facets[field] = buckets[i]
		}
	}

	if err := e.cursors(ctx, o, r, reverse, more); err != nil {
		return nil, err
	}
	strip(r.Items, added)
	return r, nil
}

// pagePaths lists the paths a record must carry for its cursor.
func (e *Executor) pagePaths(sort query.SortMask) []string {
	paths := make([]string, 0, len(sort)+1)
	for _, f := range sort {
		paths = append(paths, f.Path)
	}
	return append(paths, e.idField)
}

// storeError classifies err from a read. Errors already carrying a kind,
// such as a filter value the store cannot coerce, are returned unchanged.
func storeError(op string, err error) error {
	if _, ok := ecode.As(err); ok {
		return err
	}
	return ecode.WrapStore(op, err)
}

func (e *Executor) where(ctx context.Context, o query.Options) (query.Condition, error) {
	where := o.Filter.Condition()
	if o.Search == "" {
		return where, nil
	}
	if e.searcher == nil {
		return query.All(where, query.TextSearch(o.Search)), nil
	}
	ids, err := e.searcher.SearchIDs(ctx, o.Search, e.searchLimit)
	if err != nil {
		return query.Condition{}, storeError("search", err)
	}
	if ids == nil {
		ids = []string{}
	}
	return query.All(where, query.Leaf(e.idField, query.OpIn, ids)), nil
}

// cursors sets the next and previous tokens of r.
//
// next is emitted whenever total exceeds the page size and the page is not
// empty, from the last record. previous is emitted only when the request
// carried a cursor with seek state and records precede the page: always for
// a forward read, and for a reverse read only if it found more records.
func (e *Executor) cursors(ctx context.Context, o query.Options, r *Result[Record], reverse, more bool) error {
	keys := o.Sort.Keys()
	if len(r.Items) == 0 {
		return nil
	}

	if r.Total > int64(o.Limit) {
		last := r.Items[len(r.Items)-1]
		token, err := e.encode(ctx, last, keys, false)
		if err != nil {
			return err
		}
		r.NextCursor = token
		r.HasNextPage = true
	}

	if !o.Cursor.IsEmpty() && (!reverse || more) {
		token, err := e.encode(ctx, r.Items[0], keys, true)
		if err != nil {
			return err
		}
		r.PrevCursor = token
	}
	return nil
}

func (e *Executor) encode(ctx context.Context, rec Record, keys []cursor.Key, reverse bool) (string, error) {
	id, ok := rec[e.idField]
	if !ok || id == nil {
		err := ecode.NewConfig(e.idField, "record carries no id, cannot paginate")
		logger.Errorf(ctx, "paging: encode cursor: %v", err)
		return "", err
	}
	token, err := cursor.Encode(idString(id), keys, rec, reverse)
	if err != nil {
		logger.Errorf(ctx, "paging: encode cursor: %v", err)
		return "", err
	}
	return token, nil
}

func idString(id any) string {
	switch v := id.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprint(id)
}

func reverseRecords(items []Record) {
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
}
