package router

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ncobase/geocontent/content"
	"github.com/ncobase/geocontent/ctxutil"
	"github.com/ncobase/geocontent/logging/logger"
	"github.com/ncobase/geocontent/net/resp"
	"github.com/ncobase/geocontent/paging"
	"github.com/ncobase/geocontent/query"
)

// FacetsParam lists the fields to aggregate, comma separated.
const FacetsParam = "facets"

// Meta is the metadata block of a list response.
type Meta struct {
	Total   int64                      `json:"total"`
	HasNext bool                       `json:"has_next"`
	Facets  map[string][]paging.Bucket `json:"facets,omitempty"`
}

// Envelope is the body of a list response.
type Envelope struct {
	Data  []paging.Record `json:"data"`
	Meta  Meta            `json:"meta"`
	Links paging.Links    `json:"links"`
}

// ListService serves list requests of one content type.
type ListService struct {
	Type     *content.Type
	Parser   *query.Parser
	Executor *paging.Executor
}

// NewListService creates a ListService.
func NewListService(t *content.Type, p *query.Parser, e *paging.Executor) *ListService {
	return &ListService{Type: t, Parser: p, Executor: e}
}

// ParseList compiles the request query of c under the predefined clauses.
func ParseList(c *gin.Context, p *query.Parser, predefined []query.FilterClause) (query.Options, error) {
	params, err := query.DecodeQuery(c.Request.URL.RawQuery)
	if err != nil {
		return query.Options{}, err
	}
	return p.Parse(params, query.WithPredefined(predefined...))
}

// Handle lists records of the service's content type scoped to the
// request tenant.
func (s *ListService) Handle(c *gin.Context) {
	ctx := c.Request.Context()

	facets, err := s.facets(c)
	if err != nil {
		resp.Fail(c.Writer, resp.FromError(err))
		return
	}

	opts, err := ParseList(c, s.Parser, content.TenantFilters(ctxutil.GetTenantID(ctx)))
	if err != nil {
		resp.Fail(c.Writer, resp.FromError(err))
		return
	}

	result, err := s.Executor.List(ctx, opts, facets...)
	if err != nil {
		logger.Errorf(ctx, "list %s: %v", s.Type.Name, err)
		resp.Fail(c.Writer, resp.FromError(err))
		return
	}

	values, err := query.ParseValues(c.Request.URL.RawQuery)
	if err != nil {
		resp.Fail(c.Writer, resp.FromError(err))
		return
	}

	data := result.Items
	if data == nil {
		data = []paging.Record{}
	}
	resp.Success(c.Writer, &Envelope{
		Data: data,
		Meta: Meta{
			Total:   result.Total,
			HasNext: result.HasNextPage,
			Facets:  result.Facets,
		},
		Links: paging.BuildLinks(c.Request.URL.Path, values, s.Parser.Config(), opts, result),
	})
}

func (s *ListService) facets(c *gin.Context) ([]string, error) {
	var out []string
	for _, raw := range c.QueryArray(FacetsParam) {
		for _, f := range strings.Split(raw, ",") {
			f = strings.TrimSpace(f)
			if f == "" {
				continue
			}
			if !s.Type.HasFacet(f) {
				return nil, unknownFacet(f)
			}
			out = append(out, f)
		}
	}
	return out, nil
}
