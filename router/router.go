package router

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ncobase/geocontent/ecode"
	"github.com/ncobase/geocontent/net/resp"
)

// New creates an engine serving GET /<type> for every service, plus
// /healthz. ping checks the backing store.
func New(ping func(context.Context) error, services ...*ListService) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery(), Trace(), Logger())

	engine.GET("/healthz", func(c *gin.Context) {
		if ping != nil {
			if err := ping(c.Request.Context()); err != nil {
				resp.Fail(c.Writer, resp.Unavailable(err.Error()))
				return
			}
		}
		resp.Success(c.Writer)
	})

	api := engine.Group("/", Tenant())
	for _, s := range services {
		api.GET("/"+s.Type.Name, s.Handle)
	}

	engine.NoRoute(func(c *gin.Context) {
		resp.Fail(c.Writer, resp.NotFound(http.StatusText(http.StatusNotFound)))
	})
	return engine
}

func unknownFacet(field string) error {
	return ecode.NewValidation(ecode.ParamErr, FacetsParam, field, ecode.FieldIsInvalid("facet "+field))
}
