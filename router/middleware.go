package router

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"

	"github.com/ncobase/geocontent/ctxutil"
	"github.com/ncobase/geocontent/logging/logger"
	"github.com/ncobase/geocontent/logging/observes"
	"github.com/ncobase/geocontent/net/resp"
)

const (
	// TraceHeader carries the trace id of a request and its response.
	TraceHeader = "X-Trace-ID"
	// TenantHeader names the tenant a request is scoped to.
	TenantHeader = "X-Tenant-ID"
)

// Trace runs every request in a server span and echoes its trace id.
//
// The span continues an incoming traceparent. The trace id is the span's;
// when tracing is disabled it is the client's X-Trace-ID or a fresh one.
func Trace() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := otel.GetTextMapPropagator().Extract(c.Request.Context(), propagation.HeaderCarrier(c.Request.Header))
		ctx, span := observes.Start(ctx, c.Request.Method+" "+c.Request.URL.Path,
			attribute.String("http.method", c.Request.Method),
			attribute.String("http.target", c.Request.URL.RequestURI()),
		)
		defer span.End()

		ctx = ctxutil.WithGinContext(ctx, c)
		if id := observes.TraceID(ctx); id != "" {
			ctx = ctxutil.SetTraceID(ctx, id)
		} else if id := c.GetHeader(TraceHeader); id != "" {
			ctx = ctxutil.SetTraceID(ctx, id)
		}
		ctx, id := ctxutil.EnsureTraceID(ctx)
		c.Request = c.Request.WithContext(ctx)
		c.Header(TraceHeader, id)
		c.Next()

		span.SetAttributes(attribute.Int("http.status_code", c.Writer.Status()))
	}
}

// Tenant rejects requests without a tenant header and stores the tenant
// on the request context.
func Tenant() gin.HandlerFunc {
	return func(c *gin.Context) {
		tenant := c.GetHeader(TenantHeader)
		if tenant == "" {
			resp.Fail(c.Writer, resp.BadRequest("missing "+TenantHeader+" header"))
			c.Abort()
			return
		}
		ctx := ctxutil.WithGinContext(c.Request.Context(), c)
		c.Request = c.Request.WithContext(ctxutil.SetTenantID(ctx, tenant))
		c.Next()
	}
}

// Logger logs one line per request.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		logger.Infof(c.Request.Context(), "%s %s %d", c.Request.Method, c.Request.URL.Path, c.Writer.Status())
	}
}
