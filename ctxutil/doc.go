// Package ctxutil carries request-scoped values (trace id, tenant id) through
// context.Context and *gin.Context alike.
package ctxutil
