// Package router exposes the content list endpoints over gin.
package router
