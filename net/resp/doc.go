// Package resp writes JSON responses in one envelope shape.
//
// Successful responses write their payload as is. Failures write
//
//	{"code": -402, "message": "...", "errors": {...}}
//
// with the HTTP status derived from the business code. FromError maps
// classified errors from the ecode package:
//
//	resp.Fail(w, resp.FromError(err))
package resp
