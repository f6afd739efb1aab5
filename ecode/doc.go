// Package ecode defines business error codes and the typed errors raised while
// compiling and executing list queries.
//
// # Error Code Convention
//
// Codes follow the ncobase numbering scheme:
//   - 0: Success (OK)
//   - -400 to -499: Request errors (malformed filter, cursor, parameter)
//   - -500+: Server errors
//
// # Error Kinds
//
// Every *Error carries a Kind:
//
//	ecode.KindValidation // client supplied something malformed, never retried
//	ecode.KindConfig     // server side defect, e.g. paginating on an absent field
//
// Validation errors carry the offending parameter name and raw input so that a
// client can correct its request without server-side log correlation:
//
//	err := ecode.NewValidation(ecode.ParamErr, "filter", "age=>5", "unrecognized operator")
//	if ecode.IsValidation(err) {
//	    resp.Fail(w, resp.BadRequest(err.Error(), err))
//	}
//
// # HTTP Status Mapping
//
//	ecode.ToHTTPStatus(ecode.ParamErr)  // 400
//	ecode.ToHTTPStatus(ecode.ServerErr) // 500
package ecode
