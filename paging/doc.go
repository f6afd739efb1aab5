// Package paging executes compiled list queries with offset or cursor
// pagination.
//
// # Offset mode
//
// Without a cursor the executor reads page Skip of size Limit in sort order,
// with the id field appended as a tiebreaker:
//
//	exec := paging.NewExecutor(coll)
//	res, err := exec.List(ctx, opts, "status")
//
// # Cursor mode
//
// With a cursor the executor seeks past the cursor's boundary record
// instead of skipping: for sort fields a, b it reads records matching
//
//	a > va OR (a == va AND b > vb) OR (a == va AND b == vb AND id > vid)
//
// with each comparison following the field's direction. A reverse cursor
// reads backwards and the page is flipped back into forward order.
//
// Result.NextCursor and Result.PrevCursor are opaque tokens; BuildLinks
// turns them into navigation links.
package paging
