// Package types provides the loosely-typed document primitives shared by the
// cursor codec, the list executor and the store adapters: the JSON record
// alias, dotted-path lookups and cross-type value comparison.
//
// # Comparison
//
// Compare orders values the way a document store does when a request carries
// string-typed filter values and the stored field is numeric, boolean or a date:
//
//	types.Compare(5, "10")                          // -1, true
//	types.Compare(time.Now(), "2020-01-01T00:00:00Z") // 1, true
//	types.Compare("a", []any{})                     // 0, false
//
// nil sorts before every other value.
//
// # Paths
//
//	v, ok := types.Lookup(record, "owner.team.name")
package types
