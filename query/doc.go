// Package query compiles list request params into store-agnostic Options.
//
// A request such as
//
//	?select=name,-secret&sort=-rank&filter=age>=5,tag==a;b&populate=owner.team&page[size]=20
//
// is decoded into a nested Params tree, run through one stage per
// directive, then through the predefined filter stage and the population
// merger. Every stage returns a new Options value.
package query
