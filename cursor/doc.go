// Package cursor encodes and decodes the opaque pagination token handed to
// clients by list endpoints.
//
// A token is the standard, padded base64 encoding of compact JSON:
//
//	{"id":"<last seen id>","sort":{"<path>":[<value>,<±1>],...},"reverse":false}
//
// Every sort entry stores the value read off the boundary record together with
// its effective order: the requested order, negated when the token pages
// backwards. The literal token "-1" is reserved and means "begin cursor
// pagination from the first page".
//
//	token, err := cursor.Encode(id, []cursor.Key{{Path: "name", Order: 1}}, record, false)
//	c, err := cursor.Decode(token)
//	if c.IsEmpty() {
//	    // first page
//	}
package cursor
