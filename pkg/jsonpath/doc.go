// Package jsonpath builds JSONPath-like address strings and encodes them into
// node identifiers that are safe to use as diagram keys.
//
// # Paths
//
// A path is rooted at [Root] ("$"). Object members are appended with a dot and
// array elements with a bracketed index:
//
//	p := jsonpath.Member(jsonpath.Root, "items") // $.items
//	p = jsonpath.Element(p, 0)                    // $.items[0]
//	p = jsonpath.Member(p, "name")                // $.items[0].name
//
// # Identifiers
//
// [Encode] maps a path to a node identifier by replacing the separator
// characters with literal tokens:
//
//	"."  → "_dot_"
//	"["  → "_brk_"
//	"]"  → "_"
//
// The replacement runs over the whole string, so the root marker and segment
// order are preserved. There is no decoder: lookups re-encode the query path
// and compare identifiers.
//
// # Limitations
//
// Keys are inserted verbatim. A key that itself contains ".", "[", "]" or one
// of the replacement tokens can produce the same identifier as a different
// path (for example "$.a.b" and the member "a.b" of the root). Builders report
// such collisions rather than rewriting keys.
package jsonpath
