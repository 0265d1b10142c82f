package jsonpath

import (
	"strconv"
	"strings"
)

// Root is the path of the document root.
const Root = "$"

// Replacement tokens used by [Encode].
const (
	DotToken          = "_dot_"
	OpenBracketToken  = "_brk_"
	CloseBracketToken = "_"
)

// edgePrefix starts every edge identifier.
const edgePrefix = "e_"

var encoder = strings.NewReplacer(
	".", DotToken,
	"[", OpenBracketToken,
	"]", CloseBracketToken,
)

// Member returns the path of the object member key under parent.
func Member(parent, key string) string {
	return parent + "." + key
}

// Element returns the path of the array element at index under parent.
func Element(parent string, index int) string {
	return parent + "[" + strconv.Itoa(index) + "]"
}

// Encode converts a path into a node identifier.
// It is total and deterministic: the same path always yields the same identifier.
func Encode(path string) string {
	return encoder.Replace(path)
}

// EdgeID returns the identifier of the edge from source to target,
// where both arguments are already-encoded node identifiers.
func EdgeID(source, target string) string {
	return edgePrefix + source + "_" + target
}
