// Package document holds the parsed value model consumed by the tree builder.
//
// A [Value] is a closed union over six kinds: object, array, string, number,
// boolean and null. Objects keep their members in document order, so the
// tree built from the same text is always laid out the same way.
//
// # Parsing
//
// [Parse] reads text in one of the supported [Format]s:
//
//	v, err := document.Parse([]byte(`{"user": {"name": "Alice"}}`), document.FormatJSON)
//
// JSON follows the usual parser semantics: duplicate keys keep the position of
// their first occurrence and the value of their last. YAML and TOML are
// accepted as alternative notations for the same value model. Parse errors are
// returned as [github.com/matzehuels/jsontree/pkg/errors.Error] values with
// code ErrCodeInvalidJSON and the parser's message.
//
// # Rendering
//
// [Value.Text] renders primitives the way they appear on diagram labels:
// strings unquoted, "null", "true"/"false", and numbers in their shortest
// round-trip form.
package document
