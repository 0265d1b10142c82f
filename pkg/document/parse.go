package document

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/matzehuels/jsontree/pkg/errors"
)

// Format names an input notation.
type Format string

// Supported input formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Formats lists every supported input format.
var Formats = []Format{FormatJSON, FormatYAML, FormatTOML}

// ParseFormat validates a user-supplied format name.
// The empty string selects JSON.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatJSON, nil
	case "yml":
		return FormatYAML, nil
	default:
		if slices.Contains(Formats, f) {
			return f, nil
		}
		return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported input format %q (want json, yaml or toml)", s)
	}
}

// DetectFormat infers the format from a file name, defaulting to JSON.
func DetectFormat(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatJSON
	}
}

// Parse decodes data in the given format.
func Parse(data []byte, format Format) (Value, error) {
	switch format {
	case FormatJSON, "":
		return ParseJSON(data)
	case FormatYAML:
		return ParseYAML(data)
	case FormatTOML:
		return ParseTOML(data)
	default:
		return Value{}, errors.New(errors.ErrCodeInvalidFormat, "unsupported input format %q", format)
	}
}

// MaxDepth bounds container nesting in every input format. Deeper documents
// are rejected as invalid input.
const MaxDepth = 10000

func invalid(format Format, cause error) error {
	if format == FormatJSON {
		return errors.Wrap(errors.ErrCodeInvalidJSON, cause, "Invalid JSON: %s", cause.Error())
	}
	return errors.Wrap(errors.ErrCodeInvalidJSON, cause, "Invalid %s: %s", strings.ToUpper(string(format)), cause.Error())
}
