package document

import (
	"strings"
	"testing"

	"github.com/matzehuels/jsontree/pkg/errors"
)

func keys(v Value) []string {
	var out []string
	for _, m := range v.Members() {
		out = append(out, m.Key)
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestParseJSON(t *testing.T) {
	v, err := ParseJSON([]byte(`{"user":{"name":"Alice","zip":12345},"items":[{"name":"item1"},null,true]}`))
	if err != nil {
		t.Fatalf("ParseJSON error: %v", err)
	}
	if got := keys(v); !equalStrings(got, []string{"user", "items"}) {
		t.Errorf("keys = %v, want [user items]", got)
	}
	user, _ := v.Get("user")
	zip, _ := user.Get("zip")
	if zip.Kind() != KindNumber || zip.Text() != "12345" {
		t.Errorf("zip = %v %q", zip.Kind(), zip.Text())
	}
	items, _ := v.Get("items")
	if items.Len() != 3 {
		t.Fatalf("items len = %d, want 3", items.Len())
	}
	if items.Elements()[1].Kind() != KindNull || items.Elements()[2].Kind() != KindBool {
		t.Error("unexpected element kinds")
	}
}

func TestParseJSONKeyOrder(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"document order", `{"z":1,"a":2,"m":3}`, []string{"z", "a", "m"}},
		{"index keys first", `{"b":1,"10":2,"2":3}`, []string{"2", "10", "b"}},
		{"only canonical indexes move", `{"a":1,"01":2,"-1":3,"1.5":4,"7":5}`, []string{"7", "a", "01", "-1", "1.5"}},
		{"index range", `{"x":1,"4294967295":2,"4294967294":3,"0":4}`, []string{"0", "4294967294", "x", "4294967295"}},
		{"duplicates keep first position", `{"b":1,"3":2,"b":3}`, []string{"3", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := ParseJSON([]byte(tt.in))
			if err != nil {
				t.Fatal(err)
			}
			if got := keys(v); !equalStrings(got, tt.want) {
				t.Errorf("keys = %v, want %v", got, tt.want)
			}
		})
	}

	v, _ := ParseJSON([]byte(`{"b":1,"3":2,"b":3}`))
	if b, _ := v.Get("b"); b.Text() != "3" {
		t.Errorf("b = %s, want the last value 3", b.Text())
	}
}

func TestParseYAMLKeepsIndexKeyOrder(t *testing.T) {
	v, err := ParseYAML([]byte("b: 1\n\"10\": 2\n\"2\": 3\n"))
	if err != nil {
		t.Fatal(err)
	}
	if got := keys(v); !equalStrings(got, []string{"b", "10", "2"}) {
		t.Errorf("keys = %v, want [b 10 2]", got)
	}
}

func TestParseDepthLimit(t *testing.T) {
	nested := func(open, close string, n int) []byte {
		return []byte(strings.Repeat(open, n) + strings.Repeat(close, n))
	}

	if _, err := ParseJSON(nested("[", "]", MaxDepth)); err != nil {
		t.Errorf("ParseJSON at the depth limit: %v", err)
	}
	if _, err := ParseJSON(nested(`{"a":`, "}", MaxDepth)); err != nil {
		t.Errorf("ParseJSON objects at the depth limit: %v", err)
	}

	tests := []struct {
		name   string
		format Format
		data   []byte
	}{
		{"json arrays", FormatJSON, nested("[", "]", MaxDepth+1)},
		{"json objects", FormatJSON, nested(`{"a":`, "}", MaxDepth+1)},
		{"json within size limit", FormatJSON, nested("[", "]", 4<<20)},
		{"yaml flow sequences", FormatYAML, nested("[", "]", MaxDepth+1)},
		{"toml inline arrays", FormatTOML, append([]byte("a = "), nested("[", "]", MaxDepth+1)...)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.data, tt.format)
			if !errors.Is(err, errors.ErrCodeInvalidJSON) {
				t.Fatalf("error = %v, want INVALID_JSON", err)
			}
			if tt.format == FormatJSON && !strings.HasPrefix(errors.UserMessage(err), "Invalid JSON: ") {
				t.Errorf("message = %q", errors.UserMessage(err))
			}
		})
	}
}

func TestParseJSONScalarRoots(t *testing.T) {
	tests := []struct {
		in   string
		kind Kind
	}{
		{`null`, KindNull},
		{`"hi"`, KindString},
		{` 42 `, KindNumber},
		{`false`, KindBool},
		{`[]`, KindArray},
		{`{}`, KindObject},
	}
	for _, tt := range tests {
		v, err := ParseJSON([]byte(tt.in))
		if err != nil {
			t.Errorf("ParseJSON(%q) error: %v", tt.in, err)
			continue
		}
		if v.Kind() != tt.kind {
			t.Errorf("ParseJSON(%q) kind = %v, want %v", tt.in, v.Kind(), tt.kind)
		}
	}
}

func TestParseJSONErrors(t *testing.T) {
	inputs := []string{
		``,
		`{`,
		`{"a":}`,
		`[1,2`,
		`{"a":1} {"b":2}`,
		`{"a":1}x`,
		`{'a':1}`,
	}
	for _, in := range inputs {
		_, err := ParseJSON([]byte(in))
		if err == nil {
			t.Errorf("ParseJSON(%q) expected error", in)
			continue
		}
		if !errors.Is(err, errors.ErrCodeInvalidJSON) {
			t.Errorf("ParseJSON(%q) code = %v, want %v", in, errors.GetCode(err), errors.ErrCodeInvalidJSON)
		}
		if msg := errors.UserMessage(err); len(msg) < len("Invalid JSON: ") || msg[:14] != "Invalid JSON: " {
			t.Errorf("ParseJSON(%q) message = %q, want Invalid JSON prefix", in, msg)
		}
	}
}

func TestParseYAML(t *testing.T) {
	src := `
user:
  name: Alice
  zip: 12345
  active: yes_string
items:
  - name: item1
  - ~
flag: true
ratio: 0.5
`
	v, err := ParseYAML([]byte(src))
	if err != nil {
		t.Fatalf("ParseYAML error: %v", err)
	}
	if got := keys(v); !equalStrings(got, []string{"user", "items", "flag", "ratio"}) {
		t.Errorf("keys = %v", got)
	}
	user, _ := v.Get("user")
	if got := keys(user); !equalStrings(got, []string{"name", "zip", "active"}) {
		t.Errorf("user keys = %v", got)
	}
	zip, _ := user.Get("zip")
	if zip.Kind() != KindNumber || zip.NumberValue() != 12345 {
		t.Errorf("zip = %v %v", zip.Kind(), zip.NumberValue())
	}
	items, _ := v.Get("items")
	if items.Elements()[1].Kind() != KindNull {
		t.Error("~ should be null")
	}
	flag, _ := v.Get("flag")
	if flag.Kind() != KindBool || !flag.BoolValue() {
		t.Error("flag should be true")
	}
}

func TestParseYAMLAlias(t *testing.T) {
	src := `
base: &b
  x: 1
copy: *b
`
	v, err := ParseYAML([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	c, _ := v.Get("copy")
	x, ok := c.Get("x")
	if !ok || x.NumberValue() != 1 {
		t.Error("alias not expanded")
	}
}

func TestParseYAMLEmpty(t *testing.T) {
	v, err := ParseYAML(nil)
	if err != nil {
		t.Fatal(err)
	}
	if v.Kind() != KindNull {
		t.Errorf("kind = %v, want null", v.Kind())
	}
}

func TestParseYAMLError(t *testing.T) {
	_, err := ParseYAML([]byte("a: [1, 2"))
	if !errors.Is(err, errors.ErrCodeInvalidJSON) {
		t.Errorf("err = %v, want INVALID_JSON", err)
	}
}

func TestParseTOML(t *testing.T) {
	src := `
title = "demo"
zeta = 1

[owner]
name = "Alice"
age = 30

[[products]]
name = "hammer"
sku = 738594937

[[products]]
name = "nail"
sku = 284758393
`
	v, err := ParseTOML([]byte(src))
	if err != nil {
		t.Fatalf("ParseTOML error: %v", err)
	}
	if got := keys(v); !equalStrings(got, []string{"title", "zeta", "owner", "products"}) {
		t.Errorf("keys = %v", got)
	}
	owner, _ := v.Get("owner")
	if got := keys(owner); !equalStrings(got, []string{"name", "age"}) {
		t.Errorf("owner keys = %v", got)
	}
	products, _ := v.Get("products")
	if products.Kind() != KindArray || products.Len() != 2 {
		t.Fatalf("products = %v len %d", products.Kind(), products.Len())
	}
	first := products.Elements()[0]
	if got := keys(first); !equalStrings(got, []string{"name", "sku"}) {
		t.Errorf("product keys = %v", got)
	}
}

func TestParseTOMLError(t *testing.T) {
	_, err := ParseTOML([]byte("a = "))
	if !errors.Is(err, errors.ErrCodeInvalidJSON) {
		t.Errorf("err = %v, want INVALID_JSON", err)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatJSON, false},
		{"json", FormatJSON, false},
		{"YAML", FormatYAML, false},
		{"yml", FormatYAML, false},
		{"toml", FormatTOML, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDetectFormat(t *testing.T) {
	tests := map[string]Format{
		"data.json":        FormatJSON,
		"config.YAML":      FormatYAML,
		"compose.yml":      FormatYAML,
		"Cargo.toml":       FormatTOML,
		"no-extension":     FormatJSON,
		"/tmp/dir.d/x.txt": FormatJSON,
	}
	for name, want := range tests {
		if got := DetectFormat(name); got != want {
			t.Errorf("DetectFormat(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestSampleParses(t *testing.T) {
	v, err := ParseJSON([]byte(Sample))
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	if got := keys(v); !equalStrings(got, []string{"user", "items"}) {
		t.Errorf("top-level keys = %v", got)
	}
	items, _ := v.Get("items")
	if items.Len() != 2 {
		t.Errorf("items = %d, want 2", items.Len())
	}
}
