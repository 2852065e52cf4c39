package jsonview

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/signadot/mkhub/ir"
)

func TestRoundTrip(t *testing.T) {
	tests := []string{
		`{}`,
		`{"sha":"deadbeef"}`,
		`{"b":1,"a":2}`,
		`{"number":3,"title":"t","open":true,"score":1.5}`,
		`{"labels":[]}`,
		`{"labels":["bug"]}`,
		`{"labels":["bug","ui"]}`,
		`{"labels":[{"name":"bug","color":"f00"},{"name":"ui","color":"0f0"}]}`,
		`{"user":{"login":"alice","site_admin":false}}`,
		`{"empty":{},"s":"","n":-0.25}`,
		`{"html":"<a href='x'>&</a>"}`,
		`{"nested":{"list":[{"a":[1,2]},{"a":[]}]}}`,
		`{"reactions":{"+1":0,"-1":0,"total_count":0}}`,
		`{"total count":1,"1a":2,"":3,"@x":"y"}`,
		`{"a.b/c[d]":{"'\"":true}}`,
	}
	for _, in := range tests {
		nodes, err := FromJSON("obj", []byte(in))
		if err != nil {
			t.Errorf("FromJSON(%s): %v", in, err)
			continue
		}
		if len(nodes) != 1 {
			t.Errorf("FromJSON(%s) gave %d nodes", in, len(nodes))
			continue
		}
		out, err := ToJSON(nodes[0])
		if err != nil {
			t.Errorf("ToJSON: %v", err)
			continue
		}
		if string(out) != in {
			t.Errorf("round trip:\n in  %s\n out %s", in, out)
		}
	}
}

func TestArrayElementsAreMarked(t *testing.T) {
	n, err := FromObject("issue", []byte(`{"labels":["bug"],"title":"x"}`))
	if err != nil {
		t.Fatal(err)
	}
	labels := n.Named("labels")
	if len(labels) != 1 || !labels[0].List || labels[0].Text != "bug" {
		t.Errorf("labels = %+v", labels)
	}
	empty, err := FromObject("issue", []byte(`{"labels":[]}`))
	if err != nil {
		t.Fatal(err)
	}
	if ps := empty.Named("labels"); len(ps) != 1 || !ps[0].Placeholder() {
		t.Errorf("empty array did not give a placeholder: %+v", ps)
	}
}

func TestShapeFollowsData(t *testing.T) {
	n := ir.NewContainer("pull", ir.FromString("label", "a"))
	if got := string(mustJSON(t, n)); got != `{"label":"a"}` {
		t.Errorf("single child: %s", got)
	}
	n.Append(ir.FromString("label", "b"))
	if got := string(mustJSON(t, n)); got != `{"label":["a","b"]}` {
		t.Errorf("repeated child: %s", got)
	}
}

func TestGroupsByFirstAppearance(t *testing.T) {
	n := ir.NewContainer("x",
		ir.FromInt("a", 1),
		ir.FromInt("b", 2),
		ir.FromInt("a", 3),
	)
	if got, want := string(mustJSON(t, n)), `{"a":[1,3],"b":2}`; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestNullsDropped(t *testing.T) {
	n, err := FromObject("x", []byte(`{"a":null,"b":[null,1],"c":[null]}`))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(mustJSON(t, n)), `{"b":[1],"c":[]}`; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
	top, err := FromJSON("x", []byte(`null`))
	if err != nil || len(top) != 0 {
		t.Errorf("FromJSON(null) = %v, %v", top, err)
	}
}

func TestAttributesNotProjected(t *testing.T) {
	n := ir.NewContainer("repo", ir.FromString("name", "demo")).WithAttr("coords", "alice/demo")
	if got := string(mustJSON(t, n)); got != `{"name":"demo"}` {
		t.Errorf("got %s", got)
	}
}

func TestConversionErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"array in array", `{"a":[[1]]}`},
		{"syntax", `{"a":`},
		{"trailing data", `{"a":1} {}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromJSON("x", []byte(tt.in))
			if !errors.Is(err, ErrConversion) {
				t.Errorf("FromJSON(%s) = %v, want ErrConversion", tt.in, err)
			}
		})
	}
	if _, err := FromObject("x", []byte(`[1]`)); !errors.Is(err, ErrConversion) {
		t.Errorf("FromObject(array) = %v, want ErrConversion", err)
	}
	if _, err := FromObject("x", []byte(`"s"`)); !errors.Is(err, ErrConversion) {
		t.Errorf("FromObject(string) = %v, want ErrConversion", err)
	}
}

func TestNumbersAreCanonical(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`1000`, "1000"},
		{`1e3`, "1000"},
		{`1000.0`, "1000"},
		{`-0`, "0"},
		{`0.50`, "0.5"},
		{`2.5E-1`, "0.25"},
		{`123456789012345678901234567890`, "123456789012345678901234567890"},
	}
	for _, tt := range tests {
		nodes, err := FromJSON("n", []byte(tt.in))
		if err != nil {
			t.Errorf("FromJSON(%s): %v", tt.in, err)
			continue
		}
		if got := nodes[0].Text; got != tt.want {
			t.Errorf("FromJSON(%s) text %q, want %q", tt.in, got, tt.want)
		}
	}
}

type state string

func TestFromValueReflected(t *testing.T) {
	count := int16(7)
	nodes, err := FromValue("patch", map[string]any{
		"labels":    map[string]string{"name": "bug", "color": "f00"},
		"assignees": []map[string]any{{"login": "alice"}, {"login": "bob"}},
		"small":     int8(-3),
		"byte":      uint8(200),
		"count":     &count,
		"state":     state("open"),
		"scores":    [2]float32{0.5, 2},
		"nothing":   (*int)(nil),
		"none":      []int(nil),
	})
	if err != nil {
		t.Fatal(err)
	}
	want := `{"assignees":[{"login":"alice"},{"login":"bob"}],"byte":200,"count":7,` +
		`"labels":{"color":"f00","name":"bug"},"scores":[0.5,2],"small":-3,"state":"open"}`
	if got := string(mustJSON(t, nodes[0])); got != want {
		t.Errorf("got  %s\nwant %s", got, want)
	}
	if _, err := FromValue("x", map[string]any{"m": map[int]string{1: "a"}}); !errors.Is(err, ErrConversion) {
		t.Errorf("int keyed map: %v", err)
	}
	if _, err := FromValue("x", map[string]any{"c": make(chan int)}); !errors.Is(err, ErrConversion) {
		t.Errorf("channel: %v", err)
	}
}

func TestFromValue(t *testing.T) {
	nodes, err := FromValue("patch", map[string]any{
		"title":  "x",
		"number": 3,
		"big":    uint64(1) << 40,
		"ratio":  0.5,
		"tags":   []string{"a", "b"},
		"user":   map[string]any{"login": "bob"},
		"gone":   nil,
	})
	if err != nil {
		t.Fatal(err)
	}
	want := `{"big":1099511627776,"number":3,"ratio":0.5,"tags":["a","b"],"title":"x","user":{"login":"bob"}}`
	if got := string(mustJSON(t, nodes[0])); got != want {
		t.Errorf("got  %s\nwant %s", got, want)
	}
	if _, err := FromValue("x", map[string]any{"f": struct{}{}}); !errors.Is(err, ErrConversion) {
		t.Errorf("unsupported type: %v", err)
	}
}

func TestToValue(t *testing.T) {
	n, err := FromObject("issue", []byte(`{"number":12,"score":2.5,"open":true,"labels":[{"name":"bug"}],"user":{"login":"a"}}`))
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]any{
		"number": int64(12),
		"score":  2.5,
		"open":   true,
		"labels": []any{map[string]any{"name": "bug"}},
		"user":   map[string]any{"login": "a"},
	}
	if diff := cmp.Diff(want, ToMap(n)); diff != "" {
		t.Errorf("ToMap mismatch (-want +got):\n%s", diff)
	}
	if ToMap(ir.FromString("x", "leaf")) != nil {
		t.Errorf("ToMap of a leaf should be nil")
	}
}

func TestToYAML(t *testing.T) {
	n, err := FromObject("repo", []byte(`{"name":"demo","private":false,"labels":["a"],"owner":{"login":"alice"}}`))
	if err != nil {
		t.Fatal(err)
	}
	d, err := ToYAML(n)
	if err != nil {
		t.Fatal(err)
	}
	got := string(d)
	// field order is kept
	order := []string{"name:", "private:", "labels:", "owner:", "login: alice"}
	last := -1
	for _, s := range order {
		i := strings.Index(got, s)
		if i <= last {
			t.Fatalf("%q out of order in\n%s", s, got)
		}
		last = i
	}
}

func TestDiff(t *testing.T) {
	if got := Diff("a\nb\n", "a\nb\n"); got != "" {
		t.Errorf("equal texts gave %q", got)
	}
	got := Diff("a\nb\nc\n", "a\nB\nc\n")
	want := " a\n-b\n+B\n c\n"
	if got != want {
		t.Errorf("Diff:\n%s\nwant\n%s", got, want)
	}
	before := ir.NewContainer("x", ir.FromString("state", "open"))
	after := ir.NewContainer("x", ir.FromString("state", "closed"))
	d, err := DiffNodes(before, after)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(d, `-  "state": "open"`) || !strings.Contains(d, `+  "state": "closed"`) {
		t.Errorf("DiffNodes:\n%s", d)
	}
}

func mustJSON(t *testing.T, n *ir.Node) []byte {
	t.Helper()
	d, err := ToJSON(n)
	if err != nil {
		t.Fatal(err)
	}
	return d
}
