package xpath

import (
	"errors"
	"testing"
)

type coords struct{ user, repo string }

func (c coords) String() string { return c.user + "/" + c.repo }

func TestTemplate(t *testing.T) {
	tmpl := MustTemplate("/github/repos/repo[@coords=?]/issues/issue[number=?]")
	if got := tmpl.NumParams(); got != 2 {
		t.Fatalf("NumParams() = %d, want 2", got)
	}
	if got, want := tmpl.String(), "/github/repos/repo[@coords=?]/issues/issue[number=?]"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	tests := []struct {
		name    string
		args    []any
		want    string
		wantErr bool
	}{
		{
			name: "stringer and int",
			args: []any{coords{"alice", "demo"}, 3},
			want: "/github/repos/repo[@coords='alice/demo']/issues/issue[number='3']",
		},
		{
			name: "string and int64",
			args: []any{"a/b", int64(12)},
			want: "/github/repos/repo[@coords='a/b']/issues/issue[number='12']",
		},
		{
			name: "single quote value",
			args: []any{"o'neil/x", uint(1)},
			want: `/github/repos/repo[@coords="o'neil/x"]/issues/issue[number='1']`,
		},
		{
			name: "value that looks like syntax",
			args: []any{"a']/x[b='", 1},
			want: `/github/repos/repo[@coords="a']/x[b='"]/issues/issue[number='1']`,
		},
		{name: "too few", args: []any{"a/b"}, wantErr: true},
		{name: "too many", args: []any{"a/b", 1, 2}, wantErr: true},
		{name: "both quotes", args: []any{`'"`, 1}, wantErr: true},
		{name: "unsupported type", args: []any{"a/b", 1.5}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := tmpl.Path(tt.args...)
			if tt.wantErr {
				if !errors.Is(err, ErrMalformedPath) {
					t.Fatalf("Path() error = %v, want ErrMalformedPath", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got := p.String(); got != tt.want {
				t.Errorf("Path() = %q, want %q", got, tt.want)
			}
			if err := p.Validate(); err != nil {
				t.Errorf("Validate: %v", err)
			}
		})
	}
}

func TestTemplateValueNotParsed(t *testing.T) {
	tmpl := MustTemplate("commit[sha=?]")
	p := tmpl.MustPath("x']/evil[y='z")
	last, _ := p.Last()
	if len(p.Steps) != 1 || last.Preds[0].Value != "x']/evil[y='z" {
		t.Errorf("value leaked into path structure: %#v", p)
	}
	// the template itself is unchanged
	if tmpl.String() != "commit[sha=?]" {
		t.Errorf("template modified: %s", tmpl)
	}
}

func TestParseTemplateErrors(t *testing.T) {
	for _, v := range []string{"", "a[b=?", "a[?=b]"} {
		if _, err := ParseTemplate(v); !errors.Is(err, ErrMalformedPath) {
			t.Errorf("ParseTemplate(%q) = %v, want ErrMalformedPath", v, err)
		}
	}
}
