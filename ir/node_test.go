package ir

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func sample() *Node {
	return NewContainer("github",
		NewContainer("repos",
			NewContainer("repo",
				FromString("name", "demo"),
				NewContainer("git", NewContainer("commits",
					NewContainer("commit", FromString("sha", "deadbeef")),
					NewContainer("commit", FromString("sha", "cafe")),
				)),
			).WithAttr("coords", "alice/demo"),
			NewContainer("repo",
				FromString("name", "other"),
			).WithAttr("coords", "bob/other"),
		),
		NewContainer("users"),
	)
}

func checkLinks(t *testing.T, y *Node) {
	t.Helper()
	for i, c := range y.Children {
		if c.Parent != y || c.ParentIndex != i {
			t.Errorf("%s: child %d has parent %v index %d", y.Path(), i, c.Parent, c.ParentIndex)
		}
		checkLinks(t, c)
	}
}

func TestBuildLinks(t *testing.T) {
	root := sample()
	checkLinks(t, root)
	if root.Root() != root {
		t.Errorf("Root() of root")
	}
	sha := root.Children[0].Children[0].Children[1].Children[0].Children[1].Children[0]
	if sha.Root() != root {
		t.Errorf("Root() of deep node")
	}
}

func TestCloneIsDeep(t *testing.T) {
	root := sample()
	c := root.Clone()
	if !Equal(root, c) {
		t.Fatalf("clone differs")
	}
	checkLinks(t, c)
	c.Children[0].Children[0].SetAttr("coords", "x/y")
	c.Children[0].Children[0].Children[0].Text = "changed"
	c.Children[1].Append(FromString("login", "carol"))
	if Equal(root, c) {
		t.Errorf("changing the clone changed the original")
	}
	if v, _ := root.Children[0].Children[0].Attr("coords"); v != "alice/demo" {
		t.Errorf("attribute shared with clone: %q", v)
	}
	if len(root.Children[1].Children) != 0 {
		t.Errorf("children shared with clone")
	}
}

func TestInsertRemove(t *testing.T) {
	y := NewContainer("l", FromInt("a", 1), FromInt("c", 3))
	y.Insert(1, FromInt("b", 2))
	if got, want := names(y), []string{"a", "b", "c"}; !cmp.Equal(got, want) {
		t.Errorf("after Insert: %v", cmp.Diff(want, got))
	}
	checkLinks(t, y)
	a := y.Children[0]
	if !y.Remove(a) {
		t.Fatalf("Remove reported false")
	}
	if a.Parent != nil {
		t.Errorf("removed node still attached")
	}
	if y.Remove(a) {
		t.Errorf("second Remove reported true")
	}
	if got, want := names(y), []string{"b", "c"}; !cmp.Equal(got, want) {
		t.Errorf("after Remove: %v", cmp.Diff(want, got))
	}
	checkLinks(t, y)
}

func TestLeafBecomesContainer(t *testing.T) {
	y := FromString("body", "text")
	y.Append(FromString("x", "1"))
	if y.Kind != ContainerKind || y.Text != "" {
		t.Errorf("got kind %s text %q", y.Kind, y.Text)
	}
	y.SetText(NumberKind, "4")
	if !y.IsLeaf() || len(y.Children) != 0 {
		t.Errorf("SetText kept children")
	}
}

func TestGetSkipsPlaceholders(t *testing.T) {
	y := NewContainer("issue", EmptyList("labels"), FromString("title", "t"))
	if Get(y, "labels") != nil {
		t.Errorf("Get returned the placeholder")
	}
	if got := len(y.Named("labels")); got != 1 {
		t.Errorf("Named(labels) = %d nodes, want 1", got)
	}
	if v, ok := y.ChildText("title"); !ok || v != "t" {
		t.Errorf("ChildText(title) = %q, %t", v, ok)
	}
	if _, ok := y.ChildText("missing"); ok {
		t.Errorf("ChildText(missing) found")
	}
}

func TestLocAndPath(t *testing.T) {
	root := sample()
	commit := root.Children[0].Children[0].Children[1].Children[0].Children[1]
	loc := commit.Loc()
	if diff := cmp.Diff(Loc{0, 0, 1, 0, 1}, loc); diff != "" {
		t.Errorf("Loc() mismatch (-want +got):\n%s", diff)
	}
	if root.Locate(loc) != commit {
		t.Errorf("Locate(Loc()) did not give back the node")
	}
	if root.Locate(Loc{0, 5}) != nil {
		t.Errorf("Locate out of range")
	}
	if got, want := commit.Path(), "/github/repos[1]/repo[1]/git[1]/commits[1]/commit[2]"; got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
	other := root.Children[0].Children[1]
	if got, want := other.Path(), "/github/repos[1]/repo[2]"; got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
}

func TestVisit(t *testing.T) {
	var pre, post []string
	err := sample().Children[1].Visit(func(y *Node, isPost bool) (bool, error) {
		if isPost {
			post = append(post, y.Name)
		} else {
			pre = append(pre, y.Name)
		}
		return true, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if !cmp.Equal(pre, []string{"users"}) || !cmp.Equal(post, []string{"users"}) {
		t.Errorf("pre %v post %v", pre, post)
	}
}

func TestKindText(t *testing.T) {
	for _, k := range []Kind{ContainerKind, StringKind, NumberKind, BoolKind, EmptyListKind} {
		d, err := k.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var kk Kind
		if err := kk.UnmarshalText(d); err != nil {
			t.Fatal(err)
		}
		if kk != k {
			t.Errorf("%s round tripped to %s", k, kk)
		}
	}
	var k Kind
	if err := k.UnmarshalText([]byte("Nope")); err == nil {
		t.Errorf("expected error")
	}
}

func names(y *Node) []string {
	var res []string
	for _, c := range y.Children {
		res = append(res, c.Name)
	}
	return res
}
