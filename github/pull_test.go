package github

import (
	"errors"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/signadot/mkhub"
	"github.com/signadot/mkhub/ir/xpath"
)

func TestPullSharesIssueNumbers(t *testing.T) {
	repo, _ := newTestRepo(t)
	if _, err := repo.Issues().Create("first", ""); err != nil {
		t.Fatal(err)
	}
	pull, err := repo.Pulls().Create("feature", "topic", "main")
	if err != nil {
		t.Fatal(err)
	}
	if pull.Number() != 2 {
		t.Errorf("pull number = %d, want 2", pull.Number())
	}
	is := pull.Issue()
	isPull, err := is.IsPull()
	if err != nil || !isPull {
		t.Errorf("IsPull() = %t, %v", isPull, err)
	}
	m, err := pull.Map()
	if err != nil {
		t.Fatal(err)
	}
	if m["head"].(map[string]any)["ref"] != "topic" || m["base"].(map[string]any)["ref"] != "main" {
		t.Errorf("pull = %v", m)
	}
	next, err := repo.Issues().Create("third", "")
	if err != nil {
		t.Fatal(err)
	}
	if next.Number() != 3 {
		t.Errorf("issue after pull = %d, want 3", next.Number())
	}
	if _, err := repo.Pulls().Get(1); !errors.Is(err, ErrNotFound) {
		t.Errorf("Pulls().Get(1) = %v", err)
	}
	if _, err := repo.Pulls().Create("x", "", "main"); !errors.Is(err, ErrInvalid) {
		t.Errorf("missing head = %v", err)
	}
}

func TestPullComments(t *testing.T) {
	repo, _ := newTestRepo(t)
	pull, err := repo.Pulls().Create("feature", "topic", "main")
	if err != nil {
		t.Fatal(err)
	}
	bobGH, err := repo.gh.As("bob")
	if err != nil {
		t.Fatal(err)
	}
	bobPull, err := bobGH.Repos().handle(repo.Coordinates()).Pulls().Get(pull.Number())
	if err != nil {
		t.Fatal(err)
	}
	var created []*PullComment
	for i, p := range []*Pull{pull, bobPull, pull} {
		c, err := p.Comments().Create("looks good", "deadbeef", "main.go", i+1)
		if err != nil {
			t.Fatal(err)
		}
		created = append(created, c)
	}
	for i, c := range created {
		if c.Number() != i+1 {
			t.Errorf("comment %d has id %d", i, c.Number())
		}
	}
	author, err := created[1].Author()
	if err != nil || author != "bob" {
		t.Errorf("Author() = %q, %v", author, err)
	}
	all, err := pull.Comments().Iterate()
	if err != nil {
		t.Fatal(err)
	}
	slices.SortFunc(all, func(a, b *PullComment) int { return b.Compare(a) })
	var ids []int
	for _, c := range all {
		ids = append(ids, c.Number())
	}
	if diff := cmp.Diff([]int{3, 2, 1}, ids); diff != "" {
		t.Errorf("ids (-want +got):\n%s", diff)
	}
	if err := created[1].Patch(map[string]any{"body": "edited"}); err != nil {
		t.Fatal(err)
	}
	if body, _ := created[1].Body(); body != "edited" {
		t.Errorf("Body() = %q", body)
	}
	if err := pull.Comments().Remove(2); err != nil {
		t.Fatal(err)
	}
	if _, err := pull.Comments().Get(2); !errors.Is(err, ErrNotFound) {
		t.Errorf("removed comment = %v", err)
	}
	// ids are not reused
	c, err := pull.Comments().Create("again", "deadbeef", "main.go", 9)
	if err != nil {
		t.Fatal(err)
	}
	if c.Number() != 4 {
		t.Errorf("new comment id = %d, want 4", c.Number())
	}
}

func TestJSONPatchKeepsResources(t *testing.T) {
	repo, _ := newTestRepo(t)
	pull, err := repo.Pulls().Create("feature", "topic", "main")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := pull.Comments().Create("first", "deadbeef", "main.go", 1); err != nil {
		t.Fatal(err)
	}
	bob, err := repo.gh.As("bob")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := bob.Repos().Create("tools"); err != nil {
		t.Fatal(err)
	}
	st := repo.gh.Store()
	rp, err := repo.path()
	if err != nil {
		t.Fatal(err)
	}
	ops := []byte(`[{"op":"replace","path":"/name","value":"demo"}]`)
	if err := mkhub.PatchOps(st, rp, ops); err != nil {
		t.Fatal(err)
	}
	c, err := pull.Comments().Create("second", "deadbeef", "main.go", 2)
	if err != nil {
		t.Fatal(err)
	}
	if c.Number() != 2 {
		t.Errorf("comment id after ops = %d, want 2", c.Number())
	}
	issue, err := repo.Issues().Create("after ops", "")
	if err != nil {
		t.Fatal(err)
	}
	if issue.Number() != 2 {
		t.Errorf("issue number after ops = %d, want 2", issue.Number())
	}

	repos := xpath.MustParse("/github/repos")
	if err := mkhub.PatchOps(st, repos, []byte(`[]`)); err != nil {
		t.Fatal(err)
	}
	// reorders the repo list
	if err := mkhub.PatchOps(st, repos, []byte(`[{"op":"move","from":"/repo/1","path":"/repo/0"}]`)); err != nil {
		t.Fatal(err)
	}
	for _, coords := range []Coordinates{repo.Coordinates(), {User: "bob", Repo: "tools"}} {
		if _, err := repo.gh.Repos().Get(coords); err != nil {
			t.Errorf("Get(%s) after ops: %v", coords, err)
		}
	}
	if _, err := pull.Comments().Get(1); err != nil {
		t.Errorf("comment 1 after ops: %v", err)
	}
}
