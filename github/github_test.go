package github

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/signadot/mkhub"
	"github.com/signadot/mkhub/ir/xpath"
)

var epoch = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestGithub(t *testing.T, login string) (*Github, *clock) {
	t.Helper()
	c := &clock{now: epoch}
	gh, err := New(login, WithClock(c.Now))
	if err != nil {
		t.Fatal(err)
	}
	return gh, c
}

func TestRepoAndCommit(t *testing.T) {
	gh, _ := newTestGithub(t, "alice")
	repo, err := gh.Repos().Create("demo")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := repo.Commits().Create("deadbeef", "initial"); err != nil {
		t.Fatal(err)
	}
	d, err := mkhub.Read(gh.Store(), xpath.MustParse("/github/repos/repo[@coords='alice/demo']/git/commits/commit[sha='deadbeef']"))
	if err != nil {
		t.Fatal(err)
	}
	if len(d) == 0 {
		t.Fatalf("empty projection")
	}
	c, err := repo.Commits().Get("deadbeef")
	if err != nil {
		t.Fatal(err)
	}
	m, err := c.Map()
	if err != nil {
		t.Fatal(err)
	}
	if m["sha"] != "deadbeef" || m["message"] != "initial" {
		t.Errorf("commit = %v", m)
	}
	if author := m["author"].(map[string]any)["login"]; author != "alice" {
		t.Errorf("author = %v", author)
	}
	if _, err := repo.Commits().Get("cafe"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) = %v", err)
	}
	rm, err := repo.Map()
	if err != nil {
		t.Fatal(err)
	}
	if rm["full_name"] != "alice/demo" || rm["html_url"] != "https://github.com/alice/demo" {
		t.Errorf("repo = %v", rm)
	}
	if _, ok := rm["coords"]; ok {
		t.Errorf("attribute projected")
	}
}

func TestUniqueness(t *testing.T) {
	gh, _ := newTestGithub(t, "alice")
	repo, err := gh.Repos().Create("demo")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := gh.Repos().Create("demo"); !errors.Is(err, ErrExists) {
		t.Errorf("second repo = %v", err)
	}
	if _, err := repo.Commits().Create("deadbeef", "a"); err != nil {
		t.Fatal(err)
	}
	v := gh.Store().Version()
	if _, err := repo.Commits().Create("deadbeef", "b"); !errors.Is(err, ErrExists) {
		t.Errorf("second commit = %v", err)
	}
	if gh.Store().Version() != v {
		t.Errorf("failed create changed the store")
	}
	if _, err := repo.Labels().Create("bug", "f00"); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.Labels().Create("bug", "0f0"); !errors.Is(err, ErrExists) {
		t.Errorf("second label = %v", err)
	}
	if _, err := gh.Users().Add("alice"); !errors.Is(err, ErrExists) {
		t.Errorf("second user = %v", err)
	}
	commits, err := repo.Commits().Iterate()
	if err != nil {
		t.Fatal(err)
	}
	if len(commits) != 1 {
		t.Errorf("%d commits", len(commits))
	}
}

func TestCommitShaWithQuote(t *testing.T) {
	gh, _ := newTestGithub(t, "alice")
	repo, err := gh.Repos().Create("demo")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := repo.Commits().Create("it's", "quote"); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.Commits().Get("it's"); err != nil {
		t.Errorf("Get: %v", err)
	}
	if _, err := repo.Commits().Create(`'"`, "both"); !errors.Is(err, xpath.ErrMalformedPath) {
		t.Errorf("sha with both quotes = %v", err)
	}
}

func TestInvalidNames(t *testing.T) {
	if _, err := New(""); !errors.Is(err, ErrInvalid) {
		t.Errorf("New(\"\") = %v", err)
	}
	gh, _ := newTestGithub(t, "alice")
	for _, name := range []string{"", "a/b", "o'x"} {
		if _, err := gh.Repos().Create(name); !errors.Is(err, ErrInvalid) {
			t.Errorf("Create(%q) = %v", name, err)
		}
	}
	if _, err := ParseCoordinates("nope"); !errors.Is(err, ErrInvalid) {
		t.Errorf("ParseCoordinates = %v", err)
	}
	c, err := ParseCoordinates("alice/demo")
	if err != nil || c != (Coordinates{User: "alice", Repo: "demo"}) {
		t.Errorf("ParseCoordinates = %v, %v", c, err)
	}
}

func TestSharedStore(t *testing.T) {
	alice, _ := newTestGithub(t, "alice")
	bob, err := alice.As("bob")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := alice.Repos().Create("demo"); err != nil {
		t.Fatal(err)
	}
	if _, err := bob.Repos().Create("demo"); err != nil {
		t.Fatalf("bob/demo: %v", err)
	}
	repos, err := bob.Repos().Iterate()
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, r := range repos {
		names = append(names, r.String())
	}
	if diff := cmp.Diff([]string{"alice/demo", "bob/demo"}, names); diff != "" {
		t.Errorf("repos (-want +got):\n%s", diff)
	}
	if _, err := bob.Users().Get("alice"); err != nil {
		t.Errorf("alice not visible to bob: %v", err)
	}
}

func TestConcurrentCommits(t *testing.T) {
	gh, _ := newTestGithub(t, "alice")
	repo, err := gh.Repos().Create("demo")
	if err != nil {
		t.Fatal(err)
	}
	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// two writers race for each sha
			for j := 0; j < 2; j++ {
				_, err := repo.Commits().Create(fmt.Sprintf("%040x", i), "m")
				if err != nil && !errors.Is(err, ErrExists) {
					t.Error(err)
				}
			}
		}(i)
	}
	wg.Wait()
	commits, err := repo.Commits().Iterate()
	if err != nil {
		t.Fatal(err)
	}
	if len(commits) != n {
		t.Errorf("%d commits, want %d", len(commits), n)
	}
	slices.SortFunc(commits, (*Commit).Compare)
	for i := 1; i < len(commits); i++ {
		if commits[i-1].Sha() >= commits[i].Sha() {
			t.Errorf("not sorted at %d", i)
		}
	}
}
