package github

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFixture(t *testing.T) {
	fx, err := LoadFixture(filepath.Join("testdata", "demo.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	c := &clock{now: epoch}
	gh, err := FromFixture(fx, WithClock(c.Now))
	if err != nil {
		t.Fatal(err)
	}
	if gh.Login() != "alice" {
		t.Errorf("Login() = %q", gh.Login())
	}
	repo, err := gh.Repos().Get(Coordinates{User: "alice", Repo: "demo"})
	if err != nil {
		t.Fatal(err)
	}
	m, err := repo.Map()
	if err != nil {
		t.Fatal(err)
	}
	if m["description"] != "a demo repository" {
		t.Errorf("description = %v", m["description"])
	}
	if _, err := repo.Commits().Get("deadbeef"); err != nil {
		t.Error(err)
	}
	crash, err := repo.Issues().Get(1)
	if err != nil {
		t.Fatal(err)
	}
	labels, err := crash.Labels().List()
	if err != nil || len(labels) != 1 || labels[0].Name() != "bug" {
		t.Errorf("labels = %v, %v", labels, err)
	}
	old, err := repo.Issues().Get(2)
	if err != nil {
		t.Fatal(err)
	}
	if open, _ := old.IsOpen(); open {
		t.Errorf("closed issue is open")
	}
	pull, err := repo.Pulls().Get(3)
	if err != nil {
		t.Fatal(err)
	}
	comment, err := pull.Comments().Get(1)
	if err != nil {
		t.Fatal(err)
	}
	if a, _ := comment.Author(); a != "bob" {
		t.Errorf("comment author = %q", a)
	}
	if _, err := gh.Repos().Get(Coordinates{User: "bob", Repo: "tools"}); err != nil {
		t.Errorf("bob/tools: %v", err)
	}
	y, err := repo.YAML()
	if err != nil || len(y) == 0 {
		t.Errorf("YAML() = %d bytes, %v", len(y), err)
	}
}

func TestParseFixtureErrors(t *testing.T) {
	if _, err := ParseFixture([]byte("login: a\nunknown: 1\n")); err == nil {
		t.Errorf("unknown field accepted")
	}
	fx, err := ParseFixture([]byte("repos:\n- name: x\n"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := FromFixture(fx); !errors.Is(err, ErrInvalid) {
		t.Errorf("fixture without login = %v", err)
	}
	dup, err := ParseFixture([]byte("login: a\nrepos:\n- name: x\n- name: x\n"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := FromFixture(dup); !errors.Is(err, ErrExists) {
		t.Errorf("duplicate repo = %v", err)
	}
	if _, err := LoadFixture(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file = %v", err)
	}
}
