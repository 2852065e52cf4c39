package github

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Fixture describes resources to create in a fresh instance.
type Fixture struct {
	Login string        `yaml:"login"`
	Users []string      `yaml:"users"`
	Repos []RepoFixture `yaml:"repos"`
}

type RepoFixture struct {
	Owner   string          `yaml:"owner"`
	Name    string          `yaml:"name"`
	Commits []CommitFixture `yaml:"commits"`
	Labels  []LabelFixture  `yaml:"labels"`
	Issues  []IssueFixture  `yaml:"issues"`
	Pulls   []PullFixture   `yaml:"pulls"`
	Patch   map[string]any  `yaml:"patch"`
}

type CommitFixture struct {
	Sha     string `yaml:"sha"`
	Message string `yaml:"message"`
}

type LabelFixture struct {
	Name  string `yaml:"name"`
	Color string `yaml:"color"`
}

type IssueFixture struct {
	Title  string   `yaml:"title"`
	Body   string   `yaml:"body"`
	Closed bool     `yaml:"closed"`
	Labels []string `yaml:"labels"`
}

type PullFixture struct {
	Title    string               `yaml:"title"`
	Head     string               `yaml:"head"`
	Base     string               `yaml:"base"`
	Comments []PullCommentFixture `yaml:"comments"`
}

type PullCommentFixture struct {
	Author   string `yaml:"author"`
	Body     string `yaml:"body"`
	CommitID string `yaml:"commit_id"`
	Path     string `yaml:"path"`
	Position int    `yaml:"position"`
}

// LoadFixture reads a YAML fixture file.
func LoadFixture(path string) (*Fixture, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	fx, err := ParseFixture(d)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return fx, nil
}

// ParseFixture decodes a YAML fixture, rejecting unknown fields.
func ParseFixture(d []byte) (*Fixture, error) {
	fx := &Fixture{}
	if err := yaml.UnmarshalWithOptions(d, fx, yaml.Strict()); err != nil {
		return nil, err
	}
	return fx, nil
}

// FromFixture creates an instance acting as fx.Login and seeds it.
func FromFixture(fx *Fixture, opts ...Option) (*Github, error) {
	if fx.Login == "" {
		return nil, fmt.Errorf("%w: fixture without login", ErrInvalid)
	}
	gh, err := New(fx.Login, opts...)
	if err != nil {
		return nil, err
	}
	if err := gh.Seed(fx); err != nil {
		return nil, err
	}
	return gh, nil
}

// Seed creates the resources fx describes. Repositories are created by
// their owner, defaulting to the acting user. Seeding stops at the first
// error; resources created before it remain.
func (g *Github) Seed(fx *Fixture) error {
	for _, u := range fx.Users {
		if _, err := g.Users().Add(u); err != nil && !isExists(err) {
			return err
		}
	}
	for i := range fx.Repos {
		if err := g.seedRepo(&fx.Repos[i]); err != nil {
			return fmt.Errorf("repo %s: %w", fx.Repos[i].Name, err)
		}
	}
	g.log.Info("fixture seeded", "users", len(fx.Users), "repos", len(fx.Repos))
	return nil
}

func (g *Github) seedRepo(rf *RepoFixture) error {
	owner := g
	if rf.Owner != "" && rf.Owner != g.self {
		o, err := g.As(rf.Owner)
		if err != nil {
			return err
		}
		owner = o
	}
	repo, err := owner.Repos().Create(rf.Name)
	if err != nil {
		return err
	}
	if rf.Patch != nil {
		if err := repo.Patch(rf.Patch); err != nil {
			return err
		}
	}
	for _, c := range rf.Commits {
		if _, err := repo.Commits().Create(c.Sha, c.Message); err != nil {
			return err
		}
	}
	for _, l := range rf.Labels {
		if _, err := repo.Labels().Create(l.Name, l.Color); err != nil {
			return err
		}
	}
	for _, f := range rf.Issues {
		is, err := repo.Issues().Create(f.Title, f.Body)
		if err != nil {
			return err
		}
		if len(f.Labels) != 0 {
			if err := is.Labels().Add(f.Labels); err != nil {
				return err
			}
		}
		if f.Closed {
			if err := is.Close(); err != nil {
				return err
			}
		}
	}
	for _, f := range rf.Pulls {
		pull, err := repo.Pulls().Create(f.Title, f.Head, f.Base)
		if err != nil {
			return err
		}
		for _, c := range f.Comments {
			if err := seedComment(g, pull, &c); err != nil {
				return err
			}
		}
	}
	return nil
}

func seedComment(g *Github, pull *Pull, c *PullCommentFixture) error {
	author := g
	if c.Author != "" && c.Author != g.self {
		a, err := g.As(c.Author)
		if err != nil {
			return err
		}
		author = a
	}
	// a handle bound to the author's instance
	p := author.Repos().handle(pull.repo.coords).Pulls().handle(pull.number)
	_, err := p.Comments().Create(c.Body, c.CommitID, c.Path, c.Position)
	return err
}

