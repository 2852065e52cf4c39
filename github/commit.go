package github

import (
	"fmt"

	"github.com/signadot/mkhub/ir"
	"github.com/signadot/mkhub/ir/xpath"
	"github.com/signadot/mkhub/store"
)

type Commits struct {
	repo *Repo
}

// Create records a commit with the given sha in the repository.
func (c *Commits) Create(sha, message string) (*Commit, error) {
	if sha == "" {
		return nil, fmt.Errorf("%w: empty sha", ErrInvalid)
	}
	gh := c.repo.gh
	parent, err := commitsT.Path(c.repo.coords)
	if err != nil {
		return nil, err
	}
	self, err := commitT.Path(c.repo.coords, sha)
	if err != nil {
		return nil, err
	}
	node := ir.NewContainer("commit",
		ir.FromString("sha", sha),
		ir.FromString("node_id", nodeID()),
		ir.FromString("message", message),
		userObject("author", gh.self),
		ir.FromString("html_url", fmt.Sprintf("%s/%s/commit/%s", htmlBase, c.repo.coords, sha)),
		ir.FromString("created_at", gh.timestamp()),
	)
	err = gh.store.Update(func(tx *store.Tx) error {
		return createUnique(tx, parent, self, node)
	})
	if err != nil {
		return nil, err
	}
	return c.handle(sha), nil
}

// Get returns the existing commit sha.
func (c *Commits) Get(sha string) (*Commit, error) {
	res := c.handle(sha)
	if _, err := res.JSON(); err != nil {
		return nil, err
	}
	return res, nil
}

// Iterate returns handles on every commit, in creation order.
func (c *Commits) Iterate() ([]*Commit, error) {
	parent, err := commitsT.Path(c.repo.coords)
	if err != nil {
		return nil, err
	}
	var res []*Commit
	err = c.repo.gh.store.View(parent.Append(xpath.S("commit")), func(nodes []*ir.Node) error {
		for _, n := range nodes {
			sha, _ := n.ChildText("sha")
			res = append(res, c.handle(sha))
		}
		return nil
	})
	return res, err
}

func (c *Commits) handle(sha string) *Commit {
	res := &Commit{repo: c.repo, sha: sha}
	res.resource = resource{gh: c.repo.gh, path: res.path}
	return res
}

// Commit is a handle on .../git/commits/commit[sha=?].
type Commit struct {
	resource
	repo *Repo
	sha  string
}

func (c *Commit) Repo() *Repo {
	return c.repo
}

func (c *Commit) Sha() string {
	return c.sha
}

// Compare orders commits by sha.
func (c *Commit) Compare(o *Commit) int {
	return ir.CompareText(c.sha, o.sha)
}

func (c *Commit) path() (*xpath.Path, error) {
	return commitT.Path(c.repo.coords, c.sha)
}
