package github

import (
	"fmt"

	"github.com/signadot/mkhub/ir"
	"github.com/signadot/mkhub/ir/xpath"
	"github.com/signadot/mkhub/store"
)

type Pulls struct {
	repo *Repo
}

// Create opens a pull request merging head into base. The pull request is
// also an issue with the same number.
func (p *Pulls) Create(title, head, base string) (*Pull, error) {
	if head == "" || base == "" {
		return nil, fmt.Errorf("%w: pull request needs head and base", ErrInvalid)
	}
	repo := p.repo
	gh := repo.gh
	parent, err := pullsT.Path(repo.coords)
	if err != nil {
		return nil, err
	}
	num, err := createIssue(repo, title, "", func(tx *store.Tx, num int) (*ir.Node, error) {
		self, err := pullT.Path(repo.coords, num)
		if err != nil {
			return nil, err
		}
		url := fmt.Sprintf("%s/%s/pull/%d", htmlBase, repo.coords, num)
		now := gh.timestamp()
		node := ir.NewContainer("pull",
			ir.FromInt("number", int64(num)),
			ir.FromString("node_id", nodeID()),
			ir.FromString("state", "open"),
			ir.FromString("title", title),
			userObject("user", gh.self),
			ir.NewContainer("head", ir.FromString("ref", head)),
			ir.NewContainer("base", ir.FromString("ref", base)),
			ir.FromString("html_url", url),
			ir.FromString("created_at", now),
			ir.FromString("updated_at", now),
			ir.NewContainer("comments"),
		)
		if err := createUnique(tx, parent, self, node); err != nil {
			return nil, err
		}
		return ir.NewContainer("pull_request", ir.FromString("html_url", url)), nil
	})
	if err != nil {
		return nil, err
	}
	return p.handle(num), nil
}

// Get returns the existing pull request number.
func (p *Pulls) Get(number int) (*Pull, error) {
	res := p.handle(number)
	if _, err := res.JSON(); err != nil {
		return nil, err
	}
	return res, nil
}

// Iterate returns handles on every pull request, in creation order.
func (p *Pulls) Iterate() ([]*Pull, error) {
	parent, err := pullsT.Path(p.repo.coords)
	if err != nil {
		return nil, err
	}
	var res []*Pull
	err = p.repo.gh.store.View(parent.Append(xpath.S("pull")), func(nodes []*ir.Node) error {
		for _, n := range nodes {
			num, err := intField(n, "number")
			if err != nil {
				return err
			}
			res = append(res, p.handle(num))
		}
		return nil
	})
	return res, err
}

func (p *Pulls) handle(number int) *Pull {
	res := &Pull{repo: p.repo, number: number}
	res.resource = resource{gh: p.repo.gh, path: res.path}
	return res
}

// Pull is a handle on .../pulls/pull[number=?].
type Pull struct {
	resource
	repo   *Repo
	number int
}

func (p *Pull) Repo() *Repo {
	return p.repo
}

func (p *Pull) Number() int {
	return p.number
}

// Issue returns the issue sharing the number of the pull request.
func (p *Pull) Issue() *Issue {
	return p.repo.Issues().handle(p.number)
}

func (p *Pull) Comments() *PullComments {
	return &PullComments{pull: p}
}

// Compare orders pull requests by number.
func (p *Pull) Compare(o *Pull) int {
	return ir.CompareInt(int64(p.number), int64(o.number))
}

func (p *Pull) path() (*xpath.Path, error) {
	return pullT.Path(p.repo.coords, p.number)
}
