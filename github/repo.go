package github

import (
	"github.com/signadot/mkhub/ir"
	"github.com/signadot/mkhub/ir/xpath"
	"github.com/signadot/mkhub/jsonview"
	"github.com/signadot/mkhub/store"
)

type Repos struct {
	gh *Github
}

// Create creates the repository self/name.
func (r *Repos) Create(name string) (*Repo, error) {
	coords := Coordinates{User: r.gh.self, Repo: name}
	if err := coords.Validate(); err != nil {
		return nil, err
	}
	self, err := repoT.Path(coords)
	if err != nil {
		return nil, err
	}
	now := r.gh.timestamp()
	node := ir.NewContainer("repo",
		ir.FromString("name", name),
		ir.FromString("full_name", coords.String()),
		ir.FromString("node_id", nodeID()),
		userObject("owner", coords.User),
		ir.FromBool("private", false),
		ir.FromString("html_url", htmlBase+"/"+coords.String()),
		ir.FromString("created_at", now),
		ir.FromString("updated_at", now),
		ir.NewContainer("git", ir.NewContainer("commits")),
		ir.NewContainer("issues"),
		ir.NewContainer("labels"),
		ir.NewContainer("pulls"),
	).WithAttr("coords", coords.String())
	err = r.gh.store.Update(func(tx *store.Tx) error {
		return createUnique(tx, reposP, self, node)
	})
	if err != nil {
		return nil, err
	}
	r.gh.log.Debug("repo created", "repo", coords.String())
	return r.handle(coords), nil
}

// Get returns the existing repository coords.
func (r *Repos) Get(coords Coordinates) (*Repo, error) {
	res := r.handle(coords)
	if _, err := res.JSON(); err != nil {
		return nil, err
	}
	return res, nil
}

// Iterate returns handles on every repository, in creation order.
func (r *Repos) Iterate() ([]*Repo, error) {
	var res []*Repo
	err := r.gh.store.View(reposP.Append(xpath.S("repo")), func(nodes []*ir.Node) error {
		for _, n := range nodes {
			v, _ := n.Attr("coords")
			coords, err := ParseCoordinates(v)
			if err != nil {
				return err
			}
			res = append(res, r.handle(coords))
		}
		return nil
	})
	return res, err
}

func (r *Repos) handle(coords Coordinates) *Repo {
	res := &Repo{coords: coords}
	res.resource = resource{gh: r.gh, path: res.path}
	return res
}

// Repo is a handle on /github/repos/repo[@coords=?].
type Repo struct {
	resource
	coords Coordinates
}

func (r *Repo) Coordinates() Coordinates {
	return r.coords
}

func (r *Repo) path() (*xpath.Path, error) {
	return repoT.Path(r.coords)
}

func (r *Repo) Commits() *Commits {
	return &Commits{repo: r}
}

func (r *Repo) Issues() *Issues {
	return &Issues{repo: r}
}

func (r *Repo) Labels() *Labels {
	return &Labels{repo: r}
}

func (r *Repo) Pulls() *Pulls {
	return &Pulls{repo: r}
}

// YAML renders the whole repository subtree.
func (r *Repo) YAML() ([]byte, error) {
	p, err := r.path()
	if err != nil {
		return nil, err
	}
	var res []byte
	err = r.gh.store.ViewOne(p, func(n *ir.Node) error {
		d, err := jsonview.ToYAML(n)
		res = d
		return err
	})
	return res, err
}

func (r *Repo) String() string {
	return r.coords.String()
}
