package github

import (
	"github.com/signadot/mkhub/ir"
	"github.com/signadot/mkhub/ir/xpath"
	"github.com/signadot/mkhub/store"
)

type Labels struct {
	repo *Repo
}

// Create defines a label in the repository.
func (l *Labels) Create(name, color string) (*Label, error) {
	if err := validName("label", name); err != nil {
		return nil, err
	}
	parent, err := labelsT.Path(l.repo.coords)
	if err != nil {
		return nil, err
	}
	self, err := labelT.Path(l.repo.coords, name)
	if err != nil {
		return nil, err
	}
	err = l.repo.gh.store.Update(func(tx *store.Tx) error {
		return createUnique(tx, parent, self, labelObject("label", name, color))
	})
	if err != nil {
		return nil, err
	}
	return l.handle(name), nil
}

// Get returns the existing label name.
func (l *Labels) Get(name string) (*Label, error) {
	res := l.handle(name)
	if _, err := res.JSON(); err != nil {
		return nil, err
	}
	return res, nil
}

func (l *Labels) handle(name string) *Label {
	res := &Label{repo: l.repo, name: name}
	res.resource = resource{gh: l.repo.gh, path: res.path}
	return res
}

func labelObject(tag, name, color string) *ir.Node {
	return ir.NewContainer(tag,
		ir.FromString("name", name),
		ir.FromString("color", color),
	)
}

// Label is a handle on .../labels/label[name=?].
type Label struct {
	resource
	repo *Repo
	name string
}

func (l *Label) Name() string {
	return l.name
}

// Color returns the colour of the label.
func (l *Label) Color() (string, error) {
	return l.str("color")
}

func (l *Label) path() (*xpath.Path, error) {
	return labelT.Path(l.repo.coords, l.name)
}
