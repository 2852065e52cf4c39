package github

import (
	"fmt"
	"strconv"

	"github.com/signadot/mkhub/ir"
	"github.com/signadot/mkhub/ir/xpath"
	"github.com/signadot/mkhub/store"
)

const commentAttr = "comments"

type PullComments struct {
	pull *Pull
}

// Create adds a review comment on line position of path at commit
// commitID. Comment ids count from 1 within each pull request.
func (c *PullComments) Create(body, commitID, path string, position int) (*PullComment, error) {
	pull := c.pull
	repo := pull.repo
	gh := repo.gh
	pp, err := pull.path()
	if err != nil {
		return nil, err
	}
	parent, err := pullCommentsT.Path(repo.coords, pull.number)
	if err != nil {
		return nil, err
	}
	var id int
	err = gh.store.Update(func(tx *store.Tx) error {
		pref, err := tx.Get(pp)
		if err != nil {
			return err
		}
		pnode, err := tx.Node(pref)
		if err != nil {
			return err
		}
		id, err = nextNumber(tx, pnode, commentAttr)
		if err != nil {
			return err
		}
		self, err := pullCommentT.Path(repo.coords, pull.number, id)
		if err != nil {
			return err
		}
		now := gh.timestamp()
		node := ir.NewContainer("comment",
			ir.FromInt("id", int64(id)),
			ir.FromString("node_id", nodeID()),
			ir.FromString("body", body),
			ir.FromString("commit_id", commitID),
			ir.FromString("path", path),
			ir.FromInt("position", int64(position)),
			userObject("user", gh.self),
			ir.FromString("html_url", fmt.Sprintf("%s/%s/pull/%d#discussion_r%d", htmlBase, repo.coords, pull.number, id)),
			ir.FromString("created_at", now),
			ir.FromString("updated_at", now),
		)
		return createUnique(tx, parent, self, node)
	})
	if err != nil {
		return nil, err
	}
	return c.handle(id), nil
}

// Get returns the existing comment id.
func (c *PullComments) Get(id int) (*PullComment, error) {
	res := c.handle(id)
	if _, err := res.JSON(); err != nil {
		return nil, err
	}
	return res, nil
}

// Iterate returns handles on every comment of the pull request, in
// creation order.
func (c *PullComments) Iterate() ([]*PullComment, error) {
	parent, err := pullCommentsT.Path(c.pull.repo.coords, c.pull.number)
	if err != nil {
		return nil, err
	}
	var res []*PullComment
	err = c.pull.gh.store.View(parent.Append(xpath.S("comment")), func(nodes []*ir.Node) error {
		for _, n := range nodes {
			id, err := intField(n, "id")
			if err != nil {
				return err
			}
			res = append(res, c.handle(id))
		}
		return nil
	})
	return res, err
}

// Remove deletes the comment id.
func (c *PullComments) Remove(id int) error {
	parent, err := pullCommentsT.Path(c.pull.repo.coords, c.pull.number)
	if err != nil {
		return err
	}
	self, err := pullCommentT.Path(c.pull.repo.coords, c.pull.number, id)
	if err != nil {
		return err
	}
	return c.pull.gh.store.Update(func(tx *store.Tx) error {
		pref, err := tx.Get(parent)
		if err != nil {
			return err
		}
		cref, err := tx.Get(self)
		if err != nil {
			return err
		}
		return tx.RemoveChild(pref, cref)
	})
}

func (c *PullComments) handle(id int) *PullComment {
	res := &PullComment{pull: c.pull, id: id}
	res.resource = resource{gh: c.pull.gh, path: res.path}
	return res
}

// PullComment is a handle on .../pulls/pull[number=?]/comments/comment[id=?].
type PullComment struct {
	resource
	pull *Pull
	id   int
}

func (c *PullComment) Pull() *Pull {
	return c.pull
}

func (c *PullComment) Number() int {
	return c.id
}

// Author returns the login of the user who wrote the comment.
func (c *PullComment) Author() (string, error) {
	m, err := c.Map()
	if err != nil {
		return "", err
	}
	u, _ := m["user"].(map[string]any)
	login, ok := u["login"].(string)
	if !ok {
		return "", fmt.Errorf("comment %d has no user login", c.id)
	}
	return login, nil
}

func (c *PullComment) Body() (string, error) {
	return c.str("body")
}

// Compare orders comments by id.
func (c *PullComment) Compare(o *PullComment) int {
	return ir.CompareInt(int64(c.id), int64(o.id))
}

func (c *PullComment) path() (*xpath.Path, error) {
	return pullCommentT.Path(c.pull.repo.coords, c.pull.number, c.id)
}

func intField(n *ir.Node, name string) (int, error) {
	v, ok := n.ChildText(name)
	if !ok {
		return 0, fmt.Errorf("%s has no %s", n.Path(), name)
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s %s: %w", n.Path(), name, err)
	}
	return i, nil
}
