package github

import (
	"fmt"
	"maps"

	"github.com/signadot/mkhub"
	"github.com/signadot/mkhub/ir"
	"github.com/signadot/mkhub/ir/xpath"
	"github.com/signadot/mkhub/store"
)

const numberAttr = "numbers"

type Issues struct {
	repo *Repo
}

// Create opens an issue. Issues and pull requests of a repository share
// one number sequence.
func (i *Issues) Create(title, body string) (*Issue, error) {
	num, err := createIssue(i.repo, title, body, nil)
	if err != nil {
		return nil, err
	}
	return i.handle(num), nil
}

// createIssue allocates the next number and creates the issue node. extra
// is called inside the same transaction with the number, for pull requests
// to add their own node.
func createIssue(repo *Repo, title, body string, extra func(tx *store.Tx, num int) (*ir.Node, error)) (int, error) {
	gh := repo.gh
	repoP, err := repo.path()
	if err != nil {
		return 0, err
	}
	parent, err := issuesT.Path(repo.coords)
	if err != nil {
		return 0, err
	}
	var num int
	err = gh.store.Update(func(tx *store.Tx) error {
		rref, err := tx.Get(repoP)
		if err != nil {
			return err
		}
		rnode, err := tx.Node(rref)
		if err != nil {
			return err
		}
		num, err = nextNumber(tx, rnode, numberAttr)
		if err != nil {
			return err
		}
		self, err := issueT.Path(repo.coords, num)
		if err != nil {
			return err
		}
		now := gh.timestamp()
		node := ir.NewContainer("issue",
			ir.FromInt("number", int64(num)),
			ir.FromString("node_id", nodeID()),
			ir.FromString("state", "open"),
			ir.FromString("title", title),
			ir.FromString("body", body),
			userObject("user", gh.self),
			ir.EmptyList("labels"),
			ir.FromString("html_url", fmt.Sprintf("%s/%s/issues/%d", htmlBase, repo.coords, num)),
			ir.FromString("created_at", now),
			ir.FromString("updated_at", now),
		)
		if extra != nil {
			pr, err := extra(tx, num)
			if err != nil {
				return err
			}
			if pr != nil {
				node.Append(pr)
			}
		}
		return createUnique(tx, parent, self, node)
	})
	if err != nil {
		return 0, err
	}
	gh.log.Debug("issue created", "repo", repo.coords.String(), "number", num)
	return num, nil
}

// Get returns the existing issue number.
func (i *Issues) Get(number int) (*Issue, error) {
	res := i.handle(number)
	if _, err := res.JSON(); err != nil {
		return nil, err
	}
	return res, nil
}

// Iterate returns handles on every issue, in creation order.
func (i *Issues) Iterate() ([]*Issue, error) {
	return i.Search("true")
}

// Search returns the issues for which the expression where holds, for
// instance `state == "open"`.
func (i *Issues) Search(where string) ([]*Issue, error) {
	parent, err := issuesT.Path(i.repo.coords)
	if err != nil {
		return nil, err
	}
	found, err := mkhub.Filter(i.repo.gh.store, parent.Append(xpath.S("issue")), where)
	if err != nil {
		return nil, err
	}
	res := make([]*Issue, 0, len(found))
	for _, m := range found {
		num, ok := m["number"].(int64)
		if !ok {
			return nil, fmt.Errorf("issue without integer number: %v", m["number"])
		}
		res = append(res, i.handle(int(num)))
	}
	return res, nil
}

func (i *Issues) handle(number int) *Issue {
	res := &Issue{repo: i.repo, number: number}
	res.resource = resource{gh: i.repo.gh, path: res.path}
	return res
}

// Issue is a handle on .../issues/issue[number=?].
type Issue struct {
	resource
	repo   *Repo
	number int
}

func (i *Issue) Repo() *Repo {
	return i.repo
}

func (i *Issue) Number() int {
	return i.number
}

// Compare orders issues by number.
func (i *Issue) Compare(o *Issue) int {
	return ir.CompareInt(int64(i.number), int64(o.number))
}

// Patch merges obj into the issue and refreshes updated_at.
func (i *Issue) Patch(obj map[string]any) error {
	obj = maps.Clone(obj)
	if obj == nil {
		obj = map[string]any{}
	}
	if _, ok := obj["updated_at"]; !ok {
		obj["updated_at"] = i.gh.timestamp()
	}
	return i.resource.Patch(obj)
}

func (i *Issue) Title() (string, error) {
	return i.str("title")
}

func (i *Issue) SetTitle(v string) error {
	return i.Patch(map[string]any{"title": v})
}

func (i *Issue) Body() (string, error) {
	return i.str("body")
}

func (i *Issue) SetBody(v string) error {
	return i.Patch(map[string]any{"body": v})
}

func (i *Issue) State() (string, error) {
	return i.str("state")
}

func (i *Issue) IsOpen() (bool, error) {
	s, err := i.State()
	return s == "open", err
}

func (i *Issue) Open() error {
	return i.Patch(map[string]any{"state": "open"})
}

func (i *Issue) Close() error {
	return i.Patch(map[string]any{"state": "closed"})
}

// IsPull reports whether the issue is the issue side of a pull request.
func (i *Issue) IsPull() (bool, error) {
	m, err := i.Map()
	if err != nil {
		return false, err
	}
	_, ok := m["pull_request"]
	return ok, nil
}

func (i *Issue) CreatedAt() (string, error) {
	return i.str("created_at")
}

func (i *Issue) UpdatedAt() (string, error) {
	return i.str("updated_at")
}

func (i *Issue) HTMLURL() (string, error) {
	return i.str("html_url")
}

func (i *Issue) Labels() *IssueLabels {
	return &IssueLabels{issue: i}
}

func (i *Issue) path() (*xpath.Path, error) {
	return issueT.Path(i.repo.coords, i.number)
}

// IssueLabels are the labels attached to one issue.
type IssueLabels struct {
	issue *Issue
}

// Add attaches repository labels to the issue. Every name must be a label
// of the repository. Labels already attached are kept once.
func (l *IssueLabels) Add(names []string) error {
	is := l.issue
	gh := is.gh
	ip, err := is.path()
	if err != nil {
		return err
	}
	return gh.store.Update(func(tx *store.Tx) error {
		iref, err := tx.Get(ip)
		if err != nil {
			return err
		}
		inode, err := tx.Node(iref)
		if err != nil {
			return err
		}
		var have []*ir.Node
		seen := map[string]bool{}
		for _, c := range inode.Named("labels") {
			if n, ok := c.ChildText("name"); ok && !seen[n] {
				seen[n] = true
				have = append(have, labelObject("labels", n, colorOf(c)).AsList())
			}
		}
		for _, name := range names {
			if seen[name] {
				continue
			}
			lp, err := labelT.Path(is.repo.coords, name)
			if err != nil {
				return err
			}
			lref, err := tx.Get(lp)
			if err != nil {
				return fmt.Errorf("label %q: %w", name, err)
			}
			lnode, err := tx.Node(lref)
			if err != nil {
				return err
			}
			seen[name] = true
			have = append(have, labelObject("labels", name, colorOf(lnode)).AsList())
		}
		patch := ir.NewContainer("patch", have...)
		if len(have) == 0 {
			patch.Append(ir.EmptyList("labels"))
		}
		patch.Append(ir.FromString("updated_at", gh.timestamp()))
		mkhub.Merge(inode, patch)
		tx.Changed(inode)
		return nil
	})
}

// List returns handles on the attached labels, in attachment order.
func (l *IssueLabels) List() ([]*Label, error) {
	m, err := l.issue.Map()
	if err != nil {
		return nil, err
	}
	list, _ := m["labels"].([]any)
	labels := l.issue.repo.Labels()
	res := make([]*Label, 0, len(list))
	for _, e := range list {
		obj, ok := e.(map[string]any)
		if !ok {
			continue
		}
		name, _ := obj["name"].(string)
		res = append(res, labels.handle(name))
	}
	return res, nil
}

func colorOf(n *ir.Node) string {
	c, _ := n.ChildText("color")
	return c
}
