package github

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/signadot/mkhub"
	"github.com/signadot/mkhub/ir"
	"github.com/signadot/mkhub/ir/xpath"
	"github.com/signadot/mkhub/store"
)

const htmlBase = "https://github.com"

var (
	reposP = xpath.MustParse("/github/repos")
	usersP = xpath.MustParse("/github/users")

	repoT         = xpath.MustTemplate("/github/repos/repo[@coords=?]")
	commitsT      = xpath.MustTemplate("/github/repos/repo[@coords=?]/git/commits")
	commitT       = xpath.MustTemplate("/github/repos/repo[@coords=?]/git/commits/commit[sha=?]")
	issuesT       = xpath.MustTemplate("/github/repos/repo[@coords=?]/issues")
	issueT        = xpath.MustTemplate("/github/repos/repo[@coords=?]/issues/issue[number=?]")
	labelsT       = xpath.MustTemplate("/github/repos/repo[@coords=?]/labels")
	labelT        = xpath.MustTemplate("/github/repos/repo[@coords=?]/labels/label[name=?]")
	pullsT        = xpath.MustTemplate("/github/repos/repo[@coords=?]/pulls")
	pullT         = xpath.MustTemplate("/github/repos/repo[@coords=?]/pulls/pull[number=?]")
	pullCommentsT = xpath.MustTemplate("/github/repos/repo[@coords=?]/pulls/pull[number=?]/comments")
	pullCommentT  = xpath.MustTemplate("/github/repos/repo[@coords=?]/pulls/pull[number=?]/comments/comment[id=?]")
	userT         = xpath.MustTemplate("/github/users/user[login=?]")
)

// Github is one simulated service instance seen by the user self.
type Github struct {
	store *store.Store
	self  string
	now   func() time.Time
	log   *slog.Logger
}

type config struct {
	log   *slog.Logger
	now   func() time.Time
	store *store.Store
}

type Option func(*config)

// WithLogger sets the logger used by the instance and its store.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.log = l }
}

// WithClock sets the time source for created_at and updated_at fields.
func WithClock(now func() time.Time) Option {
	return func(c *config) { c.now = now }
}

// WithStore shares an existing store, so several logins can act on the same
// resources. The store root must be called "github".
func WithStore(st *store.Store) Option {
	return func(c *config) { c.store = st }
}

// New creates an instance for the user login, creating that user.
func New(login string, opts ...Option) (*Github, error) {
	if err := validName("user", login); err != nil {
		return nil, err
	}
	cfg := &config{}
	for _, o := range opts {
		o(cfg)
	}
	if cfg.log == nil {
		cfg.log = slog.Default()
	}
	if cfg.now == nil {
		cfg.now = time.Now
	}
	st := cfg.store
	if st == nil {
		st = store.New("github", store.WithLogger(cfg.log))
	}
	gh := &Github{
		store: st,
		self:  login,
		now:   cfg.now,
		log:   cfg.log.With("component", "github", "login", login),
	}
	if err := gh.init(); err != nil {
		return nil, err
	}
	return gh, nil
}

func (g *Github) init() error {
	err := g.store.Update(func(tx *store.Tx) error {
		root := tx.Root()
		for _, name := range []string{"repos", "users"} {
			if ir.Get(root, name) == nil {
				tx.Changed(root.Append(ir.NewContainer(name)))
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	if _, err := g.Users().Add(g.self); err != nil && !isExists(err) {
		return err
	}
	return nil
}

// Store returns the store holding every resource of the instance.
func (g *Github) Store() *store.Store {
	return g.store
}

// Login returns the login of the acting user.
func (g *Github) Login() string {
	return g.self
}

// As returns an instance sharing the same resources for another login.
func (g *Github) As(login string) (*Github, error) {
	return New(login, WithStore(g.store), WithClock(g.now), WithLogger(g.log))
}

func (g *Github) Repos() *Repos {
	return &Repos{gh: g}
}

func (g *Github) Users() *Users {
	return &Users{gh: g}
}

func (g *Github) timestamp() string {
	return g.now().UTC().Format(time.RFC3339)
}

func nodeID() string {
	return ulid.Make().String()
}

// resource implements reads and patches for a handle given its path.
type resource struct {
	gh   *Github
	path func() (*xpath.Path, error)
}

// JSON returns the JSON projection of the resource.
func (r resource) JSON() ([]byte, error) {
	p, err := r.path()
	if err != nil {
		return nil, err
	}
	return mkhub.Read(r.gh.store, p)
}

// Map returns the projection of the resource as plain Go values.
func (r resource) Map() (map[string]any, error) {
	p, err := r.path()
	if err != nil {
		return nil, err
	}
	return mkhub.ReadMap(r.gh.store, p)
}

// Patch merges obj into the resource.
func (r resource) Patch(obj map[string]any) error {
	p, err := r.path()
	if err != nil {
		return err
	}
	return mkhub.PatchValue(r.gh.store, p, obj)
}

// PatchJSON merges the JSON object data into the resource.
func (r resource) PatchJSON(data []byte) error {
	p, err := r.path()
	if err != nil {
		return err
	}
	return mkhub.Patch(r.gh.store, p, data)
}

func (r resource) str(field string) (string, error) {
	m, err := r.Map()
	if err != nil {
		return "", err
	}
	s, ok := m[field].(string)
	if !ok {
		return "", fmt.Errorf("field %q is %T, not a string", field, m[field])
	}
	return s, nil
}

// nextNumber increments the integer attribute attr of n and returns the new
// value.
func nextNumber(tx *store.Tx, n *ir.Node, attr string) (int, error) {
	cur := 0
	if v, ok := n.Attr(attr); ok {
		i, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("counter %s on %s: %w", attr, n.Path(), err)
		}
		cur = i
	}
	cur++
	n.SetAttr(attr, strconv.Itoa(cur))
	tx.Changed(n)
	return cur, nil
}

// createUnique adds child under the node parent names unless self already
// names a node.
func createUnique(tx *store.Tx, parent, self *xpath.Path, child *ir.Node) error {
	existing, err := tx.Resolve(self)
	if err != nil {
		return err
	}
	if len(existing) != 0 {
		return fmt.Errorf("%w: %s", ErrExists, self)
	}
	pref, err := tx.Get(parent)
	if err != nil {
		return err
	}
	_, err = tx.CreateChild(pref, child)
	return err
}

func userObject(name, login string) *ir.Node {
	return ir.NewContainer(name, ir.FromString("login", login))
}
