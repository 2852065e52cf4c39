package github

import (
	"errors"
	"fmt"

	"github.com/signadot/mkhub/ir"
	"github.com/signadot/mkhub/ir/xpath"
	"github.com/signadot/mkhub/store"
)

type Users struct {
	gh *Github
}

// Add creates the user login.
func (u *Users) Add(login string) (*User, error) {
	if err := validName("user", login); err != nil {
		return nil, err
	}
	self, err := userT.Path(login)
	if err != nil {
		return nil, err
	}
	node := ir.NewContainer("user",
		ir.FromString("login", login),
		ir.FromString("node_id", nodeID()),
		ir.FromString("type", "User"),
		ir.FromString("html_url", htmlBase+"/"+login),
	)
	err = u.gh.store.Update(func(tx *store.Tx) error {
		return createUnique(tx, usersP, self, node)
	})
	if err != nil {
		return nil, err
	}
	u.gh.log.Debug("user added", "user", login)
	return u.handle(login), nil
}

// Get returns the existing user login.
func (u *Users) Get(login string) (*User, error) {
	res := u.handle(login)
	if _, err := res.JSON(); err != nil {
		return nil, err
	}
	return res, nil
}

func (u *Users) handle(login string) *User {
	res := &User{login: login}
	res.resource = resource{gh: u.gh, path: res.path}
	return res
}

// User is a handle on /github/users/user[login=?].
type User struct {
	resource
	login string
}

func (u *User) Login() string {
	return u.login
}

func (u *User) path() (*xpath.Path, error) {
	return userT.Path(u.login)
}

func isExists(err error) bool {
	return errors.Is(err, ErrExists)
}

func (u *User) String() string {
	return fmt.Sprintf("user %s", u.login)
}
