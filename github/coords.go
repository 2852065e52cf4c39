package github

import (
	"fmt"
	"strings"
)

// Coordinates name a repository as user/repo.
type Coordinates struct {
	User string
	Repo string
}

// ParseCoordinates parses "user/repo".
func ParseCoordinates(v string) (Coordinates, error) {
	user, repo, ok := strings.Cut(v, "/")
	c := Coordinates{User: user, Repo: repo}
	if !ok {
		return Coordinates{}, fmt.Errorf("%w: coordinates %q: expected user/repo", ErrInvalid, v)
	}
	if err := c.Validate(); err != nil {
		return Coordinates{}, err
	}
	return c, nil
}

func (c Coordinates) String() string {
	return c.User + "/" + c.Repo
}

// Validate checks that both parts are non empty names without '/' or
// quote characters.
func (c Coordinates) Validate() error {
	if err := validName("user", c.User); err != nil {
		return err
	}
	return validName("repository", c.Repo)
}

func validName(what, v string) error {
	if v == "" {
		return fmt.Errorf("%w: empty %s name", ErrInvalid, what)
	}
	if strings.ContainsAny(v, "/'\"") {
		return fmt.Errorf("%w: %s name %q", ErrInvalid, what, v)
	}
	return nil
}
