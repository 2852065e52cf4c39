// Package github provides entity handles over an in-memory GitHub mock.
//
// All resources of a Github instance live in one store.Store rooted at
// "github". A handle (Repo, Commit, Issue, Pull, PullComment, Label, User)
// only holds the store and the identity fields of its resource; each call
// builds the resource path from a template and reads or patches the tree
// through it:
//
//	gh, _ := github.New("alice")
//	repo, _ := gh.Repos().Create("demo")
//	commit, _ := repo.Commits().Create("deadbeef", "initial import")
//	data, _ := commit.JSON() // {"sha":"deadbeef",...}
//
// Creation routines check identity uniqueness and insert the resource in
// one store transaction, so resolving a handle's path never gives more than
// one node.
package github
