package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	"github.com/signadot/mkhub"
	"github.com/signadot/mkhub/encode"
	"github.com/signadot/mkhub/github"
	"github.com/signadot/mkhub/ir"
	"github.com/signadot/mkhub/jsonview"
)

func list(cfg *ListConfig, cc *cli.Context, args []string) error {
	args, err := cfg.List.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: list requires one argument, a path", cli.ErrUsage)
	}
	gh, err := cfg.open()
	if err != nil {
		return err
	}
	return runList(cfg.MainConfig, gh, cc.Out, args[0], cfg.Where)
}

// runList prints the nodes arg names, filtered by where when it is not
// empty, as one array in document order.
func runList(cfg *MainConfig, gh *github.Github, w io.Writer, arg, where string) error {
	p, err := parsePath(arg)
	if err != nil {
		return err
	}
	res := []any{}
	err = gh.Store().View(p, func(nodes []*ir.Node) error {
		for _, n := range nodes {
			if where != "" {
				ok, err := mkhub.Match(n, where)
				if err != nil {
					return err
				}
				if !ok {
					continue
				}
			}
			res = append(res, jsonview.Ordered(n))
		}
		return nil
	})
	if err != nil {
		return err
	}
	return encode.EncodeValue(res, w, cfg.encOpts(w)...)
}
