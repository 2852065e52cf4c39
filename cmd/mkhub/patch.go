package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	"github.com/signadot/mkhub"
	"github.com/signadot/mkhub/encode"
	"github.com/signadot/mkhub/github"
	"github.com/signadot/mkhub/ir"
	"github.com/signadot/mkhub/ir/xpath"
	"github.com/signadot/mkhub/jsonview"
	"github.com/signadot/mkhub/store"
)

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: patch requires 2 arguments, a path and a JSON object", cli.ErrUsage)
	}
	gh, err := cfg.open()
	if err != nil {
		return err
	}
	return runPatch(cfg.MainConfig, gh, cc.Out, args[0], []byte(args[1]), cfg.Diff, mkhub.Patch)
}

func ops(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: ops requires 2 arguments, a path and a JSON Patch document", cli.ErrUsage)
	}
	gh, err := cfg.open()
	if err != nil {
		return err
	}
	return runPatch(cfg.MainConfig, gh, cc.Out, args[0], []byte(args[1]), cfg.Diff, mkhub.PatchOps)
}

type patchFunc func(st *store.Store, p *xpath.Path, data []byte) error

// runPatch applies data at arg with apply and prints the resulting node,
// or the change it made when diff is set.
func runPatch(cfg *MainConfig, gh *github.Github, w io.Writer, arg string, data []byte, diff bool, apply patchFunc) error {
	p, err := parsePath(arg)
	if err != nil {
		return err
	}
	var before string
	if diff {
		before, err = indented(gh, p)
		if err != nil {
			return err
		}
	}
	if err := apply(gh.Store(), p, data); err != nil {
		return err
	}
	if diff {
		after, err := indented(gh, p)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, jsonview.Diff(before, after))
		return err
	}
	return gh.Store().ViewOne(p, func(n *ir.Node) error {
		return encode.Encode(n, w, cfg.encOpts(w)...)
	})
}

func indented(gh *github.Github, p *xpath.Path) (string, error) {
	var res string
	err := gh.Store().ViewOne(p, func(n *ir.Node) error {
		d, err := jsonview.ToJSONIndent(n)
		res = string(d) + "\n"
		return err
	})
	return res, err
}
