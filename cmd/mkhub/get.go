package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	"github.com/signadot/mkhub/encode"
	"github.com/signadot/mkhub/github"
	"github.com/signadot/mkhub/ir"
	"github.com/signadot/mkhub/ir/xpath"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: get requires one argument, a path", cli.ErrUsage)
	}
	gh, err := cfg.open()
	if err != nil {
		return err
	}
	return runGet(cfg.MainConfig, gh, cc.Out, args[0])
}

func runGet(cfg *MainConfig, gh *github.Github, w io.Writer, arg string) error {
	p, err := parsePath(arg)
	if err != nil {
		return err
	}
	return gh.Store().ViewOne(p, func(n *ir.Node) error {
		return encode.Encode(n, w, cfg.encOpts(w)...)
	})
}

func parsePath(arg string) (*xpath.Path, error) {
	p, err := xpath.Parse(arg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	return p, nil
}
