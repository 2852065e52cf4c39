package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/scott-cotton/cli"

	"github.com/signadot/mkhub/encode"
	"github.com/signadot/mkhub/github"
	"github.com/signadot/mkhub/ir"
	"github.com/signadot/mkhub/ir/xpath"
)

func dump(cfg *DumpConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Dump.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: dump takes no arguments", cli.ErrUsage)
	}
	gh, err := cfg.open()
	if err != nil {
		return err
	}
	return runDump(cfg.MainConfig, gh, cc.Out, cfg.Tree)
}

func runDump(cfg *MainConfig, gh *github.Github, w io.Writer, tree bool) error {
	root := xpath.MustParse("/github")
	return gh.Store().ViewOne(root, func(n *ir.Node) error {
		if tree {
			return dumpTree(w, n)
		}
		return encode.Encode(n, w, cfg.encOpts(w)...)
	})
}

// dumpTree writes one line per node: its positional path, attributes and,
// for leaves, kind and text.
func dumpTree(w io.Writer, root *ir.Node) error {
	return root.Visit(func(y *ir.Node, isPost bool) (bool, error) {
		if isPost {
			return true, nil
		}
		line := &strings.Builder{}
		line.WriteString(y.Path())
		for _, a := range y.Attrs {
			fmt.Fprintf(line, " @%s=%q", a.Name, a.Value)
		}
		if y.IsLeaf() {
			fmt.Fprintf(line, " %s %q", y.Kind, y.Text)
		} else if y.Placeholder() {
			line.WriteString(" []")
		}
		line.WriteByte('\n')
		_, err := io.WriteString(w, line.String())
		return true, err
	})
}
