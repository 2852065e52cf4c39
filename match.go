package mkhub

import (
	"fmt"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/signadot/mkhub/debug"
	"github.com/signadot/mkhub/ir"
	"github.com/signadot/mkhub/ir/xpath"
	"github.com/signadot/mkhub/jsonview"
	"github.com/signadot/mkhub/store"
)

type MatchConfig struct {
	Vars map[string]any
}

type MatchOpt func(*MatchConfig)

// MatchVar makes an extra variable visible to match expressions. Fields of
// the node take precedence over variables of the same name.
func MatchVar(name string, v any) MatchOpt {
	return func(c *MatchConfig) {
		if c.Vars == nil {
			c.Vars = map[string]any{}
		}
		c.Vars[name] = v
	}
}

var programs sync.Map // expression text -> *vm.Program

func compile(where string) (*vm.Program, error) {
	if p, ok := programs.Load(where); ok {
		return p.(*vm.Program), nil
	}
	p, err := expr.Compile(where)
	if err != nil {
		return nil, fmt.Errorf("compiling %q: %w", where, err)
	}
	programs.Store(where, p)
	return p, nil
}

// Match evaluates the boolean expression where over the JSON projection of
// node. Top level fields are variables, so an issue matches
// `state == "open" && number > 2`. Missing fields are nil.
func Match(node *ir.Node, where string, opts ...MatchOpt) (bool, error) {
	prg, err := compile(where)
	if err != nil {
		return false, err
	}
	return match(prg, node, where, opts)
}

func match(prg *vm.Program, node *ir.Node, where string, opts []MatchOpt) (bool, error) {
	cfg := &MatchConfig{}
	for _, o := range opts {
		o(cfg)
	}
	env := make(map[string]any, len(cfg.Vars)+len(node.Children))
	for k, v := range cfg.Vars {
		env[k] = v
	}
	for k, v := range jsonview.ToMap(node) {
		env[k] = v
	}
	out, err := expr.Run(prg, env)
	if err != nil {
		return false, fmt.Errorf("evaluating %q on %s: %w", where, node.Path(), err)
	}
	b, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("expression %q gave %T, not bool", where, out)
	}
	if debug.Match() {
		debug.Logf("match %q on %s: %t\n", where, node.Path(), b)
	}
	return b, nil
}

// Filter returns the projections of the nodes p names for which where
// holds, in document order, from one snapshot.
func Filter(st *store.Store, p *xpath.Path, where string, opts ...MatchOpt) ([]map[string]any, error) {
	prg, err := compile(where)
	if err != nil {
		return nil, err
	}
	var res []map[string]any
	err = st.View(p, func(nodes []*ir.Node) error {
		for _, n := range nodes {
			ok, err := match(prg, n, where, opts)
			if err != nil {
				return err
			}
			if ok {
				res = append(res, jsonview.ToMap(n))
			}
		}
		return nil
	})
	return res, err
}
