package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{Login: "octocat"}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Main, "mkhub").
		WithSynopsis("mkhub [opts] command [opts]").
		WithDescription("mkhub runs an in-memory mock of the GitHub resource model.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return mkhubMain(cfg, cc, args)
		}).
		WithSubs(
			GetCommand(cfg),
			ListCommand(cfg),
			PatchCommand(cfg),
			OpsCommand(cfg),
			DumpCommand(cfg),
			ShellCommand(cfg))
}

func GetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &GetConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Get, "get").
		WithAliases("g").
		WithSynopsis("get <path>").
		WithDescription("print the JSON projection of the only node a path names").
		WithRun(func(cc *cli.Context, args []string) error {
			return get(cfg, cc, args)
		})
}

func ListCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ListConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.List, "list").
		WithAliases("l", "ls").
		WithSynopsis("list [-where expr] <path>").
		WithDescription("print the projections of every node a path names").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return list(cfg, cc, args)
		})
}

func PatchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PatchConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Patch, "patch").
		WithAliases("p").
		WithSynopsis("patch [-diff] <path> <json-object>").
		WithDescription("merge a JSON object into the only node a path names").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return patch(cfg, cc, args)
		})
}

func OpsCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PatchConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Patch, "ops").
		WithSynopsis("ops [-diff] <path> <json-patch>").
		WithDescription("apply RFC 6902 operations to the only node a path names").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return ops(cfg, cc, args)
		})
}

func DumpCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DumpConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Dump, "dump").
		WithSynopsis("dump [-tree]").
		WithDescription("print the whole document").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return dump(cfg, cc, args)
		})
}

func ShellCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ShellConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Shell, "shell").
		WithAliases("sh").
		WithSynopsis("shell [-watch] [-gops]").
		WithDescription(shellDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return shell(cfg, cc, args)
		})
}

const shellDescription = `shell reads commands from standard input, one per line, and runs them
against a single instance, so changes accumulate.

Commands

  get <path>
  list <path> [where-expression]
  patch <path> <json-object>
  ops <path> <json-patch>
  dump
  version
  quit

With -watch, the fixture given by -f is loaded again whenever it changes,
replacing the instance.`
