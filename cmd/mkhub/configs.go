package main

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/signadot/mkhub/encode"
	"github.com/signadot/mkhub/github"
)

type MainConfig struct {
	Fixture string `cli:"name=f aliases=fixture desc='YAML fixture to seed the instance with'"`
	Login   string `cli:"name=login desc='login of the acting user'"`
	Y       bool   `cli:"name=y aliases=yaml desc='output yaml'"`
	Color   bool   `cli:"name=color desc='encode with color'"`
	Verbose bool   `cli:"name=v desc='debug logging'"`

	Main *cli.Command

	log *slog.Logger
}

func (cfg *MainConfig) logger() *slog.Logger {
	if cfg.log != nil {
		return cfg.log
	}
	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	cfg.log = slog.New(tint.NewHandler(colorable.NewColorable(os.Stderr), &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05.000",
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	}))
	return cfg.log
}

// open creates the instance the command runs against.
func (cfg *MainConfig) open() (*github.Github, error) {
	opts := []github.Option{github.WithLogger(cfg.logger())}
	if cfg.Fixture == "" {
		return github.New(cfg.Login, opts...)
	}
	fx, err := github.LoadFixture(cfg.Fixture)
	if err != nil {
		return nil, err
	}
	if fx.Login == "" || cfg.loginSet() {
		fx.Login = cfg.Login
	}
	start := time.Now()
	gh, err := github.FromFixture(fx, opts...)
	if err != nil {
		return nil, err
	}
	cfg.logger().Debug("fixture loaded", "file", cfg.Fixture, "took", time.Since(start))
	return gh, nil
}

func (cfg *MainConfig) loginSet() bool {
	for _, opt := range cfg.Main.Opts {
		if opt.Name == "login" {
			return opt.Value != nil
		}
	}
	return false
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	f := encode.JSONFormat
	if cfg.Y {
		f = encode.YAMLFormat
	}
	res := []encode.EncodeOption{encode.EncodeFormat(f)}
	if cfg.Color {
		return append(res, encode.EncodeColors(encode.NewColors()))
	}
	colorsSet := false
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		colorsSet = opt.Value != nil
		break
	}
	if colorsSet {
		return res
	}
	fd, ok := w.(*os.File)
	if !ok {
		return res
	}
	if isatty.IsTerminal(fd.Fd()) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

type GetConfig struct {
	*MainConfig

	Get *cli.Command
}

type ListConfig struct {
	*MainConfig
	Where string `cli:"name=where desc='boolean expression over the fields of each node'"`

	List *cli.Command
}

type PatchConfig struct {
	*MainConfig
	Diff bool `cli:"name=diff desc='print a diff of the node instead of the result'"`

	Patch *cli.Command
}

type DumpConfig struct {
	*MainConfig
	Tree bool `cli:"name=tree desc='print node paths and attributes instead of the projection'"`

	Dump *cli.Command
}

type ShellConfig struct {
	*MainConfig
	Watch bool `cli:"name=watch desc='reload the fixture when it changes'"`
	Gops  bool `cli:"name=gops desc='start a gops agent'"`

	Shell *cli.Command
}
