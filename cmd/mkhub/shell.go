package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/google/gops/agent"
	"github.com/scott-cotton/cli"

	"github.com/signadot/mkhub"
	"github.com/signadot/mkhub/github"
	"github.com/signadot/mkhub/store"
)

var errQuit = errors.New("quit")

type shellState struct {
	cfg *MainConfig
	gh  atomic.Pointer[github.Github]

	mu   sync.Mutex
	done chan struct{} // closed when the current instance is replaced
}

func shell(cfg *ShellConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Shell.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: shell takes no arguments", cli.ErrUsage)
	}
	if cfg.Watch && cfg.Fixture == "" {
		return fmt.Errorf("%w: -watch requires -f", cli.ErrUsage)
	}
	log := cfg.logger()
	if cfg.Gops {
		if err := agent.Listen(agent.Options{}); err != nil {
			log.Warn("gops agent failed", "error", err)
		}
		defer agent.Close()
	}
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st := &shellState{cfg: cfg.MainConfig}
	gh, err := cfg.open()
	if err != nil {
		return err
	}
	st.swap(ctx, gh)
	if cfg.Watch {
		if err := st.watchFixture(ctx); err != nil {
			return err
		}
	}

	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(cc.In)
		sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			err := st.run(cc.Out, line)
			if errors.Is(err, errQuit) {
				return nil
			}
			if err != nil {
				fmt.Fprintf(cc.Out, "error: %v\n", err)
			}
		}
	}
}

// run executes one shell line against the current instance.
func (s *shellState) run(w io.Writer, line string) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}
	cmd, rest, _ := strings.Cut(line, " ")
	arg, rest, _ := strings.Cut(strings.TrimSpace(rest), " ")
	rest = strings.TrimSpace(rest)
	gh := s.gh.Load()
	switch cmd {
	case "get", "g":
		return runGet(s.cfg, gh, w, arg)
	case "list", "l", "ls":
		return runList(s.cfg, gh, w, arg, rest)
	case "patch", "p":
		return runPatch(s.cfg, gh, w, arg, []byte(rest), false, mkhub.Patch)
	case "ops":
		return runPatch(s.cfg, gh, w, arg, []byte(rest), false, mkhub.PatchOps)
	case "dump":
		return runDump(s.cfg, gh, w, arg == "-tree")
	case "version":
		_, err := fmt.Fprintf(w, "%d\n", gh.Store().Version())
		return err
	case "quit", "exit":
		return errQuit
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// swap makes gh the current instance and logs its commits until it is
// replaced.
func (s *shellState) swap(ctx context.Context, gh *github.Github) {
	s.mu.Lock()
	if s.done != nil {
		close(s.done)
	}
	done := make(chan struct{})
	s.done = done
	old := s.gh.Swap(gh)
	s.mu.Unlock()
	if old != nil {
		s.cfg.logger().Info("instance replaced", "old_version", old.Store().Version())
	}
	w := gh.Store().Watch("", 64)
	go s.logCommits(ctx, gh.Store(), w, done)
}

func (s *shellState) logCommits(ctx context.Context, st *store.Store, w *store.Watcher, done <-chan struct{}) {
	log := s.cfg.logger()
	defer st.Unwatch(w)
	for {
		select {
		case <-ctx.Done():
			return
		case <-done:
			return
		case <-w.Failed:
			log.Warn("commit watcher fell behind")
			return
		case c := <-w.Events:
			log.Debug("commit", "version", c.Version, "paths", c.Paths)
		}
	}
}

// watchFixture reloads the fixture file on every write.
func (s *shellState) watchFixture(ctx context.Context) error {
	log := s.cfg.logger()
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := w.Add(s.cfg.Fixture); err != nil {
		_ = w.Close()
		return err
	}
	go func() {
		defer func() { _ = w.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				gh, err := s.cfg.open()
				if err != nil {
					log.Error("fixture reload failed", "file", s.cfg.Fixture, "error", err)
					continue
				}
				s.swap(ctx, gh)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Warn("error watching fixture", "error", err)
			}
		}
	}()
	return nil
}
