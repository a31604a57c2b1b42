package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"localstore/internal/accessor"
	"localstore/internal/config"
	"localstore/internal/logging"
	"localstore/internal/profile"
	"localstore/internal/shell"
	"localstore/internal/store/backend"
)

const usageText = `usage: localstore [flags] <command> [args]

commands:
  list                 print every entry
  get <key>            print the value stored under key
  set <key> <value>    store value under key and print what was stored
  del <key>            delete key
  usage                print entry count and bytes used
  shell                interactive prompt

flags:
`

var logger = logging.For("main")

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("localstore", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		_, _ = fmt.Fprint(stderr, usageText)
		fs.PrintDefaults()
	}
	configPath := fs.String("config", "", "path to config file")
	dataDir := fs.String("data-dir", "", "data directory (overrides config)")
	backendName := fs.String("backend", "", "bolt, leveldb, sqlite, memory or disabled (overrides config)")
	origin := fs.String("origin", "", "storage scope (overrides config; default is the profile ID)")
	logLevel := fs.String("log-level", "", "debug, info, warn or error (overrides config)")
	logFormat := fs.String("log-format", "", "text or json (overrides config)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	// Load config (TOML file, then LOCALSTORE_* env)
	cfg, err := config.Load(*configPath)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "config: %v\n", err)
		return 1
	}

	// CLI flags override config file and env values
	if *dataDir != "" {
		cfg.Store.DataDir = *dataDir
	}
	if *backendName != "" {
		cfg.Store.Backend = *backendName
	}
	if *origin != "" {
		cfg.Store.Origin = *origin
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}
	if *logFormat != "" {
		cfg.Logging.Format = *logFormat
	}

	cfg.Store.DataDir = config.ExpandHome(cfg.Store.DataDir)

	if err := cfg.Validate(); err != nil {
		_, _ = fmt.Fprintf(stderr, "config: %v\n", err)
		return 1
	}

	logging.Init(stderr, cfg.Logging.Level, cfg.Logging.Format)

	scope, err := resolveScope(cfg.Store)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "profile: %v\n", err)
		return 1
	}

	st, err := backend.Open(cfg.Store, scope)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "store: %v\n", err)
		return 1
	}
	defer closeStore(st)

	logger.Debug("ready", "backend", cfg.Store.Backend, "scope", scope)

	a := &app{
		acc:    accessor.New(st),
		st:     st,
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
	}
	return a.exec(fs.Args())
}

// resolveScope picks the storage scope: the configured origin, else the
// data dir's profile ID. Non-persistent backends have no profile.
func resolveScope(cfg config.StoreConfig) (string, error) {
	if !cfg.Persistent() {
		if o := strings.TrimSpace(cfg.Origin); o != "" {
			return o, nil
		}
		return "default", nil
	}
	p, err := profile.Load(cfg.DataDir)
	if err != nil {
		return "", err
	}
	return p.Scope(cfg.Origin), nil
}

// closeStore releases the backend, logging a failed close.
func closeStore(c io.Closer) {
	if err := c.Close(); err != nil {
		logger.Warn("closing store failed", "err", err)
	}
}

func (a *app) runShell() int {
	reg := shell.NewCommandRegistry()
	reg.RegisterBuiltins()
	registerStoreCommands(reg, a)

	var in io.Reader = shell.LineInput(a.stdin)
	if f, ok := a.stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd := int(f.Fd())
		old, err := term.MakeRaw(fd)
		if err != nil {
			_, _ = fmt.Fprintf(a.stderr, "terminal: %v\n", err)
			return 1
		}
		defer func() { _ = term.Restore(fd, old) }()
		in = f
	}

	rw := struct {
		io.Reader
		io.Writer
	}{in, a.stdout}
	if err := shell.Run(rw, reg, "localstore> ", "Type /help for commands."); err != nil {
		_, _ = fmt.Fprintf(a.stderr, "shell: %v\n", err)
		return 1
	}
	return 0
}
