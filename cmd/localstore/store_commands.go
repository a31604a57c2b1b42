package main

import (
	"fmt"
	"io"
	"strings"

	"localstore/internal/accessor"
	"localstore/internal/shell"
	"localstore/internal/store"
)

type app struct {
	acc    *accessor.Accessor
	st     store.Store // read directly for size reporting only
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// exec runs one subcommand and returns the process exit code.
func (a *app) exec(args []string) int {
	name, rest := args[0], args[1:]
	switch name {
	case "list":
		return a.check(a.list(a.stdout))
	case "get":
		if len(rest) != 1 {
			return a.usageError("get <key>")
		}
		found, err := a.get(a.stdout, rest[0])
		if err != nil {
			return a.check(err)
		}
		if !found {
			return 1
		}
		return 0
	case "set":
		if len(rest) < 2 {
			return a.usageError("set <key> <value>")
		}
		return a.check(a.set(a.stdout, rest[0], strings.Join(rest[1:], " ")))
	case "del":
		if len(rest) != 1 {
			return a.usageError("del <key>")
		}
		return a.check(a.del(a.stdout, rest[0]))
	case "usage":
		return a.check(a.printUsage(a.stdout))
	case "shell":
		return a.runShell()
	default:
		_, _ = fmt.Fprintf(a.stderr, "unknown command %q\n", name)
		return 2
	}
}

func (a *app) check(err error) int {
	if err != nil {
		_, _ = fmt.Fprintf(a.stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

func (a *app) usageError(usage string) int {
	_, _ = fmt.Fprintf(a.stderr, "usage: localstore %s\n", usage)
	return 2
}

func (a *app) list(w io.Writer) error {
	entries, err := a.acc.ListAll()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		_, _ = fmt.Fprintln(w, "(empty)")
		return nil
	}
	for _, e := range entries {
		_, _ = fmt.Fprintf(w, "%s = %s\n", e.Key, e.Value)
	}
	return nil
}

func (a *app) get(w io.Writer, key string) (bool, error) {
	value, ok, err := a.acc.Get(key)
	if err != nil {
		return false, err
	}
	if !ok {
		_, _ = fmt.Fprintf(w, "%s: not found\n", key)
		return false, nil
	}
	_, _ = fmt.Fprintln(w, value)
	return true, nil
}

func (a *app) set(w io.Writer, key, value string) error {
	stored, err := a.acc.Set(key, value)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(w, stored)
	return nil
}

func (a *app) del(w io.Writer, key string) error {
	if err := a.acc.Delete(key); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "deleted %s\n", key)
	return nil
}

func (a *app) printUsage(w io.Writer) error {
	entries, err := a.acc.ListAll()
	if err != nil {
		return err
	}
	n, err := store.Usage(a.st)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "%d entries, %d bytes\n", len(entries), n)
	return nil
}

func registerStoreCommands(reg *shell.CommandRegistry, a *app) {
	reg.Register("/list", shell.Command{
		Help:    "display all entries",
		Handler: shellHandler(0, "/list", func(ctx shell.CommandContext) error { return a.list(ctx.Terminal) }),
	})

	reg.Register("/get", shell.Command{
		Usage: "/get <key>",
		Help:  "display one entry",
		Handler: shellHandler(1, "/get <key>", func(ctx shell.CommandContext) error {
			_, err := a.get(ctx.Terminal, ctx.Args[0])
			return err
		}),
	})

	reg.Register("/set", shell.Command{
		Usage: "/set <key> <value>",
		Help:  "store a value and show what was stored",
		Handler: shellHandler(2, "/set <key> <value>", func(ctx shell.CommandContext) error {
			return a.set(ctx.Terminal, ctx.Args[0], strings.Join(ctx.Args[1:], " "))
		}),
	})

	reg.Register("/del", shell.Command{
		Usage: "/del <key>",
		Help:  "delete an entry",
		Handler: shellHandler(1, "/del <key>", func(ctx shell.CommandContext) error {
			return a.del(ctx.Terminal, ctx.Args[0])
		}),
	})

	reg.Register("/usage", shell.Command{
		Help:    "display entry count and bytes used",
		Handler: shellHandler(0, "/usage", func(ctx shell.CommandContext) error { return a.printUsage(ctx.Terminal) }),
	})
}

// shellHandler checks the argument count and prints store failures
// instead of leaving the shell.
func shellHandler(minArgs int, usage string, fn func(shell.CommandContext) error) shell.CommandHandler {
	return func(ctx shell.CommandContext) bool {
		if len(ctx.Args) < minArgs {
			_, _ = fmt.Fprintf(ctx.Terminal, "Usage: %s\n", usage)
			return false
		}
		if err := fn(ctx); err != nil {
			_, _ = fmt.Fprintf(ctx.Terminal, "Error: %v\n", err)
		}
		return false
	}
}
