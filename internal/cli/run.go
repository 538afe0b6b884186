// Package cli implements the bioinfodb command.
package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/alexflint/go-arg"
	"github.com/fatih/color"

	"github.com/bioinfo-lab/bioinfodb"
)

// ErrNoCommand is returned when no subcommand is given.
var ErrNoCommand = errors.New("no command given")

// app carries the state shared by all commands of one invocation.
type app struct {
	cfg    Config
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger
}

// Main runs the command line and returns the process exit code.
// Errors are printed in red on stderr.
func Main(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if err := Run(ctx, args, stdout, stderr); err != nil {
		_, _ = color.New(color.FgRed).Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

// Run parses args (without the program name) and executes the chosen command.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg := Config{}
	parser, err := arg.NewParser(arg.Config{Program: "bioinfodb"}, &cfg)
	if err != nil {
		return err
	}

	switch err := parser.Parse(args); {
	case errors.Is(err, arg.ErrHelp):
		parser.WriteHelp(stdout)
		return nil
	case errors.Is(err, arg.ErrVersion):
		_, _ = fmt.Fprintln(stdout, cfg.Version())
		return nil
	case err != nil:
		parser.WriteUsage(stderr)
		return err
	}

	a := &app{
		cfg:    cfg,
		stdout: stdout,
		stderr: stderr,
		logger: newLogger(stderr, cfg.Verbose),
	}

	switch cmd := parser.Subcommand().(type) {
	case *InitCmd:
		return a.runInit(ctx)
	case *ExecCmd:
		return a.withDB(ctx, func(db *sql.DB) error { return a.runExec(ctx, db, cmd) })
	case *LoadCmd:
		return a.withDB(ctx, func(db *sql.DB) error { return a.runLoad(ctx, db, cmd) })
	case *TablesCmd:
		return a.withDB(ctx, func(db *sql.DB) error { return a.runTables(ctx, db) })
	case *QueryCmd:
		return a.withDB(ctx, func(db *sql.DB) error { return a.runQuery(ctx, db, cmd) })
	case *DumpCmd:
		return a.withDB(ctx, func(db *sql.DB) error { return a.runDump(ctx, db, cmd) })
	default:
		parser.WriteUsage(stderr)
		return ErrNoCommand
	}
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// options returns the library options derived from the global flags.
func (a *app) options() []bioinfodb.Option {
	return []bioinfodb.Option{
		bioinfodb.WithPath(a.cfg.DB),
		bioinfodb.WithLogger(a.logger),
	}
}

// withDB opens the database, runs fn and closes the database.
func (a *app) withDB(ctx context.Context, fn func(db *sql.DB) error) (err error) {
	db, err := bioinfodb.Connect(ctx, a.options()...)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			err = errors.Join(err, closeErr)
		}
	}()
	return fn(db)
}
