package cli

import (
	"fmt"

	"github.com/bioinfo-lab/bioinfodb"
	"github.com/bioinfo-lab/bioinfodb/internal/version"
)

// Config represents the command line of bioinfodb.
type Config struct {
	DB      string `arg:"--db,env:BIOINFODB_PATH" help:"path of the database file" default:"bioinfo_db.sqlite"`
	Verbose bool   `arg:"-v,--verbose" help:"log debug messages"`

	Init   *InitCmd   `arg:"subcommand:init" help:"create the database file if it does not exist"`
	Exec   *ExecCmd   `arg:"subcommand:exec" help:"execute a SQL statement such as CREATE TABLE"`
	Load   *LoadCmd   `arg:"subcommand:load" help:"load files into tables, replacing existing tables"`
	Tables *TablesCmd `arg:"subcommand:tables" help:"list tables with their row and column counts"`
	Query  *QueryCmd  `arg:"subcommand:query" help:"run a query and print the result"`
	Dump   *DumpCmd   `arg:"subcommand:dump" help:"export tables to files"`
}

// InitCmd creates the database.
type InitCmd struct{}

// ExecCmd executes one statement.
type ExecCmd struct {
	SQL string `arg:"positional,required" help:"statement to execute"`
}

// LoadCmd loads files or directories of files.
type LoadCmd struct {
	Table string   `arg:"-t,--table" help:"target table (default: derived from the file name)"`
	Files []string `arg:"positional,required" help:"CSV, TSV, LTSV, XLSX or Parquet files, optionally compressed, or directories"`
}

// TablesCmd lists tables.
type TablesCmd struct{}

// QueryCmd runs a query.
type QueryCmd struct {
	SQL string `arg:"positional,required" help:"query to run"`
}

// DumpCmd exports tables.
type DumpCmd struct {
	Out      string   `arg:"-o,--out,required" help:"output directory"`
	Format   string   `arg:"-f,--format" help:"output format: csv, tsv, ltsv, xlsx or parquet" default:"csv"`
	Compress string   `arg:"-c,--compress" help:"output compression: none, gz, xz or zstd" default:"none"`
	Tables   []string `arg:"-t,--table,separate" help:"table to export (default: all tables)"`
}

// Version is printed by --version.
func (Config) Version() string {
	return fmt.Sprintf("bioinfodb %v", version.Version())
}

// Description is printed at the top of --help.
func (Config) Description() string {
	return "bioinfodb stores tabular data files in a local SQLite database (" + bioinfodb.DatabaseName + " by default)."
}

// dumpOptions converts the dump flags to library options.
func (d *DumpCmd) dumpOptions() (bioinfodb.DumpOptions, error) {
	format, err := bioinfodb.ParseOutputFormat(d.Format)
	if err != nil {
		return bioinfodb.DumpOptions{}, err
	}
	compression, err := bioinfodb.ParseCompressionType(d.Compress)
	if err != nil {
		return bioinfodb.DumpOptions{}, err
	}
	return bioinfodb.NewDumpOptions().WithFormat(format).WithCompression(compression), nil
}
