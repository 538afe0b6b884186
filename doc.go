// Package bioinfodb keeps tabular bioinformatics data in a local SQLite file.
//
// It opens (or creates) the database file, runs caller-supplied DDL, and
// bulk-loads delimited files into tables, replacing any table of the same name.
// Column names come from the header row and column types (INTEGER, REAL or
// TEXT) are inferred from the values.
//
// # Features
//
//   - A single on-disk store, "bioinfo_db.sqlite" by default
//   - Load CSV, TSV, LTSV, Parquet, and Excel (XLSX) files
//   - Automatic handling of compressed files (gzip, bzip2, xz, zstandard)
//   - Missing-value markers such as "NA" and "NaN" stored as NULL
//   - Export tables back to files with DumpTable and DumpDatabase
//
// # Basic Usage
//
//	ctx := context.Background()
//	db := bioinfodb.CreateConnection(ctx)
//	if db == nil {
//	    return // the error has been logged
//	}
//	defer db.Close()
//
//	if err := bioinfodb.LoadDataIntoTable(ctx, db, "genes", "genes.csv"); err != nil {
//	    log.Fatal(err)
//	}
//
//	rows, err := db.QueryContext(ctx, `SELECT symbol FROM genes WHERE length > 1000`)
//
// # Drivers
//
// The pure Go driver modernc.org/sqlite is used by default. Building with
// "-tags mattn" switches to github.com/mattn/go-sqlite3, which requires cgo.
//
// # Logging
//
// Connection and DDL failures are logged with log/slog. Pass WithLogger to
// route them elsewhere; by default slog.Default() is used.
package bioinfodb
