package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/schollz/progressbar/v3"

	"github.com/bioinfo-lab/bioinfodb"
	"github.com/bioinfo-lab/bioinfodb/domain/model"
)

func (a *app) runInit(ctx context.Context) error {
	return a.withDB(ctx, func(*sql.DB) error {
		abs, err := filepath.Abs(a.cfg.DB)
		if err != nil {
			abs = a.cfg.DB
		}
		successColor().Fprintf(a.stdout, "database ready: %s\n", abs)
		return nil
	})
}

func (a *app) runExec(ctx context.Context, db *sql.DB, cmd *ExecCmd) error {
	if err := bioinfodb.CreateTable(ctx, db, cmd.SQL, bioinfodb.WithLogger(a.logger)); err != nil {
		return err
	}
	successColor().Fprintln(a.stdout, "OK")
	return nil
}

func (a *app) runLoad(ctx context.Context, db *sql.DB, cmd *LoadCmd) error {
	files, err := bioinfodb.CollectFiles(cmd.Files)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return errors.New("no loadable files found")
	}
	if cmd.Table != "" && len(files) > 1 {
		return fmt.Errorf("--table needs exactly one file, got %d", len(files))
	}

	var bar *progressbar.ProgressBar
	if len(files) > 1 {
		bar = progressbar.NewOptions(len(files),
			progressbar.OptionSetWriter(a.stderr),
			progressbar.OptionSetDescription("loading"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
		defer func() {
			_ = bar.Close()
		}()
	}

	loaded := make([]table.Row, 0, len(files))
	for _, path := range files {
		name := cmd.Table
		if name == "" {
			name = bioinfodb.TableNameFromPath(path)
		}
		if err := bioinfodb.LoadFileIntoTable(ctx, db, name, path, a.options()...); err != nil {
			return err
		}
		rows, err := bioinfodb.CountRows(ctx, db, name)
		if err != nil {
			return err
		}
		loaded = append(loaded, table.Row{name, path, rows})
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	if bar != nil {
		_ = bar.Finish()
	}

	tw := newTableWriter()
	tw.AppendHeader(table.Row{"Table", "File", "Rows"})
	tw.AppendRows(loaded)
	_, _ = fmt.Fprintln(a.stdout, tw.Render())
	return nil
}

func (a *app) runTables(ctx context.Context, db *sql.DB) error {
	names, err := bioinfodb.ListTables(ctx, db)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		dimmedColor().Fprintln(a.stdout, "no tables")
		return nil
	}

	tw := newTableWriter()
	tw.AppendHeader(table.Row{"Table", "Rows", "Columns"})
	for _, name := range names {
		rows, err := bioinfodb.CountRows(ctx, db, name)
		if err != nil {
			return err
		}
		columns, err := bioinfodb.TableColumns(ctx, db, name)
		if err != nil {
			return err
		}
		tw.AppendRow(table.Row{name, rows, len(columns)})
	}
	_, _ = fmt.Fprintln(a.stdout, tw.Render())
	return nil
}

func (a *app) runQuery(ctx context.Context, db *sql.DB, cmd *QueryCmd) error {
	rows, err := db.QueryContext(ctx, cmd.SQL)
	if err != nil {
		return fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return err
	}

	tw := newTableWriter()
	header := make(table.Row, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	tw.AppendHeader(header)

	values := make([]any, len(columns))
	ptrs := make([]any, len(columns))
	for i := range values {
		ptrs[i] = &values[i]
	}
	count := 0
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return err
		}
		row := make(table.Row, len(values))
		for i, v := range values {
			if v == nil {
				row[i] = dimmedColor().Sprint("NULL")
				continue
			}
			row[i] = model.FormatValue(v)
		}
		tw.AppendRow(row)
		count++
	}
	if err := rows.Err(); err != nil {
		return err
	}

	tw.AppendFooter(table.Row{fmt.Sprintf("%d rows", count)})
	_, _ = fmt.Fprintln(a.stdout, tw.Render())
	return nil
}

func (a *app) runDump(ctx context.Context, db *sql.DB, cmd *DumpCmd) error {
	options, err := cmd.dumpOptions()
	if err != nil {
		return err
	}

	if len(cmd.Tables) == 0 {
		if err := bioinfodb.DumpDatabase(ctx, db, cmd.Out, options); err != nil {
			return err
		}
		successColor().Fprintf(a.stdout, "dumped all tables to %s\n", cmd.Out)
		return nil
	}

	if err := mkdirAll(cmd.Out); err != nil {
		return err
	}
	for _, name := range cmd.Tables {
		path := filepath.Join(cmd.Out, bioinfodb.DumpFileName(name, options))
		if err := bioinfodb.DumpTable(ctx, db, name, path, options); err != nil {
			return err
		}
		successColor().Fprintf(a.stdout, "dumped %s to %s\n", name, path)
	}
	return nil
}
