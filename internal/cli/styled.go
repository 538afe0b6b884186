package cli

import (
	"os"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// newTableWriter returns a table.Writer with the bioinfodb styles.
func newTableWriter() table.Writer {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.Style().Format.Header = text.FormatDefault
	tw.Style().Format.Footer = text.FormatDefault
	tw.Style().Color.Header = text.Colors{text.FgCyan, text.Bold}
	tw.Style().Color.Footer = text.Colors{text.FgCyan, text.Bold}
	return tw
}

// dimmedColor prints secondary information such as NULL markers.
func dimmedColor() *color.Color {
	return color.RGB(128, 128, 128)
}

func successColor() *color.Color {
	return color.New(color.FgGreen)
}

func mkdirAll(dir string) error {
	return os.MkdirAll(dir, 0o750)
}
