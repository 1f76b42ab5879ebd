// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/apacker1/wix/internal/ir"
	"github.com/apacker1/wix/internal/issue"
)

func newSchemaCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "schema [table]",
		Short: "List intermediate tables and their columns",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_, _ = fmt.Fprintln(app.stdout, tablesTable(app.Registry))
				return nil
			}
			def, ok := app.Registry.Lookup(ir.TableName(args[0]))
			if !ok {
				return issue.NewErrorContext().
					WithOperation("describe table").
					WithResource(args[0]).
					WithSuggestion("Run 'wixc schema' to list the tables").
					Wrap(ir.ErrUnknownTable).
					BuildError()
			}
			_, _ = fmt.Fprintln(app.stdout, TitleStyle.Render(def.Name.String()))
			_, _ = fmt.Fprintln(app.stdout, columnsTable(def))
			return nil
		},
	}
}

func styledTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			return tableCellStyle
		})
}

func tablesTable(reg *ir.Registry) string {
	t := styledTable("TABLE", "COLUMNS", "PRIMARY KEY")
	for _, name := range reg.Tables() {
		def, _ := reg.Lookup(name)
		var keys []string
		for _, col := range def.Columns {
			if col.PrimaryKey {
				keys = append(keys, col.Name)
			}
		}
		t.Row(name.String(), strconv.Itoa(len(def.Columns)), strings.Join(keys, ", "))
	}
	return t.Render()
}

func columnsTable(def ir.TableDefinition) string {
	t := styledTable("#", "COLUMN", "TYPE", "NULLABLE", "KEY")
	for i, col := range def.Columns {
		t.Row(strconv.Itoa(i), col.Name, col.Type.String(), yesNo(col.Nullable), yesNo(col.PrimaryKey))
	}
	return t.Render()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return ""
}
