package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	infraconfig "github.com/felixgeelhaar/schemaissues/infrastructure/config"
)

// newExportSchemaCmd creates the export-schema command.
func (a *App) newExportSchemaCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export-schema",
		Short: "Print the JSON Schema for tool list files",
		Long: `Print the JSON Schema describing tool list files: the target repository,
the label, body rendering options and the tool entries.

Point an editor's YAML language server at the output to get completion while
editing tools.yaml.

Examples:
  schemaissues export-schema > tools.schema.json
  schemaissues export-schema -o tools.schema.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.exportSchema(output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the schema to this file instead of stdout")

	return cmd
}

func (a *App) exportSchema(path string) error {
	doc, err := infraconfig.SchemaJSON()
	if err != nil {
		return fmt.Errorf("generate tool list schema: %w", err)
	}

	if path == "" {
		_, err = fmt.Fprintln(a.stdout, doc)
		return err
	}
	if err := os.WriteFile(path, []byte(doc+"\n"), 0o600); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Fprintf(a.stderr, "Wrote tool list schema to %s\n", path)
	return nil
}
