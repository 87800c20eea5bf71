package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/reqx/packages/core/parser"
)

var listCmd = &cobra.Command{
	Use:   "list <file|directory>",
	Short: "List the requests in reqx files",
	Long: `List the requests defined in .reqx files without executing them.

Examples:
  reqx list api.reqx
  reqx list ./requests/`,
	Args: cobra.MinimumNArgs(1),
	RunE: listCommand,
}

func listCommand(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		return fmt.Errorf("no .reqx files found")
	}

	for _, file := range files {
		f, err := parser.ParseFile(file)
		if err != nil {
			fmt.Fprintf(cmd.OutOrStderr(), "Error parsing %s: %v\n", file, err)
			continue
		}

		fmt.Fprintf(cmd.OutOrStdout(), "\n%s:\n", file)
		for i, req := range f.Requests {
			fmt.Fprintf(cmd.OutOrStdout(), "  %d. %s %s\n", i+1, req.Method, req.URL)
			if req.Comment != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "     %s\n", req.Comment)
			}
		}
	}

	return nil
}
