package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/capripot/rswag/internal/models"
	"github.com/capripot/rswag/internal/parser"
)

var (
	filter string
	tags   []string
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list [openapi-spec-file]",
	Short: "List the operations of a document",
	Long:  `List every operation declared by a Swagger 2.0 or OpenAPI 3 document, in document order.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := parser.ParseFile(args[0])
		if err != nil {
			return err
		}

		serverURLs, err := p.GetServerURLs()
		if err != nil {
			return err
		}
		baseURL := "http://localhost"
		if len(serverURLs) > 0 {
			baseURL = serverURLs[0]
		}

		operations, err := p.GetOperations(baseURL)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, op := range filterOperations(operations, filter, tags) {
			fmt.Fprintf(out, "%-7s %s", op.Method, op.Path)
			if op.OperationID != "" {
				fmt.Fprintf(out, " (%s)", op.OperationID)
			}
			if len(op.Tags) > 0 {
				fmt.Fprintf(out, " [%s]", strings.Join(op.Tags, ", "))
			}
			fmt.Fprintln(out)
		}
		return nil
	},
}

func filterOperations(operations []models.Operation, filterStr string, tagFilters []string) []models.Operation {
	var filtered []models.Operation

	for _, op := range operations {
		// Filter by path pattern or operation ID
		if filterStr != "" {
			if !strings.Contains(op.Path, filterStr) && !strings.Contains(op.OperationID, filterStr) {
				continue
			}
		}

		// Filter by tags
		if len(tagFilters) > 0 && !slices.ContainsFunc(tagFilters, func(t string) bool {
			return slices.Contains(op.Tags, t)
		}) {
			continue
		}

		filtered = append(filtered, op)
	}

	return filtered
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVar(&filter, "filter", "", "Filter operations by path pattern or operation ID")
	listCmd.Flags().StringSliceVar(&tags, "tags", []string{}, "Filter by OpenAPI tags (can be specified multiple times)")
}
