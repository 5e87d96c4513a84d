package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/capripot/rswag/internal/examples"
	"github.com/capripot/rswag/internal/output"
	"github.com/capripot/rswag/internal/parser"
	"github.com/capripot/rswag/internal/request"
)

var (
	buildPath       string
	buildMethod     string
	buildValuesFile string
	buildSet        []string
)

// buildCmd represents the build command
var buildCmd = &cobra.Command{
	Use:   "build [openapi-spec-file]",
	Short: "Build the request for one operation",
	Long: `Build the request for one operation from example values and print it as JSON.

Examples:
  rswag build petstore.yaml --path /pets/{petId} --method get --set petId=42
  rswag build petstore.yaml --path /pets --method post --values pet.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := parser.ParseFile(args[0])
		if err != nil {
			return err
		}

		meta, err := p.GetOperationMetadata(buildPath, buildMethod)
		if err != nil {
			return err
		}

		values := examples.Values{}
		if buildValuesFile != "" {
			if values, err = examples.Load(buildValuesFile); err != nil {
				return err
			}
		}
		overrides, err := examples.ParseAssignments(buildSet)
		if err != nil {
			return err
		}

		builder := request.NewBuilder(p.Document(),
			request.WithLogger(newLogger(os.Stderr, viper.GetString("log.level"))),
			request.WithServer(viper.GetString("server_key")),
		)
		req, err := builder.Build(meta, values.With(overrides))
		if err != nil {
			return err
		}

		return output.WriteRequest(cmd.OutOrStdout(), req)
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringVar(&buildPath, "path", "", "Path template of the operation, e.g. /pets/{petId}")
	buildCmd.Flags().StringVar(&buildMethod, "method", "get", "HTTP method of the operation")
	buildCmd.Flags().StringVar(&buildValuesFile, "values", "", "YAML or JSON file holding example values")
	buildCmd.Flags().StringArrayVar(&buildSet, "set", nil, "Example value as name=value (can be specified multiple times)")
	_ = buildCmd.MarkFlagRequired("path")
}
