package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "rswag",
	Short: "Build and run API requests from OpenAPI operations",
	Long: `rswag builds concrete HTTP requests from the operations of a Swagger 2.0 or
OpenAPI 3 document and the example values supplied for them.

Parameters are resolved from the document, serialized according to their
declared style, and every required value must be supplied by the example.`,
	SilenceUsage: true,
}

func Execute() {
	cobra.OnInitialize(initConfig)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initConfig reads config.toml from the working directory when present.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("toml")
		viper.AddConfigPath(".")
	}
	viper.SetEnvPrefix("RSWAG")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
			os.Exit(1)
		}
	}
}

// newLogger returns a logfmt logger writing to w that drops entries below lvl.
func newLogger(w io.Writer, lvl string) log.Logger {
	var opt level.Option
	switch strings.ToLower(lvl) {
	case "debug":
		opt = level.AllowDebug()
	case "info":
		opt = level.AllowInfo()
	case "error":
		opt = level.AllowError()
	default:
		opt = level.AllowWarn()
	}
	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	logger = level.NewFilter(logger, opt)
	return log.With(logger, "ts", log.DefaultTimestampUTC)
}

func init() {
	viper.SetDefault("log.level", "warn")
	viper.SetDefault("server_key", "default")
	viper.SetDefault("timeout", 30)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.toml)")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("server-key", "default", "server variable entry substituted into server URLs")
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("server_key", rootCmd.PersistentFlags().Lookup("server-key"))
}
