package commands

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"github.com/ncobase/geocontent/config"
	"github.com/ncobase/geocontent/query"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "geocontent",
		Short:         "Geospatial content API and query tooling",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		NewServeCommand(),
		NewParseCommand(),
		NewCursorCommand(),
		NewVersionCommand(),
	)

	return rootCmd
}

// queryConfig reads the query section of configFile, or the defaults when
// no file is named.
func queryConfig(configFile string) (*query.Config, error) {
	if configFile == "" {
		return query.DefaultConfig(), nil
	}
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return nil, err
	}
	return cfg.Query, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
