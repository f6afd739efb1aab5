package commands

import (
	"github.com/spf13/cobra"

	"github.com/ncobase/geocontent/content"
	"github.com/ncobase/geocontent/query"
)

// NewParseCommand creates the parse command
func NewParseCommand() *cobra.Command {
	var (
		configFile string
		tenant     string
		exclude    []string
	)

	cmd := &cobra.Command{
		Use:     "parse <query>",
		Args:    cobra.ExactArgs(1),
		Aliases: []string{"p"},
		Short:   "Compile a list query string and print the options",
		Example: `  geocontent parse 'filter=status==draft;published&sort=-updated_at&populate=locations'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := queryConfig(configFile)
			if err != nil {
				return err
			}

			opts := []query.ParseOption{query.WithPredefined(content.TenantFilters(tenant)...)}
			if len(exclude) > 0 {
				directives := make([]query.Directive, len(exclude))
				for i, d := range exclude {
					directives[i] = query.Directive(d)
				}
				opts = append(opts, query.WithExclude(directives...))
			}

			o, err := query.NewParser(cfg).ParseQuery(args[0], opts...)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), o)
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "", "config file path")
	cmd.Flags().StringVarP(&tenant, "tenant", "t", "", "scope the query to a tenant")
	cmd.Flags().StringSliceVarP(&exclude, "exclude", "x", nil, "directives to skip")
	return cmd
}
