package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ncobase/geocontent/cursor"
	"github.com/ncobase/geocontent/query"
)

// NewCursorCommand creates the cursor command
func NewCursorCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cursor",
		Args:  cobra.NoArgs,
		Short: "Inspect and build pagination cursors",
	}

	cmd.AddCommand(
		newCursorDecodeCommand(),
		newCursorEncodeCommand(),
	)

	return cmd
}

func newCursorDecodeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <token>",
		Args:  cobra.ExactArgs(1),
		Short: "Print the contents of a cursor token",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := cursor.Decode(args[0])
			if err != nil {
				return err
			}
			if c == nil {
				return fmt.Errorf("empty token")
			}
			return printJSON(cmd.OutOrStdout(), c)
		},
	}
}

func newCursorEncodeCommand() *cobra.Command {
	var (
		id      string
		sort    string
		record  string
		reverse bool
	)

	cmd := &cobra.Command{
		Use:     "encode",
		Args:    cobra.NoArgs,
		Short:   "Build a cursor token from a boundary record",
		Example: `  geocontent cursor encode --id 42 --sort name,-rank --record '{"name":"depot","rank":3}'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var rec map[string]any
			if err := json.Unmarshal([]byte(record), &rec); err != nil {
				return fmt.Errorf("invalid --record: %w", err)
			}
			token, err := cursor.Encode(id, query.ParseSort(sort).Keys(), rec, reverse)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "record id")
	cmd.Flags().StringVar(&sort, "sort", "", "sort keys, e.g. name,-rank")
	cmd.Flags().StringVar(&record, "record", "{}", "boundary record as JSON")
	cmd.Flags().BoolVar(&reverse, "reverse", false, "build a previous-page cursor")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}
