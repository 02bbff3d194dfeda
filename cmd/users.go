package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/s0up4200/pusharr/pusher"
)

// usersCmd represents the users command
var usersCmd = &cobra.Command{
	Use:     "users CHANNEL",
	Short:   "List the users subscribed to a presence channel",
	Args:    cobra.ExactArgs(1),
	PreRunE: initializeApp,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUsers(cmd.Context(), client, cmd.OutOrStdout(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(usersCmd)
}

func runUsers(ctx context.Context, api pusher.API, out io.Writer, channel string) error {
	resp, err := api.GetUsers(ctx, channel)
	if err != nil {
		return err
	}

	if len(resp.Users) == 0 {
		fmt.Fprintf(out, "No users in %s.\n", channel)
		return nil
	}

	fmt.Fprintf(out, "%d %s in %s:\n", len(resp.Users), plural(len(resp.Users), "user"), channel)
	for _, id := range resp.IDs() {
		fmt.Fprintf(out, "  • %s\n", id)
	}

	return nil
}
