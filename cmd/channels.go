package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/pusharr/filter"
	"github.com/s0up4200/pusharr/pusher"
)

var (
	channelsPrefix string
	channelsInfo   []string
	channelsFilter string
	channelInfo    []string
)

// channelsCmd represents the channels command
var channelsCmd = &cobra.Command{
	Use:   "channels",
	Short: "List occupied channels",
	Long: `List the occupied channels of the application.

--filter takes an expression evaluated against every channel, for example:
  pusharr channels --info user_count --prefix presence- --filter 'UserCount > 10'

Available fields: Name, UserCount, SubscriptionCount, IsPresence, IsPrivate.
Available helpers (case-insensitive): includes, hasPrefix, hasSuffix.
Also available: lower, upper.`,
	Args:    cobra.NoArgs,
	PreRunE: initializeApp,
	RunE: func(cmd *cobra.Command, args []string) error {
		params := pusher.ChannelsParams{FilterByPrefix: channelsPrefix, Info: channelsInfo}
		return runChannels(cmd.Context(), client, cmd.OutOrStdout(), params, channelsFilter)
	},
}

// channelCmd represents the channel command
var channelCmd = &cobra.Command{
	Use:     "channel NAME",
	Short:   "Show the state of a single channel",
	Args:    cobra.ExactArgs(1),
	PreRunE: initializeApp,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChannel(cmd.Context(), client, cmd.OutOrStdout(), args[0], channelInfo)
	},
}

func init() {
	rootCmd.AddCommand(channelsCmd)
	rootCmd.AddCommand(channelCmd)

	channelsCmd.Flags().StringVarP(&channelsPrefix, "prefix", "p", "", "only channels starting with this prefix")
	channelsCmd.Flags().StringSliceVarP(&channelsInfo, "info", "i", nil, "attributes to fetch (user_count needs a presence- prefix)")
	channelsCmd.Flags().StringVarP(&channelsFilter, "filter", "f", "", "filter expression")

	channelCmd.Flags().StringSliceVarP(&channelInfo, "info", "i", nil, "attributes to fetch (user_count, subscription_count)")
}

func runChannels(ctx context.Context, api pusher.API, out io.Writer, params pusher.ChannelsParams, expression string) error {
	var f *filter.ChannelFilter
	if expression != "" {
		var err error
		f, err = filter.Compile(expression)
		if err != nil {
			return fmt.Errorf("invalid filter expression: %w", err)
		}
	}

	resp, err := api.GetChannels(ctx, params)
	if err != nil {
		return err
	}

	entries := filter.Entries(resp.Channels)
	if f != nil {
		entries = f.Apply(resp.Channels)
		logger.Debug().
			Str("filter", f.Expression()).
			Int("total", len(resp.Channels)).
			Int("matched", len(entries)).
			Msg("Filtered channels")
	}

	if len(entries) == 0 {
		fmt.Fprintln(out, "No channels found.")
		return nil
	}

	fmt.Fprintf(out, "Found %d %s:\n\n", len(entries), plural(len(entries), "channel"))
	fmt.Fprintln(out, strings.Repeat("━", 70))
	fmt.Fprintf(out, "%-44s %10s %14s\n", "CHANNEL", "USERS", "SUBSCRIPTIONS")
	fmt.Fprintln(out, strings.Repeat("━", 70))

	for _, e := range entries {
		fmt.Fprintf(out, "%-44s %10s %14s\n", e.Name, countOrDash(e.UserCount), countOrDash(e.SubscriptionCount))
	}

	return nil
}

func runChannel(ctx context.Context, api pusher.API, out io.Writer, name string, info []string) error {
	state, err := api.GetChannel(ctx, name, info...)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Channel: %s\n", name)
	fmt.Fprintf(out, "- Occupied: %t\n", state.Occupied)
	if state.UserCount > 0 {
		fmt.Fprintf(out, "- Users: %d\n", state.UserCount)
	}
	if state.SubscriptionCount > 0 {
		fmt.Fprintf(out, "- Subscriptions: %d\n", state.SubscriptionCount)
	}

	return nil
}

func countOrDash(n int) string {
	if n == 0 {
		return "-"
	}
	return fmt.Sprint(n)
}
