package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/s0up4200/pusharr/pusher"
)

var (
	triggerChannels []string
	triggerData     string
	triggerSocketID string
	triggerFanOut   bool
)

// triggerCmd represents the trigger command
var triggerCmd = &cobra.Command{
	Use:   "trigger EVENT",
	Short: "Trigger an event on one or more channels",
	Long: `Trigger an event on up to 100 channels.

--data is sent as JSON when it parses as JSON and as a plain string otherwise.
With --fan-out, channel lists longer than 100 are split into several requests.`,
	Args:    cobra.ExactArgs(1),
	PreRunE: initializeApp,
	RunE: func(cmd *cobra.Command, args []string) error {
		ev := pusher.Event{
			Name:     args[0],
			Channels: triggerChannels,
			Data:     parseEventData(triggerData),
			SocketID: triggerSocketID,
		}
		return runTrigger(cmd.Context(), client, cmd.OutOrStdout(), ev, triggerFanOut)
	},
}

func init() {
	rootCmd.AddCommand(triggerCmd)

	triggerCmd.Flags().StringSliceVarP(&triggerChannels, "channel", "c", nil, "channel to publish on (repeatable)")
	triggerCmd.Flags().StringVarP(&triggerData, "data", "d", "", "event payload")
	triggerCmd.Flags().StringVar(&triggerSocketID, "socket-id", "", "socket id to exclude from delivery")
	triggerCmd.Flags().BoolVar(&triggerFanOut, "fan-out", false, "split more than 100 channels into several requests")
	_ = triggerCmd.MarkFlagRequired("channel")
}

func runTrigger(ctx context.Context, api pusher.API, out io.Writer, ev pusher.Event, fanOut bool) error {
	if !fanOut {
		if _, err := api.Trigger(ctx, ev); err != nil {
			return err
		}
		fmt.Fprintf(out, "✓ Triggered %q on %d %s\n", ev.Name, len(ev.Channels), plural(len(ev.Channels), "channel"))
		return nil
	}

	result, err := api.TriggerMany(ctx, ev)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Triggered %q on %d of %d %s\n",
		ev.Name, len(result.Delivered), result.Requested, plural(result.Requested, "channel"))
	for _, failed := range result.Failed {
		logger.Error().Err(failed.Err).Int("channels", len(failed.Channels)).Msg("Chunk failed")
	}

	return result.Err()
}

// parseEventData keeps valid JSON as structured data and anything else as a string
func parseEventData(raw string) any {
	if raw == "" {
		return nil
	}
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return raw
	}
	return v
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
