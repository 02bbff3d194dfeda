package cmd

import (
	"errors"
	"fmt"

	"github.com/blang/semver"
	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"
)

const repositorySlug = "s0up4200/pusharr"

var (
	version   = "dev"
	buildTime = "unknown"
)

// SetVersion records the build information injected by main
func SetVersion(v, bt string) {
	version = v
	buildTime = bt
	rootCmd.Version = v
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		if _, err := parseVersion(version); err != nil {
			fmt.Fprintf(out, "pusharr %s (development build)\n", version)
			return
		}
		fmt.Fprintf(out, "pusharr %s\nbuilt %s\n", version, buildTime)
	},
}

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update pusharr to the latest GitHub release",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		current, err := parseVersion(version)
		if err != nil {
			return fmt.Errorf("cannot update a development build: %w", err)
		}

		ctx := cmd.Context()
		latest, found, err := selfupdate.DetectLatest(ctx, selfupdate.ParseSlug(repositorySlug))
		if err != nil {
			return fmt.Errorf("failed to check for updates: %w", err)
		}
		if !found {
			return errors.New("no release found for this platform")
		}

		if latest.LessOrEqual(current.String()) {
			fmt.Fprintf(cmd.OutOrStdout(), "✓ pusharr %s is up to date\n", current)
			return nil
		}

		exe, err := selfupdate.ExecutablePath()
		if err != nil {
			return fmt.Errorf("failed to locate executable: %w", err)
		}

		if err := selfupdate.UpdateTo(ctx, latest.AssetURL, latest.AssetName, exe); err != nil {
			return fmt.Errorf("failed to update: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✓ Updated pusharr %s → %s\n", current, latest.Version())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// parseVersion accepts tags with or without a leading v
func parseVersion(v string) (semver.Version, error) {
	return semver.ParseTolerant(v)
}
