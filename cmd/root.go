package cmd

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/zhubert/hashdeck/internal/app"
	"github.com/zhubert/hashdeck/internal/config"
	"github.com/zhubert/hashdeck/internal/logger"
)

var (
	debugMode             bool
	quietMode             bool
	clearState            bool
	version, commit, date string
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "hashdeck",
	Short: "TUI for browsing hashtag channels over a shared message stream",
	Long: `Hashdeck is a TUI for reading a shared message stream as named channels.
Each channel is a set of hashtags; messages fan out to every channel whose
hashtags they carry, with per-channel unread tracking and a thread overlay.`,
	RunE:          runTUI,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initLogging)
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", true, "Enable debug logging (on by default)")
	rootCmd.PersistentFlags().BoolVarP(&quietMode, "quiet", "q", false, "Reduce logging to info level only")
	rootCmd.Flags().BoolVar(&clearState, "clear", false, "Remove cached channel state and log files, then exit")
}

func initLogging() {
	if quietMode {
		logger.SetDebug(false)
	} else if debugMode {
		logger.SetDebug(true)
	}
}

// Execute runs the root command
func Execute() error {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("hashdeck %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("hashdeck %s\n", version)
}

func runTUI(cmd *cobra.Command, args []string) error {
	if clearState {
		return clearAll(cmd)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	lists, err := config.LoadChannelLists()
	if err != nil {
		return fmt.Errorf("error loading channels: %w", err)
	}
	relays, err := config.LoadRelays()
	if err != nil {
		return fmt.Errorf("error loading relays: %w", err)
	}
	startup, err := config.LoadStartup()
	if err != nil {
		return fmt.Errorf("error loading startup config: %w", err)
	}

	defer logger.Close()

	m := app.New(cfg, startup, lists, relays, version)
	p := tea.NewProgram(m)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}

// clearAll wipes the cached channel lists and the debug log, leaving the
// preference and relay documents alone.
func clearAll(cmd *cobra.Command) error {
	if err := config.SaveChannelLists(nil); err != nil {
		return fmt.Errorf("error clearing channels: %w", err)
	}
	cleared, err := logger.ClearLogs()
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: error clearing logs: %v\n", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Channel state cleared.")
	if cleared > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %d log file(s).\n", cleared)
	}
	return nil
}
