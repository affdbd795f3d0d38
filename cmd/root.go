package cmd

import "github.com/spf13/cobra"

var configPath string

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "crossword-clock",
		Short: "Format elapsed puzzle time as a clock",
		Long: `Render elapsed milliseconds as H:MM:SS or M:SS clock strings,
either for a batch of values or as a live puzzle timer.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to TOML config file (default ~/.config/crossword-clock/config.toml)")

	AddCommands(rootCmd)
	return rootCmd
}

func AddCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(newFormatCmd())
	rootCmd.AddCommand(newTimerCmd())
}
