package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"tracewise/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "tracewise",
	Short: "Runtime error explanation engine",
	Long:  `Tracewise turns captured runtime errors into localized, human-oriented reports`,
}

// main initializes the CLI by setting the command version, registering
// subcommands and persistent flags, and then executes the root command.
// If command execution returns an error, the process exits with status
// code 1.
func main() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Version

	// Добавляем команды
	rootCmd.AddCommand(explainCmd)
	rootCmd.AddCommand(localesCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().String("lang", "", "locale for rendered reports (default from config)")
	rootCmd.PersistentFlags().String("config", "tracewise.toml", "path to an optional config file")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		value, _ := cmd.Flags().GetString("color")
		mode, err := readColorMode(value)
		if err != nil {
			return err
		}
		color.NoColor = !shouldColor(mode)
		return nil
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
