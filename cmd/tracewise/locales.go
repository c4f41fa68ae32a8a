package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"tracewise/internal/catalog"
)

var localeNameStyle = lipgloss.NewStyle().Bold(true)

var localesCmd = &cobra.Command{
	Use:   "locales",
	Short: "List bundled report locales",
	Long:  `Locales lists every bundled locale and how complete its template set is relative to the default`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := catalog.Load()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, name := range cat.Locales() {
			have, total := cat.Completeness(name)
			suffix := ""
			if name == catalog.DefaultLocale {
				suffix = "  (default)"
			}
			fmt.Fprintf(out, "%s  %d/%d templates%s\n",
				styled(localeNameStyle, name), have, total, suffix)
		}
		return nil
	},
}
