package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"provision/internal/components"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display build information",
		RunE: func(cmd *cobra.Command, args []string) error {
			card := components.StatusCard(components.CardData{
				Title:       "provision",
				Description: "Network-boot fleet provisioner for single-board computers",
				Icon:        "🛰️",
				Metadata: map[string]string{
					"Version": version,
					"Commit":  commit,
					"Built":   date,
				},
			}, "info")

			fmt.Fprintln(cmd.OutOrStdout(), card.View())
			return nil
		},
	}
}
