package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/weisyn/evmabi/internal/app/version"
)

// versionCmd 版本信息
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "显示版本信息",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if formatter != nil && formatter.format == FormatJSON {
			return formatter.Print(version.GetBuildInfo())
		}
		_, err := fmt.Fprintln(cmd.OutOrStdout(), version.GetFullVersion())
		return err
	},
}
