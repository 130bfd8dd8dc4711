// Package main is the cricketmgr CLI entrypoint.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cricketmgr.dev/core/cmd"
	"cricketmgr.dev/core/internal/echo"
)

// RootCmd is the root command for the cricketmgr CLI
var RootCmd = &cobra.Command{
	Use:   "cricketmgr",
	Short: "Cricket Franchise Manager toolkit",
	Long: echo.HeaderStyle().Render("Cricket Franchise Manager") + "\n\n" +
		"A single-user T20 franchise manager: sealed-ascending player auctions,\n" +
		"ball-by-ball match simulation, and full-season fixtures and standings.",
}

func init() {
	RootCmd.PersistentFlags().String("config", "", "Path to config file")
	RootCmd.AddCommand(cmd.CareerCmd())
	RootCmd.AddCommand(cmd.DbCmd())
	RootCmd.AddCommand(cmd.ServerCmd())
	RootCmd.AddCommand(cmd.CacheCmd())
	RootCmd.AddCommand(cmd.DeployCmd())
}

func main() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
