// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "mediasourcectl",
	Short: "Inspect and serve xstudio Media Source subsystem state",
}

func main() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to a RuntimeConfig YAML file")
	rootCmd.AddCommand(inspectCmd, serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
