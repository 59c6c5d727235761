package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "bootcamps",
	Short: "Bootcamp directory API",
	Long:  `A REST API for publishing and browsing coding bootcamps, their courses and reviews, with cookie based sessions and role based access control.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
