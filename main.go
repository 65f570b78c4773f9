package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"tasnim.dev/aws-perms/cmd"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "aws-perms",
		Short:         "AWS credential auditing tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(cmd.NewDumpPermissionsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
