package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "devlink",
		Short:         "Develop a package together with checkouts of its dependencies",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().String("root", ".", "Project root (directory containing package.json)")
	cmd.PersistentFlags().String("workspace", "", "Workspace root holding dependency checkouts (default from config: ..)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Trace git and package manager commands")

	cmd.AddCommand(
		newInstallCmd(),
		newRelinkCmd(),
		newStatusCmd(),
		newPushCmd(),
		newListCmd(),
		newDoctorCmd(),
	)

	return cmd
}
