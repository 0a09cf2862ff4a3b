package main

import (
	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "status",
		Aliases: []string{"st"},
		Short:   "Show git status of every dev-linked dependency",
		Args:    cobra.NoArgs,
		RunE:    runStatus,
	}
}

func runStatus(cmd *cobra.Command, _ []string) error {
	env, err := loadEnv(cmd, true)
	if err != nil {
		return err
	}
	defer env.close()

	_, err = env.runner.Status(env.ctx.Manifest)
	return err
}
