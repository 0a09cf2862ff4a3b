package main

import (
	"github.com/spf13/cobra"
)

func newRelinkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "relink",
		Short: "Link every dev-linked dependency into the modules directory",
		Args:  cobra.NoArgs,
		RunE:  runRelink,
	}
}

func runRelink(cmd *cobra.Command, _ []string) error {
	env, err := loadEnv(cmd, true)
	if err != nil {
		return err
	}
	defer env.close()

	b, err := env.runner.Relink(env.ctx.Manifest)
	if err != nil {
		return err
	}
	env.runner.Log.Out(summary("Linked", b))
	return nil
}
