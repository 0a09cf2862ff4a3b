package main

import (
	"github.com/spf13/cobra"
)

func newPushCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "push",
		Short: "Push the current branch of every dev-linked dependency",
		Args:  cobra.NoArgs,
		RunE:  runPush,
	}
}

func runPush(cmd *cobra.Command, _ []string) error {
	env, err := loadEnv(cmd, true)
	if err != nil {
		return err
	}
	defer env.close()

	b, err := env.runner.Push(env.ctx.Manifest)
	if err != nil {
		return err
	}
	env.runner.Log.Out(summary("Pushed", b))
	return nil
}
