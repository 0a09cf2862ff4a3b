package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/fbkclanna/devlink/internal/config"
	"github.com/fbkclanna/devlink/internal/devlink"
	"github.com/fbkclanna/devlink/internal/git"
	"github.com/fbkclanna/devlink/internal/pkgmgr"
	"github.com/fbkclanna/devlink/internal/workspace"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	errStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
)

// env is everything a command needs, built fresh per invocation.
type env struct {
	ctx    *workspace.Context
	git    *git.Client
	pkgs   *pkgmgr.Client
	runner *devlink.Runner
	logger *zap.Logger
}

// loadEnv resolves configuration and paths for the current command. The
// manifest is read only when withManifest is set.
func loadEnv(cmd *cobra.Command, withManifest bool) (*env, error) {
	root, _ := cmd.Flags().GetString("root")
	wsOverride, _ := cmd.Flags().GetString("workspace")

	cfg, err := config.Load(root)
	if err != nil {
		return nil, err
	}
	if wsOverride != "" {
		cfg.WorkspaceRoot = wsOverride
	}

	logger, err := newLogger(cmd)
	if err != nil {
		return nil, err
	}

	var ctx *workspace.Context
	if withManifest {
		ctx, err = workspace.Load(root, cfg)
	} else {
		ctx, err = workspace.Resolve(root, cfg)
	}
	if err != nil {
		return nil, err
	}
	logger.Debug("workspace",
		zap.String("project", ctx.Root),
		zap.String("workspace_root", ctx.WorkspaceRoot),
		zap.String("modules_dir", ctx.ModulesDir),
	)

	gc := git.New(cfg.Git, logger)
	pm := pkgmgr.New(cfg.PackageManager, logger)
	return &env{
		ctx:  ctx,
		git:  gc,
		pkgs: pm,
		runner: &devlink.Runner{
			Paths:    ctx,
			Git:      gc,
			Packages: pm,
			Linker:   devlink.SymlinkLinker,
			Log:      cliLogger(cmd),
			Heading:  func(s string) string { return headingStyle.Render(s) },
		},
		logger: logger,
	}, nil
}

func (e *env) close() {
	_ = e.logger.Sync()
}

// cliLogger routes progress to the command's stdout and errors to its stderr.
func cliLogger(cmd *cobra.Command) devlink.Logger {
	return devlink.NewLogger(cmd.OutOrStdout(), cmd.ErrOrStderr(), func(s string) string { return errStyle.Render(s) })
}

func newLogger(cmd *cobra.Command) (*zap.Logger, error) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	if !verbose {
		return zap.NewNop(), nil
	}
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	config.Encoding = "console"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// summary formats the closing line of a batch command.
func summary(verb string, b devlink.Batch) string {
	if b.Total() == 0 {
		return "No dev-linked dependencies found."
	}
	line := fmt.Sprintf("%s %d of %d repositories.", verb, len(b.Done), b.Total())
	if len(b.Failed) == 0 {
		return okStyle.Render(line)
	}
	return errStyle.Render(line)
}
