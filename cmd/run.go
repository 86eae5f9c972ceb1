package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/abhisek/grandmaster/internal/app"
	"github.com/abhisek/grandmaster/internal/hint"
	"github.com/abhisek/grandmaster/internal/llm"
	"github.com/abhisek/grandmaster/internal/logging"
	"github.com/abhisek/grandmaster/internal/store"
	"github.com/abhisek/grandmaster/internal/workspace"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// env is the opened database and logger shared by commands.
type env struct {
	store  *store.Store
	logger *zap.Logger
}

// openEnv resolves the database path, opens the store and builds the file
// logger next to it.
func openEnv(cmd *cobra.Command) (*env, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	logger, err := logging.New(logging.ConfigFromEnv(dbPath))
	if err != nil {
		fmt.Fprintln(os.Stderr, "Logging disabled:", err)
		logger = zap.NewNop()
	}
	st, err := store.Open(dbPath)
	if err != nil {
		logger.Sync()
		return nil, fmt.Errorf("open database: %w", err)
	}
	logger.Debug("store opened", zap.String("path", dbPath))
	return &env{store: st, logger: logger}, nil
}

func (e *env) Close() {
	e.store.Close()
	e.logger.Sync()
}

// requester builds the hint requester from the environment. A missing
// configuration returns nil and the reason; hints are then disabled.
func (e *env) requester(ctx context.Context) (*hint.Requester, error) {
	provider, cfg, err := llm.NewProviderFromEnv(ctx, e.store.EventRepo(), e.logger)
	if err != nil {
		e.logger.Info("hints disabled", zap.Error(err))
		return nil, err
	}
	hcfg := hint.DefaultConfig()
	hcfg.Timeout = cfg.Timeout
	e.logger.Info("hints enabled", zap.String("provider", cfg.Provider), zap.String("model", provider.ModelID()))
	return hint.NewRequester(provider, hcfg, e.logger), nil
}

// workspace loads the library and progress from the store.
func (e *env) openWorkspace(ctx context.Context, requester *hint.Requester) *workspace.Workspace {
	return workspace.Open(ctx, e.store.Slots(), requester, e.logger)
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	requester, err := e.requester(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "The coach will be unavailable.")
	}

	return app.Run(app.Options{
		Context:   ctx,
		Workspace: e.openWorkspace(ctx, requester),
		Logger:    e.logger,
	})
}
