// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"funcview-cli/internal/cache"
	"funcview-cli/internal/config"
	"funcview-cli/internal/engine"
	"funcview-cli/internal/funcs"
	"funcview-cli/internal/issue"
)

// newDiscoveryService wires the engine client, resolver, and cache store
// from the loaded configuration. The returned cleanup releases the cache
// database and must be called when the command finishes.
func newDiscoveryService(cfg *config.Config) (*funcs.Service, func(), error) {
	client := &engine.Client{
		Binary:     cfg.Engine.Binary,
		Subcommand: cfg.Engine.QuerySubcommand,
		VarsFlag:   cfg.Engine.VarsFlag,
		Env: engine.ExecutionEnvironment{
			ShellPath:      cfg.Shell.Path,
			LoginShellFlag: cfg.Shell.LoginFlag,
			PathOverride:   cfg.Shell.PathOverride,
		},
		Runner: runnerFor(cfg.Engine.Runtime),
		Logger: logger,
	}
	resolver := funcs.NewResolver(client, logger)

	if !cfg.Cache.Enabled {
		return funcs.NewService(resolver, nil, false, logger), func() {}, nil
	}

	store, closeStore, err := openCacheStore(cfg)
	if err != nil {
		return nil, nil, err
	}
	svc := funcs.NewService(resolver, store, true, logger)
	// Refreshes must land before the database closes; the process is about
	// to exit and would otherwise kill them mid-write.
	cleanup := func() {
		svc.Close()
		closeStore()
	}
	return svc, cleanup, nil
}

// openCacheStore opens the persistent cache configured in cfg.
func openCacheStore(cfg *config.Config) (*cache.Store, func(), error) {
	backend, err := cache.OpenBadger(cfg.Cache.Dir)
	if err != nil {
		return nil, nil, issue.NewContext().
			WithOperation("open discovery cache").
			WithResource(cfg.Cache.Dir).
			WithSuggestion("Check the directory is writable").
			WithSuggestion("Another funcview process may hold the cache open").
			Wrap(err).
			BuildError()
	}
	cleanup := func() {
		if err := backend.Close(); err != nil {
			logger.Warn("failed to close cache database", "err", err)
		}
	}
	return cache.NewStore(backend, logger), cleanup, nil
}

// runnerFor maps the configured runtime mode to an engine runner.
func runnerFor(mode config.RuntimeMode) engine.Runner {
	if mode == config.RuntimeVirtual {
		return engine.NewVirtualRunner()
	}
	return engine.NewNativeRunner()
}
