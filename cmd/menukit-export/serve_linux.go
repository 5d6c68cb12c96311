//go:build linux

package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/godbus/dbus/v5"

	"menukit/internal/config"
	"menukit/internal/dbusmenu"
	"menukit/internal/definition"
	"menukit/internal/logging"
	"menukit/internal/menu"
	"menukit/internal/state"
)

// actionPerformer is the target bound to every definition item. Menu
// actions terminate here; a richer host would dispatch them onward.
type actionPerformer struct {
	log *slog.Logger
}

func (p *actionPerformer) PerformAction(action string, sender *menu.Item) {
	p.log.Info("action performed", "action", action, "item", sender.Title())
}

func cmdServe() {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", config.ConfigPath(), "configuration file")
	fs.Parse(os.Args[2:])

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(&logging.Config{
		Level:     logging.ParseLevel(cfg.Logging.Level),
		Format:    logging.ParseFormat(cfg.Logging.Format),
		Output:    cfg.Logging.Output,
		FilePath:  cfg.Logging.FilePath,
		Component: "menukit-export",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Logging setup failed: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()
	logging.SetDefault(logger)

	performer := &actionPerformer{log: logger.Component("actions")}

	def, err := definition.Parse(cfg.Menu.DefinitionPath)
	if err != nil {
		logger.Error("definition rejected", "path", cfg.Menu.DefinitionPath, "error", err)
		os.Exit(1)
	}
	m, err := definition.Build(def, performer)
	if err != nil {
		logger.Error("menu build failed", "error", err)
		os.Exit(1)
	}

	var store *state.Store
	if cfg.State.Persist {
		store, err = state.Open(cfg.State.Path)
		if err != nil {
			logger.Error("state store unavailable", "path", cfg.State.Path, "error", err)
			os.Exit(1)
		}
		defer store.Close()
		if err := store.Restore(m); err != nil {
			logger.Warn("state restore failed", "error", err)
		}
	}

	exporter, err := dbusmenu.New(m, cfg.Export.BusName, dbus.ObjectPath(cfg.Export.ObjectPath), logger.Component("dbusmenu"))
	if err != nil {
		logger.Error("export failed", "error", err)
		os.Exit(1)
	}
	defer exporter.Close()

	// current tracks the menu to checkpoint at shutdown; reloads swap it.
	var mu sync.Mutex
	current := m

	var reloader *definition.Reloader
	if cfg.Menu.AutoReload {
		reloader, err = definition.NewReloader(cfg.Menu.DefinitionPath, performer)
		if err != nil {
			logger.Error("reloader setup failed", "error", err)
			os.Exit(1)
		}
		if err := reloader.Start(); err != nil {
			logger.Error("reloader start failed", "error", err)
			os.Exit(1)
		}
		go func() {
			for rebuilt := range reloader.Menus() {
				if store != nil {
					if err := store.Restore(rebuilt); err != nil {
						logger.Warn("state restore after reload failed", "error", err)
					}
				}
				exporter.SetMenu(rebuilt)
				mu.Lock()
				current = rebuilt
				mu.Unlock()
				logger.Info("menu reloaded", "path", cfg.Menu.DefinitionPath)
			}
		}()
		go func() {
			for err := range reloader.Errors() {
				logger.Warn("reload failed, keeping previous menu", "error", err)
			}
		}()
	}

	logger.Info("serving menu",
		"definition", cfg.Menu.DefinitionPath,
		"bus_name", cfg.Export.BusName,
		"object_path", cfg.Export.ObjectPath)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	logger.Info("shutting down")
	if reloader != nil {
		reloader.Stop()
	}
	if store != nil {
		mu.Lock()
		last := current
		mu.Unlock()
		if err := store.Save(last); err != nil {
			logger.Warn("state save failed", "error", err)
		}
	}
}
