package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nmwangi/todoq/internal/config"
	"github.com/nmwangi/todoq/internal/storage"
	"github.com/nmwangi/todoq/internal/tasks"
	"github.com/nmwangi/todoq/internal/update"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "todoq failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	var m update.Model
	switch cfg.Backend {
	case config.BackendRemote:
		m = update.NewRemoteModel(cfg.Remote.Endpoint)
	default:
		if err := os.MkdirAll(filepath.Dir(cfg.Local.Database), 0o755); err != nil {
			return err
		}
		store, err := storage.OpenSQLite(cfg.Local.Database)
		if err != nil {
			return err
		}
		defer store.Close()
		m = update.NewModel(tasks.NewLocalBackend(store, time.Now))
	}

	program := tea.NewProgram(m)
	_, err = program.Run()
	return err
}
