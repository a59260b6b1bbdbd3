package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/moneyflow/internal/config"
	"github.com/jask/moneyflow/internal/ledger"
	"github.com/jask/moneyflow/internal/service"
	"github.com/jask/moneyflow/internal/store"
	"github.com/jask/moneyflow/internal/tui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatalf("mkdir db dir: %v", err)
	}

	if err := store.RunMigrations(cfg.Database.Path, cfg.Database.MigrationsPath); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	kv, err := store.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer kv.Close()

	paychecks := ledger.NewPaychecks(nil)
	expenses := ledger.NewExpenses(nil)
	allocations := ledger.NewAllocations(nil)

	if _, err := ledger.Bind(paychecks.Collection, kv, store.KeyPaychecks); err != nil {
		log.Fatalf("bind paychecks: %v", err)
	}
	if _, err := ledger.Bind(expenses.Collection, kv, store.KeyExpenses); err != nil {
		log.Fatalf("bind expenses: %v", err)
	}
	if _, err := ledger.Bind(allocations.Collection, kv, store.KeyAllocations); err != nil {
		log.Fatalf("bind allocations: %v", err)
	}

	// one-shot share-link commands before the TUI takes the terminal
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "export":
			link, err := service.EncodeShareLink(service.Snapshot(paychecks, expenses, allocations))
			if err != nil {
				log.Fatalf("export: %v", err)
			}
			fmt.Println(link)
			return
		case "import":
			if len(os.Args) < 3 {
				log.Fatal("import: share-link token required")
			}
			state, err := service.DecodeShareLink(os.Args[2])
			if err != nil {
				log.Fatalf("import: %v", err)
			}
			service.Sideload(state, paychecks, expenses, allocations)
			fmt.Printf("imported %d paychecks, %d expenses, %d allocations\n",
				len(state.Paychecks), len(state.Expenses), len(state.Allocations))
			return
		default:
			log.Fatalf("unknown command %q (want export or import)", os.Args[1])
		}
	}

	p := tea.NewProgram(tui.New(cfg, tui.Collections{
		Paychecks:   paychecks,
		Expenses:    expenses,
		Allocations: allocations,
	}), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}
