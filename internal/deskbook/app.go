// Package deskbook wires the domain services behind a single App.
package deskbook

import (
	"github.com/rs/zerolog"

	"github.com/mkaye/deskbook/internal/core/config"
	"github.com/mkaye/deskbook/internal/core/contact"
	"github.com/mkaye/deskbook/internal/core/ledger"
	"github.com/mkaye/deskbook/internal/core/task"
)

// App is the central entry point for all deskbook operations.
// Commands and the interactive menu consume App instead of
// cherry-picking raw dependencies.
type App struct {
	Contacts *ContactService
	Tasks    *TaskService
	Ledger   *LedgerService
	Config   *config.Config
}

// NewApp constructs an App from explicit dependencies.
func NewApp(
	cfg *config.Config,
	contacts contact.Store,
	tasks task.Store,
	accounts ledger.AccountStore,
	transactions ledger.TransactionStore,
	log zerolog.Logger,
) *App {
	return &App{
		Contacts: NewContactService(contacts, cfg.Contacts.Groups, log),
		Tasks:    NewTaskService(tasks, log),
		Ledger:   NewLedgerService(accounts, transactions, log),
		Config:   cfg,
	}
}
