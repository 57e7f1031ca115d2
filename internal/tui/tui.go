// Package tui is the terminal front end: a single bubbletea program routing
// between the verify, issue, revoke, transfer, admin and history screens.
// Every screen is readable without a wallet; write actions appear in the
// menu only for the roles the contract grants.
package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/certichain/certichain/internal/certops"
	"github.com/certichain/certichain/internal/config"
	"github.com/certichain/certichain/internal/explorer"
	"github.com/certichain/certichain/internal/logger"
	"github.com/certichain/certichain/internal/roles"
	"github.com/certichain/certichain/internal/store"
	"github.com/certichain/certichain/internal/wallet"
)

var ErrUserQuit = errors.New("user quit")

// Services bundles everything the screens call into.
type Services struct {
	Certs    *certops.Service
	Wallet   *wallet.Manager
	Roles    *roles.Service
	Explorer *explorer.Client
	History  store.HistoryRepository
	QRCfg    config.QR
}

type TUI struct {
	services *Services
	log      *logger.Logger
}

func New(services *Services, log *logger.Logger) (*TUI, error) {
	return &TUI{services: services, log: log}, nil
}

// Run drives the program until the user quits.
func (t *TUI) Run(ctx context.Context) error {
	model := newAppModel(ctx, t.services, t.log)
	finalModel, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(appModel)
	if !ok {
		return tea.ErrProgramKilled
	}
	if result.quitErr != nil && !errors.Is(result.quitErr, ErrUserQuit) {
		return result.quitErr
	}
	return nil
}
