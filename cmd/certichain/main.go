package main

import (
	"context"
	"fmt"

	"github.com/certichain/certichain/internal/certops"
	"github.com/certichain/certichain/internal/chain"
	"github.com/certichain/certichain/internal/config"
	"github.com/certichain/certichain/internal/explorer"
	"github.com/certichain/certichain/internal/logger"
	"github.com/certichain/certichain/internal/qr"
	"github.com/certichain/certichain/internal/roles"
	"github.com/certichain/certichain/internal/store"
	"github.com/certichain/certichain/internal/tui"
	"github.com/certichain/certichain/internal/wallet"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewClientLogger("certichain")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx := context.Background()

	reader, err := chain.NewReadClient(ctx, cfg.Chain, log)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to registry contract")
	}
	defer reader.Close()

	db, err := store.NewConnectSQLite(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("open history database")
	}
	defer db.Close()
	history := store.NewHistoryRepository(db, log)

	rolesSvc := roles.NewService(reader, log)
	walletMgr := wallet.NewManager(cfg.Chain, cfg.Wallet, log)
	defer walletMgr.Disconnect()

	encoder := qr.NewEncoder(cfg.QR)
	certs := certops.NewService(reader, encoder, history, log)

	services := &tui.Services{
		Certs:    certs,
		Wallet:   walletMgr,
		Roles:    rolesSvc,
		Explorer: explorer.NewClient(cfg.Explorer),
		History:  history,
		QRCfg:    cfg.QR,
	}

	ui, err := tui.New(services, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating ui")
	}

	if err = ui.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
