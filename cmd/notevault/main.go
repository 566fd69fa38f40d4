package main

import (
	"context"
	"fmt"

	"github.com/avoronov/notevault/internal/config"
	"github.com/avoronov/notevault/internal/crypto"
	"github.com/avoronov/notevault/internal/logger"
	"github.com/avoronov/notevault/internal/registry"
	"github.com/avoronov/notevault/internal/remote"
	"github.com/avoronov/notevault/internal/service"
	"github.com/avoronov/notevault/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("notevault")
	cfg, err := config.GetConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	keys := crypto.NewKeyStore(cfg.App.KeyPath, log)
	cipher := crypto.NewCipher()
	hasher := crypto.NewPasswordHasher()

	local, err := store.NewPageStore(cfg.App.StorageDir, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}

	objects, err := remote.NewHTTPObjectStore(cfg.Remote, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create remote object store")
	}

	reg := registry.New(cfg.App.RegistryFile, keys, cipher, hasher, local, log)
	retrier := remote.NewRetrier(cfg.Retry.MaxAttempts, cfg.Retry.BaseSlot, log)

	pages := service.NewPageService(cfg, keys, cipher, hasher, reg, local, objects, retrier, log)
	defer pages.Close()

	ctx := context.Background()
	if err = pages.EnsureRegistry(ctx); err != nil {
		log.Fatal().Err(err).Msg("prepare password registry")
	}

	names, err := pages.ListPages()
	if err != nil {
		log.Fatal().Err(err).Msg("list local pages")
	}

	log.Info().Int("pages", len(names)).Msg("vault ready")
	for _, name := range names {
		fmt.Println(name)
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
