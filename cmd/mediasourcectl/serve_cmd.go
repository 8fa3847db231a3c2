// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/xstudio-go/mediasource/internal/config"
	"github.com/xstudio-go/mediasource/internal/infrastructure/cache"
	"github.com/xstudio-go/mediasource/internal/infrastructure/eventbus"
	"github.com/xstudio-go/mediasource/internal/infrastructure/hook"
	"github.com/xstudio-go/mediasource/internal/infrastructure/httpapi"
	"github.com/xstudio-go/mediasource/internal/infrastructure/metadatastore"
	"github.com/xstudio-go/mediasource/internal/infrastructure/reader"
	"github.com/xstudio-go/mediasource/internal/infrastructure/scanner"
	"github.com/xstudio-go/mediasource/internal/infrastructure/thumbnail"
	"github.com/xstudio-go/mediasource/internal/log"
	"github.com/xstudio-go/mediasource/internal/registry"
	"github.com/xstudio-go/mediasource/internal/runtime"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the Media Source HTTP projection surface",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if cfgPath != "" {
		loaded, err := config.Load(cfgPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	rt := runtime.New(cfg)
	rt.Reader = reader.NewLocalFile(rt.FallbackRate())
	if cfg.Badger.Dir != "" {
		store, err := metadatastore.OpenBadgerStore(cfg.Badger.Dir)
		if err != nil {
			return err
		}
		defer store.Close()
		rt.Metadata = store
	} else {
		rt.Metadata = metadatastore.NewMemory()
	}
	rt.Bus = eventbus.NewMemoryBus()
	rt.Hook = hook.Logging{Logger: rt.Logger}
	rt.ImageCache = cache.NewMemory()
	rt.AudioCache = cache.NewMemory()
	rt.Thumbnails = thumbnail.NewStub(rt.Logger)

	fsScanner, err := scanner.New(rt.Logger)
	if err != nil {
		return err
	}
	defer fsScanner.Close()
	rt.Scanner = fsScanner

	sources := registry.New()
	router := httpapi.NewRouter(sources, cfg, rt.Logger)

	srv := &http.Server{Addr: cfg.HTTP.ListenAddr, Handler: router}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), rt.Config.ScannerPollInterval())
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger := log.L()
	logger.Info().Str("addr", cfg.HTTP.ListenAddr).Msg("mediasourcectl serve: listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
