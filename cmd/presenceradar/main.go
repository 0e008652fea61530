/*
 * Copyright 2026 Presence Radar Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/presenceradar/presenceradar/pkg/alerts"
	"github.com/presenceradar/presenceradar/pkg/config"
	"github.com/presenceradar/presenceradar/pkg/correlator"
	"github.com/presenceradar/presenceradar/pkg/logger"
	"github.com/presenceradar/presenceradar/pkg/tracker"
	"github.com/presenceradar/presenceradar/pkg/transport"
	"github.com/presenceradar/presenceradar/pkg/tui"
)

var errFailedToLoadConfig = fmt.Errorf("failed to load config")

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	configPath := flag.String("config", "", "Path to config file")
	serverURL := flag.String("server", "", "Websocket endpoint, overrides config")
	flag.Parse()

	ctx := context.Background()

	var cfg Config

	if *configPath != "" {
		cfgLoader := config.NewLoader(nil)

		if err := cfgLoader.LoadAndValidate(ctx, *configPath, &cfg); err != nil {
			return fmt.Errorf("%w: %w", errFailedToLoadConfig, err)
		}
	} else {
		cfg.ApplyDefaults()
	}

	if *serverURL != "" {
		cfg.ServerURL = *serverURL
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	logConfig := cfg.Logging
	if logConfig == nil {
		// The TUI owns stdout, so logs go to a file by default.
		logConfig = &logger.Config{
			Level:  "info",
			Output: "presenceradar.log",
		}
	}

	componentLogger := func(component string) (logger.Logger, error) {
		return logger.NewComponentLogger(logConfig, component)
	}

	transportLogger, err := componentLogger("transport")
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	trackerLogger, err := componentLogger("tracker")
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	alertLogger, err := componentLogger("alerts")
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	corrLogger, err := componentLogger("correlator")
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	tuiLogger, err := componentLogger("tui")
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	dialCtx, dialCancel := context.WithTimeout(ctx, 10*time.Second)
	client, err := transport.Dial(dialCtx, cfg.ServerURL, transportLogger)

	dialCancel()

	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", cfg.ServerURL, err)
	}

	defer func() { _ = client.Close() }()

	store := tracker.NewStore(nil, trackerLogger)
	ring := alerts.NewRing(alerts.DefaultCapacity, alerts.NewLogNotifier(alertLogger), alertLogger)
	corr := correlator.New(client, nil, corrLogger)

	defer corr.Stop()

	engine := tracker.NewEngine(store, ring, corr, client, nil, trackerLogger,
		tracker.EngineOptions{HistoryLimit: cfg.HistoryLimit})

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	engineDone := make(chan error, 1)

	go func() {
		engineDone <- engine.Run(runCtx, client.Events())
	}()

	dash := tui.New(engine, corr, tui.Options{
		ExportDir:       cfg.ExportDir,
		CaptureInterval: time.Duration(cfg.CaptureInterval),
	}, tuiLogger)

	uiErr := dash.Run(runCtx)

	cancel()
	<-engineDone

	if uiErr != nil && !errors.Is(uiErr, context.Canceled) {
		return uiErr
	}

	return nil
}
