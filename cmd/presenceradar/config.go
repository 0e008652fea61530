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
	"errors"
	"strings"
	"time"

	"github.com/presenceradar/presenceradar/pkg/logger"
	"github.com/presenceradar/presenceradar/pkg/models"
)

var errInvalidServerURL = errors.New("server_url must be a ws:// or wss:// URL")

// Config is the dashboard process configuration.
type Config struct {
	// ServerURL is the websocket endpoint of the collection side.
	ServerURL string `json:"server_url"`

	// HistoryLimit caps samples per target in the rendered view.
	HistoryLimit int `json:"history_limit,omitempty"`

	// CaptureInterval is the enhanced-capture re-poll interval.
	CaptureInterval models.Duration `json:"capture_interval,omitempty"`

	// ExportDir is where export files land.
	ExportDir string `json:"export_dir,omitempty"`

	Logging *logger.Config `json:"logging,omitempty"`
}

func (c *Config) ApplyDefaults() {
	if c.ServerURL == "" {
		c.ServerURL = "ws://localhost:8080/ws"
	}

	if c.CaptureInterval == 0 {
		c.CaptureInterval = models.Duration(5 * time.Second)
	}

	if c.ExportDir == "" {
		c.ExportDir = "."
	}
}

func (c *Config) Validate() error {
	if !strings.HasPrefix(c.ServerURL, "ws://") && !strings.HasPrefix(c.ServerURL, "wss://") {
		return errInvalidServerURL
	}

	return nil
}
