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

// Package config loads JSON configuration files with validation.
package config

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/presenceradar/presenceradar/pkg/logger"
)

// Validator lets a config struct check itself after loading.
type Validator interface {
	Validate() error
}

// Defaulter lets a config struct fill unset fields after loading.
type Defaulter interface {
	ApplyDefaults()
}

// Loader loads configuration from local JSON files.
type Loader struct {
	logger logger.Logger
}

// NewLoader creates a Loader. A nil logger falls back to the no-op test
// logger so config loading never needs logging wired first.
func NewLoader(log logger.Logger) *Loader {
	if log == nil {
		log = logger.NewTestLogger()
	}

	return &Loader{logger: log}
}

// LoadAndValidate reads a JSON file into cfg, applies defaults when cfg
// implements Defaulter, and validates when it implements Validator.
func (l *Loader) LoadAndValidate(_ context.Context, path string, cfg interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file '%s': %w", path, err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to unmarshal JSON from '%s': %w", path, err)
	}

	applyEnvOverrides(cfg, EnvPrefix)

	if d, ok := cfg.(Defaulter); ok {
		d.ApplyDefaults()
	}

	if v, ok := cfg.(Validator); ok {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("invalid configuration in '%s': %w", path, err)
		}
	}

	l.logger.Debug().Str("path", path).Msg("Configuration loaded")

	return nil
}
