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

package alerts

import (
	"github.com/presenceradar/presenceradar/pkg/logger"
)

// Permission is the notification permission state. The ring checks it but
// does not manage it beyond a single request per session.
type Permission int

const (
	PermissionUndetermined Permission = iota
	PermissionGranted
	PermissionDenied
)

// Notifier delivers a user-facing notification with a title and body. The
// delivery mechanics are environment-specific; failures never propagate to
// alert bookkeeping.
type Notifier interface {
	Permission() Permission
	RequestPermission() error
	Notify(title, body string) error
}

// LogNotifier writes notifications to the structured log. It is the default
// delivery in headless runs and is always permitted.
type LogNotifier struct {
	logger logger.Logger
}

func NewLogNotifier(log logger.Logger) *LogNotifier {
	return &LogNotifier{logger: log}
}

func (*LogNotifier) Permission() Permission   { return PermissionGranted }
func (*LogNotifier) RequestPermission() error { return nil }

func (n *LogNotifier) Notify(title, body string) error {
	n.logger.Info().Str("title", title).Str("body", body).Msg("Alert notification")
	return nil
}
