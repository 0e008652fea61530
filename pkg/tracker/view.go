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

package tracker

import (
	"strings"

	"github.com/presenceradar/presenceradar/pkg/models"
)

const (
	// DefaultHistoryLimit caps the samples exposed per target by the read
	// model. The stored series itself stays unbounded.
	DefaultHistoryLimit = 500

	// StatusUnknown is reported when a target has no device readings yet.
	StatusUnknown = "Unknown"

	deviceStateOffline = "OFFLINE"
)

// TargetView is one render-ready target: a deep copy of the record plus
// display-policy fields derived at read time.
type TargetView struct {
	models.TargetRecord

	CurrentStatus string              `json:"current_status"`
	LastSample    *models.SamplePoint `json:"last_sample,omitempty"`
}

// Snapshot projects the store into an ordered, render-ready list. Targets
// appear in first-creation order. historyLimit <= 0 applies the default
// cap; the cap keeps the most recent points.
func (s *Store) Snapshot(historyLimit int) []TargetView {
	if historyLimit <= 0 {
		historyLimit = DefaultHistoryLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	views := make([]TargetView, 0, len(s.order))

	for _, id := range s.order {
		rec, ok := s.targets[id]
		if !ok {
			continue
		}

		view := TargetView{
			TargetRecord:  *rec.Clone(),
			CurrentStatus: CurrentStatus(rec.Devices),
		}

		if n := len(view.History); n > 0 {
			last := view.History[n-1]
			view.LastSample = &last

			if n > historyLimit {
				view.History = view.History[n-historyLimit:]
			}
		}

		views = append(views, view)
	}

	return views
}

// CurrentStatus derives the display status from the device array: an
// offline device wins, then an online variant, then the first device in
// transport order, then the unknown sentinel. Display policy only; it is
// recomputed on every read and never stored.
func CurrentStatus(devices []models.DeviceState) string {
	if len(devices) == 0 {
		return StatusUnknown
	}

	for _, d := range devices {
		if d.State == deviceStateOffline {
			return d.State
		}
	}

	for _, d := range devices {
		if strings.Contains(d.State, "Online") {
			return d.State
		}
	}

	return devices[0].State
}
