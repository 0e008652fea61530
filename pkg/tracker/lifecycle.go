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

// Seed carries the fields a new record starts from.
type Seed struct {
	DisplayLabel string
	Platform     models.Platform
}

// Add creates a record for id with empty history and devices. Adding an
// already-tracked id is an idempotent no-op.
func (s *Store) Add(id string, seed Seed) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.targets[id]; ok {
		return
	}

	label := seed.DisplayLabel
	if label == "" {
		label = DeriveDisplayLabel(id, seed.Platform)
	}

	platform := seed.Platform
	if !platform.Valid() {
		platform = models.PlatformWhatsApp
	}

	s.targets[id] = &models.TargetRecord{
		ID:           id,
		DisplayLabel: label,
		Platform:     platform,
		History:      []models.SamplePoint{},
		Devices:      []models.DeviceState{},
	}
	s.order = append(s.order, id)

	s.logger.Info().Str("target_id", id).Str("platform", string(platform)).Msg("Target added")
}

// Remove deletes the record. Removing an unknown id is a no-op. Callers
// owning correlated requests for the target must cancel them; the dispatch
// engine does that as part of its removal cascade.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.targets[id]; !ok {
		return
	}

	delete(s.targets, id)

	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	s.logger.Info().Str("target_id", id).Msg("Target removed")
}

// Reconcile applies an authoritative "at least these are tracked" set: a
// record is created for every id not already present. The set is additive
// only; existing records, including any customized display label, are left
// untouched, and targets missing from the set are not removed.
func (s *Store) Reconcile(entries []models.TrackedContact) {
	for _, entry := range entries {
		s.Add(entry.ID, Seed{Platform: entry.Platform})
	}
}

// DeriveDisplayLabel extracts a human-readable label from a transport id:
// signal ids carry a "signal:" prefix, whatsapp ids a "@s.whatsapp.net"
// style suffix.
func DeriveDisplayLabel(id string, platform models.Platform) string {
	if platform == models.PlatformSignal {
		return strings.TrimPrefix(id, "signal:")
	}

	if at := strings.IndexByte(id, '@'); at >= 0 {
		return id[:at]
	}

	return id
}
