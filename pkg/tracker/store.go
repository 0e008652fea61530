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

// Package tracker implements the target state-reconciliation core: the
// store of reconciled records, the partial-update merge, the time-series
// accumulator, target lifecycle, and the read-model projection.
package tracker

import (
	"sync"
	"time"

	"github.com/presenceradar/presenceradar/pkg/logger"
	"github.com/presenceradar/presenceradar/pkg/models"
)

// Clock supplies merge-time timestamps. Tests substitute a fixed clock.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Store owns every TargetRecord. All mutation goes through its methods;
// every read returns a deep copy, so no caller can hold a live reference
// into store-owned memory.
type Store struct {
	mu      sync.RWMutex
	targets map[string]*models.TargetRecord
	order   []string // first-creation insertion order
	clock   Clock
	logger  logger.Logger
}

// NewStore creates an empty store. A nil clock defaults to the real clock.
func NewStore(clock Clock, log logger.Logger) *Store {
	if clock == nil {
		clock = realClock{}
	}

	return &Store{
		targets: make(map[string]*models.TargetRecord),
		clock:   clock,
		logger:  log,
	}
}

// ApplyUpdate merges a partial update into the identified record. Updates
// for unknown targets are dropped: creation is the lifecycle path's job,
// never a side effect of an update.
func (s *Store) ApplyUpdate(u models.TrackerUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.targets[u.ID]
	if !ok {
		s.logger.Debug().Str("target_id", u.ID).Msg("Dropping update for unknown target")
		return
	}

	s.targets[u.ID] = mergeUpdate(current, u, s.clock.Now())
}

// SetProfilePic updates only the profile picture reference.
func (s *Store) SetProfilePic(id string, url *string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.targets[id]
	if !ok {
		return
	}

	next := rec.Clone()
	if url != nil {
		v := *url
		next.ProfilePicRef = &v
	} else {
		next.ProfilePicRef = nil
	}

	s.targets[id] = next
}

// SetDisplayLabel updates only the display label.
func (s *Store) SetDisplayLabel(id, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.targets[id]
	if !ok {
		return
	}

	next := rec.Clone()
	next.DisplayLabel = name
	s.targets[id] = next
}

// Get returns a deep copy of one record, or nil if the target is unknown.
func (s *Store) Get(id string) *models.TargetRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.targets[id].Clone()
}

// Len returns the number of tracked targets.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.targets)
}
