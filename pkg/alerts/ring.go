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

// Package alerts keeps the bounded, most-recent-first alert log and fires
// the user-facing notification side effect.
package alerts

import (
	"sync"

	"github.com/presenceradar/presenceradar/pkg/logger"
	"github.com/presenceradar/presenceradar/pkg/models"
)

// DefaultCapacity is the number of alerts retained.
const DefaultCapacity = 10

const notificationTitle = "Presence Radar"

// Ring is a fixed-capacity, most-recent-first alert log. Entries reference
// targets by id only; a dangling id after target removal is fine and is
// never dereferenced.
type Ring struct {
	mu        sync.Mutex
	entries   []models.AlertEntry
	capacity  int
	nextID    int64
	notifier  Notifier
	requested bool // permission requested this session
	logger    logger.Logger
}

// NewRing creates a ring with the given capacity (<= 0 uses the default).
// notifier may be nil, which disables the notification side effect.
func NewRing(capacity int, notifier Notifier, log logger.Logger) *Ring {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	return &Ring{
		capacity: capacity,
		nextID:   1,
		notifier: notifier,
		logger:   log,
	}
}

// Push assigns the entry a locally unique, strictly increasing id, prepends
// it, and drops the oldest entries beyond capacity. It returns the assigned
// id. The notification side effect degrades to silent on denied or failed
// permission and is never an error for the caller.
func (r *Ring) Push(entry models.AlertEntry) int64 {
	r.mu.Lock()

	entry.ID = r.nextID
	r.nextID++

	r.entries = append([]models.AlertEntry{entry}, r.entries...)
	if len(r.entries) > r.capacity {
		r.entries = r.entries[:r.capacity]
	}

	r.mu.Unlock()

	r.notify(entry)

	return entry.ID
}

// Remove deletes one entry by id, leaving the rest in order. Unknown ids
// are a no-op.
func (r *Ring) Remove(id int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, entry := range r.entries {
		if entry.ID == id {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return
		}
	}
}

// Clear empties the log. Assigned ids keep increasing across a clear.
func (r *Ring) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = nil
}

// Snapshot returns a copy of the log, most recent first.
func (r *Ring) Snapshot() []models.AlertEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.AlertEntry, len(r.entries))
	copy(out, r.entries)

	return out
}

// Len returns the current number of entries.
func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.entries)
}

func (r *Ring) notify(entry models.AlertEntry) {
	if r.notifier == nil {
		return
	}

	switch r.notifier.Permission() {
	case PermissionGranted:
	case PermissionUndetermined:
		r.mu.Lock()
		alreadyAsked := r.requested
		r.requested = true
		r.mu.Unlock()

		if alreadyAsked {
			return
		}

		if err := r.notifier.RequestPermission(); err != nil {
			r.logger.Debug().Err(err).Msg("Notification permission request failed")
			return
		}

		if r.notifier.Permission() != PermissionGranted {
			return
		}
	default:
		// denied: stay silent, never retry
		return
	}

	if err := r.notifier.Notify(notificationTitle, entry.Message); err != nil {
		r.logger.Debug().Err(err).Str("target_id", entry.TargetID).Msg("Alert notification failed")
	}
}
