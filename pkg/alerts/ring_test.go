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
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/presenceradar/presenceradar/pkg/logger"
	"github.com/presenceradar/presenceradar/pkg/models"
)

type fakeNotifier struct {
	permission Permission
	requests   int
	grantOnAsk bool
	notifyErr  error
	notified   []string
}

func (f *fakeNotifier) Permission() Permission { return f.permission }

func (f *fakeNotifier) RequestPermission() error {
	f.requests++
	if f.grantOnAsk {
		f.permission = PermissionGranted
	} else {
		f.permission = PermissionDenied
	}

	return nil
}

func (f *fakeNotifier) Notify(_, body string) error {
	if f.notifyErr != nil {
		return f.notifyErr
	}

	f.notified = append(f.notified, body)

	return nil
}

func TestPushAssignsIncreasingIDs(t *testing.T) {
	ring := NewRing(0, nil, logger.NewTestLogger())

	first := ring.Push(models.AlertEntry{Message: "a"})
	second := ring.Push(models.AlertEntry{Message: "b"})

	assert.Equal(t, int64(1), first)
	assert.Equal(t, int64(2), second)
}

func TestPushMostRecentFirstAndCapacity(t *testing.T) {
	ring := NewRing(10, nil, logger.NewTestLogger())

	for i := 1; i <= 11; i++ {
		ring.Push(models.AlertEntry{Message: fmt.Sprintf("alert %d", i)})
	}

	entries := ring.Snapshot()
	require.Len(t, entries, 10)

	// Newest first; the oldest entry fell off.
	assert.Equal(t, int64(11), entries[0].ID)
	assert.Equal(t, int64(2), entries[9].ID)
}

func TestRemovePreservesOrder(t *testing.T) {
	ring := NewRing(0, nil, logger.NewTestLogger())

	ring.Push(models.AlertEntry{Message: "a"})
	id := ring.Push(models.AlertEntry{Message: "b"})
	ring.Push(models.AlertEntry{Message: "c"})

	ring.Remove(id)

	entries := ring.Snapshot()
	require.Len(t, entries, 2)
	assert.Equal(t, "c", entries[0].Message)
	assert.Equal(t, "a", entries[1].Message)

	// Unknown id is a no-op.
	ring.Remove(999)
	assert.Equal(t, 2, ring.Len())
}

func TestClearKeepsIDSequence(t *testing.T) {
	ring := NewRing(0, nil, logger.NewTestLogger())

	ring.Push(models.AlertEntry{Message: "a"})
	ring.Push(models.AlertEntry{Message: "b"})
	ring.Clear()

	assert.Equal(t, 0, ring.Len())

	next := ring.Push(models.AlertEntry{Message: "c"})
	assert.Equal(t, int64(3), next)
}

func TestNotifyPermissionRequestedOncePerSession(t *testing.T) {
	n := &fakeNotifier{permission: PermissionUndetermined, grantOnAsk: true}
	ring := NewRing(0, n, logger.NewTestLogger())

	ring.Push(models.AlertEntry{Message: "first"})
	ring.Push(models.AlertEntry{Message: "second"})

	assert.Equal(t, 1, n.requests)
	assert.Equal(t, []string{"first", "second"}, n.notified)
}

func TestNotifyDeniedStaysSilent(t *testing.T) {
	n := &fakeNotifier{permission: PermissionUndetermined}
	ring := NewRing(0, n, logger.NewTestLogger())

	ring.Push(models.AlertEntry{Message: "first"})
	ring.Push(models.AlertEntry{Message: "second"})

	assert.Equal(t, 1, n.requests)
	assert.Empty(t, n.notified)

	// Bookkeeping is unaffected by the silent path.
	assert.Equal(t, 2, ring.Len())
}

func TestNotifyFailureDoesNotAffectLog(t *testing.T) {
	n := &fakeNotifier{permission: PermissionGranted, notifyErr: errors.New("dbus unavailable")}
	ring := NewRing(0, n, logger.NewTestLogger())

	id := ring.Push(models.AlertEntry{Message: "a"})

	assert.Equal(t, int64(1), id)
	assert.Equal(t, 1, ring.Len())
}
