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
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/presenceradar/presenceradar/pkg/models"
)

func TestSnapshotInsertionOrder(t *testing.T) {
	store, _ := newTestStore(t)

	store.Add("b", Seed{})
	store.Add("a", Seed{})
	store.Add("c", Seed{})

	views := store.Snapshot(0)
	require.Len(t, views, 3)
	assert.Equal(t, "b", views[0].ID)
	assert.Equal(t, "a", views[1].ID)
	assert.Equal(t, "c", views[2].ID)

	// Removal keeps the relative order of the rest.
	store.Remove("a")
	store.Add("d", Seed{})

	views = store.Snapshot(0)
	require.Len(t, views, 3)
	assert.Equal(t, "b", views[0].ID)
	assert.Equal(t, "c", views[1].ID)
	assert.Equal(t, "d", views[2].ID)
}

func TestSnapshotHistoryCapKeepsMostRecent(t *testing.T) {
	store, clock := newTestStore(t)
	store.Add("t1", Seed{})

	for i := 0; i < 7; i++ {
		store.ApplyUpdate(models.TrackerUpdate{
			ID:        "t1",
			Median:    floatPtr(float64(i)),
			Threshold: floatPtr(60),
			Devices:   []models.DeviceState{{ID: "d1", State: "Online", RTT: float64(i)}},
		})
		clock.Advance(1)
	}

	views := store.Snapshot(5)
	require.Len(t, views, 1)
	require.Len(t, views[0].History, 5)

	// Oldest two dropped, newest kept, order preserved.
	assert.Equal(t, 2.0, views[0].History[0].Median)
	assert.Equal(t, 6.0, views[0].History[4].Median)

	// LastSample reflects the true newest sample regardless of the cap.
	require.NotNil(t, views[0].LastSample)
	assert.Equal(t, 6.0, views[0].LastSample.Median)

	// The cap is a view concern: the stored record keeps everything.
	assert.Len(t, store.Get("t1").History, 7)
}

func TestSnapshotDefaultHistoryLimit(t *testing.T) {
	store, clock := newTestStore(t)
	store.Add("t1", Seed{})

	for i := 0; i < DefaultHistoryLimit+10; i++ {
		store.ApplyUpdate(models.TrackerUpdate{
			ID:        "t1",
			Median:    floatPtr(float64(i)),
			Threshold: floatPtr(60),
			Devices:   []models.DeviceState{{ID: fmt.Sprintf("d%d", i), State: "Online"}},
		})
		clock.Advance(1)
	}

	views := store.Snapshot(0)
	require.Len(t, views, 1)
	assert.Len(t, views[0].History, DefaultHistoryLimit)
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	store, _ := newTestStore(t)
	store.Add("t1", Seed{})

	store.ApplyUpdate(models.TrackerUpdate{
		ID:      "t1",
		Devices: []models.DeviceState{{ID: "d1", State: "Online"}},
	})

	views := store.Snapshot(0)
	require.Len(t, views, 1)

	views[0].Devices[0].State = "mutated"

	assert.Equal(t, "Online", store.Get("t1").Devices[0].State)
}

func TestCurrentStatusPrecedence(t *testing.T) {
	tests := []struct {
		name    string
		devices []models.DeviceState
		want    string
	}{
		{"no devices", nil, StatusUnknown},
		{"offline wins over online", []models.DeviceState{
			{ID: "d1", State: "Online"},
			{ID: "d2", State: "OFFLINE"},
		}, "OFFLINE"},
		{"online variant over first device", []models.DeviceState{
			{ID: "d1", State: "Standby"},
			{ID: "d2", State: "Online (bg)"},
		}, "Online (bg)"},
		{"first device fallback", []models.DeviceState{
			{ID: "d1", State: "Standby"},
			{ID: "d2", State: "Idle"},
		}, "Standby"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CurrentStatus(tt.devices))
		})
	}
}
