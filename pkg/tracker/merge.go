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
	"time"

	"github.com/presenceradar/presenceradar/pkg/models"
)

// mergeUpdate produces the next record from the current one and a partial
// update. Every supplied field overwrites; every absent (nil) field carries
// over unchanged. The devices array is replaced wholesale, never merged
// element-wise. The input record is never mutated.
func mergeUpdate(current *models.TargetRecord, u models.TrackerUpdate, now time.Time) *models.TargetRecord {
	next := current.Clone()

	if u.Presence != nil {
		v := *u.Presence
		next.Presence = &v
	}

	if u.DeviceCount != nil {
		next.DeviceCount = *u.DeviceCount
	}

	if u.Devices != nil {
		next.Devices = make([]models.DeviceState, len(u.Devices))
		copy(next.Devices, u.Devices)
	}

	if u.PresenceHistory != nil {
		next.Enrichment.PresenceHistory = make([]models.PresenceSample, len(u.PresenceHistory))
		copy(next.Enrichment.PresenceHistory, u.PresenceHistory)
	}

	if u.Typing != nil {
		typing := *u.Typing
		next.Enrichment.Typing = &typing
	}

	if u.LastSeen != nil {
		lastSeen := *u.LastSeen
		next.Enrichment.LastSeen = &lastSeen
	}

	if u.ConnectionInfo != nil {
		next.Enrichment.ConnectionInfo = make([]models.ConnectionEntry, len(u.ConnectionInfo))
		copy(next.Enrichment.ConnectionInfo, u.ConnectionInfo)
	}

	if point, ok := sampleFromUpdate(u, now); ok {
		next = appendSample(next, point)
	}

	return next
}

// sampleFromUpdate derives a SamplePoint when the update carries the full
// median/threshold/devices triple. An empty device array yields no sample:
// there is no reading to attribute it to.
func sampleFromUpdate(u models.TrackerUpdate, now time.Time) (models.SamplePoint, bool) {
	if u.Median == nil || u.Threshold == nil || len(u.Devices) == 0 {
		return models.SamplePoint{}, false
	}

	return models.SamplePoint{
		RTT:       u.Devices[0].RTT,
		Avg:       u.Devices[0].Avg,
		Median:    *u.Median,
		Threshold: *u.Threshold,
		State:     sampleState(u.Devices),
		Timestamp: now,
	}, true
}

// sampleState picks the state recorded on the sample: the first device
// reporting an online variant, falling back to the first device.
func sampleState(devices []models.DeviceState) string {
	for _, d := range devices {
		if strings.Contains(d.State, "Online") {
			return d.State
		}
	}

	return devices[0].State
}
