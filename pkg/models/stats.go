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

package models

// Statistics is the aggregate activity summary for one target, computed on
// the collection side. Durations are milliseconds.
type Statistics struct {
	TotalOnlineTime    int64  `json:"totalOnlineTime"`
	SessionCount       int    `json:"sessionCount"`
	AvgSessionDuration int64  `json:"avgSessionDuration"`
	NetworkChanges     int    `json:"networkChanges"`
	ActiveHours        []int  `json:"activeHours,omitempty"`
	LastNetworkType    string `json:"lastNetworkType,omitempty"`
}

// EnhancedCapture is the on-demand deep capture for one target.
type EnhancedCapture struct {
	CurrentPresence string           `json:"currentPresence,omitempty"`
	Typing          *TypingStatus    `json:"typingStatus,omitempty"`
	LastSeen        *LastSeen        `json:"lastSeen,omitempty"`
	PresenceHistory []PresenceSample `json:"presenceHistory,omitempty"`
	TrackedDevices  []string         `json:"trackedDevices,omitempty"`
}
