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

import "time"

// Alert kinds reported by the collection side.
const (
	AlertKindStateChange   = "state-change"
	AlertKindNetworkChange = "network-change"
)

// AlertEntry is one alert in the bounded alert log. The ID is assigned
// locally by the ring buffer and is strictly increasing. TargetID is a weak
// reference: the target may have been removed since.
type AlertEntry struct {
	ID        int64     `json:"id"`
	TargetID  string    `json:"target_id"`
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
