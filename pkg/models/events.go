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

import "encoding/json"

// Event is the closed set of inbound events delivered by the event channel.
// One variant exists per wire event name, so the dispatch switch stays
// exhaustive when a new event is added.
type Event interface {
	isEvent()
}

// TrackerUpdate is a partial update for one target. Pointer and nil-able
// slice fields distinguish "absent" from "supplied": a nil field must leave
// the corresponding record field untouched.
type TrackerUpdate struct {
	ID              string            `json:"id"`
	Presence        *string           `json:"presence,omitempty"`
	DeviceCount     *int              `json:"deviceCount,omitempty"`
	Devices         []DeviceState     `json:"devices,omitempty"`
	Median          *float64          `json:"median,omitempty"`
	Threshold       *float64          `json:"threshold,omitempty"`
	PresenceHistory []PresenceSample  `json:"presenceHistory,omitempty"`
	Typing          *TypingStatus     `json:"typingStatus,omitempty"`
	LastSeen        *LastSeen         `json:"lastSeen,omitempty"`
	ConnectionInfo  []ConnectionEntry `json:"connectionInfo,omitempty"`
}

// ContactAdded announces a newly registered target.
type ContactAdded struct {
	ID       string   `json:"id"`
	Number   string   `json:"number"`
	Platform Platform `json:"platform,omitempty"`
}

// ContactRemoved announces removal of a target.
type ContactRemoved struct {
	ID string `json:"id"`
}

// TrackedContacts is the authoritative "at least these are tracked" set,
// sent on (re)connect.
type TrackedContacts struct {
	Contacts []TrackedContact `json:"contacts"`
}

// TrackedContact is one entry of the reconciliation set.
type TrackedContact struct {
	ID       string   `json:"id"`
	Platform Platform `json:"platform"`
}

// ProfilePic updates a single target's profile picture reference.
type ProfilePic struct {
	ID  string  `json:"id"`
	URL *string `json:"url"`
}

// ContactName updates a single target's display label.
type ContactName struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ErrorEvent is a transport-reported error surfaced to the user as a
// transient notice.
type ErrorEvent struct {
	ID      string `json:"id,omitempty"`
	Message string `json:"message"`
}

// ProbeMethodChanged echoes the process-wide probe method setting.
type ProbeMethodChanged struct {
	Method ProbeMethod `json:"method"`
}

// StatisticsResponse answers a get-statistics request.
type StatisticsResponse struct {
	ID         string     `json:"id"`
	Statistics Statistics `json:"statistics"`
}

// EnhancedCaptureResponse answers a get-enhanced-capture request.
type EnhancedCaptureResponse struct {
	ID   string          `json:"id"`
	Data EnhancedCapture `json:"data"`
}

// ExportDataResponse answers an export-data request. Data is kept opaque;
// the export writer serializes it verbatim.
type ExportDataResponse struct {
	ID   string          `json:"id"`
	Data json.RawMessage `json:"data"`
}

// AlertEvent is an alert notification from the collection side.
type AlertEvent struct {
	ID        string `json:"id"`
	Kind      string `json:"type"`
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"`
}

func (TrackerUpdate) isEvent()           {}
func (ContactAdded) isEvent()            {}
func (ContactRemoved) isEvent()          {}
func (TrackedContacts) isEvent()         {}
func (ProfilePic) isEvent()              {}
func (ContactName) isEvent()             {}
func (ErrorEvent) isEvent()              {}
func (ProbeMethodChanged) isEvent()      {}
func (StatisticsResponse) isEvent()      {}
func (EnhancedCaptureResponse) isEvent() {}
func (ExportDataResponse) isEvent()      {}
func (AlertEvent) isEvent()              {}
