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

// Package models defines the shared data model for presenceradar.
package models

import (
	"time"
)

// TargetRecord is the reconciled state of one tracked target. The tracker
// store owns every record exclusively; reads cross a deep-copy boundary.
type TargetRecord struct {
	ID            string        `json:"id"`
	DisplayLabel  string        `json:"display_label"`
	Platform      Platform      `json:"platform"`
	History       []SamplePoint `json:"history"`
	Devices       []DeviceState `json:"devices"`
	DeviceCount   int           `json:"device_count"`
	Presence      *string       `json:"presence,omitempty"`
	ProfilePicRef *string       `json:"profile_pic,omitempty"`
	Enrichment    Enrichment    `json:"enrichment"`
}

// DeviceState is a snapshot of one physical device's probe state. Array
// order reflects transport-reported order.
type DeviceState struct {
	ID    string  `json:"id"`
	State string  `json:"state"`
	RTT   float64 `json:"rtt"`
	Avg   float64 `json:"avg"`
}

// SamplePoint is one appended time-series sample. Immutable after append;
// the timestamp is assigned at merge time, not taken from the sender.
type SamplePoint struct {
	RTT       float64   `json:"rtt"`
	Avg       float64   `json:"avg"`
	Median    float64   `json:"median"`
	Threshold float64   `json:"threshold"`
	State     string    `json:"state"`
	Timestamp time.Time `json:"timestamp"`
}

// Enrichment bundles the on-demand capture fields. Each field arrives
// independently and may stay nil forever.
type Enrichment struct {
	PresenceHistory []PresenceSample  `json:"presence_history,omitempty"`
	Typing          *TypingStatus     `json:"typing_status,omitempty"`
	LastSeen        *LastSeen         `json:"last_seen,omitempty"`
	ConnectionInfo  []ConnectionEntry `json:"connection_info,omitempty"`
}

// PresenceSample is one observed presence transition.
type PresenceSample struct {
	Presence  string `json:"presence"`
	Timestamp int64  `json:"timestamp"`
	DeviceID  string `json:"id"`
}

// TypingStatus reports whether the target was composing at capture time.
type TypingStatus struct {
	IsTyping  bool  `json:"isTyping"`
	Timestamp int64 `json:"timestamp"`
}

// LastSeen is the most recent observed online moment.
type LastSeen struct {
	Timestamp int64  `json:"timestamp"`
	DeviceID  string `json:"id"`
}

// ConnectionEntry describes one device-level connection observation.
type ConnectionEntry struct {
	DeviceID       string `json:"id"`
	LastActive     int64  `json:"lastActive"`
	ConnectionType string `json:"connectionType,omitempty"`
}

// Clone returns a deep copy of the record. Slices and pointer fields are
// duplicated so callers can never reach back into store-owned memory.
func (r *TargetRecord) Clone() *TargetRecord {
	if r == nil {
		return nil
	}

	out := *r

	if r.History != nil {
		out.History = make([]SamplePoint, len(r.History))
		copy(out.History, r.History)
	}

	if r.Devices != nil {
		out.Devices = make([]DeviceState, len(r.Devices))
		copy(out.Devices, r.Devices)
	}

	out.Presence = cloneStringPtr(r.Presence)
	out.ProfilePicRef = cloneStringPtr(r.ProfilePicRef)
	out.Enrichment = r.Enrichment.Clone()

	return &out
}

// Clone returns a deep copy of the enrichment bundle.
func (e Enrichment) Clone() Enrichment {
	out := e

	if e.PresenceHistory != nil {
		out.PresenceHistory = make([]PresenceSample, len(e.PresenceHistory))
		copy(out.PresenceHistory, e.PresenceHistory)
	}

	if e.ConnectionInfo != nil {
		out.ConnectionInfo = make([]ConnectionEntry, len(e.ConnectionInfo))
		copy(out.ConnectionInfo, e.ConnectionInfo)
	}

	if e.Typing != nil {
		typing := *e.Typing
		out.Typing = &typing
	}

	if e.LastSeen != nil {
		lastSeen := *e.LastSeen
		out.LastSeen = &lastSeen
	}

	return out
}

func cloneStringPtr(s *string) *string {
	if s == nil {
		return nil
	}

	v := *s

	return &v
}
