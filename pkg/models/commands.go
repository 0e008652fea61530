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

// Command is the closed set of outbound commands sent to the collection
// side over the event channel.
type Command interface {
	// CommandName is the wire event name the payload is sent under.
	CommandName() string
}

// GetTrackedContacts requests the authoritative tracked set.
type GetTrackedContacts struct{}

// AddContact registers a new target for tracking.
type AddContact struct {
	Number   string   `json:"number"`
	Platform Platform `json:"platform"`
}

// RemoveContact stops tracking a target.
type RemoveContact struct {
	ID string `json:"id"`
}

// SetProbeMethod switches the process-wide probing mode.
type SetProbeMethod struct {
	Method ProbeMethod `json:"method"`
}

// GetStatistics requests the activity summary for one target.
type GetStatistics struct {
	ID string `json:"id"`
}

// GetEnhancedCapture requests a deep capture for one target.
type GetEnhancedCapture struct {
	ID string `json:"id"`
}

// ExportData requests a full JSON export of one target's collected data.
type ExportData struct {
	ID string `json:"id"`
}

func (GetTrackedContacts) CommandName() string { return "get-tracked-contacts" }
func (AddContact) CommandName() string         { return "add-contact" }
func (RemoveContact) CommandName() string      { return "remove-contact" }
func (SetProbeMethod) CommandName() string     { return "set-probe-method" }
func (GetStatistics) CommandName() string      { return "get-statistics" }
func (GetEnhancedCapture) CommandName() string { return "get-enhanced-capture" }
func (ExportData) CommandName() string         { return "export-data" }
