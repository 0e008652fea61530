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

package transport

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/presenceradar/presenceradar/pkg/models"
)

// Envelope is the wire frame in both directions: an event name plus its
// payload.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

var (
	// ErrUnknownEvent marks inbound event names outside the known set.
	// The read loop logs and skips them.
	ErrUnknownEvent = errors.New("unknown event name")

	errEmptyEventName = errors.New("empty event name")
)

// DecodeEvent maps a wire envelope onto its event variant. Payload shapes
// follow the collection protocol: contact-removed and probe-method carry a
// bare string, tracked-contacts a bare array, everything else an object.
func DecodeEvent(env Envelope) (models.Event, error) {
	if env.Event == "" {
		return nil, errEmptyEventName
	}

	switch env.Event {
	case "tracker-update":
		return decodeInto[models.TrackerUpdate](env.Data)
	case "contact-added":
		return decodeInto[models.ContactAdded](env.Data)
	case "contact-removed":
		var id string
		if err := json.Unmarshal(env.Data, &id); err != nil {
			return nil, fmt.Errorf("decode contact-removed: %w", err)
		}

		return models.ContactRemoved{ID: id}, nil
	case "tracked-contacts":
		var contacts []models.TrackedContact
		if err := json.Unmarshal(env.Data, &contacts); err != nil {
			return nil, fmt.Errorf("decode tracked-contacts: %w", err)
		}

		return models.TrackedContacts{Contacts: contacts}, nil
	case "profile-pic":
		return decodeInto[models.ProfilePic](env.Data)
	case "contact-name":
		return decodeInto[models.ContactName](env.Data)
	case "error":
		return decodeInto[models.ErrorEvent](env.Data)
	case "probe-method":
		var method models.ProbeMethod
		if err := json.Unmarshal(env.Data, &method); err != nil {
			return nil, fmt.Errorf("decode probe-method: %w", err)
		}

		return models.ProbeMethodChanged{Method: method}, nil
	case "statistics":
		return decodeInto[models.StatisticsResponse](env.Data)
	case "enhanced-capture-response":
		return decodeInto[models.EnhancedCaptureResponse](env.Data)
	case "export-data-response":
		return decodeInto[models.ExportDataResponse](env.Data)
	case "alert":
		return decodeInto[models.AlertEvent](env.Data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, env.Event)
	}
}

func decodeInto[T models.Event](data json.RawMessage) (models.Event, error) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("decode %T: %w", v, err)
	}

	return v, nil
}

// EncodeCommand wraps an outbound command in its wire envelope. Single-id
// commands and the probe-method setter carry bare values, matching the
// collection protocol.
func EncodeCommand(cmd models.Command) (Envelope, error) {
	var (
		payload any
		empty   bool
	)

	switch v := cmd.(type) {
	case models.GetTrackedContacts:
		empty = true
	case models.RemoveContact:
		payload = v.ID
	case models.GetStatistics:
		payload = v.ID
	case models.GetEnhancedCapture:
		payload = v.ID
	case models.ExportData:
		payload = v.ID
	case models.SetProbeMethod:
		payload = v.Method
	default:
		payload = cmd
	}

	env := Envelope{Event: cmd.CommandName()}

	if !empty {
		data, err := json.Marshal(payload)
		if err != nil {
			return Envelope{}, fmt.Errorf("encode %s: %w", cmd.CommandName(), err)
		}

		env.Data = data
	}

	return env, nil
}
