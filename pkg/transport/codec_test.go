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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/presenceradar/presenceradar/pkg/models"
)

func TestDecodeTrackerUpdateDistinguishesAbsentFields(t *testing.T) {
	env := Envelope{
		Event: "tracker-update",
		Data:  json.RawMessage(`{"id":"t1","deviceCount":2,"devices":[{"id":"d1","state":"Online","rtt":30,"avg":35}],"median":40,"threshold":60}`),
	}

	ev, err := DecodeEvent(env)
	require.NoError(t, err)

	update, ok := ev.(models.TrackerUpdate)
	require.True(t, ok)

	assert.Equal(t, "t1", update.ID)
	assert.Nil(t, update.Presence)
	require.NotNil(t, update.DeviceCount)
	assert.Equal(t, 2, *update.DeviceCount)
	require.NotNil(t, update.Median)
	assert.Equal(t, 40.0, *update.Median)
	require.Len(t, update.Devices, 1)
	assert.Equal(t, 30.0, update.Devices[0].RTT)
}

func TestDecodeBareStringPayloads(t *testing.T) {
	ev, err := DecodeEvent(Envelope{Event: "contact-removed", Data: json.RawMessage(`"t1@s.whatsapp.net"`)})
	require.NoError(t, err)
	assert.Equal(t, models.ContactRemoved{ID: "t1@s.whatsapp.net"}, ev)

	ev, err = DecodeEvent(Envelope{Event: "probe-method", Data: json.RawMessage(`"reaction"`)})
	require.NoError(t, err)
	assert.Equal(t, models.ProbeMethodChanged{Method: models.ProbeMethodReaction}, ev)
}

func TestDecodeTrackedContactsBareArray(t *testing.T) {
	env := Envelope{
		Event: "tracked-contacts",
		Data:  json.RawMessage(`[{"id":"t1","platform":"whatsapp"},{"id":"t2","platform":"signal"}]`),
	}

	ev, err := DecodeEvent(env)
	require.NoError(t, err)

	set, ok := ev.(models.TrackedContacts)
	require.True(t, ok)
	require.Len(t, set.Contacts, 2)
	assert.Equal(t, models.PlatformSignal, set.Contacts[1].Platform)
}

func TestDecodeAlertEvent(t *testing.T) {
	env := Envelope{
		Event: "alert",
		Data:  json.RawMessage(`{"id":"t1","type":"state-change","message":"came online","timestamp":1700000000000}`),
	}

	ev, err := DecodeEvent(env)
	require.NoError(t, err)

	alert, ok := ev.(models.AlertEvent)
	require.True(t, ok)
	assert.Equal(t, models.AlertKindStateChange, alert.Kind)
	assert.Equal(t, int64(1700000000000), alert.Timestamp)
}

func TestDecodeUnknownEvent(t *testing.T) {
	_, err := DecodeEvent(Envelope{Event: "mystery", Data: json.RawMessage(`{}`)})
	assert.ErrorIs(t, err, ErrUnknownEvent)

	_, err = DecodeEvent(Envelope{})
	assert.Error(t, err)
}

func TestEncodeCommandBareValues(t *testing.T) {
	tests := []struct {
		name     string
		cmd      models.Command
		event    string
		wantData string
	}{
		{"remove", models.RemoveContact{ID: "t1"}, "remove-contact", `"t1"`},
		{"statistics", models.GetStatistics{ID: "t1"}, "get-statistics", `"t1"`},
		{"capture", models.GetEnhancedCapture{ID: "t1"}, "get-enhanced-capture", `"t1"`},
		{"export", models.ExportData{ID: "t1"}, "export-data", `"t1"`},
		{"probe", models.SetProbeMethod{Method: models.ProbeMethodDelete}, "set-probe-method", `"delete"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, err := EncodeCommand(tt.cmd)
			require.NoError(t, err)
			assert.Equal(t, tt.event, env.Event)
			assert.JSONEq(t, tt.wantData, string(env.Data))
		})
	}
}

func TestEncodeGetTrackedContactsHasNoPayload(t *testing.T) {
	env, err := EncodeCommand(models.GetTrackedContacts{})
	require.NoError(t, err)
	assert.Equal(t, "get-tracked-contacts", env.Event)
	assert.Nil(t, env.Data)
}

func TestEncodeAddContactObject(t *testing.T) {
	env, err := EncodeCommand(models.AddContact{Number: "49170", Platform: models.PlatformSignal})
	require.NoError(t, err)
	assert.Equal(t, "add-contact", env.Event)
	assert.JSONEq(t, `{"number":"49170","platform":"signal"}`, string(env.Data))
}

func TestEnvelopeRoundTrip(t *testing.T) {
	env, err := EncodeCommand(models.RemoveContact{ID: "t1"})
	require.NoError(t, err)

	raw, err := json.Marshal(env)
	require.NoError(t, err)
	assert.JSONEq(t, `{"event":"remove-contact","data":"t1"}`, string(raw))
}
