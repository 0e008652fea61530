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
	"context"
	"sync"
	"time"

	"github.com/presenceradar/presenceradar/pkg/alerts"
	"github.com/presenceradar/presenceradar/pkg/logger"
	"github.com/presenceradar/presenceradar/pkg/models"
)

// noticeTTL is how long a transport-reported error stays visible.
const noticeTTL = 3 * time.Second

// CommandSender issues outbound commands on the event channel.
type CommandSender interface {
	Send(cmd models.Command) error
}

// ResponseRouter receives correlated responses and target-removal cascades.
type ResponseRouter interface {
	Route(targetID string, kind models.RequestKind, payload any) bool
	CancelTarget(targetID string)
}

// Engine is the dispatch path: it consumes the inbound event stream in
// arrival order and routes each event to the store, the correlator, or the
// alert ring. All store mutation happens here, one event at a time.
type Engine struct {
	store  *Store
	ring   *alerts.Ring
	router ResponseRouter
	sender CommandSender
	clock  Clock
	logger logger.Logger

	historyLimit int

	mu          sync.Mutex
	probeMethod models.ProbeMethod
	noticeMsg   string
	noticeUntil time.Time
}

// EngineOptions configures an Engine.
type EngineOptions struct {
	// HistoryLimit caps samples per target in snapshots; <= 0 uses the
	// default.
	HistoryLimit int
}

// NewEngine wires the dispatch path. router may be nil when no correlated
// requests are ever issued (responses are then dropped).
func NewEngine(
	store *Store,
	ring *alerts.Ring,
	router ResponseRouter,
	sender CommandSender,
	clock Clock,
	log logger.Logger,
	opts EngineOptions,
) *Engine {
	if clock == nil {
		clock = realClock{}
	}

	return &Engine{
		store:        store,
		ring:         ring,
		router:       router,
		sender:       sender,
		clock:        clock,
		logger:       log,
		historyLimit: opts.HistoryLimit,
		probeMethod:  models.ProbeMethodDelete,
	}
}

// Run consumes events until the channel closes or the context is done. It
// requests the tracked set once on entry, mirroring a fresh connect.
func (e *Engine) Run(ctx context.Context, events <-chan models.Event) error {
	if err := e.RequestTrackedTargets(); err != nil {
		e.logger.Warn().Err(err).Msg("Initial tracked-set request failed")
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				e.logger.Info().Msg("Event channel closed, dispatch loop exiting")
				return nil
			}

			e.Handle(ev)
		}
	}
}

// Handle dispatches a single event. Exported so tests and embedders can
// drive the engine without a live transport.
func (e *Engine) Handle(ev models.Event) {
	switch v := ev.(type) {
	case models.TrackerUpdate:
		e.store.ApplyUpdate(v)
	case models.ContactAdded:
		e.store.Add(v.ID, Seed{DisplayLabel: v.Number, Platform: v.Platform})
	case models.ContactRemoved:
		e.store.Remove(v.ID)

		if e.router != nil {
			e.router.CancelTarget(v.ID)
		}
	case models.TrackedContacts:
		e.store.Reconcile(v.Contacts)
	case models.ProfilePic:
		e.store.SetProfilePic(v.ID, v.URL)
	case models.ContactName:
		e.store.SetDisplayLabel(v.ID, v.Name)
	case models.ErrorEvent:
		e.setNotice(v.Message)
		e.logger.Warn().Str("target_id", v.ID).Str("message", v.Message).Msg("Transport reported error")
	case models.ProbeMethodChanged:
		e.mu.Lock()
		e.probeMethod = v.Method
		e.mu.Unlock()
	case models.StatisticsResponse:
		e.route(v.ID, models.RequestStatistics, v.Statistics)
	case models.EnhancedCaptureResponse:
		e.route(v.ID, models.RequestEnhancedCapture, v.Data)
	case models.ExportDataResponse:
		e.route(v.ID, models.RequestExportData, v.Data)
	case models.AlertEvent:
		e.pushAlert(v)
	default:
		e.logger.Warn().Type("event", ev).Msg("Unhandled event variant")
	}
}

func (e *Engine) route(targetID string, kind models.RequestKind, payload any) {
	if e.router == nil {
		return
	}

	e.router.Route(targetID, kind, payload)
}

func (e *Engine) pushAlert(ev models.AlertEvent) {
	ts := e.clock.Now()
	if ev.Timestamp > 0 {
		ts = time.UnixMilli(ev.Timestamp)
	}

	e.ring.Push(models.AlertEntry{
		TargetID:  ev.ID,
		Kind:      ev.Kind,
		Message:   ev.Message,
		Timestamp: ts,
	})
}

// AddTarget asks the collection side to start tracking a number. The record
// itself is created when the contact-added event comes back.
func (e *Engine) AddTarget(number string, platform models.Platform) error {
	return e.send(models.AddContact{Number: number, Platform: platform})
}

// RemoveTarget asks the collection side to stop tracking. Removal of local
// state happens on the contact-removed echo.
func (e *Engine) RemoveTarget(id string) error {
	return e.send(models.RemoveContact{ID: id})
}

// SetProbeMethod switches the process-wide probing mode.
func (e *Engine) SetProbeMethod(method models.ProbeMethod) error {
	return e.send(models.SetProbeMethod{Method: method})
}

// RequestTrackedTargets asks for the authoritative tracked set.
func (e *Engine) RequestTrackedTargets() error {
	return e.send(models.GetTrackedContacts{})
}

// send fails fast when the transport is unavailable, surfacing the failure
// as a transient notice instead of an unhandled fault.
func (e *Engine) send(cmd models.Command) error {
	if err := e.sender.Send(cmd); err != nil {
		e.setNotice("Not connected: " + err.Error())
		e.logger.Warn().Err(err).Str("command", cmd.CommandName()).Msg("Command send failed")

		return err
	}

	return nil
}

// Snapshot returns the render-ready target list.
func (e *Engine) Snapshot() []TargetView {
	return e.store.Snapshot(e.historyLimit)
}

// Alerts returns the current alert list, most recent first.
func (e *Engine) Alerts() []models.AlertEntry {
	return e.ring.Snapshot()
}

// DismissAlert drops one alert by its local id.
func (e *Engine) DismissAlert(id int64) {
	e.ring.Remove(id)
}

// ClearAlerts empties the alert list.
func (e *Engine) ClearAlerts() {
	e.ring.Clear()
}

// ProbeMethod returns the last echoed probing mode.
func (e *Engine) ProbeMethod() models.ProbeMethod {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.probeMethod
}

// Notice returns the current transient message, or false once it expired.
func (e *Engine) Notice() (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.noticeMsg == "" || !e.clock.Now().Before(e.noticeUntil) {
		return "", false
	}

	return e.noticeMsg, true
}

func (e *Engine) setNotice(msg string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.noticeMsg = msg
	e.noticeUntil = e.clock.Now().Add(noticeTTL)
}
