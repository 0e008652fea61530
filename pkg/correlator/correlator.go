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

// Package correlator matches asynchronous requests to their responses by
// target id and request kind. At most one request per (target, kind) is in
// flight; cancellation is structural via the Handle returned on issue.
package correlator

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/presenceradar/presenceradar/pkg/logger"
	"github.com/presenceradar/presenceradar/pkg/models"
)

// DefaultPollInterval is the re-send interval for polling requests.
const DefaultPollInterval = 5 * time.Second

var errUnknownRequestKind = errors.New("unknown request kind")

// CommandSender issues outbound commands on the event channel.
type CommandSender interface {
	Send(cmd models.Command) error
}

type key struct {
	targetID string
	kind     models.RequestKind
}

type mode int

const (
	modeOneShot mode = iota
	modePolling
)

type pending struct {
	key     key
	token   uuid.UUID
	mode    mode
	deliver func(payload any)
	done    chan struct{}
}

// Correlator tracks pending requests and routes inbound responses to their
// observers. All delivery happens on the caller of Route, which is the
// dispatch goroutine; polling goroutines only re-send commands.
type Correlator struct {
	mu      sync.Mutex
	pending map[key]*pending
	sender  CommandSender
	clock   Clock
	wg      sync.WaitGroup
	logger  logger.Logger
}

// New creates a Correlator. A nil clock defaults to the real clock.
func New(sender CommandSender, clock Clock, log logger.Logger) *Correlator {
	if clock == nil {
		clock = realClock{}
	}

	return &Correlator{
		pending: make(map[key]*pending),
		sender:  sender,
		clock:   clock,
		logger:  log,
	}
}

// Handle cancels one issued request. Dropping the handle without calling
// Cancel leaks the registration until the request resolves or the target is
// removed, so panel teardown must call Cancel.
type Handle struct {
	c     *Correlator
	key   key
	token uuid.UUID
	once  sync.Once
}

// Cancel revokes the request: the poll timer stops and any response
// arriving later is ignored. Idempotent, and safe to call after the request
// was superseded or already resolved.
func (h *Handle) Cancel() {
	h.once.Do(func() {
		h.c.deregister(h.key, h.token)
	})
}

// RequestOnce sends the request for (targetID, kind) and registers for
// exactly one matching response. A prior in-flight request for the same key
// is cancelled and replaced; its late responses are ignored. No timeout is
// imposed here, so callers wanting one must cancel via the handle.
func (c *Correlator) RequestOnce(targetID string, kind models.RequestKind, deliver func(payload any)) (*Handle, error) {
	cmd, err := commandFor(targetID, kind)
	if err != nil {
		return nil, err
	}

	p := c.register(targetID, kind, modeOneShot, deliver)

	if err := c.sender.Send(cmd); err != nil {
		c.deregister(p.key, p.token)
		return nil, err
	}

	return &Handle{c: c, key: p.key, token: p.token}, nil
}

// Poll sends the request immediately and re-sends it every interval until
// the handle is cancelled. Every matching response is delivered to the
// observer; delivery is not one-time.
func (c *Correlator) Poll(
	targetID string, kind models.RequestKind, interval time.Duration, deliver func(payload any)) (*Handle, error) {
	cmd, err := commandFor(targetID, kind)
	if err != nil {
		return nil, err
	}

	if interval <= 0 {
		interval = DefaultPollInterval
	}

	p := c.register(targetID, kind, modePolling, deliver)

	if err := c.sender.Send(cmd); err != nil {
		c.deregister(p.key, p.token)
		return nil, err
	}

	c.wg.Add(1)

	go c.pollLoop(p, cmd, interval)

	return &Handle{c: c, key: p.key, token: p.token}, nil
}

func (c *Correlator) pollLoop(p *pending, cmd models.Command, interval time.Duration) {
	defer c.wg.Done()

	ticker := c.clock.Ticker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.done:
			return
		case <-ticker.Chan():
			if err := c.sender.Send(cmd); err != nil {
				c.logger.Warn().
					Err(err).
					Str("target_id", p.key.targetID).
					Str("kind", string(p.key.kind)).
					Msg("Poll re-send failed")
			}
		}
	}
}

// Route delivers an inbound response to the pending request for (targetID,
// kind). Responses with no active pending request, including late arrivals
// for a cancelled or superseded request, are dropped. One-shot requests are
// deregistered before delivery.
func (c *Correlator) Route(targetID string, kind models.RequestKind, payload any) bool {
	k := key{targetID: targetID, kind: kind}

	c.mu.Lock()

	p, ok := c.pending[k]
	if !ok {
		c.mu.Unlock()

		c.logger.Debug().
			Str("target_id", targetID).
			Str("kind", string(kind)).
			Msg("Dropping response with no pending request")

		return false
	}

	if p.mode == modeOneShot {
		delete(c.pending, k)
		close(p.done)
	}

	deliver := p.deliver

	c.mu.Unlock()

	deliver(payload)

	return true
}

// CancelTarget revokes every pending request for a removed target.
func (c *Correlator) CancelTarget(targetID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for k, p := range c.pending {
		if k.targetID == targetID {
			delete(c.pending, k)
			close(p.done)
		}
	}
}

// Stop cancels everything and waits for poll goroutines to exit.
func (c *Correlator) Stop() {
	c.mu.Lock()

	for k, p := range c.pending {
		delete(c.pending, k)
		close(p.done)
	}

	c.mu.Unlock()

	c.wg.Wait()
}

// PendingCount reports the number of registered requests.
func (c *Correlator) PendingCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.pending)
}

func (c *Correlator) register(targetID string, kind models.RequestKind, m mode, deliver func(any)) *pending {
	k := key{targetID: targetID, kind: kind}

	p := &pending{
		key:     k,
		token:   uuid.New(),
		mode:    m,
		deliver: deliver,
		done:    make(chan struct{}),
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if prior, ok := c.pending[k]; ok {
		close(prior.done)

		c.logger.Debug().
			Str("target_id", targetID).
			Str("kind", string(kind)).
			Str("superseded", prior.token.String()).
			Msg("Replacing in-flight request")
	}

	c.pending[k] = p

	return p
}

// deregister removes the pending request only if it is still the one the
// token belongs to; a superseding request stays registered.
func (c *Correlator) deregister(k key, token uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.pending[k]
	if !ok || p.token != token {
		return
	}

	delete(c.pending, k)
	close(p.done)
}

func commandFor(targetID string, kind models.RequestKind) (models.Command, error) {
	switch kind {
	case models.RequestStatistics:
		return models.GetStatistics{ID: targetID}, nil
	case models.RequestEnhancedCapture:
		return models.GetEnhancedCapture{ID: targetID}, nil
	case models.RequestExportData:
		return models.ExportData{ID: targetID}, nil
	default:
		return nil, errUnknownRequestKind
	}
}
