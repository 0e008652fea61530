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

package correlator

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/presenceradar/presenceradar/pkg/logger"
	"github.com/presenceradar/presenceradar/pkg/models"
)

type recordingSender struct {
	mu   sync.Mutex
	cmds []models.Command
	err  error
	sent chan models.Command
}

func newRecordingSender() *recordingSender {
	return &recordingSender{sent: make(chan models.Command, 16)}
}

func (s *recordingSender) Send(cmd models.Command) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return s.err
	}

	s.cmds = append(s.cmds, cmd)
	s.sent <- cmd

	return nil
}

func (s *recordingSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.cmds)
}

type fakeTicker struct {
	ch chan time.Time
}

func (f *fakeTicker) Chan() <-chan time.Time { return f.ch }
func (f *fakeTicker) Stop()                  {}

type fakeClock struct {
	mu         sync.Mutex
	now        time.Time
	tickers    []*fakeTicker
	registered chan struct{}
}

func newFakeClock(now time.Time) *fakeClock {
	return &fakeClock{now: now, registered: make(chan struct{}, 8)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Ticker(time.Duration) Ticker {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := &fakeTicker{ch: make(chan time.Time, 1)}
	c.tickers = append(c.tickers, t)
	c.registered <- struct{}{}

	return t
}

func (c *fakeClock) tick() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, t := range c.tickers {
		t.ch <- c.now
	}
}

func newTestCorrelator(t *testing.T) (*Correlator, *recordingSender, *fakeClock) {
	t.Helper()

	sender := newRecordingSender()
	clock := newFakeClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	c := New(sender, clock, logger.NewTestLogger())

	t.Cleanup(c.Stop)

	return c, sender, clock
}

func TestRequestOnceDeliversSingleResponse(t *testing.T) {
	c, sender, _ := newTestCorrelator(t)

	var delivered []any

	_, err := c.RequestOnce("t1", models.RequestStatistics, func(payload any) {
		delivered = append(delivered, payload)
	})
	require.NoError(t, err)
	assert.Equal(t, 1, sender.count())
	assert.Equal(t, "get-statistics", sender.cmds[0].CommandName())

	assert.True(t, c.Route("t1", models.RequestStatistics, models.Statistics{SessionCount: 2}))
	require.Len(t, delivered, 1)

	// A second response for the same key has no pending request left.
	assert.False(t, c.Route("t1", models.RequestStatistics, models.Statistics{}))
	assert.Len(t, delivered, 1)
	assert.Equal(t, 0, c.PendingCount())
}

func TestRequestOnceSupersedesPrior(t *testing.T) {
	c, _, _ := newTestCorrelator(t)

	var first, second int

	h1, err := c.RequestOnce("t1", models.RequestStatistics, func(any) { first++ })
	require.NoError(t, err)

	_, err = c.RequestOnce("t1", models.RequestStatistics, func(any) { second++ })
	require.NoError(t, err)

	assert.Equal(t, 1, c.PendingCount())

	// The response resolves the superseding request, never the first.
	require.True(t, c.Route("t1", models.RequestStatistics, models.Statistics{}))
	assert.Equal(t, 0, first)
	assert.Equal(t, 1, second)

	// Cancelling the stale handle must not disturb anything.
	h1.Cancel()
	assert.Equal(t, 0, c.PendingCount())
}

func TestCancelledRequestIgnoresLateResponse(t *testing.T) {
	c, _, _ := newTestCorrelator(t)

	var delivered int

	h, err := c.RequestOnce("t1", models.RequestStatistics, func(any) { delivered++ })
	require.NoError(t, err)

	h.Cancel()
	h.Cancel() // idempotent

	assert.False(t, c.Route("t1", models.RequestStatistics, models.Statistics{}))
	assert.Zero(t, delivered)
}

func TestRequestOnceSendFailure(t *testing.T) {
	c, sender, _ := newTestCorrelator(t)
	sender.err = errors.New("not connected")

	h, err := c.RequestOnce("t1", models.RequestStatistics, func(any) {})
	require.Error(t, err)
	assert.Nil(t, h)
	assert.Equal(t, 0, c.PendingCount())
}

func TestPollResendsOnTick(t *testing.T) {
	c, sender, clock := newTestCorrelator(t)

	h, err := c.Poll("t1", models.RequestEnhancedCapture, time.Second, func(any) {})
	require.NoError(t, err)

	// Initial send happens synchronously; the poll goroutine registers its
	// ticker afterwards, so wait for that before driving the clock.
	<-sender.sent
	<-clock.registered

	clock.tick()
	<-sender.sent

	clock.tick()
	<-sender.sent

	assert.Equal(t, 3, sender.count())

	h.Cancel()
}

func TestPollDeliversEveryResponse(t *testing.T) {
	c, sender, _ := newTestCorrelator(t)

	var delivered int

	h, err := c.Poll("t1", models.RequestEnhancedCapture, time.Second, func(any) { delivered++ })
	require.NoError(t, err)

	<-sender.sent

	assert.True(t, c.Route("t1", models.RequestEnhancedCapture, models.EnhancedCapture{}))
	assert.True(t, c.Route("t1", models.RequestEnhancedCapture, models.EnhancedCapture{}))
	assert.Equal(t, 2, delivered)
	assert.Equal(t, 1, c.PendingCount())

	h.Cancel()

	assert.False(t, c.Route("t1", models.RequestEnhancedCapture, models.EnhancedCapture{}))
	assert.Equal(t, 2, delivered)
}

func TestCancelTargetRevokesAllKinds(t *testing.T) {
	c, sender, _ := newTestCorrelator(t)

	_, err := c.RequestOnce("t1", models.RequestStatistics, func(any) {})
	require.NoError(t, err)

	_, err = c.Poll("t1", models.RequestEnhancedCapture, time.Second, func(any) {})
	require.NoError(t, err)

	_, err = c.RequestOnce("t2", models.RequestStatistics, func(any) {})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		<-sender.sent
	}

	c.CancelTarget("t1")

	assert.Equal(t, 1, c.PendingCount())
	assert.False(t, c.Route("t1", models.RequestStatistics, models.Statistics{}))
	assert.True(t, c.Route("t2", models.RequestStatistics, models.Statistics{}))
}

func TestStopCancelsEverything(t *testing.T) {
	c, sender, _ := newTestCorrelator(t)

	_, err := c.Poll("t1", models.RequestEnhancedCapture, time.Second, func(any) {})
	require.NoError(t, err)

	<-sender.sent

	c.Stop()

	assert.Equal(t, 0, c.PendingCount())
}

func TestUnknownRequestKindRejected(t *testing.T) {
	c, _, _ := newTestCorrelator(t)

	_, err := c.RequestOnce("t1", models.RequestKind("bogus"), func(any) {})
	assert.Error(t, err)
}
