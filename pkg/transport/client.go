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

// Package transport implements the bidirectional event channel to the
// collection server over a WebSocket connection.
package transport

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/presenceradar/presenceradar/pkg/logger"
	"github.com/presenceradar/presenceradar/pkg/models"
)

// ErrNotConnected is returned by Send once the connection is gone. Commands
// fail fast; nothing is queued for a later reconnect.
var ErrNotConnected = errors.New("transport not connected")

const eventBufferSize = 256

// Client is one WebSocket event channel. Inbound events arrive on Events()
// in wire order; outbound commands go through Send. The events channel is
// closed when the connection dies, which ends the dispatch loop consuming
// it.
type Client struct {
	conn   *websocket.Conn
	events chan models.Event
	done   chan struct{}
	logger logger.Logger

	writeMu sync.Mutex // gorilla allows one concurrent writer

	mu     sync.Mutex
	closed bool
}

// Dial connects to the collection server and starts the read loop.
func Dial(ctx context.Context, url string, log logger.Logger) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}

	log.Info().Str("url", url).Msg("Event channel connected")

	c := &Client{
		conn:   conn,
		events: make(chan models.Event, eventBufferSize),
		done:   make(chan struct{}),
		logger: log,
	}

	go c.readLoop()

	return c, nil
}

// Events returns the inbound event stream. The channel closes when the
// connection is lost or Close is called.
func (c *Client) Events() <-chan models.Event {
	return c.events
}

// Send encodes and writes one outbound command. It fails fast with
// ErrNotConnected after the connection is gone.
func (c *Client) Send(cmd models.Command) error {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()

	if closed {
		return ErrNotConnected
	}

	env, err := EncodeCommand(cmd)
	if err != nil {
		return err
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if err := c.conn.WriteJSON(env); err != nil {
		return fmt.Errorf("%w: %w", ErrNotConnected, err)
	}

	c.logger.Debug().Str("command", env.Event).Msg("Command sent")

	return nil
}

// Close tears down the connection. Idempotent.
func (c *Client) Close() error {
	c.mu.Lock()

	if c.closed {
		c.mu.Unlock()
		return nil
	}

	c.closed = true
	close(c.done)
	c.mu.Unlock()

	return c.conn.Close()
}

func (c *Client) readLoop() {
	defer func() {
		c.mu.Lock()
		c.closed = true
		c.mu.Unlock()

		_ = c.conn.Close()
		close(c.events)
	}()

	for {
		var env Envelope

		if err := c.conn.ReadJSON(&env); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Error().Err(err).Msg("Event channel closed unexpectedly")
			} else {
				c.logger.Info().Err(err).Msg("Event channel closed")
			}

			return
		}

		if env.Event == "ping" {
			continue
		}

		ev, err := DecodeEvent(env)
		if err != nil {
			c.logger.Warn().Err(err).Str("event", env.Event).Msg("Skipping undecodable event")
			continue
		}

		// A full buffer with the consumer gone must not wedge this
		// goroutine; Close unblocks the send via done.
		select {
		case c.events <- ev:
		case <-c.done:
			c.logger.Warn().Str("event", env.Event).Msg("Dropping event, channel closed")
			return
		}
	}
}
