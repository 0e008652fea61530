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

// Package tui renders the live dashboard. It only ever reads snapshot
// copies produced by the read model; nothing here can reach store-owned
// state.
package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/presenceradar/presenceradar/pkg/correlator"
	"github.com/presenceradar/presenceradar/pkg/export"
	"github.com/presenceradar/presenceradar/pkg/logger"
	"github.com/presenceradar/presenceradar/pkg/models"
	"github.com/presenceradar/presenceradar/pkg/tracker"
)

const refreshInterval = time.Second

// Options configures the dashboard.
type Options struct {
	// ExportDir is where export files are written. Empty uses the
	// working directory.
	ExportDir string

	// CaptureInterval is the enhanced-capture poll interval; <= 0 uses
	// the correlator default.
	CaptureInterval time.Duration
}

// Dashboard owns the terminal UI lifecycle.
type Dashboard struct {
	engine  *tracker.Engine
	corr    *correlator.Correlator
	opts    Options
	logger  logger.Logger
	program *tea.Program
}

// New creates a dashboard over the engine and correlator.
func New(engine *tracker.Engine, corr *correlator.Correlator, opts Options, log logger.Logger) *Dashboard {
	return &Dashboard{engine: engine, corr: corr, opts: opts, logger: log}
}

// Run blocks until the user quits or the context is cancelled.
func (d *Dashboard) Run(ctx context.Context) error {
	m := newModel(d)
	d.program = tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen())

	d.logger.Info().Msg("Dashboard started")

	_, err := d.program.Run()

	d.logger.Info().Err(err).Msg("Dashboard stopped")

	return err
}

// send forwards an asynchronous result into the update loop.
func (d *Dashboard) send(msg tea.Msg) {
	if d.program != nil {
		d.program.Send(msg)
	}
}

type tickMsg time.Time

type statsMsg struct {
	targetID string
	stats    models.Statistics
}

type captureMsg struct {
	targetID string
	capture  models.EnhancedCapture
}

type exportDoneMsg struct {
	targetID string
	path     string
	err      error
}

type model struct {
	dash *Dashboard

	targets []tracker.TargetView
	alerts  []models.AlertEntry
	notice  string
	probe   models.ProbeMethod

	selected int
	privacy  bool
	copyMsg  string

	adding      bool
	input       textinput.Model
	addPlatform models.Platform

	statsFor    string
	stats       *models.Statistics
	statsHandle *correlator.Handle

	captureFor    string
	capture       *models.EnhancedCapture
	captureHandle *correlator.Handle

	exportFor    string
	exportHandle *correlator.Handle

	styles styles
}

func newModel(d *Dashboard) *model {
	input := textinput.New()
	input.Placeholder = "phone number, e.g. 491701234567"
	input.CharLimit = 32

	return &model{
		dash:        d,
		input:       input,
		addPlatform: models.PlatformWhatsApp,
		probe:       d.engine.ProbeMethod(),
		styles:      newStyles(),
	}
}

func (*model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.refresh()
		return m, tick()
	case statsMsg:
		if msg.targetID == m.statsFor {
			stats := msg.stats
			m.stats = &stats
		}

		return m, nil
	case captureMsg:
		if msg.targetID == m.captureFor {
			capture := msg.capture
			m.capture = &capture
		}

		return m, nil
	case exportDoneMsg:
		if msg.targetID == m.exportFor {
			m.exportFor = ""
			m.exportHandle = nil
		}

		if msg.err != nil {
			m.copyMsg = "Export failed: " + msg.err.Error()
		} else {
			m.copyMsg = "Exported to " + msg.path
		}

		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *model) refresh() {
	m.targets = m.dash.engine.Snapshot()
	m.alerts = m.dash.engine.Alerts()
	m.probe = m.dash.engine.ProbeMethod()

	if notice, ok := m.dash.engine.Notice(); ok {
		m.notice = notice
	} else {
		m.notice = ""
	}

	if m.selected >= len(m.targets) {
		m.selected = len(m.targets) - 1
	}

	if m.selected < 0 {
		m.selected = 0
	}
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.adding {
		return m.handleAddKey(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m.quit()
	case "a":
		m.adding = true
		m.input.Focus()

		return m, textinput.Blink
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < len(m.targets)-1 {
			m.selected++
		}
	case "x":
		if t, ok := m.current(); ok {
			_ = m.dash.engine.RemoveTarget(t.ID)
		}
	case "p":
		m.toggleProbeMethod()
	case "v":
		m.privacy = !m.privacy
	case "y":
		m.copySelectedID()
	case "s":
		m.toggleStats()
	case "e":
		m.toggleCapture()
	case "o":
		return m, m.exportSelected()
	case "O":
		m.exportLocalSnapshot()
	case "c":
		m.dash.engine.ClearAlerts()
	case "r":
		_ = m.dash.engine.RequestTrackedTargets()
	}

	return m, nil
}

func (m *model) handleAddKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.adding = false
		m.input.Reset()

		return m, nil
	case "tab":
		if m.addPlatform == models.PlatformWhatsApp {
			m.addPlatform = models.PlatformSignal
		} else {
			m.addPlatform = models.PlatformWhatsApp
		}

		return m, nil
	case "enter":
		number := strings.TrimSpace(m.input.Value())
		if number != "" {
			_ = m.dash.engine.AddTarget(number, m.addPlatform)
		}

		m.adding = false
		m.input.Reset()

		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m *model) quit() (tea.Model, tea.Cmd) {
	m.closeStats()
	m.closeCapture()
	m.cancelExport()

	return m, tea.Quit
}

func (m *model) current() (tracker.TargetView, bool) {
	if m.selected < 0 || m.selected >= len(m.targets) {
		return tracker.TargetView{}, false
	}

	return m.targets[m.selected], true
}

func (m *model) toggleProbeMethod() {
	next := models.ProbeMethodDelete
	if m.probe == models.ProbeMethodDelete {
		next = models.ProbeMethodReaction
	}

	_ = m.dash.engine.SetProbeMethod(next)
}

func (m *model) copySelectedID() {
	t, ok := m.current()
	if !ok {
		return
	}

	if err := clipboard.WriteAll(t.ID); err != nil {
		m.copyMsg = "Failed to copy to clipboard"
	} else {
		m.copyMsg = "Target id copied to clipboard"
	}
}

// toggleStats opens or closes the statistics panel for the selected
// target. Opening issues a one-shot request; closing cancels it.
func (m *model) toggleStats() {
	t, ok := m.current()
	if !ok {
		return
	}

	if m.statsFor == t.ID {
		m.closeStats()
		return
	}

	m.closeStats()
	m.statsFor = t.ID
	m.stats = nil

	id := t.ID

	handle, err := m.dash.corr.RequestOnce(id, models.RequestStatistics, func(payload any) {
		if stats, ok := payload.(models.Statistics); ok {
			m.dash.send(statsMsg{targetID: id, stats: stats})
		}
	})
	if err != nil {
		m.statsFor = ""
		return
	}

	m.statsHandle = handle
}

func (m *model) closeStats() {
	if m.statsHandle != nil {
		m.statsHandle.Cancel()
		m.statsHandle = nil
	}

	m.statsFor = ""
	m.stats = nil
}

// toggleCapture opens or closes the enhanced-capture panel. The capture is
// re-polled while the panel stays open and the poll stops on close.
func (m *model) toggleCapture() {
	t, ok := m.current()
	if !ok {
		return
	}

	if m.captureFor == t.ID {
		m.closeCapture()
		return
	}

	m.closeCapture()
	m.captureFor = t.ID
	m.capture = nil

	id := t.ID

	handle, err := m.dash.corr.Poll(id, models.RequestEnhancedCapture, m.dash.opts.CaptureInterval,
		func(payload any) {
			if capture, ok := payload.(models.EnhancedCapture); ok {
				m.dash.send(captureMsg{targetID: id, capture: capture})
			}
		})
	if err != nil {
		m.captureFor = ""
		return
	}

	m.captureHandle = handle
}

func (m *model) closeCapture() {
	if m.captureHandle != nil {
		m.captureHandle.Cancel()
		m.captureHandle = nil
	}

	m.captureFor = ""
	m.capture = nil
}

// exportSelected issues a one-shot export-data request and writes the
// response to a file once it arrives. A still-unanswered prior export is
// cancelled first so at most one export request is outstanding.
func (m *model) exportSelected() tea.Cmd {
	t, ok := m.current()
	if !ok {
		return nil
	}

	m.cancelExport()

	id := t.ID
	dir := m.dash.opts.ExportDir
	dash := m.dash

	handle, err := dash.corr.RequestOnce(id, models.RequestExportData, func(payload any) {
		raw, ok := payload.(json.RawMessage)
		if !ok {
			return
		}

		path := filepath.Join(dir, export.FileName(id, export.FormatJSON, time.Now()))
		dash.send(exportDoneMsg{targetID: id, path: path, err: writeExport(path, raw)})
	})
	if err != nil {
		m.copyMsg = "Export failed: " + err.Error()
		return nil
	}

	m.exportFor = id
	m.exportHandle = handle

	return nil
}

func (m *model) cancelExport() {
	if m.exportHandle != nil {
		m.exportHandle.Cancel()
		m.exportHandle = nil
	}

	m.exportFor = ""
}

// exportLocalSnapshot writes the selected target's current view as JSON
// plus its sample history as CSV, without a server round trip.
func (m *model) exportLocalSnapshot() {
	t, ok := m.current()
	if !ok {
		return
	}

	now := time.Now()
	jsonPath := filepath.Join(m.dash.opts.ExportDir, export.FileName(t.ID, export.FormatJSON, now))
	csvPath := filepath.Join(m.dash.opts.ExportDir, export.FileName(t.ID, export.FormatCSV, now))

	if err := writeViewFile(jsonPath, func(f *os.File) error { return export.WriteJSON(f, t) }); err != nil {
		m.copyMsg = "Export failed: " + err.Error()
		return
	}

	if err := writeViewFile(csvPath, func(f *os.File) error { return export.WriteCSV(f, t) }); err != nil {
		m.copyMsg = "Export failed: " + err.Error()
		return
	}

	m.copyMsg = "Exported to " + jsonPath
}

func writeViewFile(path string, write func(*os.File) error) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}

	defer func() { _ = f.Close() }()

	return write(f)
}

func writeExport(path string, data json.RawMessage) error {
	return writeViewFile(path, func(f *os.File) error { return export.WriteRaw(f, data) })
}
