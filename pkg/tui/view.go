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

package tui

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/lipgloss"

	"github.com/presenceradar/presenceradar/pkg/models"
	"github.com/presenceradar/presenceradar/pkg/tracker"
)

func (m *model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.title.Render("Presence Radar"))
	b.WriteString("  ")
	b.WriteString(m.styles.badge.Render("probe: " + string(m.probe)))

	if m.privacy {
		b.WriteString("  ")
		b.WriteString(m.styles.muted.Render("[privacy]"))
	}

	b.WriteString("\n\n")

	if m.notice != "" {
		b.WriteString(m.styles.notice.Render(m.notice))
		b.WriteString("\n\n")
	} else if m.copyMsg != "" {
		b.WriteString(m.styles.info.Render(m.copyMsg))
		b.WriteString("\n\n")
	}

	if m.adding {
		b.WriteString(m.renderAddForm())
		b.WriteString("\n")
	}

	b.WriteString(m.renderTargets())

	if m.statsFor != "" {
		b.WriteString("\n")
		b.WriteString(m.renderStats())
	}

	if m.captureFor != "" {
		b.WriteString("\n")
		b.WriteString(m.renderCapture())
	}

	if len(m.alerts) > 0 {
		b.WriteString("\n")
		b.WriteString(m.renderAlerts())
	}

	b.WriteString("\n")
	b.WriteString(m.styles.help.Render(
		"a add · x remove · p probe · v privacy · s stats · e capture · o export · O snapshot · y copy id · c clear alerts · q quit"))
	b.WriteString("\n")

	return b.String()
}

func (m *model) renderAddForm() string {
	platform := m.styles.badge.Render(string(m.addPlatform))

	return m.styles.panel.Render(fmt.Sprintf(
		"Add target (%s, tab switches platform)\n%s", platform, m.input.View()))
}

func (m *model) renderTargets() string {
	if len(m.targets) == 0 {
		return m.styles.muted.Render("No tracked targets. Press 'a' to add one.") + "\n"
	}

	var b strings.Builder

	b.WriteString(m.styles.header.Render(fmt.Sprintf(
		"  %-24s %-10s %-10s %-8s %s", "TARGET", "PLATFORM", "STATUS", "DEVICES", "LAST SAMPLE")))
	b.WriteString("\n")

	for i, t := range m.targets {
		cursor := "  "
		if i == m.selected {
			cursor = m.styles.selected.Render("> ")
		}

		label := t.DisplayLabel
		if label == "" {
			label = t.ID
		}

		if m.privacy {
			label = maskDigits(label)
		}

		row := fmt.Sprintf("%-24s %-10s %-10s %-8d %s",
			truncate(label, 24),
			t.Platform,
			t.CurrentStatus,
			t.DeviceCount,
			formatSample(t.LastSample),
		)

		b.WriteString(cursor)

		if i == m.selected {
			b.WriteString(m.styles.selected.Render(row))
		} else {
			b.WriteString(m.statusStyle(t.CurrentStatus).Render(row))
		}

		b.WriteString("\n")
	}

	return b.String()
}

func (m *model) statusStyle(status string) lipgloss.Style {
	switch {
	case status == tracker.StatusUnknown:
		return m.styles.unknown
	case strings.EqualFold(status, "offline"):
		return m.styles.offline
	case strings.Contains(status, "Online"):
		return m.styles.online
	default:
		return m.styles.standby
	}
}

func (m *model) renderStats() string {
	header := "Statistics: " + m.panelLabel(m.statsFor)

	if m.stats == nil {
		return m.styles.panel.Render(header + "\n" + m.styles.muted.Render("waiting for data"))
	}

	s := m.stats
	body := fmt.Sprintf(
		"online time  %s\nsessions     %d\navg session  %s\nnet changes  %d\nactive hours %s\nlast network %s",
		formatMillis(s.TotalOnlineTime),
		s.SessionCount,
		formatMillis(s.AvgSessionDuration),
		s.NetworkChanges,
		formatHours(s.ActiveHours),
		s.LastNetworkType,
	)

	return m.styles.panel.Render(header + "\n" + body)
}

func (m *model) renderCapture() string {
	header := "Enhanced capture: " + m.panelLabel(m.captureFor)

	if m.capture == nil {
		return m.styles.panel.Render(header + "\n" + m.styles.muted.Render("waiting for data"))
	}

	c := m.capture

	var lines []string

	lines = append(lines, "presence     "+c.CurrentPresence)

	if c.Typing != nil {
		state := "no"
		if c.Typing.IsTyping {
			state = "yes"
		}

		lines = append(lines, "typing       "+state)
	}

	if c.LastSeen != nil {
		lines = append(lines, "last seen    "+time.UnixMilli(c.LastSeen.Timestamp).Format("15:04:05"))
	}

	lines = append(lines, fmt.Sprintf("devices      %d", len(c.TrackedDevices)))

	for _, id := range c.TrackedDevices {
		lines = append(lines, "  "+truncate(id, 24))
	}

	if n := len(c.PresenceHistory); n > 0 {
		lines = append(lines, fmt.Sprintf("history      %d entries", n))
	}

	return m.styles.panel.Render(header + "\n" + strings.Join(lines, "\n"))
}

func (m *model) renderAlerts() string {
	var b strings.Builder

	b.WriteString(m.styles.header.Render("Alerts"))
	b.WriteString("\n")

	for _, a := range m.alerts {
		line := fmt.Sprintf("%s  [%s]  %s", a.Timestamp.Format("15:04:05"), a.Kind, a.Message)
		if m.privacy {
			line = maskDigits(line)
		}

		b.WriteString(m.styles.alert.Render(line))
		b.WriteString("\n")
	}

	return b.String()
}

// panelLabel resolves a target id to its display label for panel headers.
func (m *model) panelLabel(id string) string {
	label := id

	for _, t := range m.targets {
		if t.ID == id && t.DisplayLabel != "" {
			label = t.DisplayLabel
			break
		}
	}

	if m.privacy {
		label = maskDigits(label)
	}

	return label
}

func formatSample(s *models.SamplePoint) string {
	if s == nil {
		return "-"
	}

	return fmt.Sprintf("rtt %.0fms avg %.0fms med %.0fms thr %.0fms",
		s.RTT, s.Avg, s.Median, s.Threshold)
}

func formatMillis(ms int64) string {
	return (time.Duration(ms) * time.Millisecond).Round(time.Second).String()
}

func formatHours(hours []int) string {
	if len(hours) == 0 {
		return "-"
	}

	parts := make([]string, 0, len(hours))
	for _, h := range hours {
		parts = append(parts, fmt.Sprintf("%02d:00", h))
	}

	return strings.Join(parts, " ")
}

func maskDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return '•'
		}

		return r
	}, s)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}

	if n <= 1 {
		return s[:n]
	}

	return s[:n-1] + "…"
}
