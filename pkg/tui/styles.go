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

import "github.com/charmbracelet/lipgloss"

// Dracula color codes
const (
	draculaForeground = "#F8F8F2"
	draculaCyan       = "#8BE9FD"
	draculaGreen      = "#50FA7B"
	draculaOrange     = "#FFB86C"
	draculaPink       = "#FF79C6"
	draculaPurple     = "#BD93F9"
	draculaRed        = "#FF5555"
	draculaYellow     = "#F1FA8C"
	draculaComment    = "#6272A4"
)

type styles struct {
	title    lipgloss.Style
	header   lipgloss.Style
	selected lipgloss.Style
	online   lipgloss.Style
	offline  lipgloss.Style
	standby  lipgloss.Style
	unknown  lipgloss.Style
	notice   lipgloss.Style
	info     lipgloss.Style
	muted    lipgloss.Style
	panel    lipgloss.Style
	alert    lipgloss.Style
	badge    lipgloss.Style
	help     lipgloss.Style
}

func newStyles() styles {
	return styles{
		title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaPurple)).
			Bold(true),
		header: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaCyan)).
			Bold(true),
		selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaPink)).
			Bold(true),
		online: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaGreen)),
		offline: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaRed)),
		standby: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaYellow)),
		unknown: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaComment)),
		notice: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaRed)).
			Bold(true),
		info: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaGreen)),
		muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaComment)),
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(draculaPurple)).
			Padding(0, 1),
		alert: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaOrange)),
		badge: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaCyan)),
		help: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaComment)),
	}
}
