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

// Platform identifies the transport network a target is probed through.
type Platform string

const (
	PlatformWhatsApp Platform = "whatsapp"
	PlatformSignal   Platform = "signal"
)

// Valid reports whether p is a member of the closed platform set.
func (p Platform) Valid() bool {
	return p == PlatformWhatsApp || p == PlatformSignal
}

// ProbeMethod selects how the collection side probes targets. It is a
// process-wide setting echoed by the server, not target-scoped.
type ProbeMethod string

const (
	ProbeMethodDelete   ProbeMethod = "delete"
	ProbeMethodReaction ProbeMethod = "reaction"
)

// RequestKind names one correlated request/response channel.
type RequestKind string

const (
	RequestStatistics      RequestKind = "statistics"
	RequestEnhancedCapture RequestKind = "enhanced-capture"
	RequestExportData      RequestKind = "export-data"
)
