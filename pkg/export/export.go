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

// Package export renders a target's collected data as downloadable files.
// It is a pure side channel: nothing here goes through the correlator or
// the event stream.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/presenceradar/presenceradar/pkg/tracker"
)

// Format selects the export file format.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// FileName builds the download name for one export.
func FileName(targetID string, format Format, now time.Time) string {
	return fmt.Sprintf("tracking_%s_%d.%s", targetID, now.UnixMilli(), format)
}

// WriteJSON writes the full render-ready view as indented JSON.
func WriteJSON(w io.Writer, view tracker.TargetView) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(view); err != nil {
		return fmt.Errorf("export json: %w", err)
	}

	return nil
}

// WriteRaw writes an already-serialized export payload, as delivered by an
// export-data response.
func WriteRaw(w io.Writer, data json.RawMessage) error {
	var buf []byte

	// Re-indent when valid JSON; pass through otherwise.
	var v any
	if err := json.Unmarshal(data, &v); err == nil {
		buf, _ = json.MarshalIndent(v, "", "  ")
	} else {
		buf = data
	}

	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("export raw: %w", err)
	}

	return nil
}

// WriteCSV writes the sample history as CSV, one line per sample.
func WriteCSV(w io.Writer, view tracker.TargetView) error {
	cw := csv.NewWriter(w)

	header := []string{"timestamp", "rtt", "avg", "median", "threshold", "state"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("export csv: %w", err)
	}

	for _, p := range view.History {
		row := []string{
			p.Timestamp.UTC().Format(time.RFC3339),
			strconv.FormatFloat(p.RTT, 'f', -1, 64),
			strconv.FormatFloat(p.Avg, 'f', -1, 64),
			strconv.FormatFloat(p.Median, 'f', -1, 64),
			strconv.FormatFloat(p.Threshold, 'f', -1, 64),
			p.State,
		}

		if err := cw.Write(row); err != nil {
			return fmt.Errorf("export csv: %w", err)
		}
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		return fmt.Errorf("export csv: %w", err)
	}

	return nil
}
