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
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/presenceradar/presenceradar/pkg/alerts"
	"github.com/presenceradar/presenceradar/pkg/correlator"
	"github.com/presenceradar/presenceradar/pkg/logger"
	"github.com/presenceradar/presenceradar/pkg/models"
	"github.com/presenceradar/presenceradar/pkg/tracker"
)

type nopSender struct {
	sent []models.Command
}

func (s *nopSender) Send(cmd models.Command) error {
	s.sent = append(s.sent, cmd)
	return nil
}

type modelFixture struct {
	model  *model
	corr   *correlator.Correlator
	engine *tracker.Engine
}

func newModelFixture(t *testing.T, targetIDs ...string) *modelFixture {
	t.Helper()

	sender := &nopSender{}
	corr := correlator.New(sender, nil, logger.NewTestLogger())
	store := tracker.NewStore(nil, logger.NewTestLogger())
	ring := alerts.NewRing(0, nil, logger.NewTestLogger())
	engine := tracker.NewEngine(store, ring, corr, sender, nil, logger.NewTestLogger(), tracker.EngineOptions{})

	t.Cleanup(corr.Stop)

	for _, id := range targetIDs {
		engine.Handle(models.ContactAdded{ID: id, Number: id, Platform: models.PlatformWhatsApp})
	}

	dash := New(engine, corr, Options{ExportDir: t.TempDir()}, logger.NewTestLogger())
	m := newModel(dash)
	m.refresh()

	return &modelFixture{model: m, corr: corr, engine: engine}
}

func TestQuitCancelsOutstandingExportRequest(t *testing.T) {
	f := newModelFixture(t, "t1")

	f.model.exportSelected()
	require.NotNil(t, f.model.exportHandle)
	assert.Equal(t, 1, f.corr.PendingCount())

	f.model.quit()

	assert.Equal(t, 0, f.corr.PendingCount())
	assert.False(t, f.corr.Route("t1", models.RequestExportData, json.RawMessage(`{}`)))
}

func TestNewExportCancelsUnansweredPrior(t *testing.T) {
	f := newModelFixture(t, "t1", "t2")

	f.model.exportSelected()
	require.Equal(t, 1, f.corr.PendingCount())

	f.model.selected = 1
	f.model.exportSelected()

	assert.Equal(t, 1, f.corr.PendingCount())
	assert.False(t, f.corr.Route("t1", models.RequestExportData, json.RawMessage(`{}`)))
	assert.True(t, f.corr.Route("t2", models.RequestExportData, json.RawMessage(`{}`)))
}

func TestExportDoneClearsHandle(t *testing.T) {
	f := newModelFixture(t, "t1")

	f.model.exportSelected()
	require.NotNil(t, f.model.exportHandle)

	f.model.Update(exportDoneMsg{targetID: "t1", path: "tracking_t1_1.json"})

	assert.Nil(t, f.model.exportHandle)
	assert.Empty(t, f.model.exportFor)
	assert.Equal(t, "Exported to tracking_t1_1.json", f.model.copyMsg)
}
