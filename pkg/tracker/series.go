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
	"github.com/presenceradar/presenceradar/pkg/models"
)

// appendSample extends the record's history by exactly one point at the
// end, copy-on-write. The series is unbounded here; truncation is a
// projection concern, applied when the read model is produced.
func appendSample(rec *models.TargetRecord, point models.SamplePoint) *models.TargetRecord {
	next := rec.Clone()

	history := make([]models.SamplePoint, len(rec.History), len(rec.History)+1)
	copy(history, rec.History)
	next.History = append(history, point)

	return next
}
