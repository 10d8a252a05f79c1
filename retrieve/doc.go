// Copyright 2026 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package retrieve implements the multi-source retrieval orchestrator.
//
// Two entry points are exposed through Searcher. Find is a quick,
// context-free lookup that queries all three knowledge partitions directly.
// Search is the full pipeline: the session snapshot is compressed into
// planning context, the intent classifier turns it into a plan of typed
// sub-queries, the executor fans those out concurrently to the partition
// stores, and the aggregator merges, deduplicates, filters, and truncates
// the combined results.
//
// Failure handling follows one rule: only malformed caller input is a hard
// error. A failing classifier degrades to a deterministic fallback plan,
// and a failing store yields a partial result with the affected partition
// flagged, never an error.
package retrieve
