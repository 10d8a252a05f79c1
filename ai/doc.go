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


// Package ai provides abstractions for AI services used in recall.
//
// This package defines interfaces for AI operations including intent
// classification and text embeddings. It follows the dependency inversion
// principle, allowing the retrieval orchestration logic to depend on
// abstractions rather than concrete implementations.
//
// # Design Principles
//
// The package is designed around three key interfaces:
//
//   - IntentClassifier: Produces a structured query plan from a query and session context
//   - Embedder: Generates vector embeddings from text
//   - Provider: Aggregates AI services for convenient initialization
//
// Intent classification is modeled as an external, possibly nondeterministic
// capability: a call that may fail, time out, or return data needing
// validation. The query planner owns that validation; implementations of
// IntentClassifier return their raw output.
//
// # Implementation Packages
//
//   - ai/openai: Production implementation using OpenAI-compatible APIs
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// # Constructor Return Type Pattern
//
// Public constructors (openai.NewProvider, openai.NewClassifier, etc.) return
// INTERFACE types to enforce abstraction and prevent accidental coupling to
// concrete implementations.
//
//	provider, err := openai.NewProvider(config)  // returns ai.Provider
//
// Test utility constructors (mock.NewMockClassifier, mock.NewMockEmbedder)
// return CONCRETE types to enable test assertions and behavior injection via
// the mock's public fields and methods (AnalyzeFunc, CallCount, Reset).
package ai
