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


// Package storage provides the storage abstraction layer for recall.
//
// This package defines the DocumentStore interface that decouples storage
// implementation from retrieval logic. Each knowledge partition (resources,
// memories, skills) is held by its own DocumentStore instance, allowing
// different backends (BadgerDB, in-memory, etc.) to be used interchangeably.
//
// # Architecture
//
// The storage layer follows the Repository pattern:
//
//   - DocumentStore: Full CRUD plus scored retrieval for one partition
//   - Serialization helpers: MUS-format marshaling for documents and IDs
//
// # Usage
//
// Create stores over a shared backend:
//
//	backend, err := badger.OpenBackend("/path/to/db", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer backend.Close()
//	resources, err := badger.NewDocumentStore(backend, core.ContextTypeResource)
//
// Use in tests with in-memory storage:
//
//	resources, memories, skills, backend, err := badger.NewMemoryStores()
//	defer backend.Close()
//
// # Thread Safety
//
// All store implementations must be thread-safe and support
// concurrent access from multiple goroutines.
//
// # Context Support
//
// All store methods accept context.Context for cancellation
// and timeout support. Pass context.Background() for operations
// without specific timeout requirements.
package storage
