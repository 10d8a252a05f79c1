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


package badger

import (
	"github.com/poiesic/recall/core"
	"github.com/poiesic/recall/storage"
)

// NewMemoryStores creates in-memory document stores for all three partitions,
// for testing. Returns resources, memories, skills, backend, and error.
// Caller must close the backend when done.
func NewMemoryStores(opts ...StoreOption) (storage.DocumentStore, storage.DocumentStore, storage.DocumentStore, *Backend, error) {
	backend, err := OpenBackend("", true)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	resources, err := NewDocumentStore(backend, core.ContextTypeResource, opts...)
	if err != nil {
		backend.Close()
		return nil, nil, nil, nil, err
	}

	memories, err := NewDocumentStore(backend, core.ContextTypeMemory, opts...)
	if err != nil {
		backend.Close()
		return nil, nil, nil, nil, err
	}

	skills, err := NewDocumentStore(backend, core.ContextTypeSkill, opts...)
	if err != nil {
		backend.Close()
		return nil, nil, nil, nil, err
	}

	return resources, memories, skills, backend, nil
}
