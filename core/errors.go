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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidDocument indicates a Document failed validation.
	ErrInvalidDocument = errors.New("invalid document")

	// ErrInvalidContextType indicates an invalid ContextType value.
	ErrInvalidContextType = errors.New("invalid context type")

	// ErrEmptyURI indicates the URI field is empty.
	ErrEmptyURI = errors.New("uri cannot be empty")

	// ErrEmptyContent indicates the Contents field is empty.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrEmptyQuery indicates a query string is empty.
	ErrEmptyQuery = errors.New("query cannot be empty")

	// ErrInvalidScope indicates a malformed target URI scope.
	ErrInvalidScope = errors.New("invalid target scope")
)
