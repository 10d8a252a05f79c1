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

import (
	"fmt"
	"strings"
	"unicode"
)

// ValidateDocument validates a Document according to domain rules.
//
// Validation rules:
//   - URI must not be empty and must be a valid scope prefix itself
//   - Kind must be a valid ContextType
//   - Contents must not be empty
//
// NOT validated (populated by processors):
//   - Vector (can be empty until the ingest pipeline embeds it)
//   - ID (derived from the URI at storage time)
func ValidateDocument(doc *Document) error {
	if doc == nil {
		return fmt.Errorf("%w: document is nil", ErrInvalidDocument)
	}

	if doc.URI == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyURI)
	}
	if err := ValidateScope(doc.URI); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	if err := ValidateContextType(doc.Kind); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	if doc.Contents == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyContent)
	}

	return nil
}

// ValidateContextType validates that a ContextType has a valid value.
func ValidateContextType(kind ContextType) error {
	if kind != ContextTypeResource && kind != ContextTypeMemory && kind != ContextTypeSkill {
		return fmt.Errorf("%w: value %d", ErrInvalidContextType, kind)
	}
	return nil
}

// ValidateScope validates a target URI scope. An empty scope is valid and
// means "unscoped". A non-empty scope must be a clean URI prefix: no
// whitespace, no control characters, and no parent-directory segments.
// Malformed scopes abort the call before any fan-out happens.
func ValidateScope(scope string) error {
	if scope == "" {
		return nil
	}
	for _, r := range scope {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return fmt.Errorf("%w: %q", ErrInvalidScope, scope)
		}
	}
	if strings.Contains(scope, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidScope, scope)
	}
	return nil
}
