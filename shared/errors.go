// Copyright (C) 2026 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package shared

import "errors"

// Sentinel errors of the review workflow. Callers compare with errors.Is,
// the concrete error usually wraps one of these with more context.
var (
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidScore      = errors.New("invalid review score")
	ErrNotFound          = errors.New("not found")
	ErrStoreUnavailable  = errors.New("store unavailable")
	ErrInvalidRole       = errors.New("invalid role")
	// ErrSubscriptionEnded marks the last delivery of a live query. No
	// snapshot follows it, the subscriber has to subscribe again.
	ErrSubscriptionEnded = errors.New("subscription ended")
)
