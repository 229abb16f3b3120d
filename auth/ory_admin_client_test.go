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

package auth

import (
	"testing"

	client "github.com/ory/client-go"
	"github.com/stretchr/testify/assert"
)

func TestIdentityTraits(t *testing.T) {
	t.Run("should read first and last name", func(t *testing.T) {
		email, name := IdentityTraits(client.Identity{Traits: map[string]any{
			"email": "ada@example.com",
			"name":  map[string]any{"first": "Ada", "last": "Lovelace"},
		}})
		assert.Equal(t, "ada@example.com", email)
		assert.Equal(t, "Ada Lovelace", name)
	})

	t.Run("should accept a plain name", func(t *testing.T) {
		_, name := IdentityTraits(client.Identity{Traits: map[string]any{"name": "Ada"}})
		assert.Equal(t, "Ada", name)
	})

	t.Run("should fall back to the email", func(t *testing.T) {
		email, name := IdentityTraits(client.Identity{Traits: map[string]any{"email": "ada@example.com"}})
		assert.Equal(t, "ada@example.com", email)
		assert.Equal(t, "ada@example.com", name)
	})

	t.Run("should tolerate missing traits", func(t *testing.T) {
		email, name := IdentityTraits(client.Identity{})
		assert.Empty(t, email)
		assert.Empty(t, name)
	})
}
