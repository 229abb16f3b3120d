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
	"context"
	"fmt"
	"strings"

	"github.com/l3montree-dev/reviewboard/shared"
	client "github.com/ory/client-go"
)

func GetOryAPIClient(url string) *client.APIClient {
	cfg := client.NewConfiguration()
	cfg.Servers = client.ServerConfigurations{
		{URL: url},
	}

	ory := client.NewAPIClient(cfg)
	return ory
}

type adminClientImplementation struct {
	apiClient *client.APIClient
}

var _ shared.AdminClient = adminClientImplementation{}

func NewAdminClient(apiClient *client.APIClient) adminClientImplementation {
	return adminClientImplementation{
		apiClient: apiClient,
	}
}

func (a adminClientImplementation) GetIdentityFromCookie(ctx context.Context, cookie string) (client.Identity, error) {
	session, _, err := a.apiClient.FrontendAPI.ToSession(ctx).Cookie(cookie).Execute()
	if err != nil {
		return client.Identity{}, fmt.Errorf("could not get identity from cookie: %w", err)
	}
	if session.Identity == nil {
		return client.Identity{}, fmt.Errorf("identity not found in session")
	}
	return *session.Identity, nil
}

// IdentityTraits extracts email and display name from the kratos traits.
// The name trait is either a plain string or an object with first and last.
func IdentityTraits(identity client.Identity) (email string, name string) {
	traits, ok := identity.Traits.(map[string]any)
	if !ok {
		return "", ""
	}
	email, _ = traits["email"].(string)

	switch n := traits["name"].(type) {
	case string:
		name = n
	case map[string]any:
		first, _ := n["first"].(string)
		last, _ := n["last"].(string)
		name = strings.TrimSpace(first + " " + last)
	}
	if name == "" {
		name = email
	}
	return email, name
}
