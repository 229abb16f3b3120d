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

package accesscontrol

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/l3montree-dev/reviewboard/dtos"
	"github.com/l3montree-dev/reviewboard/shared"
)

const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

type casbinEnforcer struct {
	enforcer *casbin.SyncedEnforcer
}

// NewCasbinEnforcer builds an in-memory enforcer whose policies are
// generated from the role table.
func NewCasbinEnforcer() (*casbinEnforcer, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("could not parse rbac model: %w", err)
	}

	e, err := casbin.NewSyncedEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("could not create enforcer: %w", err)
	}
	e.EnableLog(false)

	policies := make([][]string, 0)
	for role, perms := range roles {
		for _, p := range perms.permissions {
			policies = append(policies, []string{subject(role), object(p.Object), action(p.Action)})
		}
	}
	if _, err := e.AddPolicies(policies); err != nil {
		return nil, fmt.Errorf("could not add policies: %w", err)
	}

	return &casbinEnforcer{enforcer: e}, nil
}

func (c *casbinEnforcer) Enforce(role dtos.Role, obj shared.Object, act shared.Action) (bool, error) {
	return c.enforcer.Enforce(subject(role), object(obj), action(act))
}

func subject(role dtos.Role) string {
	return "role::" + string(role)
}

func object(obj shared.Object) string {
	return "obj::" + string(obj)
}

func action(act shared.Action) string {
	return "act::" + string(act)
}
