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

package commands

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/l3montree-dev/reviewboard/dtos"
	"github.com/l3montree-dev/reviewboard/shared"
	"github.com/spf13/cobra"
)

func NewUsersCommand() *cobra.Command {
	users := cobra.Command{
		Use:   "users",
		Short: "Manage user profiles",
	}

	users.AddCommand(newSetRoleCommand())
	users.AddCommand(newListUsersCommand())
	return &users
}

// the cli acts with operator rights
var operator = shared.Viewer{Role: dtos.RoleAdmin, Name: "reviewboard-cli"}

func newSetRoleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-role <userID> <role>",
		Short: "Assigns a role to a user, e.g. to bootstrap the first admin",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid user id: %w", err)
			}

			e, err := connect()
			if err != nil {
				return err
			}
			defer e.Close()

			user, err := e.userService.ChangeRole(cmd.Context(), operator, userID, dtos.Role(args[1]))
			if err != nil {
				return err
			}
			slog.Info("role updated", "user", user.ID, "role", user.Role)
			return nil
		},
	}
}

func newListUsersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Lists all user profiles",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := connect()
			if err != nil {
				return err
			}
			defer e.Close()

			users, err := e.userService.List(cmd.Context())
			if err != nil {
				return err
			}
			for _, user := range users {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n", user.ID, user.Role, user.Email, user.DisplayName)
			}
			return nil
		},
	}
}
