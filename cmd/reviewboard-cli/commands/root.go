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
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/l3montree-dev/reviewboard/accesscontrol"
	"github.com/l3montree-dev/reviewboard/database"
	"github.com/l3montree-dev/reviewboard/database/repositories"
	"github.com/l3montree-dev/reviewboard/services"
	"github.com/l3montree-dev/reviewboard/shared"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "reviewboard-cli",
	Short: "Management cli",
	Long:  `The reviewboard cli runs maintenance tasks against the reviewboard database.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
}

func GetRootCmd() *cobra.Command {
	return rootCmd
}

func initializeConfig(cmd *cobra.Command) error {
	shared.LoadConfig() // nolint: errcheck

	viper.SetEnvPrefix("REVIEWBOARD")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	bindFlags(cmd)
	return nil
}

// Bind each cobra flag to its associated viper configuration, so that
// REVIEWBOARD_OUTPUT fills --output when the flag is not set.
func bindFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		configName := f.Name
		if !f.Changed && viper.IsSet(configName) {
			val := viper.Get(configName)
			cmd.Flags().Set(f.Name, fmt.Sprintf("%v", val)) // nolint: errcheck
		}

		if err := viper.BindPFlag(configName, f); err != nil {
			slog.Error("could not bind flag to viper", "err", err)
		}
	})
}

// env bundles what the commands need from the database.
type env struct {
	db   shared.DB
	pool *pgxpool.Pool

	applications shared.ApplicationRepository
	users        shared.UserRepository
	userService  shared.UserService
}

func (e env) Close() {
	e.pool.Close()
}

func connect() (env, error) {
	db, pool, err := database.DatabaseFactory()
	if err != nil {
		return env{}, fmt.Errorf("could not connect to database: %w", err)
	}
	broker := database.NewPostgreSQLBroker(pool)

	enforcer, err := accesscontrol.NewCasbinEnforcer()
	if err != nil {
		pool.Close()
		return env{}, err
	}

	users := repositories.NewUserRepository(db, broker)
	return env{
		db:           db,
		pool:         pool,
		applications: repositories.NewApplicationRepository(db, broker),
		users:        users,
		userService:  services.NewUserService(users, accesscontrol.NewRoleAccessGuard(enforcer)),
	}, nil
}
