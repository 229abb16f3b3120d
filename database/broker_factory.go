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

package database

import (
	"context"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/l3montree-dev/reviewboard/shared"
	"go.uber.org/fx"
)

// BrokerFactory selects the broker by the BROKER environment variable.
// "memory" keeps notifications inside the process, everything else uses
// PostgreSQL LISTEN/NOTIFY so several instances share live updates.
func BrokerFactory(lc fx.Lifecycle, pool *pgxpool.Pool) shared.PubSubBroker {
	var broker shared.PubSubBroker
	if os.Getenv("BROKER") == "memory" {
		slog.Info("using in-memory broker")
		broker = NewInMemoryBroker()
	} else {
		broker = NewPostgreSQLBroker(pool)
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return broker.Close()
		},
	})
	return broker
}
