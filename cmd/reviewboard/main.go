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

package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/l3montree-dev/reviewboard/accesscontrol"
	"github.com/l3montree-dev/reviewboard/auth"
	"github.com/l3montree-dev/reviewboard/blobstorage"
	"github.com/l3montree-dev/reviewboard/controllers"
	"github.com/l3montree-dev/reviewboard/database"
	"github.com/l3montree-dev/reviewboard/database/repositories"
	"github.com/l3montree-dev/reviewboard/middlewares"
	"github.com/l3montree-dev/reviewboard/router"
	"github.com/l3montree-dev/reviewboard/services"
	"github.com/l3montree-dev/reviewboard/shared"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	_ "github.com/lib/pq"
)

var release string // Will be filled at build time

func main() {
	shared.LoadConfig() // nolint: errcheck
	shared.InitLogger()

	if os.Getenv("ERROR_TRACKING_DSN") != "" {
		initSentry()

		// Catch panics
		defer func() {
			if err := recover(); err != nil {
				sentry.CurrentHub().Recover(err)
				// Wait for events to be send to server
				sentry.Flush(time.Second * 5)
			}
		}()
	}

	db, pool, err := database.DatabaseFactory()
	if err != nil {
		slog.Error(err.Error())
		panic(errors.New("Failed to setup database connection"))
	}

	if os.Getenv("DISABLE_AUTOMIGRATE") != "true" {
		slog.Info("running database migrations...")
		if err := database.RunMigrationsWithDB(db); err != nil {
			slog.Error("failed to run database migrations", "error", err)
			panic(errors.New("Failed to run database migrations"))
		}
	} else {
		slog.Info("automatic migrations disabled via DISABLE_AUTOMIGRATE=true")
	}

	router.Version = release

	fx.New(
		fx.Supply(db),
		fx.Supply(pool),
		fx.Provide(database.BrokerFactory),
		fx.Provide(middlewares.NewServer),
		fx.Provide(newAdminClient),
		fx.Provide(newBlobUploader),
		repositories.Module,
		services.ServiceModule,
		controllers.ControllerModule,
		router.RouterModule,
		accesscontrol.AccessControlModule,

		fx.Invoke(closePoolOnStop),
		// we need to invoke all routers to register their routes
		fx.Invoke(func(SessionRouter router.SessionRouter) {}),
		fx.Invoke(func(ApplicationRouter router.ApplicationRouter) {}),
		fx.Invoke(func(UserRouter router.UserRouter) {}),
		fx.Invoke(func(server *echo.Echo) {}),
	).Run()
}

func newAdminClient() shared.AdminClient {
	return auth.NewAdminClient(auth.GetOryAPIClient(os.Getenv("ORY_KRATOS_PUBLIC")))
}

// newBlobUploader returns nil when no bucket is configured. The upload route
// is not registered in that case.
func newBlobUploader() (shared.BlobUploader, error) {
	cfg, ok := blobstorage.GetS3ConfigFromEnv()
	if !ok {
		slog.Info("S3_BUCKET not set, file uploads are disabled")
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	uploader, err := blobstorage.NewS3Uploader(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return uploader, nil
}

func closePoolOnStop(lc fx.Lifecycle, pool *pgxpool.Pool) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			pool.Close()
			return nil
		},
	})
}

func initSentry() {
	environment := os.Getenv("ENVIRONMENT")
	if environment == "" {
		environment = "dev"
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:         os.Getenv("ERROR_TRACKING_DSN"),
		Environment: environment,
		Release:     release,

		// In debug mode, the debug information is printed to stdout.
		Debug: environment == "dev",

		AttachStacktrace: true,
		SendDefaultPII:   false,
	})
	if err != nil {
		slog.Error("Failed to init logger", "err", err)
	}
}
