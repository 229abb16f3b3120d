package router

import (
	"os"
	"runtime"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/l3montree-dev/reviewboard/database"
	"github.com/l3montree-dev/reviewboard/shared"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Copyright (C) 2025 l3montree GmbH
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

// StartedAt is the start time of the process, reported by /info/.
var StartedAt = time.Now()

// Version is filled at build time.
var Version string

type APIV1Router struct {
	*echo.Group
}

func NewAPIV1Router(srv *echo.Echo,
	db shared.DB,
	pool *pgxpool.Pool,
) APIV1Router {
	apiV1Router := srv.Group("/api/v1")

	apiV1Router.GET("/info/", func(c echo.Context) error {
		var mem runtime.MemStats
		runtime.ReadMemStats(&mem)

		resp := InfoResponse{
			Build: BuildInfo{Version: Version},
			Runtime: RuntimeInfo{
				GoVersion:     runtime.Version(),
				NumGoroutines: runtime.NumGoroutine(),
				Mem: MemStats{
					Alloc:     mem.Alloc,
					Sys:       mem.Sys,
					HeapAlloc: mem.HeapAlloc,
				},
			},
			Process: ProcessInfo{
				PID:           os.Getpid(),
				UptimeSeconds: int(time.Since(StartedAt).Seconds()),
			},
			Database: databaseInfo(db, pool),
		}

		host, _ := os.Hostname()
		resp.Process.Hostname = host

		return c.JSON(200, resp)
	})

	apiV1Router.GET("/metrics/", echo.WrapHandler(promhttp.Handler()))
	apiV1Router.GET("/health/", func(ctx echo.Context) error {
		// Check database connectivity
		sqlDB, err := db.DB()
		if err != nil {
			return ctx.JSON(503, map[string]string{
				"status": "unhealthy",
				"error":  "failed to get database instance",
			})
		}

		if err := sqlDB.PingContext(ctx.Request().Context()); err != nil {
			return ctx.JSON(503, map[string]string{
				"status": "unhealthy",
				"error":  "database ping failed",
			})
		}

		return ctx.JSON(200, map[string]string{
			"status": "healthy",
		})
	})

	return APIV1Router{
		Group: apiV1Router,
	}
}

func databaseInfo(db shared.DB, pool *pgxpool.Pool) DatabaseInfo {
	dbInfo := DatabaseInfo{Status: "unknown"}

	sqlDB, err := db.DB()
	if err != nil {
		errMsg := "failed to get database instance"
		dbInfo.Status = "unhealthy"
		dbInfo.Error = &errMsg
		return dbInfo
	}
	if err := sqlDB.Ping(); err != nil {
		errMsg := "database ping failed"
		dbInfo.Status = "unhealthy"
		dbInfo.Error = &errMsg
		return dbInfo
	}
	dbInfo.Status = "healthy"

	poolCfg := database.GetPoolConfigFromEnv()
	poolInfo := PoolInfo{
		DBName:          poolCfg.DBName,
		MaxOpenConns:    poolCfg.MaxOpenConns,
		ConnMaxLifetime: poolCfg.ConnMaxLifetime.String(),
		ConnMaxIdleTime: poolCfg.ConnMaxIdleTime.String(),
	}
	if pool != nil {
		stats := pool.Stat()
		poolInfo.TotalConns = int(stats.TotalConns())
		poolInfo.IdleConns = int(stats.IdleConns())
		poolInfo.AcquiredConns = int(stats.AcquiredConns())
		poolInfo.MaxConns = int(stats.MaxConns())
	}
	dbInfo.Pool = &poolInfo

	if ver, dirty, err := database.GetMigrationVersionWithDB(db); err == nil {
		dbInfo.MigrationVersion = &ver
		dbInfo.MigrationDirty = &dirty
	} else {
		errStr := err.Error()
		dbInfo.MigrationError = &errStr
	}
	return dbInfo
}
