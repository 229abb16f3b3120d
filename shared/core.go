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

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/lmittmann/tint"
	"gorm.io/gorm"
)

type DB = *gorm.DB
type Context = echo.Context
type MiddlewareFunc = echo.MiddlewareFunc

// InitLogger initializes the logger with a tint handler.
// tint is a simple logging library that allows to add colors to the log output.
func InitLogger() {
	w := os.Stderr

	level := slog.LevelDebug
	if os.Getenv("LOG_LEVEL") != "" {
		if err := level.UnmarshalText([]byte(os.Getenv("LOG_LEVEL"))); err != nil {
			level = slog.LevelDebug
		}
	}

	slog.SetDefault(slog.New(
		tint.NewHandler(w, &tint.Options{
			Level:      level,
			AddSource:  true,
			TimeFormat: time.Kitchen,
		}),
	))
}

func LoadConfig() error {
	return godotenv.Load()
}

var V = validator.New()

// AllowedOrigins returns the browser origins of the frontend, read from the
// comma separated FRONTEND_URL.
func AllowedOrigins() []string {
	frontendURL := os.Getenv("FRONTEND_URL")
	if frontendURL == "" {
		return []string{"http://localhost:3000"}
	}
	origins := []string{}
	for _, origin := range strings.Split(frontendURL, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, strings.TrimSuffix(origin, "/"))
		}
	}
	return origins
}
