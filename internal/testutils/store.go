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

package testutils

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/l3montree-dev/reviewboard/database"
	"github.com/l3montree-dev/reviewboard/database/models"
	"github.com/l3montree-dev/reviewboard/database/repositories"
	"github.com/l3montree-dev/reviewboard/shared"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Store bundles the collections of an isolated in-memory database.
type Store struct {
	DB           shared.DB
	Broker       *database.InMemoryBroker
	Applications shared.ApplicationRepository
	Reviews      shared.ReviewRepository
	Users        shared.UserRepository
}

// NewSQLiteDB opens a fresh in-memory sqlite database with the schema of
// all models migrated.
func NewSQLiteDB(t *testing.T) shared.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// the in-memory database lives as long as one connection is open
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Application{}, &models.Review{}))

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return db
}

func NewStore(t *testing.T) Store {
	t.Helper()

	db := NewSQLiteDB(t)
	broker := database.NewInMemoryBroker()
	t.Cleanup(func() {
		_ = broker.Close()
	})

	return Store{
		DB:           db,
		Broker:       broker,
		Applications: repositories.NewApplicationRepository(db, broker),
		Reviews:      repositories.NewReviewRepository(db, broker),
		Users:        repositories.NewUserRepository(db, broker),
	}
}
