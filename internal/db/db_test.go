package db

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"hostel-food-backend/config"
	"hostel-food-backend/internal/model"
)

func TestDialector(t *testing.T) {
	testCases := []struct {
		driver   string
		expected string
		wantErr  bool
	}{
		{driver: "postgres", expected: "postgres"},
		{driver: "", expected: "postgres"},
		{driver: "sqlite", expected: "sqlite"},
		{driver: "mysql", expected: "mysql"},
		{driver: "oracle", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.driver, func(t *testing.T) {
			d, err := Dialector(tc.driver, "dsn")
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, d.Name())
		})
	}
}

func TestLogLevel(t *testing.T) {
	assert.Equal(t, logger.Silent, LogLevel("silent"))
	assert.Equal(t, logger.Error, LogLevel("error"))
	assert.Equal(t, logger.Info, LogLevel("info"))
	assert.Equal(t, logger.Warn, LogLevel("warn"))
	assert.Equal(t, logger.Warn, LogLevel(""))
}

func TestInit_SQLite(t *testing.T) {
	gormDB, err := Init(&config.DatabaseConfig{
		Driver:   "sqlite",
		DSN:      "file:db_init_test?mode=memory&cache=shared",
		LogLevel: "silent",
	})
	require.NoError(t, err)

	assert.True(t, gormDB.Migrator().HasTable(&model.Review{}))
	assert.True(t, gormDB.Migrator().HasTable(&model.PushSubscription{}))

	r := model.Review{
		ReviewerName: "Alex", HostelName: "Oak Hall", HostelType: model.HostelBoys,
		MealType: model.MealLunch, OverallRating: 4, TasteRating: 3, HygieneRating: 3, QuantityRating: 3,
	}
	require.NoError(t, gormDB.WithContext(context.Background()).Create(&r).Error)
	assert.Len(t, r.ID, 36)
	assert.WithinDuration(t, time.Now(), r.CreatedAt, time.Minute)

	bad := r
	bad.ID = ""
	bad.OverallRating = 9
	assert.Error(t, gormDB.Create(&bad).Error, "check constraint rejects out-of-range ratings")
}
