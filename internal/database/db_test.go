package database

import (
	"path/filepath"
	"testing"

	"employee-directory/internal/config"
	"employee-directory/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_SQLiteCreatesDataDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "employees.db")

	db, err := Open(config.DatabaseConfig{Driver: "sqlite", Path: path})
	require.NoError(t, err)
	defer Close(db)

	assert.True(t, db.Migrator().HasTable(&model.User{}))
	assert.True(t, db.Migrator().HasTable(&model.Employee{}))
	assert.FileExists(t, path)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(config.DatabaseConfig{Driver: "mongodb"})
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestOpenTestDB_Isolated(t *testing.T) {
	db := OpenTestDB(t)
	require.NoError(t, db.Create(&model.User{Username: "a", Email: "a@x.com", Password: "h"}).Error)

	var n int64
	require.NoError(t, db.Model(&model.User{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}
