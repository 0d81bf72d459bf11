package database_test

import (
	"testing"

	"catalog/pkg/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_SQLiteMigratesProductTable(t *testing.T) {
	db, err := database.Open(database.DriverSQLite, "file:"+uuid.NewString()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	defer database.Close(db)

	assert.True(t, db.Migrator().HasTable("product"))
	assert.True(t, db.Migrator().HasColumn("product", "quantity_in_stock"))
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	db, err := database.Open("oracle", "whatever")
	assert.Error(t, err)
	assert.Nil(t, db)
	assert.Contains(t, err.Error(), "unsupported database driver")
}
