package database

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func TestGetTableColumns(t *testing.T) {
	t.Run("SQLite", func(t *testing.T) {
		db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
		require.NoError(t, err)

		err = db.Exec("CREATE TABLE story_files (id INTEGER PRIMARY KEY, md5 TEXT NOT NULL, game_id TEXT)").Error
		require.NoError(t, err)

		columns, err := GetTableColumns(db, "story_files")
		require.NoError(t, err)
		require.Len(t, columns, 3)

		colMap := make(map[string]ColumnInfo)
		for _, col := range columns {
			colMap[col.Field] = col
		}

		assert.Equal(t, "integer", colMap["id"].Type)
		assert.Equal(t, "PRI", colMap["id"].Key)
		assert.Equal(t, "text", colMap["md5"].Type)
		assert.Equal(t, "NO", colMap["md5"].Null)
		assert.Equal(t, "YES", colMap["game_id"].Null)

		// PRAGMA table_info is empty for an unknown table.
		cols, err := GetTableColumns(db, "non_existent")
		assert.NoError(t, err)
		assert.Empty(t, cols)
	})

	t.Run("MySQL", func(t *testing.T) {
		sqlDB, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer sqlDB.Close()

		db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{})
		require.NoError(t, err)

		rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}).
			AddRow("ID", "INT(11)", "NO", "PRI", nil, "auto_increment").
			AddRow("MD5", "VARCHAR(32)", "NO", "", nil, "")
		mock.ExpectQuery("SHOW COLUMNS FROM `story_files`").WillReturnRows(rows)

		columns, err := GetTableColumns(db, "story_files")
		require.NoError(t, err)
		require.Len(t, columns, 2)
		assert.Equal(t, "id", columns[0].Field)
		assert.Equal(t, "int(11)", columns[0].Type)
		assert.Equal(t, "md5", columns[1].Field)
		assert.Equal(t, "varchar(32)", columns[1].Type)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
