package checks

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func columnRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"})
}

func libraryRows() *sqlmock.Rows {
	return columnRows().
		AddRow("id", "int(11)", "NO", "PRI", nil, "auto_increment").
		AddRow("md5", "char(32)", "NO", "MUL", nil, "").
		AddRow("filesize", "bigint(20)", "NO", "", nil, "").
		AddRow("game_id", "varchar(64)", "NO", "MUL", nil, "").
		AddRow("extra", "varchar(64)", "YES", "", nil, "").
		AddRow("language", "varchar(16)", "YES", "", "en", "").
		AddRow("object_name", "varchar(255)", "YES", "", nil, "").
		AddRow("created_at", "datetime(3)", "YES", "", nil, "")
}

func TestCheckServerIntegrity(t *testing.T) {
	t.Run("Unknown Profile", func(t *testing.T) {
		db, _ := setupMockDB(t)
		report, err := CheckServerIntegrity(db, "arcturus")
		assert.Nil(t, report)
		assert.EqualError(t, err, "unknown library profile: arcturus")
	})

	t.Run("Nil DB", func(t *testing.T) {
		report, err := CheckServerIntegrity(nil, "library")
		assert.Nil(t, report)
		assert.ErrorIs(t, err, ErrNoDatabase)
	})

	t.Run("Library Matches", func(t *testing.T) {
		db, mock := setupMockDB(t)
		mock.ExpectQuery("SHOW COLUMNS FROM `story_files`").WillReturnRows(libraryRows())

		report, err := CheckServerIntegrity(db, "library")
		require.NoError(t, err)
		assert.True(t, report.Matched)
		assert.Equal(t, "library", report.Profile)
		assert.Equal(t, "ok", report.Tables["story_files"].Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Legacy Missing Columns", func(t *testing.T) {
		db, mock := setupMockDB(t)
		rows := columnRows().
			AddRow("id", "int(11)", "NO", "PRI", nil, "auto_increment").
			AddRow("checksum", "varchar(32)", "YES", "", nil, "").
			AddRow("size", "int(11)", "YES", "", nil, "")
		mock.ExpectQuery("SHOW COLUMNS FROM `games`").WillReturnRows(rows)

		report, err := CheckServerIntegrity(db, "legacy")
		require.NoError(t, err)
		assert.False(t, report.Matched)

		tbl := report.Tables["games"]
		assert.Equal(t, "error", tbl.Status)
		assert.ElementsMatch(t, []string{"slug", "variant", "lang", "path"}, tbl.MissingColumns)
		assert.Empty(t, tbl.TypeMismatches)
	})

	t.Run("Type Mismatch", func(t *testing.T) {
		db, mock := setupMockDB(t)
		rows := columnRows().
			AddRow("md5", "VARCHAR(40)", "NO", "", nil, "").
			AddRow("filesize", "bigint(20)", "NO", "", nil, "")
		mock.ExpectQuery("SHOW COLUMNS FROM `story_files`").WillReturnRows(rows)

		report, err := CheckServerIntegrity(db, "library")
		require.NoError(t, err)
		assert.Contains(t, report.Tables["story_files"].TypeMismatches, "md5: expected char(32), got varchar(40)")
	})

	t.Run("Inspect Error", func(t *testing.T) {
		db, mock := setupMockDB(t)
		mock.ExpectQuery("SHOW COLUMNS FROM `story_files`").WillReturnError(assert.AnError)

		report, err := CheckServerIntegrity(db, "library")
		require.NoError(t, err)
		assert.False(t, report.Matched)
		require.Len(t, report.Errors, 1)
		assert.Contains(t, report.Errors[0], "Failed to inspect table story_files")
	})
}

func TestParseGormTags(t *testing.T) {
	assert.Equal(t, "id", parseGormColumn("primaryKey;column:id"))
	assert.Equal(t, "md5", parseGormColumn("column:md5;type:char(32);not null"))
	assert.Equal(t, "char(32)", parseGormType("column:md5;type:char(32);not null"))
	assert.Equal(t, "", parseGormType("column:id"))
}
