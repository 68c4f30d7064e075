package checks

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"story-manager/core/database"
	"story-manager/feature/library/models"

	"gorm.io/gorm"
)

// ErrNoDatabase is returned when the server check runs without a connection.
var ErrNoDatabase = errors.New("database connection is nil")

// ServerReport is the result of comparing a library model with the live schema.
type ServerReport struct {
	Profile string                 `json:"profile"`
	Matched bool                   `json:"matched"`
	Tables  map[string]TableReport `json:"tables"`
	Errors  []string               `json:"errors"`
}

type TableReport struct {
	MissingColumns []string `json:"missing_columns"`
	TypeMismatches []string `json:"type_mismatches"`
	Status         string   `json:"status"` // "ok", "error"
}

// CheckServerIntegrity verifies the library table of profile against the
// columns declared on its GORM model.
func CheckServerIntegrity(db *gorm.DB, profile string) (*ServerReport, error) {
	if db == nil {
		return nil, ErrNoDatabase
	}

	model, err := models.ForProfile(profile)
	if err != nil {
		return nil, err
	}
	typ := reflect.TypeOf(model)
	tabler, ok := model.(interface{ TableName() string })
	if typ.Kind() != reflect.Struct || !ok {
		return nil, fmt.Errorf("model for %s does not implement TableName", profile)
	}
	tableName := tabler.TableName()

	report := &ServerReport{
		Profile: profile,
		Tables:  make(map[string]TableReport),
		Errors:  []string{},
		Matched: true,
	}

	actualCols, err := database.GetTableColumns(db, tableName)
	if err != nil {
		report.Errors = append(report.Errors, fmt.Sprintf("Failed to inspect table %s: %v", tableName, err))
		report.Matched = false
		return report, nil
	}

	actual := make(map[string]database.ColumnInfo, len(actualCols))
	for _, col := range actualCols {
		actual[col.Field] = col
	}

	tbl := TableReport{
		MissingColumns: []string{},
		TypeMismatches: []string{},
		Status:         "ok",
	}
	for i := 0; i < typ.NumField(); i++ {
		tag := typ.Field(i).Tag.Get("gorm")
		colName := parseGormColumn(tag)
		if colName == "" {
			continue
		}

		col, exists := actual[colName]
		if !exists {
			tbl.MissingColumns = append(tbl.MissingColumns, colName)
			continue
		}

		expType := strings.ToLower(parseGormType(tag))
		if expType == "" || strings.Contains(strings.ToLower(col.Type), expType) {
			continue
		}
		tbl.TypeMismatches = append(tbl.TypeMismatches, fmt.Sprintf("%s: expected %s, got %s", colName, expType, col.Type))
	}

	if len(tbl.MissingColumns) > 0 || len(tbl.TypeMismatches) > 0 {
		tbl.Status = "error"
		report.Matched = false
	}
	report.Tables[tableName] = tbl
	return report, nil
}

func parseGormColumn(tag string) string {
	return tagValue(tag, "column:")
}

func parseGormType(tag string) string {
	return tagValue(tag, "type:")
}

func tagValue(tag, key string) string {
	for _, p := range strings.Split(tag, ";") {
		if strings.HasPrefix(p, key) {
			return strings.TrimPrefix(p, key)
		}
	}
	return ""
}
