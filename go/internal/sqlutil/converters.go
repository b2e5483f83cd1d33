package sqlutil

import (
	"database/sql"
	"strings"
)

// Helper functions for converting between Go types and sql.Null* types

// ToSqlInt32 converts a Go int pointer to sql.NullInt32
func ToSqlInt32(val *int) sql.NullInt32 {
	if val == nil {
		return sql.NullInt32{Valid: false}
	}
	return sql.NullInt32{Int32: int32(*val), Valid: true}
}

// ToSqlText converts a Go string to sql.NullString, storing blank strings as NULL
func ToSqlText(val string) sql.NullString {
	if strings.TrimSpace(val) == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: val, Valid: true}
}

// ToSqlFloat64 converts a Go float pointer to sql.NullFloat64
func ToSqlFloat64(val *float64) sql.NullFloat64 {
	if val == nil {
		return sql.NullFloat64{Valid: false}
	}
	return sql.NullFloat64{Float64: *val, Valid: true}
}

// FromSqlInt32 converts sql.NullInt32 to Go int pointer
func FromSqlInt32(val sql.NullInt32) *int {
	if !val.Valid {
		return nil
	}
	i := int(val.Int32)
	return &i
}

// FromSqlString converts sql.NullString to Go string with default
func FromSqlString(val sql.NullString, defaultVal string) string {
	if !val.Valid {
		return defaultVal
	}
	return val.String
}

// FromSqlFloat64 converts sql.NullFloat64 to Go float pointer
func FromSqlFloat64(val sql.NullFloat64) *float64 {
	if !val.Valid {
		return nil
	}
	f := val.Float64
	return &f
}
