package models

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Well-known hobby tags for Privatkunden.
const (
	HobbySport  = "SPORT"
	HobbyLesen  = "LESEN"
	HobbyReisen = "REISEN"
)

// HobbyList is a set of hobby tags stored as a JSON column.
type HobbyList []string

// Scan implements the sql.Scanner interface for HobbyList
func (h *HobbyList) Scan(value interface{}) error {
	if value == nil {
		*h = HobbyList{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into HobbyList", value)
	}

	return json.Unmarshal(bytes, h)
}

// Value implements the driver.Valuer interface for HobbyList
func (h HobbyList) Value() (driver.Value, error) {
	if h == nil {
		return json.Marshal(HobbyList{})
	}
	return json.Marshal(h)
}

// GormDataType gorm common data type
func (HobbyList) GormDataType() string {
	return "jsonb"
}

// GormValue implements the GormValuerInterface
func (h HobbyList) GormValue(ctx context.Context, db *gorm.DB) clause.Expr {
	data, err := json.Marshal(h)
	if err != nil {
		panic(fmt.Sprintf("failed to marshal HobbyList to JSON: %v", err))
	}

	// SQLite stores JSON as TEXT, PostgreSQL needs the jsonb cast
	sqlExpr := "?::jsonb"
	if db.Dialector.Name() == "sqlite" {
		sqlExpr = "?"
	}

	return clause.Expr{
		SQL:  sqlExpr,
		Vars: []interface{}{string(data)},
	}
}

// Contains reports whether the hobby tag is present.
func (h HobbyList) Contains(hobby string) bool {
	for _, x := range h {
		if x == hobby {
			return true
		}
	}
	return false
}
