package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// GradeList is an ordered sequence of grade levels stored as JSONB.
type GradeList []int

// Value implements driver.Valuer.
func (g GradeList) Value() (driver.Value, error) {
	if g == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(g)
}

// Scan implements sql.Scanner.
func (g *GradeList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*g = nil
		return nil
	case []byte:
		return json.Unmarshal(v, g)
	case string:
		return json.Unmarshal([]byte(v), g)
	default:
		return fmt.Errorf("unsupported grade list type %T", src)
	}
}

// Teacher represents a staff member's tutoring profile.
type Teacher struct {
	StaffID   int64     `db:"staff_id" json:"staff_id"`
	Name      string    `db:"name" json:"name"`
	Grades    GradeList `db:"grades" json:"grades"`
	Subject   string    `db:"subject" json:"subject"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
