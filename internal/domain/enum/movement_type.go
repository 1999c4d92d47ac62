package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// MovementType classifies a stock movement in the audit trail
type MovementType int

const (
	MovementTypeSale       MovementType = 0
	MovementTypeRestock    MovementType = 1
	MovementTypeAdjustment MovementType = 2
	MovementTypeReturn     MovementType = 3
	MovementTypeDamaged    MovementType = 4
)

func (t MovementType) String() string {
	names := [...]string{"sale", "restock", "adjustment", "return", "damaged"}
	if int(t) < 0 || int(t) >= len(names) {
		return "adjustment"
	}
	return names[t]
}

// ParseMovementType maps a wire name to a MovementType, defaulting to adjustment.
func ParseMovementType(s string) MovementType {
	switch s {
	case "sale":
		return MovementTypeSale
	case "restock":
		return MovementTypeRestock
	case "return":
		return MovementTypeReturn
	case "damaged":
		return MovementTypeDamaged
	default:
		return MovementTypeAdjustment
	}
}

func (t MovementType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *MovementType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*t = MovementType(i)
		return nil
	}
	*t = ParseMovementType(str)
	return nil
}

func (t MovementType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *MovementType) Scan(value interface{}) error {
	if value == nil {
		*t = MovementTypeAdjustment
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = MovementType(v)
	case int:
		*t = MovementType(v)
	}
	return nil
}
