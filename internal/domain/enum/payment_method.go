package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PaymentMethod represents how a bill was tendered
type PaymentMethod int

const (
	PaymentMethodCash     PaymentMethod = 0
	PaymentMethodCard     PaymentMethod = 1
	PaymentMethodTransfer PaymentMethod = 2
	PaymentMethodQR       PaymentMethod = 3
)

// IsCash reports whether change calculation applies to this method.
// Non-cash tenders are always captured at the exact bill total.
func (m PaymentMethod) IsCash() bool {
	return m == PaymentMethodCash
}

func (m PaymentMethod) String() string {
	names := [...]string{"cash", "card", "transfer", "qr"}
	if int(m) < 0 || int(m) >= len(names) {
		return "cash"
	}
	return names[m]
}

// ParsePaymentMethod maps a wire name to a PaymentMethod, defaulting to cash.
func ParsePaymentMethod(s string) PaymentMethod {
	switch s {
	case "card":
		return PaymentMethodCard
	case "transfer":
		return PaymentMethodTransfer
	case "qr":
		return PaymentMethodQR
	default:
		return PaymentMethodCash
	}
}

func (m PaymentMethod) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *PaymentMethod) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*m = PaymentMethod(i)
		return nil
	}
	*m = ParsePaymentMethod(str)
	return nil
}

func (m PaymentMethod) Value() (driver.Value, error) {
	return int64(m), nil
}

func (m *PaymentMethod) Scan(value interface{}) error {
	if value == nil {
		*m = PaymentMethodCash
		return nil
	}
	switch v := value.(type) {
	case int64:
		*m = PaymentMethod(v)
	case int:
		*m = PaymentMethod(v)
	}
	return nil
}
