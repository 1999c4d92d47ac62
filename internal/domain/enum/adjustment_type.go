package enum

// AdjustmentType is the operation requested by a manual stock adjustment.
// It is a request-level value and is never persisted; the resulting
// StockMovement records the signed quantity change instead.
type AdjustmentType string

const (
	AdjustmentTypeAdd      AdjustmentType = "add"
	AdjustmentTypeSubtract AdjustmentType = "subtract"
	AdjustmentTypeSet      AdjustmentType = "set"
)

// IsValid reports whether the adjustment type is one of the known operations.
func (t AdjustmentType) IsValid() bool {
	switch t {
	case AdjustmentTypeAdd, AdjustmentTypeSubtract, AdjustmentTypeSet:
		return true
	}
	return false
}
