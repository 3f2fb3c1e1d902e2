package enums

// InventoryEventType describes the allowed values for the `type` column in
// inventory_events.
type InventoryEventType string

const (
	InventoryEventPriceChange InventoryEventType = "PRICE_CHANGE"
	InventoryEventSale        InventoryEventType = "SALE"
	InventoryEventRestock     InventoryEventType = "RESTOCK"
	InventoryEventAdjustment  InventoryEventType = "ADJUSTMENT"
)

var validInventoryEventTypes = []InventoryEventType{
	InventoryEventPriceChange,
	InventoryEventSale,
	InventoryEventRestock,
	InventoryEventAdjustment,
}

// IsValid reports whether the value matches the canonical inventory event type enum.
func (t InventoryEventType) IsValid() bool {
	for _, candidate := range validInventoryEventTypes {
		if candidate == t {
			return true
		}
	}
	return false
}
