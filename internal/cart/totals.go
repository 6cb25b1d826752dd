package cart

import "github.com/shopspring/decimal"

// CalculateOrderTotal derives the order subtotal from a flat item list:
// main items, the add-ons reachable from them, and custom items. Orphan
// add-ons are excluded so a stray top-level duplicate can never be counted
// twice.
func CalculateOrderTotal(items []LineItem) decimal.Decimal {
	classified := Classify(items)

	total := decimal.Zero
	for _, main := range classified.MainItems {
		total = total.Add(main.Total())
		for _, addon := range classified.AddonsFor(main.ID) {
			total = total.Add(addon.Total())
		}
	}
	for _, custom := range classified.CustomItems {
		total = total.Add(custom.Total())
	}
	return total
}

// CalculateFinalTotal applies the delivery fee only for delivery orders.
// Pickup always zeroes the fee, whatever stale value the caller passes.
func CalculateFinalTotal(subtotal, deliveryFee decimal.Decimal, isDelivery bool) decimal.Decimal {
	if !isDelivery {
		return subtotal
	}
	return subtotal.Add(deliveryFee)
}
