package domain

// PlatformFee is the fixed per-order platform charge, in currency units.
const PlatformFee = 5

// Quote is the full price breakdown for a cart snapshot.
type Quote struct {
	ItemTotal   int `json:"item_total"`
	PlatformFee int `json:"platform_fee"`
	DeliveryFee int `json:"delivery_fee"`
	GST         int `json:"gst"`
	FinalTotal  int `json:"final_total"`
}

// PriceCart totals a cart snapshot: item subtotal, fixed platform fee, the
// supplied delivery fee, and 5% GST on the item subtotal rounded half-up.
// Pure; the pre-checkout display and the submission step must both go
// through here so the two can never diverge.
func PriceCart(items []CartItem, deliveryFee int) Quote {
	var itemTotal int
	for _, it := range items {
		itemTotal += it.Price * it.Quantity
	}

	// integer half-up rounding of itemTotal * 0.05
	gst := (itemTotal*5 + 50) / 100

	return Quote{
		ItemTotal:   itemTotal,
		PlatformFee: PlatformFee,
		DeliveryFee: deliveryFee,
		GST:         gst,
		FinalTotal:  itemTotal + PlatformFee + deliveryFee + gst,
	}
}
