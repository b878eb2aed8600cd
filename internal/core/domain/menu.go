package domain

// MenuItem is a single catalog entry. Items are owned by the menu source and
// read-only to the cart; Price is in whole currency units.
type MenuItem struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int    `json:"price"`
}

// UserDetails are the free-form delivery and contact fields supplied at
// checkout. They are captured per order, not globally unique.
type UserDetails struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// UserProfile is the persisted identity of the logged-in user. At most one
// profile is current at a time; its phone is the basis for realtime filtering.
type UserProfile struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}
