package model

// Product is the live catalog entry a line item refers to.
type Product struct {
	Ref   string
	Name  string
	Price float64
	Image string
}
