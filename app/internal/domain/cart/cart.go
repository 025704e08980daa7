package cart

import domproduct "example.com/rocketshoes/app/internal/domain/product"

type Item struct {
	domproduct.Product
	Amount int64
}

// Cart keeps items in the order they were first added.
type Cart []Item

func (c Cart) Index(productID int64) int {
	for i, item := range c {
		if item.ID == productID {
			return i
		}
	}
	return -1
}

func (c Cart) Find(productID int64) (Item, bool) {
	if i := c.Index(productID); i >= 0 {
		return c[i], true
	}
	return Item{}, false
}

func (c Cart) Clone() Cart {
	out := make(Cart, len(c))
	copy(out, c)
	return out
}

// WithAmount returns a copy with the matching item's amount replaced.
// An unknown id yields an unchanged copy.
func (c Cart) WithAmount(productID, amount int64) Cart {
	out := c.Clone()
	if i := out.Index(productID); i >= 0 {
		out[i].Amount = amount
	}
	return out
}

func (c Cart) Without(productID int64) Cart {
	out := make(Cart, 0, len(c))
	for _, item := range c {
		if item.ID != productID {
			out = append(out, item)
		}
	}
	return out
}

func (c Cart) Append(p domproduct.Product, amount int64) Cart {
	out := make(Cart, len(c), len(c)+1)
	copy(out, c)
	return append(out, Item{Product: p, Amount: amount})
}
