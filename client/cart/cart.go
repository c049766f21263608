// Package cart implements the buyer's client-local shopping cart. Mutations
// never touch the network; every change is written straight back to a local
// file so the cart survives restarts.
package cart

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/tindaph/tindaph/model"
)

// FileName is the fixed storage key for the persisted item list.
const FileName = "cart.json"

// Item is one line item: a full product snapshot plus a positive quantity.
// The snapshot does not update when the catalog entry changes.
type Item struct {
	Product  model.ProductEntity `json:"product"`
	Quantity int                 `json:"quantity"`
}

// Store holds the ordered item list. At most one item exists per product
// identity, and quantities are always >= 1: setting a quantity to zero or
// below removes the item instead.
type Store struct {
	mu    sync.Mutex
	path  string
	items []Item
}

// NewStore rehydrates the cart persisted under dir. A missing or unparsable
// file means an empty cart, never an error.
func NewStore(dir string) *Store {
	s := &Store{path: filepath.Join(dir, FileName)}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return s
	}

	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return s
	}

	s.items = items
	return s
}

// Add puts one unit of the product in the cart. If a line item for the same
// product already exists its quantity is incremented; otherwise a new item
// is appended. Existing order is preserved.
func (s *Store) Add(product model.ProductEntity) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].Product.ID == product.ID {
			s.items[i].Quantity++
			s.persist()
			return
		}
	}

	s.items = append(s.items, Item{Product: product, Quantity: 1})
	s.persist()
}

// Remove drops the line item for the product. Removing an absent product is
// a no-op, not an error.
func (s *Store) Remove(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.remove(productID)
	s.persist()
}

// SetQuantity replaces the item's quantity. A quantity of zero or less
// behaves exactly like Remove. No clamping against stock happens here;
// stock limits are a presentation concern.
func (s *Store) SetQuantity(productID string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		s.remove(productID)
		s.persist()
		return
	}

	for i := range s.items {
		if s.items[i].Product.ID.Hex() == productID {
			s.items[i].Quantity = quantity
			break
		}
	}
	s.persist()
}

// Clear empties the cart unconditionally.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.persist()
}

// Total is the sum of price times quantity over all items, recomputed on
// demand and never stored.
func (s *Store) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total float64
	for _, item := range s.items {
		total += item.Product.Price * float64(item.Quantity)
	}
	return total
}

// ItemCount is the sum of quantities over all items.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

// Contains reports whether the product has a line item in the cart.
func (s *Store) Contains(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range s.items {
		if item.Product.ID.Hex() == productID {
			return true
		}
	}
	return false
}

// Items returns a copy of the line items in cart order.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]Item, len(s.items))
	copy(items, s.items)
	return items
}

func (s *Store) remove(productID string) {
	for i, item := range s.items {
		if item.Product.ID.Hex() == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

// persist writes the full item list back synchronously. The write is
// fire-and-forget: a failed write leaves the in-memory cart authoritative
// until the next mutation retries it.
func (s *Store) persist() {
	data, err := json.Marshal(s.items)
	if err != nil {
		return
	}
	_ = os.WriteFile(s.path, data, 0o600)
}
