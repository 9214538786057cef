package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/brewleaf/client/internal/domain/cart"
)

const guestCartFile = "guestCart.json"

// GuestCartStore reads and writes the locally persisted cart used when no
// session exists. The file holds a bare JSON array of line items, matching
// the backend cart resource shape.
type GuestCartStore struct {
	fs   afero.Fs
	path string
}

// NewGuestCartStore creates a guest cart store rooted at dir
func NewGuestCartStore(fs afero.Fs, dir string) *GuestCartStore {
	return &GuestCartStore{fs: fs, path: filepath.Join(dir, guestCartFile)}
}

// Get returns the persisted guest cart; a missing file is an empty cart
func (s *GuestCartStore) Get() (cart.Cart, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return cart.New(), nil
		}
		return cart.Cart{}, fmt.Errorf("store: failed to read guest cart: %w", err)
	}

	var items []cart.LineItem
	if err := json.Unmarshal(data, &items); err != nil {
		return cart.Cart{}, fmt.Errorf("store: corrupt guest cart file: %w", err)
	}
	return cart.Cart{Items: items}, nil
}

// Set persists the guest cart, replacing the previous contents
func (s *GuestCartStore) Set(c cart.Cart) error {
	items := c.Items
	if items == nil {
		items = []cart.LineItem{}
	}

	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("store: failed to encode guest cart: %w", err)
	}
	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("store: failed to create storage dir: %w", err)
	}
	if err := afero.WriteFile(s.fs, s.path, data, 0o600); err != nil {
		return fmt.Errorf("store: failed to write guest cart: %w", err)
	}
	return nil
}

// Clear removes the guest cart file. Clearing an absent cart is a no-op.
func (s *GuestCartStore) Clear() error {
	if err := s.fs.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("store: failed to remove guest cart: %w", err)
	}
	return nil
}
