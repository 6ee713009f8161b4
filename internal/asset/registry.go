package asset

import (
	"fmt"
	"sync"
)

// Registry is a thread-safe registry of known coins.
type Registry struct {
	byType   map[CoinType]*Coin
	bySymbol map[string]*Coin
	mu       sync.RWMutex
}

// NewRegistry creates a new empty coin registry.
func NewRegistry() *Registry {
	return &Registry{
		byType:   make(map[CoinType]*Coin),
		bySymbol: make(map[string]*Coin),
	}
}

// Register adds a coin to the registry.
// Panics if a coin with the same type tag is already registered.
func (r *Registry) Register(c *Coin) {
	if c == nil {
		panic("asset: cannot register nil coin")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byType[c.Type()]; exists {
		panic(fmt.Sprintf("asset: %s already registered", c.Type()))
	}

	r.byType[c.Type()] = c
	r.bySymbol[c.Symbol()] = c
}

// Get retrieves a coin by its type tag.
func (r *Registry) Get(t CoinType) (*Coin, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byType[t]
	return c, ok
}

// MustGet retrieves a coin by its type tag, panics if not found.
func (r *Registry) MustGet(t CoinType) *Coin {
	c, ok := r.Get(t)
	if !ok {
		panic(fmt.Sprintf("asset: %s not found in registry", t))
	}
	return c
}

// GetBySymbol retrieves a coin by its display symbol.
func (r *Registry) GetBySymbol(symbol string) (*Coin, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.bySymbol[symbol]
	return c, ok
}

// All returns all registered coins.
func (r *Registry) All() []*Coin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Coin, 0, len(r.byType))
	for _, c := range r.byType {
		result = append(result, c)
	}
	return result
}

// Count returns the number of registered coins.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byType)
}
