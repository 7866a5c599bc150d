package engine

import (
	"sort"
	"sync"

	"github.com/nunalabs/Astro-Shiba-Pop/x/engine/types"
	"github.com/nunalabs/Astro-Shiba-Pop/x/launch"
	"github.com/nunalabs/Astro-Shiba-Pop/x/oracle"
)

// Pool couples a reserve pair with its price oracle.
type Pool struct {
	ID     uint64
	Pair   types.ReservePair
	Oracle *oracle.Oracle
}

// Clone returns an independent copy.
func (p *Pool) Clone() *Pool {
	return &Pool{ID: p.ID, Pair: p.Pair, Oracle: p.Oracle.Clone()}
}

// Store is the in-memory state backing the engine. Reads return
// snapshots; writers swap whole values in under the lock so a failed
// operation can never leave partial state behind.
type Store struct {
	mu         sync.RWMutex
	pools      map[uint64]*Pool
	poolByPair map[string]uint64
	sales      map[string]*launch.TokenSale
	nextPoolID uint64
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		pools:      make(map[uint64]*Pool),
		poolByPair: make(map[string]uint64),
		sales:      make(map[string]*launch.TokenSale),
		nextPoolID: 1,
	}
}

func pairKey(token0, token1 string) string {
	return token0 + "/" + token1
}

// CreatePool registers a pool for the ordered pair, failing if one
// already exists.
func (s *Store) CreatePool(pair types.ReservePair, orc *oracle.Oracle) (*Pool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := pairKey(pair.Token0, pair.Token1)
	if _, exists := s.poolByPair[key]; exists {
		return nil, types.ErrPoolAlreadyExists.Wrapf("pair %s", key)
	}
	pool := &Pool{ID: s.nextPoolID, Pair: pair, Oracle: orc}
	s.pools[pool.ID] = pool
	s.poolByPair[key] = pool.ID
	s.nextPoolID++
	return pool.Clone(), nil
}

// GetPool returns a snapshot of the pool.
func (s *Store) GetPool(poolID uint64) (*Pool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pool, ok := s.pools[poolID]
	if !ok {
		return nil, types.ErrPoolNotFound.Wrapf("pool %d", poolID)
	}
	return pool.Clone(), nil
}

// PutPool replaces the stored pool state.
func (s *Store) PutPool(pool *Pool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pools[pool.ID]; !ok {
		return types.ErrPoolNotFound.Wrapf("pool %d", pool.ID)
	}
	s.pools[pool.ID] = pool.Clone()
	return nil
}

// ListPools returns snapshots of all pools ordered by ID.
func (s *Store) ListPools() []*Pool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Pool, 0, len(s.pools))
	for _, p := range s.pools {
		out = append(out, p.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// CreateSale registers a token sale, failing on duplicate symbols.
func (s *Store) CreateSale(sale *launch.TokenSale) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.sales[sale.Token]; exists {
		return types.ErrTokenAlreadyExists.Wrapf("token %s", sale.Token)
	}
	s.sales[sale.Token] = sale.Clone()
	return nil
}

// GetSale returns a snapshot of the sale.
func (s *Store) GetSale(token string) (*launch.TokenSale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sale, ok := s.sales[token]
	if !ok {
		return nil, types.ErrTokenNotFound.Wrapf("token %s", token)
	}
	return sale.Clone(), nil
}

// PutSale replaces the stored sale state.
func (s *Store) PutSale(sale *launch.TokenSale) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sales[sale.Token]; !ok {
		return types.ErrTokenNotFound.Wrapf("token %s", sale.Token)
	}
	s.sales[sale.Token] = sale.Clone()
	return nil
}

// ListSales returns snapshots of all sales ordered by token.
func (s *Store) ListSales() []*launch.TokenSale {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*launch.TokenSale, 0, len(s.sales))
	for _, sale := range s.sales {
		out = append(out, sale.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Token < out[j].Token })
	return out
}

// Counts returns the number of pools and still-bonding sales.
func (s *Store) Counts() (pools int, bonding int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pools = len(s.pools)
	for _, sale := range s.sales {
		if sale.Status == launch.StatusBonding {
			bonding++
		}
	}
	return pools, bonding
}
