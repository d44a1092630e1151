// Package memory provides the in-memory fallback storage backend.
//
// All entities are held in maps guarded by a single RWMutex; ids come from
// atomic per-entity sequences, so concurrent creates never collide. Reads
// return copies so callers can never mutate stored state through aliases.
package memory

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/foliolab/folio/internal/interfaces"
	"github.com/foliolab/folio/internal/models"
)

// Store implements interfaces.Store entirely in process memory.
type Store struct {
	mu sync.RWMutex

	users        map[int64]*models.User
	portfolios   map[int64]*models.Portfolio
	investments  map[int64]*models.Investment
	transactions map[int64]*models.Transaction
	performance  map[int64]*models.PerformanceSnapshot

	userSeq        atomic.Int64
	portfolioSeq   atomic.Int64
	investmentSeq  atomic.Int64
	transactionSeq atomic.Int64
	performanceSeq atomic.Int64
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		users:        make(map[int64]*models.User),
		portfolios:   make(map[int64]*models.Portfolio),
		investments:  make(map[int64]*models.Investment),
		transactions: make(map[int64]*models.Transaction),
		performance:  make(map[int64]*models.PerformanceSnapshot),
	}
}

func (s *Store) Users() interfaces.UserStore               { return &userStore{s} }
func (s *Store) Portfolios() interfaces.PortfolioStore     { return &portfolioStore{s} }
func (s *Store) Investments() interfaces.InvestmentStore   { return &investmentStore{s} }
func (s *Store) Transactions() interfaces.TransactionStore { return &transactionStore{s} }
func (s *Store) Performance() interfaces.PerformanceStore  { return &performanceStore{s} }

func (s *Store) Close() error { return nil }

// --- users ---

type userStore struct{ s *Store }

func (u *userStore) Create(ctx context.Context, user *models.User) (*models.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	cp := *user
	cp.ID = u.s.userSeq.Add(1)
	u.s.users[cp.ID] = &cp

	out := cp
	return &out, nil
}

func (u *userStore) Get(ctx context.Context, id int64) (*models.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()

	user, ok := u.s.users[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	cp := *user
	return &cp, nil
}

func (u *userStore) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()

	for _, user := range u.s.users {
		if user.Username == username {
			cp := *user
			return &cp, nil
		}
	}
	return nil, interfaces.ErrNotFound
}

func (u *userStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()

	for _, user := range u.s.users {
		if user.Email == email {
			cp := *user
			return &cp, nil
		}
	}
	return nil, interfaces.ErrNotFound
}

func (u *userStore) Update(ctx context.Context, user *models.User) (*models.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	if _, ok := u.s.users[user.ID]; !ok {
		return nil, interfaces.ErrNotFound
	}
	cp := *user
	u.s.users[cp.ID] = &cp

	out := cp
	return &out, nil
}

func (u *userStore) Delete(ctx context.Context, id int64) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	if _, ok := u.s.users[id]; !ok {
		return interfaces.ErrNotFound
	}
	delete(u.s.users, id)
	return nil
}

// --- portfolios ---

type portfolioStore struct{ s *Store }

func (p *portfolioStore) Create(ctx context.Context, pf *models.Portfolio) (*models.Portfolio, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	cp := *pf
	cp.ID = p.s.portfolioSeq.Add(1)
	p.s.portfolios[cp.ID] = &cp

	out := cp
	return &out, nil
}

func (p *portfolioStore) Get(ctx context.Context, id int64) (*models.Portfolio, error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()

	pf, ok := p.s.portfolios[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	cp := *pf
	return &cp, nil
}

func (p *portfolioStore) ListByUser(ctx context.Context, userID int64) ([]*models.Portfolio, error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()

	var out []*models.Portfolio
	for _, pf := range p.s.portfolios {
		if pf.UserID == userID {
			cp := *pf
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (p *portfolioStore) ListActive(ctx context.Context) ([]*models.Portfolio, error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()

	var out []*models.Portfolio
	for _, pf := range p.s.portfolios {
		if pf.IsActive {
			cp := *pf
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (p *portfolioStore) Update(ctx context.Context, pf *models.Portfolio) (*models.Portfolio, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	if _, ok := p.s.portfolios[pf.ID]; !ok {
		return nil, interfaces.ErrNotFound
	}
	cp := *pf
	p.s.portfolios[cp.ID] = &cp

	out := cp
	return &out, nil
}

func (p *portfolioStore) Delete(ctx context.Context, id int64) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	if _, ok := p.s.portfolios[id]; !ok {
		return interfaces.ErrNotFound
	}
	delete(p.s.portfolios, id)
	return nil
}

// --- investments ---

type investmentStore struct{ s *Store }

func (v *investmentStore) Create(ctx context.Context, inv *models.Investment) (*models.Investment, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()

	cp := *inv
	cp.ID = v.s.investmentSeq.Add(1)
	v.s.investments[cp.ID] = &cp

	out := cp
	return &out, nil
}

func (v *investmentStore) Get(ctx context.Context, id int64) (*models.Investment, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()

	inv, ok := v.s.investments[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	cp := *inv
	return &cp, nil
}

func (v *investmentStore) ListByPortfolio(ctx context.Context, portfolioID int64) ([]*models.Investment, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()

	var out []*models.Investment
	for _, inv := range v.s.investments {
		if inv.PortfolioID == portfolioID {
			cp := *inv
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (v *investmentStore) Update(ctx context.Context, inv *models.Investment) (*models.Investment, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()

	if _, ok := v.s.investments[inv.ID]; !ok {
		return nil, interfaces.ErrNotFound
	}
	cp := *inv
	v.s.investments[cp.ID] = &cp

	out := cp
	return &out, nil
}

func (v *investmentStore) Delete(ctx context.Context, id int64) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()

	if _, ok := v.s.investments[id]; !ok {
		return interfaces.ErrNotFound
	}
	delete(v.s.investments, id)
	return nil
}

// --- transactions ---

type transactionStore struct{ s *Store }

func (t *transactionStore) Create(ctx context.Context, tx *models.Transaction) (*models.Transaction, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	cp := *tx
	cp.ID = t.s.transactionSeq.Add(1)
	t.s.transactions[cp.ID] = &cp

	out := cp
	return &out, nil
}

func (t *transactionStore) Get(ctx context.Context, id int64) (*models.Transaction, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	tx, ok := t.s.transactions[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	cp := *tx
	return &cp, nil
}

func (t *transactionStore) ListByPortfolio(ctx context.Context, portfolioID int64) ([]*models.Transaction, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	var out []*models.Transaction
	for _, tx := range t.s.transactions {
		if tx.PortfolioID == portfolioID {
			cp := *tx
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// --- performance ---

type performanceStore struct{ s *Store }

func (p *performanceStore) Create(ctx context.Context, snap *models.PerformanceSnapshot) (*models.PerformanceSnapshot, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	cp := *snap
	cp.ID = p.s.performanceSeq.Add(1)
	p.s.performance[cp.ID] = &cp

	out := cp
	return &out, nil
}

func (p *performanceStore) ListByPortfolio(ctx context.Context, portfolioID int64) ([]*models.PerformanceSnapshot, error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()

	var out []*models.PerformanceSnapshot
	for _, snap := range p.s.performance {
		if snap.PortfolioID == portfolioID {
			cp := *snap
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
