// Package testutil provides an in-memory store.Store for service and handler tests.
package testutil

import (
	"context"
	"sync"
	"time"

	"sisivoy-api/internal/models"
	"sisivoy-api/internal/store"
)

// MemoryStore keeps every table in maps guarded by one mutex. It enforces the
// same unique keys and ownership filters as the MySQL store. WithTx snapshots
// the tables and restores them when fn fails.
type MemoryStore struct {
	mu sync.Mutex

	users       map[int]models.User
	tokens      map[string]models.RefreshToken
	memberships map[int]models.SellerMembership
	brands      map[int]models.Brand
	branches    map[int]models.Branch
	nextID      int

	// Injected failures, returned verbatim by the matching repository call.
	RefreshTokenCreateErr error
	MembershipGetErr      error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:       map[int]models.User{},
		tokens:      map[string]models.RefreshToken{},
		memberships: map[int]models.SellerMembership{},
		brands:      map[int]models.Brand{},
		branches:    map[int]models.Branch{},
	}
}

func (s *MemoryStore) Users() store.UserRepository                 { return memUsers{s} }
func (s *MemoryStore) RefreshTokens() store.RefreshTokenRepository { return memTokens{s} }
func (s *MemoryStore) Memberships() store.MembershipRepository     { return memMemberships{s} }
func (s *MemoryStore) Brands() store.BrandRepository               { return memBrands{s} }
func (s *MemoryStore) Branches() store.BranchRepository            { return memBranches{s} }

func (s *MemoryStore) WithTx(ctx context.Context, fn func(ctx context.Context, tx store.Store) error) error {
	snap := s.snapshot()
	if err := fn(ctx, s); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

// UserCount and TokenCount expose table sizes to assertions.
func (s *MemoryStore) UserCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

func (s *MemoryStore) TokenCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tokens)
}

// SetRole changes a stored user's role in place.
func (s *MemoryStore) SetRole(userID int, role string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[userID]; ok {
		u.Role = role
		s.users[userID] = u
	}
}

// SetPasswordHash overwrites the stored digest, e.g. with a malformed one.
func (s *MemoryStore) SetPasswordHash(userID int, hash string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[userID]; ok {
		u.PasswordHash = hash
		s.users[userID] = u
	}
}

type snapshot struct {
	users       map[int]models.User
	tokens      map[string]models.RefreshToken
	memberships map[int]models.SellerMembership
	brands      map[int]models.Brand
	branches    map[int]models.Branch
	nextID      int
}

func (s *MemoryStore) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot{
		users:       cloneMap(s.users),
		tokens:      cloneMap(s.tokens),
		memberships: cloneMap(s.memberships),
		brands:      cloneMap(s.brands),
		branches:    cloneMap(s.branches),
		nextID:      s.nextID,
	}
}

func (s *MemoryStore) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = snap.users
	s.tokens = snap.tokens
	s.memberships = snap.memberships
	s.brands = snap.brands
	s.branches = snap.branches
	s.nextID = snap.nextID
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *MemoryStore) id() int {
	s.nextID++
	return s.nextID
}

type memUsers struct{ s *MemoryStore }

func (r memUsers) Create(ctx context.Context, u *models.User) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return 0, store.ErrDuplicate
		}
	}
	row := *u
	row.ID = r.s.id()
	row.CreatedAt = time.Now()
	r.s.users[row.ID] = row
	return row.ID, nil
}

func (r memUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (r memUsers) GetByID(ctx context.Context, id int) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &u, nil
}

func (r memUsers) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	if err == store.ErrNotFound {
		return false, nil
	}
	return err == nil, err
}

func (r memUsers) UpdateProfile(ctx context.Context, id int, upd models.ProfileUpdate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil
	}
	set := func(dst **string, v *string) {
		if v != nil {
			c := *v
			*dst = &c
		}
	}
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.PasswordHash != nil {
		u.PasswordHash = *upd.PasswordHash
	}
	set(&u.Phone, upd.Phone)
	set(&u.BirthDate, upd.BirthDate)
	set(&u.Gender, upd.Gender)
	set(&u.ReferralCode, upd.ReferralCode)
	r.s.users[id] = u
	return nil
}

type memTokens struct{ s *MemoryStore }

func (r memTokens) Create(ctx context.Context, userID int, token string, expiresAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.RefreshTokenCreateErr != nil {
		return r.s.RefreshTokenCreateErr
	}
	if _, ok := r.s.tokens[token]; ok {
		return store.ErrDuplicate
	}
	r.s.tokens[token] = models.RefreshToken{
		ID: r.s.id(), UserID: userID, Token: token, ExpiresAt: expiresAt, CreatedAt: time.Now(),
	}
	return nil
}

func (r memTokens) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rt, ok := r.s.tokens[token]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &rt, nil
}

func (r memTokens) Delete(ctx context.Context, token string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.tokens[token]; !ok {
		return 0, nil
	}
	delete(r.s.tokens, token)
	return 1, nil
}

type memMemberships struct{ s *MemoryStore }

func (r memMemberships) Create(ctx context.Context, m *models.SellerMembership) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.memberships {
		if existing.UserID == m.UserID {
			return 0, store.ErrDuplicate
		}
	}
	row := *m
	row.ID = r.s.id()
	row.MembershipStart = time.Now()
	r.s.memberships[row.ID] = row
	return row.ID, nil
}

func (r memMemberships) GetActive(ctx context.Context, userID int) (*models.SellerMembership, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.MembershipGetErr != nil {
		return nil, r.s.MembershipGetErr
	}
	var found *models.SellerMembership
	for _, m := range r.s.memberships {
		if m.UserID != userID || !m.IsActive {
			continue
		}
		if found == nil || m.ID > found.ID {
			c := m
			found = &c
		}
	}
	if found == nil {
		return nil, store.ErrNotFound
	}
	return found, nil
}

func (r memMemberships) HasAny(ctx context.Context, userID int) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, m := range r.s.memberships {
		if m.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

type memBrands struct{ s *MemoryStore }

func (r memBrands) Create(ctx context.Context, b *models.Brand) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	row := *b
	row.ID = r.s.id()
	row.CreatedAt = time.Now()
	r.s.brands[row.ID] = row
	return row.ID, nil
}

func (r memBrands) ListByOwner(ctx context.Context, ownerID int) ([]*models.Brand, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*models.Brand{}
	for id := 1; id <= r.s.nextID; id++ {
		if b, ok := r.s.brands[id]; ok && b.OwnerID == ownerID {
			out = append(out, &b)
		}
	}
	return out, nil
}

func (r memBrands) GetOwned(ctx context.Context, id, ownerID int) (*models.Brand, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.brands[id]
	if !ok || b.OwnerID != ownerID {
		return nil, store.ErrNotFound
	}
	return &b, nil
}

func (r memBrands) UpdateOwned(ctx context.Context, b *models.Brand) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.brands[b.ID]
	if !ok || existing.OwnerID != b.OwnerID {
		return nil
	}
	row := *b
	row.CreatedAt = existing.CreatedAt
	r.s.brands[b.ID] = row
	return nil
}

func (r memBrands) DeleteOwned(ctx context.Context, id, ownerID int) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.brands[id]
	if !ok || b.OwnerID != ownerID {
		return false, nil
	}
	delete(r.s.brands, id)
	// ON DELETE CASCADE
	for bid, br := range r.s.branches {
		if br.BrandID == id {
			delete(r.s.branches, bid)
		}
	}
	return true, nil
}

type memBranches struct{ s *MemoryStore }

// ownedLocked reports whether branch id exists under a brand owned by ownerID.
func (r memBranches) ownedLocked(id, ownerID int) (models.Branch, bool) {
	b, ok := r.s.branches[id]
	if !ok {
		return b, false
	}
	brand, ok := r.s.brands[b.BrandID]
	return b, ok && brand.OwnerID == ownerID
}

func (r memBranches) Create(ctx context.Context, b *models.Branch) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	row := *b
	row.ID = r.s.id()
	row.CreatedAt = time.Now()
	r.s.branches[row.ID] = row
	return row.ID, nil
}

func (r memBranches) ListByBrand(ctx context.Context, brandID, ownerID int) ([]*models.Branch, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*models.Branch{}
	for id := 1; id <= r.s.nextID; id++ {
		if b, ok := r.ownedLocked(id, ownerID); ok && b.BrandID == brandID {
			out = append(out, &b)
		}
	}
	return out, nil
}

func (r memBranches) GetOwned(ctx context.Context, id, ownerID int) (*models.Branch, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.ownedLocked(id, ownerID)
	if !ok {
		return nil, store.ErrNotFound
	}
	return &b, nil
}

func (r memBranches) UpdateOwned(ctx context.Context, b *models.Branch, ownerID int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.ownedLocked(b.ID, ownerID)
	if !ok {
		return nil
	}
	row := *b
	row.BrandID = existing.BrandID
	row.CreatedAt = existing.CreatedAt
	r.s.branches[b.ID] = row
	return nil
}

func (r memBranches) DeleteOwned(ctx context.Context, id, ownerID int) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.ownedLocked(id, ownerID); !ok {
		return false, nil
	}
	delete(r.s.branches, id)
	return true, nil
}
