// Package memory is an in-process record store with the same constraints as
// the Postgres schema: unique (user, pet) likes, likes reference existing
// pets, unique user external id and email. Used for local runs and tests.
package memory

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	likeDomain "github.com/Kilat-Pet-Delivery/service-adoption/internal/domain/like"
	petDomain "github.com/Kilat-Pet-Delivery/service-adoption/internal/domain/pet"
	userDomain "github.com/Kilat-Pet-Delivery/service-adoption/internal/domain/user"
	"github.com/Kilat-Pet-Delivery/service-adoption/pkg/domain"
)

// Store holds all tables behind one lock.
type Store struct {
	mu sync.RWMutex

	pets    map[int64]*petDomain.Pet
	likes   map[int64]*likeDomain.Like
	users   map[string]*userDomain.User
	nextPet int64
	nextLk  int64
	nextUsr int64
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		pets:  make(map[int64]*petDomain.Pet),
		likes: make(map[int64]*likeDomain.Like),
		users: make(map[string]*userDomain.User),
	}
}

// Pets returns the pet repository view.
func (s *Store) Pets() *PetRepo { return &PetRepo{s: s} }

// Likes returns the like repository view.
func (s *Store) Likes() *LikeRepo { return &LikeRepo{s: s} }

// Users returns the user repository view.
func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }

// --- pets ---

type PetRepo struct{ s *Store }

func (r *PetRepo) FindByID(_ context.Context, id int64) (*petDomain.Pet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.pets[id]
	if !ok {
		return nil, domain.NewNotFoundError("Pet", strconv.FormatInt(id, 10))
	}
	return p, nil
}

func (r *PetRepo) List(_ context.Context, q petDomain.ListQuery) ([]*petDomain.Pet, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	matches := make([]*petDomain.Pet, 0, len(r.s.pets))
	for _, p := range r.s.pets {
		if q.TypeFilter == "" || strings.Contains(strings.ToLower(p.PetType()), q.TypeFilter) {
			matches = append(matches, p)
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		if !matches[i].CreatedAt().Equal(matches[j].CreatedAt()) {
			return matches[i].CreatedAt().After(matches[j].CreatedAt())
		}
		return matches[i].ID() > matches[j].ID()
	})

	total := int64(len(matches))
	start, ok := domain.Offset(q.Page, q.Limit)
	if !ok || start >= len(matches) {
		return []*petDomain.Pet{}, total, nil
	}
	end := start + q.Limit
	if end > len(matches) {
		end = len(matches)
	}
	return matches[start:end], total, nil
}

func (r *PetRepo) Save(_ context.Context, p *petDomain.Pet) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.nextPet++
	p.AssignID(r.s.nextPet)
	r.s.pets[p.ID()] = p
	return nil
}

// --- likes ---

type LikeRepo struct{ s *Store }

func (r *LikeRepo) FindByID(_ context.Context, id int64) (*likeDomain.Like, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	l, ok := r.s.likes[id]
	if !ok {
		return nil, domain.NewNotFoundError("Like", strconv.FormatInt(id, 10))
	}
	return l, nil
}

func (r *LikeRepo) FindByUserAndPet(_ context.Context, userID string, petID int64) (*likeDomain.Like, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.s.findLike(userID, petID), nil
}

func (r *LikeRepo) Save(_ context.Context, l *likeDomain.Like) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.pets[l.PetID()]; !ok {
		return domain.NewNotFoundError("Pet", strconv.FormatInt(l.PetID(), 10))
	}
	if r.s.findLike(l.UserID(), l.PetID()) != nil {
		return domain.NewConflictError("pet is already liked by this user")
	}
	r.s.nextLk++
	l.AssignID(r.s.nextLk)
	r.s.likes[l.ID()] = l
	return nil
}

func (r *LikeRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.likes, id)
	return nil
}

func (r *LikeRepo) ListByUser(_ context.Context, userID string) ([]likeDomain.LikedPet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]likeDomain.LikedPet, 0)
	for _, l := range r.s.likes {
		if l.UserID() != userID {
			continue
		}
		item := likeDomain.LikedPet{Like: l}
		if p, ok := r.s.pets[l.PetID()]; ok {
			item.Pet = &likeDomain.PetSummary{
				ID:          p.ID(),
				Name:        p.Name(),
				Type:        p.PetType(),
				Age:         p.Age(),
				ImageURL:    p.ImageURL(),
				ListingMode: string(p.ListingMode()),
				Price:       p.Price(),
			}
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Like, out[j].Like
		if !a.CreatedAt().Equal(b.CreatedAt()) {
			return a.CreatedAt().After(b.CreatedAt())
		}
		return a.ID() > b.ID()
	})
	return out, nil
}

// Count returns the number of likes for (userID, petID); used by tests.
func (r *LikeRepo) Count(userID string, petID int64) int {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	n := 0
	for _, l := range r.s.likes {
		if l.UserID() == userID && l.PetID() == petID {
			n++
		}
	}
	return n
}

func (s *Store) findLike(userID string, petID int64) *likeDomain.Like {
	for _, l := range s.likes {
		if l.UserID() == userID && l.PetID() == petID {
			return l
		}
	}
	return nil
}

// --- users ---

type UserRepo struct{ s *Store }

func (r *UserRepo) Upsert(_ context.Context, u *userDomain.User) (*userDomain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for ext, other := range r.s.users {
		if ext != u.ExternalID() && other.Email() == u.Email() {
			return nil, domain.NewConflictError("email is already used by another account")
		}
	}

	now := time.Now().UTC()
	if existing, ok := r.s.users[u.ExternalID()]; ok {
		updated := userDomain.Reconstruct(existing.ID(), existing.ExternalID(), u.Email(), u.Name(), u.IsAdmin(), existing.CreatedAt(), now)
		r.s.users[u.ExternalID()] = updated
		return updated, nil
	}

	r.s.nextUsr++
	created := userDomain.Reconstruct(r.s.nextUsr, u.ExternalID(), u.Email(), u.Name(), u.IsAdmin(), u.CreatedAt(), u.UpdatedAt())
	r.s.users[u.ExternalID()] = created
	return created, nil
}

func (r *UserRepo) FindByExternalID(_ context.Context, externalID string) (*userDomain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[externalID]
	if !ok {
		return nil, domain.NewNotFoundError("User", externalID)
	}
	return u, nil
}

// UserCount returns the number of stored users; used by tests.
func (r *UserRepo) UserCount() int {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.users)
}
