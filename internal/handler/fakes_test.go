package handler

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dfquintero/autoferia/internal/model"
	"github.com/dfquintero/autoferia/internal/repository"
	"github.com/dfquintero/autoferia/internal/utils"
)

// In-memory store implementations backing the handler tests. They mirror
// the MySQL repos closely enough that handler behavior does not depend on
// which implementation sits underneath.

type fakeUserStore struct {
	mu     sync.Mutex
	nextID uint64
	users  map[uint64]model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[uint64]model.User{}}
}

func (f *fakeUserStore) Create(_ context.Context, email, password, fullName string, cost int) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return 0, repository.ErrEmailExists
		}
	}
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	f.nextID++
	f.users[f.nextID] = model.User{
		ID:           f.nextID,
		Email:        email,
		PasswordHash: hash,
		FullName:     fullName,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
	return f.nextID, nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

func (f *fakeUserStore) GetByID(_ context.Context, id uint64) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserStore) UpdateProfile(_ context.Context, id uint64, fullName, phone, city string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.FullName = fullName
	u.Phone = phone
	u.City = city
	u.UpdatedAt = time.Now().UTC()
	f.users[id] = u
	return nil
}

type refreshRec struct {
	userID  uint64
	exp     time.Time
	revoked bool
}

type fakeTokenStore struct {
	mu          sync.Mutex
	tokens      map[string]refreshRec
	validateErr error
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: map[string]refreshRec{}}
}

func (f *fakeTokenStore) StoreRefresh(_ context.Context, userID uint64, tokenHash string, exp time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens[tokenHash] = refreshRec{userID: userID, exp: exp}
	return nil
}

func (f *fakeTokenStore) ValidateRefresh(_ context.Context, tokenHash string) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.validateErr != nil {
		return 0, f.validateErr
	}
	rec, ok := f.tokens[tokenHash]
	if !ok || rec.revoked || time.Now().UTC().After(rec.exp) {
		return 0, sql.ErrNoRows
	}
	return rec.userID, nil
}

func (f *fakeTokenStore) RevokeByHash(_ context.Context, tokenHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if rec, ok := f.tokens[tokenHash]; ok {
		rec.revoked = true
		f.tokens[tokenHash] = rec
	}
	return nil
}

func (f *fakeTokenStore) RevokeAllForUser(_ context.Context, userID uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for h, rec := range f.tokens {
		if rec.userID == userID {
			rec.revoked = true
			f.tokens[h] = rec
		}
	}
	return nil
}

type fakeVehicleStore struct {
	mu       sync.Mutex
	vehicles []model.Vehicle
	sellers  map[uint64]model.Seller

	lastSearch repository.VehicleSearchQuery
	searchErr  error
}

func newFakeVehicleStore() *fakeVehicleStore {
	return &fakeVehicleStore{sellers: map[uint64]model.Seller{}}
}

func (f *fakeVehicleStore) Create(_ context.Context, v *model.Vehicle) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	v.ID = uuid.NewString()
	v.Status = model.StatusActive
	now := time.Now().UTC()
	v.CreatedAt = now
	v.UpdatedAt = now
	f.vehicles = append(f.vehicles, *v)
	return nil
}

func (f *fakeVehicleStore) GetDetail(_ context.Context, id string) (model.Vehicle, model.Seller, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, v := range f.vehicles {
		if v.ID == id {
			return v, f.sellers[v.UserID], nil
		}
	}
	return model.Vehicle{}, model.Seller{}, repository.ErrNotFound
}

func (f *fakeVehicleStore) Search(_ context.Context, q repository.VehicleSearchQuery) ([]model.VehicleCard, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastSearch = q
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	var out []model.VehicleCard
	for _, v := range f.vehicles {
		if v.Status != model.StatusActive {
			continue
		}
		if !containsFold(v.Brand, q.Brand) || !containsFold(v.City, q.City) {
			continue
		}
		out = append(out, cardOf(v))
	}
	sortCards(out)
	if limit := q.EffectiveLimit(); len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func (f *fakeVehicleStore) ListByOwner(_ context.Context, userID uint64) ([]model.VehicleCard, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.VehicleCard
	for _, v := range f.vehicles {
		if v.UserID == userID {
			out = append(out, cardOf(v))
		}
	}
	sortCards(out)
	return out, nil
}

func cardOf(v model.Vehicle) model.VehicleCard {
	img := model.PlaceholderImageURL
	if len(v.Images) > 0 {
		img = v.Images[0]
	}
	return model.VehicleCard{
		ID:           v.ID,
		Title:        model.ListingTitle(v.Brand, v.Model, v.Year),
		Brand:        v.Brand,
		Model:        v.Model,
		Year:         v.Year,
		Price:        v.Price,
		MileageKM:    v.MileageKM,
		Transmission: v.Transmission,
		City:         v.City,
		ImageURL:     img,
		Status:       v.Status,
		CreatedAt:    v.CreatedAt,
	}
}

func sortCards(cards []model.VehicleCard) {
	sort.SliceStable(cards, func(i, j int) bool {
		if !cards[i].CreatedAt.Equal(cards[j].CreatedAt) {
			return cards[i].CreatedAt.After(cards[j].CreatedAt)
		}
		return cards[i].ID > cards[j].ID
	})
}
