package repositories

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	dbm "mealtrip/internal/models/db_models"
)

// MemoryStore is a map-backed implementation of every repository
// interface, kept behind one mutex. It backs the service tests and
// mirrors the transactional semantics of the postgres implementations:
// each exported call is atomic.
type MemoryStore struct {
	mu       sync.RWMutex
	trips    map[uuid.UUID]*dbm.Trip
	groups   map[uuid.UUID][]dbm.Group // by trip id
	products map[uuid.UUID]*dbm.Product
	records  map[uuid.UUID]*dbm.MealRecord
	grants   map[uuid.UUID]*dbm.TripAccess
	links    map[uuid.UUID]*dbm.SharingLink
	accounts map[uuid.UUID]*dbm.Account
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		trips:    make(map[uuid.UUID]*dbm.Trip),
		groups:   make(map[uuid.UUID][]dbm.Group),
		products: make(map[uuid.UUID]*dbm.Product),
		records:  make(map[uuid.UUID]*dbm.MealRecord),
		grants:   make(map[uuid.UUID]*dbm.TripAccess),
		links:    make(map[uuid.UUID]*dbm.SharingLink),
		accounts: make(map[uuid.UUID]*dbm.Account),
	}
}

func assignID(base *dbm.BaseModel) {
	if base.ID == uuid.Nil {
		base.ID = uuid.New()
	}
	now := time.Now().Unix()
	base.CreatedAt = now
	base.UpdatedAt = now
}

// --- TripRepository ---

func (s *MemoryStore) CreateTrip(_ context.Context, trip *dbm.Trip, groups []dbm.Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	assignID(&trip.BaseModel)
	cp := *trip
	s.trips[trip.ID] = &cp
	s.replaceGroupsLocked(trip.ID, groups)
	return nil
}

func (s *MemoryStore) replaceGroupsLocked(tripID uuid.UUID, groups []dbm.Group) {
	out := make([]dbm.Group, 0, len(groups))
	for i := range groups {
		g := groups[i]
		assignID(&g.BaseModel)
		g.TripID = tripID
		g.Seq = i
		out = append(out, g)
	}
	s.groups[tripID] = out
}

func (s *MemoryStore) GetTripByID(_ context.Context, tripID uuid.UUID) (*dbm.Trip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	trip, ok := s.trips[tripID]
	if !ok {
		return nil, nil
	}
	cp := *trip
	cp.Groups = append([]dbm.Group(nil), s.groups[tripID]...)
	return &cp, nil
}

func (s *MemoryStore) UpdateTrip(_ context.Context, trip *dbm.Trip, groups []dbm.Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.trips[trip.ID]
	if !ok {
		return nil
	}
	existing.Name = trip.Name
	existing.FromDate = trip.FromDate
	existing.TillDate = trip.TillDate
	s.replaceGroupsLocked(trip.ID, groups)
	return nil
}

func (s *MemoryStore) SetTripArchived(_ context.Context, tripID uuid.UUID, archived bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if trip, ok := s.trips[tripID]; ok {
		trip.Archived = archived
	}
	return nil
}

func (s *MemoryStore) DeleteTrip(_ context.Context, tripID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.trips, tripID)
	delete(s.groups, tripID)
	for id, rec := range s.records {
		if rec.TripID == tripID {
			delete(s.records, id)
		}
	}
	for id, grant := range s.grants {
		if grant.TripID == tripID {
			delete(s.grants, id)
		}
	}
	for id, link := range s.links {
		if link.TripID == tripID {
			delete(s.links, id)
		}
	}
	return nil
}

func (s *MemoryStore) ListTripsByOwner(_ context.Context, ownerID uuid.UUID) ([]dbm.Trip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []dbm.Trip
	for _, trip := range s.trips {
		if trip.OwnerID == ownerID {
			out = append(out, *trip)
		}
	}
	sortTrips(out)
	return out, nil
}

func (s *MemoryStore) ListTripsByIDs(_ context.Context, tripIDs []uuid.UUID) ([]dbm.Trip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []dbm.Trip
	for _, id := range tripIDs {
		if trip, ok := s.trips[id]; ok {
			out = append(out, *trip)
		}
	}
	sortTrips(out)
	return out, nil
}

func sortTrips(trips []dbm.Trip) {
	for i := 1; i < len(trips); i++ {
		for j := i; j > 0 && trips[j-1].FromDate > trips[j].FromDate; j-- {
			trips[j-1], trips[j] = trips[j], trips[j-1]
		}
	}
}

// --- MealRepository ---

func (s *MemoryStore) AddRecord(_ context.Context, tripID uuid.UUID, dayNumber int, meal int, productID uuid.UUID, mass float64) (*dbm.MealRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range s.records {
		if rec.TripID == tripID && rec.DayNumber == dayNumber && rec.Meal == meal && rec.ProductID == productID {
			rec.Mass += mass
			s.touchLocked(tripID)
			cp := *rec
			return &cp, nil
		}
	}

	rec := dbm.MealRecord{
		TripID:    tripID,
		DayNumber: dayNumber,
		Meal:      meal,
		ProductID: productID,
		Mass:      mass,
	}
	assignID(&rec.BaseModel)
	s.records[rec.ID] = &rec
	s.touchLocked(tripID)
	cp := rec
	return &cp, nil
}

func (s *MemoryStore) touchLocked(tripID uuid.UUID) {
	if trip, ok := s.trips[tripID]; ok {
		now := time.Now().Unix()
		if now > trip.LastUpdate {
			trip.LastUpdate = now
		}
	}
}

func (s *MemoryStore) RemoveRecord(_ context.Context, tripID uuid.UUID, recordID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[recordID]
	if !ok || rec.TripID != tripID {
		return false, nil
	}
	delete(s.records, recordID)
	s.touchLocked(tripID)
	return true, nil
}

func (s *MemoryStore) ListByDay(_ context.Context, tripID uuid.UUID, dayNumber int) ([]dbm.MealRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []dbm.MealRecord
	for _, rec := range s.records {
		if rec.TripID == tripID && rec.DayNumber == dayNumber {
			out = append(out, s.withProductLocked(*rec))
		}
	}
	sortRecords(out)
	return out, nil
}

func (s *MemoryStore) ListByTrip(_ context.Context, tripID uuid.UUID) ([]dbm.MealRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []dbm.MealRecord
	for _, rec := range s.records {
		if rec.TripID == tripID {
			out = append(out, s.withProductLocked(*rec))
		}
	}
	sortRecords(out)
	return out, nil
}

func (s *MemoryStore) withProductLocked(rec dbm.MealRecord) dbm.MealRecord {
	if product, ok := s.products[rec.ProductID]; ok {
		rec.Product = *product
	}
	return rec
}

func sortRecords(records []dbm.MealRecord) {
	less := func(a, b dbm.MealRecord) bool {
		if a.DayNumber != b.DayNumber {
			return a.DayNumber < b.DayNumber
		}
		if a.Meal != b.Meal {
			return a.Meal < b.Meal
		}
		return a.CreatedAt < b.CreatedAt
	}
	for i := 1; i < len(records); i++ {
		for j := i; j > 0 && less(records[j], records[j-1]); j-- {
			records[j-1], records[j] = records[j], records[j-1]
		}
	}
}

func (s *MemoryStore) CycleDays(_ context.Context, tripID uuid.UUID, srcStart, period, dstStart, dstEnd int, overwrite bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if overwrite {
		for id, rec := range s.records {
			if rec.TripID == tripID && rec.DayNumber >= dstStart && rec.DayNumber <= dstEnd {
				delete(s.records, id)
			}
		}
	}

	byOffset := make(map[int][]dbm.MealRecord)
	for _, rec := range s.records {
		if rec.TripID == tripID && rec.DayNumber >= srcStart && rec.DayNumber < srcStart+period {
			byOffset[rec.DayNumber-srcStart] = append(byOffset[rec.DayNumber-srcStart], *rec)
		}
	}

	for d := dstStart; d <= dstEnd; d++ {
		idx := (d - dstStart) % period
		for _, rec := range byOffset[idx] {
			cp := dbm.MealRecord{
				TripID:    tripID,
				DayNumber: d,
				Meal:      rec.Meal,
				ProductID: rec.ProductID,
				Mass:      rec.Mass,
			}
			assignID(&cp.BaseModel)
			s.records[cp.ID] = &cp
		}
	}

	s.touchLocked(tripID)
	return nil
}

// --- AccessRepository ---

func (s *MemoryStore) GetGrant(_ context.Context, userID, tripID uuid.UUID) (*dbm.TripAccess, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, grant := range s.grants {
		if grant.UserID == userID && grant.TripID == tripID {
			cp := *grant
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) ListGrantsByUser(_ context.Context, userID uuid.UUID) ([]dbm.TripAccess, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []dbm.TripAccess
	for _, grant := range s.grants {
		if grant.UserID == userID {
			out = append(out, *grant)
		}
	}
	return out, nil
}

func (s *MemoryStore) DeleteGrant(_ context.Context, userID, tripID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, grant := range s.grants {
		if grant.UserID == userID && grant.TripID == tripID {
			delete(s.grants, id)
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryStore) GetLiveLinkByIssuer(_ context.Context, tripID, issuerID uuid.UUID, nowUnix int64) (*dbm.SharingLink, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, link := range s.links {
		if link.TripID == tripID && link.UserID == issuerID && !link.Expired(nowUnix) {
			cp := *link
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) CreateLink(_ context.Context, link *dbm.SharingLink) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	assignID(&link.BaseModel)
	cp := *link
	s.links[link.ID] = &cp
	return nil
}

func (s *MemoryStore) RefreshLink(_ context.Context, linkID uuid.UUID, expiresAt int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if link, ok := s.links[linkID]; ok {
		link.ExpiresAt = expiresAt
	}
	return nil
}

func (s *MemoryStore) RedeemToken(_ context.Context, token string, userID uuid.UUID, nowUnix int64) (uuid.UUID, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, link := range s.links {
		if link.Expired(nowUnix) {
			delete(s.links, id)
		}
	}

	var found *dbm.SharingLink
	for _, link := range s.links {
		if link.Token == token {
			found = link
			break
		}
	}
	if found == nil {
		return uuid.Nil, 0, nil
	}

	for _, grant := range s.grants {
		if grant.UserID == userID && grant.TripID == found.TripID {
			if found.Level > grant.Level {
				grant.Level = found.Level
			}
			return found.TripID, grant.Level, nil
		}
	}

	grant := dbm.TripAccess{
		UserID: userID,
		TripID: found.TripID,
		Level:  found.Level,
	}
	assignID(&grant.BaseModel)
	s.grants[grant.ID] = &grant
	return found.TripID, found.Level, nil
}

// --- ProductRepository ---

func (s *MemoryStore) CreateProduct(_ context.Context, product *dbm.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	assignID(&product.BaseModel)
	cp := *product
	s.products[product.ID] = &cp
	return nil
}

func (s *MemoryStore) UpdateProduct(_ context.Context, product *dbm.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.products[product.ID]
	if !ok {
		return nil
	}
	existing.Name = product.Name
	existing.Calories = product.Calories
	existing.Proteins = product.Proteins
	existing.Fats = product.Fats
	existing.Carbs = product.Carbs
	existing.GramsPerPiece = product.GramsPerPiece
	return nil
}

func (s *MemoryStore) GetProductByID(_ context.Context, productID uuid.UUID) (*dbm.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	product, ok := s.products[productID]
	if !ok {
		return nil, nil
	}
	cp := *product
	return &cp, nil
}

func (s *MemoryStore) ListProducts(_ context.Context, includeArchived bool) ([]dbm.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []dbm.Product
	for _, product := range s.products {
		if includeArchived || !product.Archived {
			out = append(out, *product)
		}
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Name < out[j-1].Name; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out, nil
}

func (s *MemoryStore) SetProductArchived(_ context.Context, productID uuid.UUID, archived bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.products[productID]
	if !ok {
		return false, nil
	}
	product.Archived = archived
	return true, nil
}

// --- AccountRepository ---

func (s *MemoryStore) CreateAccount(_ context.Context, account *dbm.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	assignID(&account.BaseModel)
	cp := *account
	s.accounts[account.ID] = &cp
	return nil
}

func (s *MemoryStore) FindByEmail(_ context.Context, email string) (*dbm.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, account := range s.accounts {
		if account.Email == email {
			cp := *account
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) FindByID(_ context.Context, accountID uuid.UUID) (*dbm.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accounts[accountID]
	if !ok {
		return nil, nil
	}
	cp := *account
	return &cp, nil
}
