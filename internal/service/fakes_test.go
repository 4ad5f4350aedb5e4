package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/petmatch-service/internal/domain"
	"github.com/spec-kit/petmatch-service/internal/repository"
)

// memStore backs the in-memory repository fakes used by service tests.
// Slices keep insertion order so listing assertions are deterministic.
type memStore struct {
	mu           sync.Mutex
	users        map[string]domain.User
	pets         map[string]domain.Pet
	requests     map[string]domain.AdoptionRequest
	requestOrder []string
	petOrder     []string
	seq          int

	// journal is the active transaction's undo log; nil outside a tx.
	journal *txJournal
	// petLockHook fires once when a pet row lock is granted, standing in
	// for work another connection commits while this one waits on the row.
	petLockHook func()
	// failUpdateAll, when set, makes the next batch update fail.
	failUpdateAll error
}

// txJournal records before-images of rows a transaction writes so a failed
// transaction can be undone the way a database rollback would. A nil
// before-image marks a row created inside the transaction.
type txJournal struct {
	users        map[string]*domain.User
	pets         map[string]*domain.Pet
	requests     map[string]*domain.AdoptionRequest
	requestOrder []string
	petOrder     []string
	seq          int
}

func newMemStore() *memStore {
	return &memStore{
		users:    make(map[string]domain.User),
		pets:     make(map[string]domain.Pet),
		requests: make(map[string]domain.AdoptionRequest),
	}
}

func (m *memStore) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s-%d", prefix, m.seq)
}

// beginJournal snapshots the order slices and sequence. Callers hold mu.
func (m *memStore) beginJournal() *txJournal {
	return &txJournal{
		users:        make(map[string]*domain.User),
		pets:         make(map[string]*domain.Pet),
		requests:     make(map[string]*domain.AdoptionRequest),
		requestOrder: append([]string(nil), m.requestOrder...),
		petOrder:     append([]string(nil), m.petOrder...),
		seq:          m.seq,
	}
}

// The note helpers record a row's before-image on first write. Callers hold mu.
func (m *memStore) noteUser(id string) {
	if m.journal == nil {
		return
	}
	if _, done := m.journal.users[id]; done {
		return
	}
	if cur, ok := m.users[id]; ok {
		c := cur
		m.journal.users[id] = &c
	} else {
		m.journal.users[id] = nil
	}
}

func (m *memStore) notePet(id string) {
	if m.journal == nil {
		return
	}
	if _, done := m.journal.pets[id]; done {
		return
	}
	if cur, ok := m.pets[id]; ok {
		c := cur
		m.journal.pets[id] = &c
	} else {
		m.journal.pets[id] = nil
	}
}

func (m *memStore) noteRequest(id string) {
	if m.journal == nil {
		return
	}
	if _, done := m.journal.requests[id]; done {
		return
	}
	if cur, ok := m.requests[id]; ok {
		c := cur
		m.journal.requests[id] = &c
	} else {
		m.journal.requests[id] = nil
	}
}

func (m *memStore) undo(j *txJournal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, before := range j.users {
		if before == nil {
			delete(m.users, id)
		} else {
			m.users[id] = *before
		}
	}
	for id, before := range j.pets {
		if before == nil {
			delete(m.pets, id)
		} else {
			m.pets[id] = *before
		}
	}
	for id, before := range j.requests {
		if before == nil {
			delete(m.requests, id)
		} else {
			m.requests[id] = *before
		}
	}
	m.requestOrder = j.requestOrder
	m.petOrder = j.petOrder
	m.seq = j.seq
}

func (m *memStore) stores() repository.Stores {
	return repository.Stores{
		Users:    &memUserRepo{s: m},
		Pets:     &memPetRepo{s: m},
		Requests: &memRequestRepo{s: m},
	}
}

type memUserRepo struct{ s *memStore }

func (r *memUserRepo) Create(_ context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	user.ID = r.s.nextID("user")
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.s.noteUser(user.ID)
	r.s.users[user.ID] = *user
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	user, ok := r.s.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &user, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, user := range r.s.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type memPetRepo struct{ s *memStore }

func (r *memPetRepo) Create(_ context.Context, pet *domain.Pet) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	pet.ID = r.s.nextID("pet")
	pet.CreatedAt = time.Now()
	pet.UpdatedAt = pet.CreatedAt
	r.s.notePet(pet.ID)
	r.s.pets[pet.ID] = *pet
	r.s.petOrder = append(r.s.petOrder, pet.ID)
	return nil
}

func (r *memPetRepo) Update(_ context.Context, pet *domain.Pet) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.pets[pet.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.s.notePet(pet.ID)
	r.s.pets[pet.ID] = *pet
	return nil
}

func (r *memPetRepo) GetByID(_ context.Context, id string) (*domain.Pet, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	pet, ok := r.s.pets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &pet, nil
}

// GetByIDForUpdate models the row lock grant: if a hook is installed it runs
// first, standing in for a competing transaction committing while this one
// waited, and the read afterwards sees that committed state.
func (r *memPetRepo) GetByIDForUpdate(ctx context.Context, id string) (*domain.Pet, error) {
	r.s.mu.Lock()
	hook := r.s.petLockHook
	r.s.petLockHook = nil
	r.s.mu.Unlock()
	if hook != nil {
		hook()
	}
	return r.GetByID(ctx, id)
}

func (r *memPetRepo) List(_ context.Context) ([]domain.Pet, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	result := make([]domain.Pet, 0, len(r.s.petOrder))
	for _, id := range r.s.petOrder {
		result = append(result, r.s.pets[id])
	}
	return result, nil
}

func (r *memPetRepo) ListByOwner(_ context.Context, ownerID string) ([]domain.Pet, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var result []domain.Pet
	for _, id := range r.s.petOrder {
		pet := r.s.pets[id]
		if pet.OwnerID != nil && *pet.OwnerID == ownerID {
			result = append(result, pet)
		}
	}
	return result, nil
}

func (r *memPetRepo) ExistsByID(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.pets[id]
	return ok, nil
}

func (r *memPetRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.pets[id]; !ok {
		return pgx.ErrNoRows
	}
	r.s.notePet(id)
	delete(r.s.pets, id)
	for i, pid := range r.s.petOrder {
		if pid == id {
			r.s.petOrder = append(r.s.petOrder[:i], r.s.petOrder[i+1:]...)
			break
		}
	}
	return nil
}

type memRequestRepo struct{ s *memStore }

func (r *memRequestRepo) Create(_ context.Context, request *domain.AdoptionRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	request.ID = r.s.nextID("request")
	request.CreatedAt = time.Now()
	r.s.noteRequest(request.ID)
	r.s.requests[request.ID] = *request
	r.s.requestOrder = append(r.s.requestOrder, request.ID)
	return nil
}

func (r *memRequestRepo) Update(_ context.Context, request *domain.AdoptionRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.requests[request.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	r.s.noteRequest(request.ID)
	stored.Status = request.Status
	r.s.requests[request.ID] = stored
	return nil
}

func (r *memRequestRepo) UpdateAll(ctx context.Context, requests []domain.AdoptionRequest) error {
	r.s.mu.Lock()
	failErr := r.s.failUpdateAll
	r.s.mu.Unlock()
	if failErr != nil {
		return failErr
	}
	for i := range requests {
		if err := r.Update(ctx, &requests[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *memRequestRepo) GetByID(_ context.Context, id string) (*domain.AdoptionRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	request, ok := r.s.requests[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &request, nil
}

func (r *memRequestRepo) ListByApplicant(_ context.Context, applicantID string) ([]domain.AdoptionRequest, error) {
	return r.filter(func(req domain.AdoptionRequest) bool { return req.ApplicantID == applicantID })
}

func (r *memRequestRepo) ListByPetOwner(_ context.Context, ownerID string) ([]domain.AdoptionRequest, error) {
	r.s.mu.Lock()
	owned := make(map[string]bool)
	for id, pet := range r.s.pets {
		if pet.OwnerID != nil && *pet.OwnerID == ownerID {
			owned[id] = true
		}
	}
	r.s.mu.Unlock()
	return r.filter(func(req domain.AdoptionRequest) bool { return owned[req.PetID] })
}

func (r *memRequestRepo) ListByPet(_ context.Context, petID string) ([]domain.AdoptionRequest, error) {
	return r.filter(func(req domain.AdoptionRequest) bool { return req.PetID == petID })
}

func (r *memRequestRepo) ListByPetExcluding(_ context.Context, petID, excludeID string) ([]domain.AdoptionRequest, error) {
	return r.filter(func(req domain.AdoptionRequest) bool { return req.PetID == petID && req.ID != excludeID })
}

func (r *memRequestRepo) ExistsByApplicantAndPet(_ context.Context, applicantID, petID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, req := range r.s.requests {
		if req.ApplicantID == applicantID && req.PetID == petID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memRequestRepo) ExistsByID(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.requests[id]
	return ok, nil
}

func (r *memRequestRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.requests[id]; !ok {
		return pgx.ErrNoRows
	}
	r.s.noteRequest(id)
	delete(r.s.requests, id)
	return nil
}

func (r *memRequestRepo) filter(keep func(domain.AdoptionRequest) bool) ([]domain.AdoptionRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var result []domain.AdoptionRequest
	for _, id := range r.s.requestOrder {
		req, ok := r.s.requests[id]
		if ok && keep(req) {
			result = append(result, req)
		}
	}
	return result, nil
}

// memTxManager runs the function against the shared store so reads always see
// the latest committed state, and undoes the transaction's own writes on
// error. Nested transactions started from a lock hook commit independently.
type memTxManager struct{ s *memStore }

func (m *memTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context, stores repository.Stores) error) error {
	m.s.mu.Lock()
	parent := m.s.journal
	j := m.s.beginJournal()
	m.s.journal = j
	m.s.mu.Unlock()

	err := fn(ctx, m.s.stores())

	m.s.mu.Lock()
	m.s.journal = parent
	m.s.mu.Unlock()

	if err != nil {
		m.s.undo(j)
	}
	return err
}
