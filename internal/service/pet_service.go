package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/petmatch-service/internal/domain"
	"github.com/spec-kit/petmatch-service/internal/persistence"
	"github.com/spec-kit/petmatch-service/internal/repository"
	apperrors "github.com/spec-kit/petmatch-service/pkg/util"
)

// The public listing is the hottest read path; it is cached briefly in redis
// and invalidated on every pet mutation and on adoption approval.
const (
	petListCacheKey = "pets:list"
	petListCacheTTL = 30 * time.Second
)

// PetService coordinates pet CRUD scoped to authenticated owners.
type PetService struct {
	pets  repository.PetRepository
	users repository.UserRepository
	cache *persistence.Redis
}

// PetCreateInput describes pet creation payload.
type PetCreateInput struct {
	Name        string
	Type        domain.PetType
	Breed       string
	Gender      string
	Age         int
	Size        string
	Description string
}

// PetUpdateInput carries the generic update fields. Breed, gender and status
// are deliberately not updatable through this path.
type PetUpdateInput struct {
	Name        string
	Age         int
	Type        domain.PetType
	Description string
}

// NewPetService constructs the service. Cache may be nil-backed; all cache
// operations degrade to the database.
func NewPetService(pets repository.PetRepository, users repository.UserRepository, cache *persistence.Redis) *PetService {
	return &PetService{pets: pets, users: users, cache: cache}
}

// Create lists a new pet bound to the caller's account, status AVAILABLE.
func (s *PetService) Create(ctx context.Context, ownerEmail string, input PetCreateInput) (*domain.Pet, error) {
	if ownerEmail == "" {
		return nil, apperrors.NewUnauthorized("no authenticated caller")
	}
	owner, err := s.users.GetByEmail(ctx, ownerEmail)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("user", map[string]any{"email": ownerEmail})
		}
		return nil, err
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}

	pet := &domain.Pet{
		Name:        strings.TrimSpace(input.Name),
		Type:        input.Type,
		Breed:       input.Breed,
		Gender:      input.Gender,
		Age:         input.Age,
		Size:        input.Size,
		Description: input.Description,
		Status:      domain.PetStatusAvailable,
		OwnerID:     &owner.ID,
	}
	if err := s.pets.Create(ctx, pet); err != nil {
		return nil, err
	}
	invalidatePetListing(ctx, s.cache)
	return pet, nil
}

// List returns every pet, read through the listing cache.
func (s *PetService) List(ctx context.Context) ([]domain.Pet, error) {
	cached, cacheErr := s.cache.GetString(ctx, petListCacheKey)
	if cacheErr == nil {
		var pets []domain.Pet
		if jsonErr := json.Unmarshal([]byte(cached), &pets); jsonErr == nil {
			return pets, nil
		}
	}

	pets, err := s.pets.List(ctx)
	if err != nil {
		return nil, err
	}
	// Repopulate only on a genuine miss or stale payload. When redis is
	// unreachable the write would fail anyway; skip it.
	if cacheErr == nil || persistence.IsCacheMiss(cacheErr) {
		if encoded, jsonErr := json.Marshal(pets); jsonErr == nil {
			_ = s.cache.SetString(ctx, petListCacheKey, string(encoded), petListCacheTTL)
		}
	}
	return pets, nil
}

// GetByID fetches one pet.
func (s *PetService) GetByID(ctx context.Context, id string) (*domain.Pet, error) {
	pet, err := s.pets.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("pet", map[string]any{"id": id})
		}
		return nil, err
	}
	return pet, nil
}

// ListByOwner returns the caller's own pets.
func (s *PetService) ListByOwner(ctx context.Context, ownerID string) ([]domain.Pet, error) {
	return s.pets.ListByOwner(ctx, ownerID)
}

// Update mutates name, age, type and description only.
func (s *PetService) Update(ctx context.Context, id string, input PetUpdateInput) (*domain.Pet, error) {
	pet, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	pet.Name = strings.TrimSpace(input.Name)
	pet.Age = input.Age
	pet.Type = input.Type
	pet.Description = input.Description

	if err := s.pets.Update(ctx, pet); err != nil {
		return nil, err
	}
	invalidatePetListing(ctx, s.cache)
	return pet, nil
}

// Delete removes a pet unconditionally once it exists.
func (s *PetService) Delete(ctx context.Context, id string) error {
	exists, err := s.pets.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.NewNotFound("pet", map[string]any{"id": id})
	}
	if err := s.pets.Delete(ctx, id); err != nil {
		return err
	}
	invalidatePetListing(ctx, s.cache)
	return nil
}

func invalidatePetListing(ctx context.Context, cache *persistence.Redis) {
	_ = cache.Delete(ctx, petListCacheKey)
}
