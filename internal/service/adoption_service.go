package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/petmatch-service/internal/domain"
	"github.com/spec-kit/petmatch-service/internal/events"
	"github.com/spec-kit/petmatch-service/internal/persistence"
	"github.com/spec-kit/petmatch-service/internal/repository"
	apperrors "github.com/spec-kit/petmatch-service/pkg/util"
)

const maxRequestMessageLen = 1000

// AdoptionService coordinates the adoption request lifecycle:
// PENDING -> APPROVED | REJECTED, both terminal.
type AdoptionService struct {
	requests   repository.AdoptionRequestRepository
	pets       repository.PetRepository
	users      repository.UserRepository
	txm        repository.TxManager
	dispatcher events.Dispatcher
	cache      *persistence.Redis
}

// AdoptionDependencies bundles collaborators for the adoption service.
type AdoptionDependencies struct {
	RequestRepo repository.AdoptionRequestRepository
	PetRepo     repository.PetRepository
	UserRepo    repository.UserRepository
	TxManager   repository.TxManager
	Dispatcher  events.Dispatcher
	Cache       *persistence.Redis
}

// NewAdoptionService constructs the service.
func NewAdoptionService(deps AdoptionDependencies) *AdoptionService {
	return &AdoptionService{
		requests:   deps.RequestRepo,
		pets:       deps.PetRepo,
		users:      deps.UserRepo,
		txm:        deps.TxManager,
		dispatcher: deps.Dispatcher,
		cache:      deps.Cache,
	}
}

// Create files a new PENDING request from the caller for the given pet.
// A caller may hold at most one request per pet; a second attempt conflicts.
func (s *AdoptionService) Create(ctx context.Context, applicantEmail, petID, message string) (*domain.AdoptionRequest, error) {
	applicant, err := s.resolveUser(ctx, applicantEmail)
	if err != nil {
		return nil, err
	}
	pet, err := s.pets.GetByID(ctx, petID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("pet", map[string]any{"id": petID})
		}
		return nil, err
	}
	if len(message) > maxRequestMessageLen {
		return nil, apperrors.NewValidationError("message too long", map[string]any{"max": maxRequestMessageLen})
	}

	exists, err := s.requests.ExistsByApplicantAndPet(ctx, applicant.ID, pet.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewConflict("you have already requested to adopt this pet", map[string]any{"pet_id": pet.ID})
	}

	request := &domain.AdoptionRequest{
		PetID:       pet.ID,
		ApplicantID: applicant.ID,
		Message:     message,
		Status:      domain.AdoptionStatusPending,
	}
	if err := s.requests.Create(ctx, request); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:       events.EventAdoptionRequestCreated,
		RequestID:  request.ID,
		PetID:      pet.ID,
		ActorEmail: applicant.Email,
		Payload: events.AdoptionRequestCreatedPayload{
			ApplicantID: applicant.ID,
			PetID:       pet.ID,
			Message:     request.Message,
		},
	})
	return request, nil
}

// ListMine returns all requests authored by the caller, in insertion order.
func (s *AdoptionService) ListMine(ctx context.Context, applicantEmail string) ([]domain.AdoptionRequest, error) {
	applicant, err := s.resolveUser(ctx, applicantEmail)
	if err != nil {
		return nil, err
	}
	return s.requests.ListByApplicant(ctx, applicant.ID)
}

// ListReceived returns all requests on pets owned by the caller.
func (s *AdoptionService) ListReceived(ctx context.Context, ownerEmail string) ([]domain.AdoptionRequest, error) {
	owner, err := s.resolveUser(ctx, ownerEmail)
	if err != nil {
		return nil, err
	}
	return s.requests.ListByPetOwner(ctx, owner.ID)
}

// ListByPet returns all requests referencing a pet. There is no ownership
// check here; any caller can enumerate a pet's requests.
func (s *AdoptionService) ListByPet(ctx context.Context, petID string) ([]domain.AdoptionRequest, error) {
	return s.requests.ListByPet(ctx, petID)
}

// UpdateStatus overwrites a request's status regardless of its current state
// and without any ownership check. The most permissive operation in the
// system; callers are trusted entirely.
func (s *AdoptionService) UpdateStatus(ctx context.Context, requestID string, status domain.AdoptionStatus) (*domain.AdoptionRequest, error) {
	if !status.Valid() {
		return nil, apperrors.NewValidationError("unknown status", map[string]any{"status": status})
	}
	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("adoption request", map[string]any{"id": requestID})
		}
		return nil, err
	}

	oldStatus := request.Status
	request.Status = status
	if err := s.requests.Update(ctx, request); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:      events.EventAdoptionRequestStatusChanged,
		RequestID: request.ID,
		PetID:     request.PetID,
		Payload: events.AdoptionRequestStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: status,
		},
	})
	return request, nil
}

// Approve transitions a PENDING request to APPROVED, marks the pet ADOPTED
// and rejects every other still-PENDING request on the same pet. The whole
// cascade runs in one transaction; the pet row lock is the serialization
// point, and the request status is re-checked after acquiring it so the loser
// of a concurrent approval sees the winner's committed writes and fails the
// PENDING precondition.
func (s *AdoptionService) Approve(ctx context.Context, requestID, callerEmail string) (*domain.AdoptionRequest, error) {
	var (
		approved      *domain.AdoptionRequest
		rejected      []domain.AdoptionRequest
		approvedPetID string
	)

	err := s.txm.RunInTx(ctx, func(ctx context.Context, stores repository.Stores) error {
		request, err := stores.Requests.GetByID(ctx, requestID)
		if err != nil {
			if err == pgx.ErrNoRows {
				return apperrors.NewNotFound("adoption request", map[string]any{"id": requestID})
			}
			return err
		}
		if request.Status != domain.AdoptionStatusPending {
			return apperrors.NewInvalidState("only pending requests can be approved")
		}

		pet, err := stores.Pets.GetByIDForUpdate(ctx, request.PetID)
		if err != nil {
			if err == pgx.ErrNoRows {
				return apperrors.NewNotFound("pet", map[string]any{"id": request.PetID})
			}
			return err
		}
		// Re-read under the pet lock. A competing approval may have
		// committed while this transaction waited on the row; its
		// rejection of this request is only visible from here on.
		request, err = stores.Requests.GetByID(ctx, requestID)
		if err != nil {
			return err
		}
		if request.Status != domain.AdoptionStatusPending {
			return apperrors.NewInvalidState("only pending requests can be approved")
		}

		if pet.OwnerID == nil {
			return apperrors.NewForbidden("you are not the owner of this pet")
		}
		owner, err := stores.Users.GetByID(ctx, *pet.OwnerID)
		if err != nil {
			return err
		}
		if owner.Email != callerEmail {
			return apperrors.NewForbidden("you are not the owner of this pet")
		}

		request.Status = domain.AdoptionStatusApproved
		if err := stores.Requests.Update(ctx, request); err != nil {
			return err
		}

		pet.Status = domain.PetStatusAdopted
		if err := stores.Pets.Update(ctx, pet); err != nil {
			return err
		}

		others, err := stores.Requests.ListByPetExcluding(ctx, pet.ID, request.ID)
		if err != nil {
			return err
		}
		for _, other := range others {
			if other.Status != domain.AdoptionStatusPending {
				continue
			}
			other.Status = domain.AdoptionStatusRejected
			rejected = append(rejected, other)
		}
		if err := stores.Requests.UpdateAll(ctx, rejected); err != nil {
			return err
		}

		approved = request
		approvedPetID = pet.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	invalidatePetListing(ctx, s.cache)

	s.publishEvent(ctx, events.Event{
		Type:       events.EventAdoptionRequestStatusChanged,
		RequestID:  approved.ID,
		PetID:      approvedPetID,
		ActorEmail: callerEmail,
		Payload: events.AdoptionRequestStatusChangedPayload{
			OldStatus: domain.AdoptionStatusPending,
			NewStatus: domain.AdoptionStatusApproved,
		},
	})
	s.publishEvent(ctx, events.Event{
		Type:       events.EventPetAdopted,
		RequestID:  approved.ID,
		PetID:      approvedPetID,
		ActorEmail: callerEmail,
		Payload: events.PetAdoptedPayload{
			PetID:             approvedPetID,
			ApprovedRequestID: approved.ID,
			RejectedCount:     len(rejected),
		},
	})
	return approved, nil
}

// Delete removes a request unconditionally once it exists. No ownership
// check is performed.
func (s *AdoptionService) Delete(ctx context.Context, requestID string) error {
	exists, err := s.requests.ExistsByID(ctx, requestID)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.NewNotFound("adoption request", map[string]any{"id": requestID})
	}
	return s.requests.Delete(ctx, requestID)
}

func (s *AdoptionService) resolveUser(ctx context.Context, email string) (*domain.User, error) {
	if email == "" {
		return nil, apperrors.NewUnauthorized("no authenticated caller")
	}
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("user", map[string]any{"email": email})
		}
		return nil, err
	}
	return user, nil
}

func (s *AdoptionService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
