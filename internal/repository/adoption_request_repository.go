package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/petmatch-service/internal/domain"
)

const requestColumns = `id, pet_id, applicant_id, message, status, created_at`

// AdoptionRequestRepository encapsulates adoption request persistence.
// Listing order is insertion order (created_at ascending, id as tiebreak).
type AdoptionRequestRepository interface {
	Create(ctx context.Context, request *domain.AdoptionRequest) error
	Update(ctx context.Context, request *domain.AdoptionRequest) error
	UpdateAll(ctx context.Context, requests []domain.AdoptionRequest) error
	GetByID(ctx context.Context, id string) (*domain.AdoptionRequest, error)
	ListByApplicant(ctx context.Context, applicantID string) ([]domain.AdoptionRequest, error)
	ListByPetOwner(ctx context.Context, ownerID string) ([]domain.AdoptionRequest, error)
	ListByPet(ctx context.Context, petID string) ([]domain.AdoptionRequest, error)
	ListByPetExcluding(ctx context.Context, petID, excludeID string) ([]domain.AdoptionRequest, error)
	ExistsByApplicantAndPet(ctx context.Context, applicantID, petID string) (bool, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	Delete(ctx context.Context, id string) error
}

type adoptionRequestRepository struct {
	db DB
}

// NewAdoptionRequestRepository instantiates repository.
func NewAdoptionRequestRepository(db DB) AdoptionRequestRepository {
	return &adoptionRequestRepository{db: db}
}

func (r *adoptionRequestRepository) Create(ctx context.Context, request *domain.AdoptionRequest) error {
	const query = `
        INSERT INTO adoption_requests (pet_id, applicant_id, message, status)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	return r.db.QueryRow(ctx, query,
		request.PetID,
		request.ApplicantID,
		request.Message,
		request.Status,
	).Scan(&request.ID, &request.CreatedAt)
}

func (r *adoptionRequestRepository) Update(ctx context.Context, request *domain.AdoptionRequest) error {
	const query = `UPDATE adoption_requests SET status=$1 WHERE id=$2`
	cmd, err := r.db.Exec(ctx, query, request.Status, request.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *adoptionRequestRepository) UpdateAll(ctx context.Context, requests []domain.AdoptionRequest) error {
	for i := range requests {
		if err := r.Update(ctx, &requests[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *adoptionRequestRepository) GetByID(ctx context.Context, id string) (*domain.AdoptionRequest, error) {
	var request domain.AdoptionRequest
	if err := r.db.QueryRow(ctx, `SELECT `+requestColumns+` FROM adoption_requests WHERE id=$1`, id).Scan(
		&request.ID,
		&request.PetID,
		&request.ApplicantID,
		&request.Message,
		&request.Status,
		&request.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *adoptionRequestRepository) ListByApplicant(ctx context.Context, applicantID string) ([]domain.AdoptionRequest, error) {
	const query = `SELECT ` + requestColumns + `
        FROM adoption_requests WHERE applicant_id=$1 ORDER BY created_at, id`
	return r.list(ctx, query, applicantID)
}

func (r *adoptionRequestRepository) ListByPetOwner(ctx context.Context, ownerID string) ([]domain.AdoptionRequest, error) {
	const query = `SELECT ar.id, ar.pet_id, ar.applicant_id, ar.message, ar.status, ar.created_at
        FROM adoption_requests ar
        JOIN pets p ON p.id = ar.pet_id
        WHERE p.owner_id=$1 ORDER BY ar.created_at, ar.id`
	return r.list(ctx, query, ownerID)
}

func (r *adoptionRequestRepository) ListByPet(ctx context.Context, petID string) ([]domain.AdoptionRequest, error) {
	const query = `SELECT ` + requestColumns + `
        FROM adoption_requests WHERE pet_id=$1 ORDER BY created_at, id`
	return r.list(ctx, query, petID)
}

func (r *adoptionRequestRepository) ListByPetExcluding(ctx context.Context, petID, excludeID string) ([]domain.AdoptionRequest, error) {
	const query = `SELECT ` + requestColumns + `
        FROM adoption_requests WHERE pet_id=$1 AND id<>$2 ORDER BY created_at, id`
	return r.list(ctx, query, petID, excludeID)
}

func (r *adoptionRequestRepository) ExistsByApplicantAndPet(ctx context.Context, applicantID, petID string) (bool, error) {
	var exists bool
	const query = `SELECT EXISTS(SELECT 1 FROM adoption_requests WHERE applicant_id=$1 AND pet_id=$2)`
	if err := r.db.QueryRow(ctx, query, applicantID, petID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *adoptionRequestRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM adoption_requests WHERE id=$1)`, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *adoptionRequestRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM adoption_requests WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *adoptionRequestRepository) list(ctx context.Context, query string, args ...any) ([]domain.AdoptionRequest, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.AdoptionRequest
	for rows.Next() {
		var request domain.AdoptionRequest
		if err := rows.Scan(
			&request.ID,
			&request.PetID,
			&request.ApplicantID,
			&request.Message,
			&request.Status,
			&request.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, request)
	}
	return result, rows.Err()
}
