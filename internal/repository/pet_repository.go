package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/petmatch-service/internal/domain"
)

const petColumns = `id, name, type, breed, gender, age, size, description, status, owner_id, created_at, updated_at`

// PetRepository encapsulates pet persistence.
type PetRepository interface {
	Create(ctx context.Context, pet *domain.Pet) error
	Update(ctx context.Context, pet *domain.Pet) error
	GetByID(ctx context.Context, id string) (*domain.Pet, error)
	// GetByIDForUpdate locks the pet row until the surrounding transaction
	// ends. Outside a transaction the lock is released immediately.
	GetByIDForUpdate(ctx context.Context, id string) (*domain.Pet, error)
	List(ctx context.Context) ([]domain.Pet, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Pet, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	Delete(ctx context.Context, id string) error
}

type petRepository struct {
	db DB
}

// NewPetRepository instantiates repository.
func NewPetRepository(db DB) PetRepository {
	return &petRepository{db: db}
}

func (r *petRepository) Create(ctx context.Context, pet *domain.Pet) error {
	const query = `
        INSERT INTO pets (name, type, breed, gender, age, size, description, status, owner_id)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		pet.Name,
		pet.Type,
		pet.Breed,
		pet.Gender,
		pet.Age,
		pet.Size,
		pet.Description,
		pet.Status,
		pet.OwnerID,
	).Scan(&pet.ID, &pet.CreatedAt, &pet.UpdatedAt)
}

func (r *petRepository) Update(ctx context.Context, pet *domain.Pet) error {
	const query = `
        UPDATE pets SET name=$1, type=$2, breed=$3, gender=$4, age=$5, size=$6,
            description=$7, status=$8, owner_id=$9, updated_at=NOW()
        WHERE id=$10`
	cmd, err := r.db.Exec(ctx, query,
		pet.Name,
		pet.Type,
		pet.Breed,
		pet.Gender,
		pet.Age,
		pet.Size,
		pet.Description,
		pet.Status,
		pet.OwnerID,
		pet.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *petRepository) GetByID(ctx context.Context, id string) (*domain.Pet, error) {
	return r.fetchSingle(ctx, `SELECT `+petColumns+` FROM pets WHERE id=$1`, id)
}

func (r *petRepository) GetByIDForUpdate(ctx context.Context, id string) (*domain.Pet, error) {
	return r.fetchSingle(ctx, `SELECT `+petColumns+` FROM pets WHERE id=$1 FOR UPDATE`, id)
}

func (r *petRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Pet, error) {
	var pet domain.Pet
	if err := r.db.QueryRow(ctx, query, arg).Scan(
		&pet.ID,
		&pet.Name,
		&pet.Type,
		&pet.Breed,
		&pet.Gender,
		&pet.Age,
		&pet.Size,
		&pet.Description,
		&pet.Status,
		&pet.OwnerID,
		&pet.CreatedAt,
		&pet.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &pet, nil
}

func (r *petRepository) List(ctx context.Context) ([]domain.Pet, error) {
	rows, err := r.db.Query(ctx, `SELECT `+petColumns+` FROM pets ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPets(rows)
}

func (r *petRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Pet, error) {
	rows, err := r.db.Query(ctx, `SELECT `+petColumns+` FROM pets WHERE owner_id=$1 ORDER BY created_at`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPets(rows)
}

func (r *petRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM pets WHERE id=$1)`, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *petRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM pets WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanPets(rows pgx.Rows) ([]domain.Pet, error) {
	var result []domain.Pet
	for rows.Next() {
		var pet domain.Pet
		if err := rows.Scan(
			&pet.ID,
			&pet.Name,
			&pet.Type,
			&pet.Breed,
			&pet.Gender,
			&pet.Age,
			&pet.Size,
			&pet.Description,
			&pet.Status,
			&pet.OwnerID,
			&pet.CreatedAt,
			&pet.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, pet)
	}
	return result, rows.Err()
}
