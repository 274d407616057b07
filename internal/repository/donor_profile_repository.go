package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/bloodconnect/internal/domain"
)

// DonorProfileRepository persists donor profiles, at most one per user.
type DonorProfileRepository interface {
	Create(ctx context.Context, profile *domain.DonorProfile) error
	Update(ctx context.Context, profile *domain.DonorProfile) error
	GetByID(ctx context.Context, id string) (*domain.DonorProfile, error)
	GetByUserID(ctx context.Context, userID string) (*domain.DonorProfile, error)
	Count(ctx context.Context) (int, error)
}

type donorProfileRepository struct {
	pool *pgxpool.Pool
}

// NewDonorProfileRepository returns a Postgres-backed implementation.
func NewDonorProfileRepository(pool *pgxpool.Pool) DonorProfileRepository {
	return &donorProfileRepository{pool: pool}
}

const donorProfileColumns = `id, user_id, blood_group, gender, age, last_donation_date,
               is_available, medical_conditions, created_at, updated_at`

func (r *donorProfileRepository) Create(ctx context.Context, profile *domain.DonorProfile) error {
	const query = `
        INSERT INTO donor_profiles (user_id, blood_group, gender, age, last_donation_date, is_available, medical_conditions)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		profile.UserID,
		profile.BloodGroup,
		profile.Gender,
		profile.Age,
		profile.LastDonationDate,
		profile.IsAvailable,
		profile.MedicalConditions,
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
	return translateError(err)
}

func (r *donorProfileRepository) Update(ctx context.Context, profile *domain.DonorProfile) error {
	const query = `
        UPDATE donor_profiles SET blood_group=$1, gender=$2, age=$3, last_donation_date=$4,
            is_available=$5, medical_conditions=$6, updated_at=NOW()
        WHERE id=$7
        RETURNING updated_at`

	err := r.pool.QueryRow(ctx, query,
		profile.BloodGroup,
		profile.Gender,
		profile.Age,
		profile.LastDonationDate,
		profile.IsAvailable,
		profile.MedicalConditions,
		profile.ID,
	).Scan(&profile.UpdatedAt)
	return translateError(err)
}

func (r *donorProfileRepository) GetByID(ctx context.Context, id string) (*domain.DonorProfile, error) {
	return r.fetchSingle(ctx, `SELECT `+donorProfileColumns+` FROM donor_profiles WHERE id=$1`, id)
}

func (r *donorProfileRepository) GetByUserID(ctx context.Context, userID string) (*domain.DonorProfile, error) {
	return r.fetchSingle(ctx, `SELECT `+donorProfileColumns+` FROM donor_profiles WHERE user_id=$1`, userID)
}

func (r *donorProfileRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM donor_profiles`).Scan(&count); err != nil {
		return 0, translateError(err)
	}
	return count, nil
}

func (r *donorProfileRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.DonorProfile, error) {
	var profile domain.DonorProfile
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.BloodGroup,
		&profile.Gender,
		&profile.Age,
		&profile.LastDonationDate,
		&profile.IsAvailable,
		&profile.MedicalConditions,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	); err != nil {
		return nil, translateError(err)
	}
	return &profile, nil
}
