package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/bloodconnect/internal/domain"
)

// BloodRequestFilter narrows the pending listing.
type BloodRequestFilter struct {
	BloodGroup *domain.BloodGroup
	// City matches the requester's city, case-insensitive substring.
	City    *string
	Urgency *domain.Urgency
	Limit   int
	Offset  int
}

// BloodRequestRepository encapsulates blood request persistence.
type BloodRequestRepository interface {
	Create(ctx context.Context, req *domain.BloodRequest) error
	GetByID(ctx context.Context, id string) (*domain.BloodRequest, error)
	ListPending(ctx context.Context, filter BloodRequestFilter) ([]domain.BloodRequest, error)
	ListForUser(ctx context.Context, userID string) ([]domain.BloodRequest, error)
	CountPending(ctx context.Context) (int, error)
	// Transition moves the request from one status to another in a single
	// conditional write, binding donorID when non-nil. It returns
	// ErrStatusConflict when the row is no longer in status from.
	Transition(ctx context.Context, id string, from, to domain.RequestStatus, donorID *string) (*domain.BloodRequest, error)
}

type bloodRequestRepository struct {
	pool *pgxpool.Pool
}

// NewBloodRequestRepository instantiates repository.
func NewBloodRequestRepository(pool *pgxpool.Pool) BloodRequestRepository {
	return &bloodRequestRepository{pool: pool}
}

const bloodRequestSelect = `
        SELECT br.id, br.requester_id, br.blood_group, br.units_needed, br.hospital_name,
               br.hospital_address, br.reason, br.urgency, br.status, br.required_date,
               br.donor_id, dp.user_id, br.created_at, br.updated_at
        FROM blood_requests br
        LEFT JOIN donor_profiles dp ON dp.id = br.donor_id`

func (r *bloodRequestRepository) Create(ctx context.Context, req *domain.BloodRequest) error {
	const query = `
        INSERT INTO blood_requests (requester_id, blood_group, units_needed, hospital_name, hospital_address,
                                    reason, urgency, status, required_date)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at, updated_at`
	err := r.pool.QueryRow(ctx, query,
		req.RequesterID,
		req.BloodGroup,
		req.UnitsNeeded,
		req.HospitalName,
		req.HospitalAddress,
		req.Reason,
		req.Urgency,
		req.Status,
		req.RequiredDate,
	).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)
	return translateError(err)
}

func (r *bloodRequestRepository) GetByID(ctx context.Context, id string) (*domain.BloodRequest, error) {
	rows, err := r.pool.Query(ctx, bloodRequestSelect+` WHERE br.id=$1`, id)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()
	return scanSingle(rows)
}

func (r *bloodRequestRepository) ListPending(ctx context.Context, filter BloodRequestFilter) ([]domain.BloodRequest, error) {
	clauses := []string{"br.status=$1"}
	args := []any{domain.RequestStatusPending}
	join := ""

	if filter.BloodGroup != nil {
		args = append(args, *filter.BloodGroup)
		clauses = append(clauses, fmt.Sprintf("br.blood_group=$%d", len(args)))
	}
	if filter.Urgency != nil {
		args = append(args, *filter.Urgency)
		clauses = append(clauses, fmt.Sprintf("br.urgency=$%d", len(args)))
	}
	if filter.City != nil && strings.TrimSpace(*filter.City) != "" {
		join = ` JOIN users u ON u.id = br.requester_id`
		args = append(args, strings.TrimSpace(*filter.City))
		clauses = append(clauses, fmt.Sprintf("strpos(LOWER(u.city), LOWER($%d)) > 0", len(args)))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s%s WHERE %s ORDER BY br.created_at DESC LIMIT %d OFFSET %d`,
		bloodRequestSelect, join, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()
	return scanBloodRequests(rows)
}

func (r *bloodRequestRepository) ListForUser(ctx context.Context, userID string) ([]domain.BloodRequest, error) {
	query := bloodRequestSelect + ` WHERE br.requester_id=$1 OR dp.user_id=$1 ORDER BY br.created_at DESC`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()
	return scanBloodRequests(rows)
}

func (r *bloodRequestRepository) CountPending(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM blood_requests WHERE status=$1`, domain.RequestStatusPending).Scan(&count)
	return count, translateError(err)
}

func (r *bloodRequestRepository) Transition(ctx context.Context, id string, from, to domain.RequestStatus, donorID *string) (*domain.BloodRequest, error) {
	const query = `
        WITH updated AS (
            UPDATE blood_requests SET status=$1, donor_id=COALESCE($2, donor_id), updated_at=NOW()
            WHERE id=$3 AND status=$4
              AND ($2::uuid IS NULL OR EXISTS (SELECT 1 FROM donor_profiles WHERE id=$2 AND is_available))
            RETURNING *
        )
        SELECT br.id, br.requester_id, br.blood_group, br.units_needed, br.hospital_name,
               br.hospital_address, br.reason, br.urgency, br.status, br.required_date,
               br.donor_id, dp.user_id, br.created_at, br.updated_at
        FROM updated br
        LEFT JOIN donor_profiles dp ON dp.id = br.donor_id`

	rows, err := r.pool.Query(ctx, query, to, donorID, id, from)
	if err != nil {
		return nil, translateError(err)
	}
	req, err := scanSingle(rows)
	rows.Close()
	if err == nil {
		return req, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	var current domain.RequestStatus
	if err := r.pool.QueryRow(ctx, `SELECT status FROM blood_requests WHERE id=$1`, id).Scan(&current); err != nil {
		return nil, translateError(err)
	}
	if current == from && donorID != nil {
		return nil, ErrDonorUnavailable
	}
	return nil, ErrStatusConflict
}

func scanSingle(rows pgx.Rows) (*domain.BloodRequest, error) {
	list, err := scanBloodRequests(rows)
	if err != nil {
		return nil, translateError(err)
	}
	if len(list) == 0 {
		return nil, ErrNotFound
	}
	return &list[0], nil
}

func scanBloodRequests(rows pgx.Rows) ([]domain.BloodRequest, error) {
	var result []domain.BloodRequest
	for rows.Next() {
		var req domain.BloodRequest
		if err := rows.Scan(
			&req.ID,
			&req.RequesterID,
			&req.BloodGroup,
			&req.UnitsNeeded,
			&req.HospitalName,
			&req.HospitalAddress,
			&req.Reason,
			&req.Urgency,
			&req.Status,
			&req.RequiredDate,
			&req.DonorID,
			&req.DonorUserID,
			&req.CreatedAt,
			&req.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, req)
	}
	return result, rows.Err()
}
