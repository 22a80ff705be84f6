package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"rideshare/pkg/apperrors"
	"rideshare/pkg/logger"
	"rideshare/pkg/models"
	"rideshare/storage"
)

type passengerRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

func NewPassengerRepo(db *pgxpool.Pool, log logger.ILogger) storage.IPassengerStorage {
	return &passengerRepo{db: db, log: log}
}

const passengerColumns = `id, first_name, last_name, contact, email, credential, created_at`

func (r *passengerRepo) Create(ctx context.Context, p *models.Passenger) error {
	query := `
		INSERT INTO passengers (id, first_name, last_name, contact, email, credential, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(ctx, query,
		p.ID, p.FirstName, p.LastName, p.Contact, p.Email, p.Credential, p.CreatedAt,
	)
	if err != nil {
		r.log.Error("failed to create passenger", logger.Error(err))
		return err
	}
	return nil
}

func (r *passengerRepo) GetByID(ctx context.Context, id string) (*models.Passenger, error) {
	query := fmt.Sprintf(`SELECT %s FROM passengers WHERE id = $1`, passengerColumns)
	return r.scanOne(ctx, query, id)
}

func (r *passengerRepo) GetByEmail(ctx context.Context, email string) (*models.Passenger, error) {
	query := fmt.Sprintf(`SELECT %s FROM passengers WHERE email = $1`, passengerColumns)
	return r.scanOne(ctx, query, email)
}

func (r *passengerRepo) scanOne(ctx context.Context, query string, arg any) (*models.Passenger, error) {
	var p models.Passenger
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&p.ID, &p.FirstName, &p.LastName, &p.Contact, &p.Email, &p.Credential, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRecordNotFound
		}
		r.log.Error("failed to get passenger", logger.Error(err))
		return nil, err
	}
	return &p, nil
}

func (r *passengerRepo) GetAll(ctx context.Context) ([]*models.Passenger, error) {
	query := fmt.Sprintf(`SELECT %s FROM passengers ORDER BY created_at`, passengerColumns)
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var passengers []*models.Passenger
	for rows.Next() {
		var p models.Passenger
		err := rows.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Contact, &p.Email, &p.Credential, &p.CreatedAt)
		if err != nil {
			return nil, err
		}
		passengers = append(passengers, &p)
	}
	return passengers, rows.Err()
}
