package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dfquintero/autoferia/internal/model"
)

// VehicleStore is the contract handlers depend on for listing persistence
// and queries. VehicleRepo is the MySQL implementation.
type VehicleStore interface {
	Create(ctx context.Context, v *model.Vehicle) error
	GetDetail(ctx context.Context, id string) (model.Vehicle, model.Seller, error)
	Search(ctx context.Context, q VehicleSearchQuery) ([]model.VehicleCard, error)
	ListByOwner(ctx context.Context, userID uint64) ([]model.VehicleCard, error)
}

type VehicleRepo struct{ DB *sql.DB }

func NewVehicleRepo(db *sql.DB) *VehicleRepo { return &VehicleRepo{DB: db} }

// Create inserts the listing and its image references in one transaction.
// The UUID and the active status are assigned here; the caller only supplies
// form data plus the owning user id.
func (r *VehicleRepo) Create(ctx context.Context, v *model.Vehicle) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	v.ID = uuid.NewString()
	v.Status = model.StatusActive
	now := time.Now().UTC()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO vehicles
		 (id, user_id, brand, model, year, price, mileage_km, transmission, color, city, description, status, created_at, updated_at)
		 VALUES (?,?,?,?,?,?,?,?,NULLIF(?,''),?,NULLIF(?,''),?,?,?)`,
		v.ID, v.UserID, v.Brand, v.Model, v.Year, v.Price, v.MileageKM,
		v.Transmission, v.Color, v.City, v.Description, v.Status, now, now)
	if err != nil {
		return fmt.Errorf("insert vehicle: %w", err)
	}

	for i, url := range v.Images {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO vehicle_images (vehicle_id, url, sort_order) VALUES (?,?,?)",
			v.ID, url, i); err != nil {
			return fmt.Errorf("insert vehicle image: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	v.CreatedAt = now
	v.UpdatedAt = now
	return nil
}

// GetDetail fetches one listing joined with its owner's public contact
// fields and the full ordered image list.
func (r *VehicleRepo) GetDetail(ctx context.Context, id string) (model.Vehicle, model.Seller, error) {
	var (
		v model.Vehicle
		s model.Seller
	)
	err := r.DB.QueryRowContext(ctx,
		`SELECT v.id, v.user_id, v.brand, v.model, v.year, v.price, v.mileage_km,
		        v.transmission, COALESCE(v.color,''), v.city, COALESCE(v.description,''),
		        v.status, v.created_at, v.updated_at,
		        u.full_name, COALESCE(u.phone,''), COALESCE(u.city,'')
		 FROM vehicles v
		 JOIN users u ON u.id = v.user_id
		 WHERE v.id=? LIMIT 1`, id).Scan(
		&v.ID, &v.UserID, &v.Brand, &v.Model, &v.Year, &v.Price, &v.MileageKM,
		&v.Transmission, &v.Color, &v.City, &v.Description,
		&v.Status, &v.CreatedAt, &v.UpdatedAt,
		&s.FullName, &s.Phone, &s.City)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Vehicle{}, model.Seller{}, ErrNotFound
		}
		return model.Vehicle{}, model.Seller{}, err
	}

	images, err := r.loadImages(ctx, id)
	if err != nil {
		return model.Vehicle{}, model.Seller{}, err
	}
	v.Images = images
	return v, s, nil
}

// ListByOwner returns the owner's listings newest first, regardless of
// status, shaped as view records so a fresh publish shows up immediately.
func (r *VehicleRepo) ListByOwner(ctx context.Context, userID uint64) ([]model.VehicleCard, error) {
	rows, err := r.DB.QueryContext(ctx, cardSelect+`
		WHERE v.user_id = ?
		ORDER BY v.created_at DESC, v.id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCards(rows)
}

func (r *VehicleRepo) loadImages(ctx context.Context, vehicleID string) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT url FROM vehicle_images WHERE vehicle_id=? ORDER BY sort_order, id", vehicleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var urls []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, err
		}
		urls = append(urls, u)
	}
	return urls, rows.Err()
}
