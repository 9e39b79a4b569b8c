package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/dfquintero/autoferia/internal/model"
)

// VehicleSearchQuery defines the filters for the public listing search.
// Brand and City are case-insensitive substring matches; Limit caps the
// result count. Only active listings are ever returned.
type VehicleSearchQuery struct {
	Brand string
	City  string
	Limit int
}

// cardSelect is the shared projection for view records. The primary image
// is the lowest sort_order reference; rows without images get an empty
// string here and the placeholder is substituted after scanning.
const cardSelect = `SELECT
		v.id, v.brand, v.model, v.year, v.price, v.mileage_km,
		v.transmission, v.city, v.status, v.created_at,
		COALESCE((SELECT i.url FROM vehicle_images i
		          WHERE i.vehicle_id = v.id
		          ORDER BY i.sort_order, i.id LIMIT 1), '') AS image_url
	FROM vehicles v`

// EffectiveLimit returns the row cap after clamping: 20 when unset, at
// most 100.
func (q VehicleSearchQuery) EffectiveLimit() int {
	if q.Limit < 1 {
		return 20
	}
	if q.Limit > 100 {
		return 100
	}
	return q.Limit
}

// build assembles the full SELECT and its arguments. Filters match by
// lowercased substring; the id tiebreak keeps the ordering total so an
// unchanged query over unchanged data yields an identical sequence.
func (q VehicleSearchQuery) build() (string, []any) {
	where := []string{"v.status = ?"}
	args := []any{model.StatusActive}

	if q.Brand != "" {
		where = append(where, "LOWER(v.brand) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.Brand)+"%")
	}
	if q.City != "" {
		where = append(where, "LOWER(v.city) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.City)+"%")
	}
	args = append(args, q.EffectiveLimit())

	query := cardSelect + `
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY v.created_at DESC, v.id DESC
		LIMIT ?`
	return query, args
}

// Search returns active listings matching the query, newest first.
func (r *VehicleRepo) Search(ctx context.Context, q VehicleSearchQuery) ([]model.VehicleCard, error) {
	query, args := q.build()
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCards(rows)
}

func scanCards(rows *sql.Rows) ([]model.VehicleCard, error) {
	out := make([]model.VehicleCard, 0, 20)
	for rows.Next() {
		var c model.VehicleCard
		if err := rows.Scan(
			&c.ID, &c.Brand, &c.Model, &c.Year, &c.Price, &c.MileageKM,
			&c.Transmission, &c.City, &c.Status, &c.CreatedAt, &c.ImageURL,
		); err != nil {
			return nil, err
		}
		c.Title = model.ListingTitle(c.Brand, c.Model, c.Year)
		if c.ImageURL == "" {
			c.ImageURL = model.PlaceholderImageURL
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
