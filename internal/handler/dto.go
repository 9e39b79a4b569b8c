package handler

import (
	"time"

	"github.com/dfquintero/autoferia/internal/model"
)

// vehicleDetailDTO is the JSON shape of a full listing on the detail view.
type vehicleDetailDTO struct {
	ID           string    `json:"id"`
	UserID       uint64    `json:"user_id"`
	Title        string    `json:"title"`
	Brand        string    `json:"brand"`
	Model        string    `json:"model"`
	Year         int       `json:"year"`
	Price        int64     `json:"price"`
	MileageKM    int       `json:"mileage_km"`
	Transmission string    `json:"transmission"`
	Color        string    `json:"color"`
	City         string    `json:"city"`
	Description  string    `json:"description"`
	Status       string    `json:"status"`
	ImageURL     string    `json:"image_url"`
	Images       []string  `json:"images"`
	CreatedAt    time.Time `json:"created_at"`
}

func vehicleDetail(v model.Vehicle) vehicleDetailDTO {
	primary := model.PlaceholderImageURL
	if len(v.Images) > 0 {
		primary = v.Images[0]
	}
	images := v.Images
	if images == nil {
		images = []string{}
	}
	return vehicleDetailDTO{
		ID:           v.ID,
		UserID:       v.UserID,
		Title:        v.Title(),
		Brand:        v.Brand,
		Model:        v.Model,
		Year:         v.Year,
		Price:        v.Price,
		MileageKM:    v.MileageKM,
		Transmission: v.Transmission,
		Color:        v.Color,
		City:         v.City,
		Description:  v.Description,
		Status:       v.Status,
		ImageURL:     primary,
		Images:       images,
		CreatedAt:    v.CreatedAt,
	}
}
