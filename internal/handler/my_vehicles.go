package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dfquintero/autoferia/internal/model"
	"github.com/dfquintero/autoferia/internal/queue"
	"github.com/dfquintero/autoferia/internal/repository"
	"github.com/dfquintero/autoferia/internal/service"
)

// minListingYear is the oldest model year a listing may carry.
const minListingYear = 1900

// SellerHandler implements the authenticated "sell" flow: publishing a
// listing and reviewing one's own published listings.
type SellerHandler struct {
	Vehicles repository.VehicleStore
}

func NewSellerHandler(v repository.VehicleStore) *SellerHandler {
	return &SellerHandler{Vehicles: v}
}

type publishReq struct {
	Brand        string   `json:"brand"`
	Model        string   `json:"model"`
	Year         int      `json:"year"`
	Price        int64    `json:"price"`
	MileageKM    int      `json:"mileage_km"`
	Transmission string   `json:"transmission"`
	Color        string   `json:"color"`
	City         string   `json:"city"`
	Description  string   `json:"description"`
	Images       []string `json:"images"`
}

// validate performs the form-level checks that precede any insert. All
// uniqueness/referential concerns stay with the database and surface as
// opaque error strings.
func (r *publishReq) validate() string {
	r.Brand = strings.TrimSpace(r.Brand)
	r.Model = strings.TrimSpace(r.Model)
	r.City = strings.TrimSpace(r.City)
	r.Transmission = strings.ToLower(strings.TrimSpace(r.Transmission))

	if r.Brand == "" || r.Model == "" || r.City == "" {
		return "brand, model and city are required"
	}
	if r.Transmission != model.TransmissionManual && r.Transmission != model.TransmissionAutomatic {
		return "transmission must be manual or automatic"
	}
	if nowYear := time.Now().UTC().Year(); r.Year < minListingYear || r.Year > nowYear {
		return "year out of range"
	}
	if r.Price < 0 {
		return "price must not be negative"
	}
	if r.MileageKM < 0 {
		return "mileage_km must not be negative"
	}
	// Drop empty image slots so the placeholder logic stays downstream.
	images := r.Images[:0]
	for _, u := range r.Images {
		if s := strings.TrimSpace(u); s != "" {
			images = append(images, s)
		}
	}
	r.Images = images
	return ""
}

// Publish creates a listing owned by the session's user. On success the
// listing is immediately visible in the owner's list and, being active, in
// the public search.
// POST /v1/vehicles
func (h *SellerHandler) Publish(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req publishReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": msg})
	}

	v := model.Vehicle{
		UserID:       uid,
		Brand:        req.Brand,
		Model:        req.Model,
		Year:         req.Year,
		Price:        req.Price,
		MileageKM:    req.MileageKM,
		Transmission: req.Transmission,
		Color:        strings.TrimSpace(req.Color),
		City:         req.City,
		Description:  strings.TrimSpace(req.Description),
		Images:       req.Images,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Vehicles.Create(ctx, &v); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	// Fire-and-forget off the request path: a slow or unreachable broker
	// must neither fail nor delay the response.
	ev := queue.ListingPublishedEvent{
		VehicleID:   v.ID,
		UserID:      v.UserID,
		Title:       v.Title(),
		Price:       v.Price,
		City:        v.City,
		PublishedAt: v.CreatedAt.Format(time.RFC3339),
	}
	go func() {
		pubCtx, pubCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer pubCancel()
		_ = service.PublishListingPublished(pubCtx, ev)
	}()

	return c.JSON(http.StatusCreated, echo.Map{"vehicle": vehicleDetail(v)})
}

// ListMine returns the session user's listings newest first, every status
// included, so a seller sees paused and sold records too.
// GET /v1/my/vehicles
func (h *SellerHandler) ListMine(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	items, err := h.Vehicles.ListByOwner(c.Request().Context(), uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"data":  items,
		"count": len(items),
	})
}
