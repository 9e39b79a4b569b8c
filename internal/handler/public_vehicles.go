package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/dfquintero/autoferia/internal/repository"
)

// PublicVehicleHandler exposes the unauthenticated browse endpoints: the
// listing search and the detail view. No session is required so guests can
// shop before creating an account.
type PublicVehicleHandler struct {
	Vehicles repository.VehicleStore
}

func NewPublicVehicleHandler(v repository.VehicleStore) *PublicVehicleHandler {
	return &PublicVehicleHandler{Vehicles: v}
}

// SearchVehicles returns active listings newest first, optionally filtered
// by brand and city substrings (case-insensitive).
// GET /v1/vehicles?brand=&city=&limit=
func (h *PublicVehicleHandler) SearchVehicles(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	q := repository.VehicleSearchQuery{
		Brand: strings.TrimSpace(c.QueryParam("brand")),
		City:  strings.TrimSpace(c.QueryParam("city")),
		Limit: limit,
	}

	items, err := h.Vehicles.Search(c.Request().Context(), q)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error":   "database_error",
			"message": err.Error(),
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"data":  items,
		"count": len(items),
	})
}

// GetVehicle returns one listing joined with the seller's public contact
// fields. A missing row is terminal for the page: 404, nothing else.
// GET /v1/vehicles/:id
func (h *PublicVehicleHandler) GetVehicle(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not_found"})
	}

	v, seller, err := h.Vehicles.GetDetail(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "not_found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"vehicle": vehicleDetail(v),
		"seller":  seller,
	})
}
