package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dfquintero/autoferia/internal/model"
)

func seedVehicle(t *testing.T, store *fakeVehicleStore, v model.Vehicle) model.Vehicle {
	t.Helper()
	require.NoError(t, store.Create(context.Background(), &v))
	return v
}

type searchEnvelope struct {
	Data  []model.VehicleCard `json:"data"`
	Count int                 `json:"count"`
}

func TestSearchVehicles(t *testing.T) {
	store := newFakeVehicleStore()
	seedVehicle(t, store, model.Vehicle{
		UserID: 1, Brand: "Mazda", Model: "3", Year: 2020, Price: 62_000_000,
		Transmission: model.TransmissionAutomatic, City: "Bogota",
	})
	seedVehicle(t, store, model.Vehicle{
		UserID: 1, Brand: "Renault", Model: "Duster", Year: 2018, Price: 48_000_000,
		Transmission: model.TransmissionManual, City: "Cali",
		Images: []string{"https://img.example.com/duster-front.jpg"},
	})
	h := NewPublicVehicleHandler(store)

	c, rec := jsonCtx(http.MethodGet, "/v1/vehicles?brand=mazda&city=+Bogota+&limit=5", "")
	require.NoError(t, h.SearchVehicles(c))
	require.Equal(t, http.StatusOK, rec.Code)

	// Query params reach the store trimmed and intact.
	assert.Equal(t, "mazda", store.lastSearch.Brand)
	assert.Equal(t, "Bogota", store.lastSearch.City)
	assert.Equal(t, 5, store.lastSearch.Limit)

	var resp searchEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, len(resp.Data), resp.Count)
	require.Len(t, resp.Data, 1, "brand and city filters both apply")
	assert.Equal(t, "Mazda", resp.Data[0].Brand)
	assert.Equal(t, "Bogota", resp.Data[0].City)
}

func TestSearchVehiclesNewestFirst(t *testing.T) {
	store := newFakeVehicleStore()
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"aa", "bb", "cc"} {
		store.vehicles = append(store.vehicles, model.Vehicle{
			ID: id, UserID: 1, Brand: "Mazda", Model: "3", Year: 2020,
			Transmission: model.TransmissionAutomatic, City: "Bogota",
			Status: model.StatusActive, CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
	}
	h := NewPublicVehicleHandler(store)

	c, rec := jsonCtx(http.MethodGet, "/v1/vehicles", "")
	require.NoError(t, h.SearchVehicles(c))

	var resp searchEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 3)
	assert.Equal(t, "cc", resp.Data[0].ID)
	assert.Equal(t, "bb", resp.Data[1].ID)
	assert.Equal(t, "aa", resp.Data[2].ID)
}

func TestSearchVehiclesCardShape(t *testing.T) {
	store := newFakeVehicleStore()
	bare := seedVehicle(t, store, model.Vehicle{
		UserID: 1, Brand: "Mazda", Model: "3", Year: 2020,
		Transmission: model.TransmissionAutomatic, City: "Bogota",
	})
	h := NewPublicVehicleHandler(store)

	c, rec := jsonCtx(http.MethodGet, "/v1/vehicles", "")
	require.NoError(t, h.SearchVehicles(c))

	var resp searchEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	card := resp.Data[0]
	assert.Equal(t, bare.ID, card.ID)
	assert.Equal(t, "Mazda 3 2020", card.Title)
	assert.Equal(t, model.PlaceholderImageURL, card.ImageURL, "no images means placeholder")
	assert.Equal(t, model.StatusActive, card.Status)
}

func TestSearchVehiclesStoreError(t *testing.T) {
	store := newFakeVehicleStore()
	store.searchErr = errors.New("connection reset")
	h := NewPublicVehicleHandler(store)

	c, rec := jsonCtx(http.MethodGet, "/v1/vehicles", "")
	require.NoError(t, h.SearchVehicles(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "database_error")
}

func TestGetVehicle(t *testing.T) {
	store := newFakeVehicleStore()
	store.sellers[1] = model.Seller{FullName: "Ana Gomez", Phone: "3001234567", City: "Bogota"}
	v := seedVehicle(t, store, model.Vehicle{
		UserID: 1, Brand: "Renault", Model: "Duster", Year: 2018, Price: 48_000_000,
		Transmission: model.TransmissionManual, City: "Cali",
		Images: []string{"https://img.example.com/a.jpg", "https://img.example.com/b.jpg"},
	})
	h := NewPublicVehicleHandler(store)

	c, rec := jsonCtx(http.MethodGet, "/v1/vehicles/"+v.ID, "")
	c.SetParamNames("id")
	c.SetParamValues(v.ID)
	require.NoError(t, h.GetVehicle(c))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Vehicle vehicleDetailDTO `json:"vehicle"`
		Seller  model.Seller     `json:"seller"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Renault Duster 2018", resp.Vehicle.Title)
	assert.Equal(t, "https://img.example.com/a.jpg", resp.Vehicle.ImageURL, "first image is primary")
	assert.Len(t, resp.Vehicle.Images, 2)
	assert.Equal(t, "Ana Gomez", resp.Seller.FullName)
	assert.Equal(t, "3001234567", resp.Seller.Phone)
}

func TestGetVehicleNotFound(t *testing.T) {
	h := NewPublicVehicleHandler(newFakeVehicleStore())

	c, rec := jsonCtx(http.MethodGet, "/v1/vehicles/missing", "")
	c.SetParamNames("id")
	c.SetParamValues("0b4ef3b0-0000-0000-0000-000000000000")
	require.NoError(t, h.GetVehicle(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "not_found")
}
