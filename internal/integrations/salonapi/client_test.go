package salonapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", 2*time.Second, nopLogger{})
}

const twoDates = `[
	{"id": 1, "date": "2026-03-05", "time": "10:00", "status": "confirmed"},
	{"id": 2, "date": "2026-03-05", "time": "10:30", "status": "pending"},
	{"id": 3, "date": "2026-03-06", "time": "11:00", "status": "confirmed"}
]`

func TestListAppointmentsByDate_PayloadShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{name: "bare array", body: twoDates, want: 2},
		{name: "appointments", body: `{"appointments": ` + twoDates + `}`, want: 2},
		{name: "data", body: `{"data": ` + twoDates + `}`, want: 2},
		{name: "items", body: `{"items": ` + twoDates + `}`, want: 2},
		{name: "results", body: `{"results": ` + twoDates + `}`, want: 2},
		{name: "bookings", body: `{"bookings": ` + twoDates + `}`, want: 2},
		{name: "nested data appointments", body: `{"data": {"appointments": ` + twoDates + `}}`, want: 2},
		{name: "nested data items", body: `{"data": {"items": ` + twoDates + `}}`, want: 2},
		{name: "unknown wrapper", body: `{"rows": ` + twoDates + `}`, want: 0},
		{name: "null", body: `null`, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "/appointments", r.URL.Path)
				assert.Equal(t, "no-cache", r.Header.Get("Cache-Control"))
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tt.body))
			})

			got, err := client.ListAppointmentsByDate(context.Background(), "2026-03-05")
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
			for _, a := range got {
				assert.Equal(t, "2026-03-05", a.Date)
			}
		})
	}
}

func TestListAppointmentsByDate_CountsConfirmed(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(twoDates))
	})

	got, err := client.ListAppointmentsByDate(context.Background(), "2026-03-05")
	require.NoError(t, err)
	assert.Equal(t, 1, domain.CountConfirmed(got))
}

func TestListAppointmentsByDate_Errors(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "listing disabled", http.StatusNotFound)
	})

	_, err := client.ListAppointmentsByDate(context.Background(), "2026-03-05")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "listing disabled", apiErr.Message)

	broken := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id": "x"}]`))
	})
	_, err = broken.ListAppointmentsByDate(context.Background(), "2026-03-05")
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestCreateAppointment(t *testing.T) {
	var received map[string]interface{}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/appointments", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": 77, "date": "2026-03-05", "time": "10:00", "status": "pending", "price_cents": 160000, "currency": "UGX"}`))
	})

	created, err := client.CreateAppointment(context.Background(), &domain.AppointmentRequest{
		CustomerName:       "Amina",
		CustomerEmail:      "amina@example.com",
		CustomerPhone:      "+256700000001",
		ServiceID:          1,
		ServiceDescription: "Long-Small-Boho",
		Date:               "2026-03-05",
		Time:               "10:00",
		Status:             domain.StatusPending,
		TotalPrice:         160000,
		Currency:           "UGX",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(77), created.ID)
	assert.Equal(t, int64(160000), created.TotalPrice)

	assert.Equal(t, "Amina", received["customer_name"])
	assert.Equal(t, "", received["staff_name"])
	assert.Equal(t, "Long-Small-Boho", received["service_description"])
	assert.Equal(t, "pending", received["status"])
	assert.Equal(t, float64(160000), received["price_cents"])
	assert.Equal(t, "UGX", received["currency"])
	assert.Equal(t, float64(1), received["service_id"])
}

func TestCreateAppointment_ErrorMessage(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		status      int
		body        string
		want        string
	}{
		{name: "error field", contentType: "application/json", status: http.StatusConflict, body: `{"error": "Date is fully booked", "message": "ignored"}`, want: "Date is fully booked"},
		{name: "message field", contentType: "application/json", status: http.StatusBadRequest, body: `{"message": "invalid email"}`, want: "invalid email"},
		{name: "blank error falls to message", contentType: "application/json", status: http.StatusBadRequest, body: `{"error": "  ", "message": "bad phone"}`, want: "bad phone"},
		{name: "json without fields", contentType: "application/json", status: http.StatusBadRequest, body: `{"code": 3}`, want: "Bad Request"},
		{name: "broken json", contentType: "application/json", status: http.StatusInternalServerError, body: `{`, want: "Internal Server Error"},
		{name: "plain text", contentType: "text/plain", status: http.StatusUnprocessableEntity, body: "slot taken\n", want: "slot taken"},
		{name: "empty body", contentType: "text/plain", status: http.StatusBadGateway, body: "", want: "Bad Gateway"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", tt.contentType)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.CreateAppointment(context.Background(), &domain.AppointmentRequest{ServiceID: 1})
			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.want, apiErr.BackendMessage())
		})
	}
}

func TestListAllMenuItems_Paginates(t *testing.T) {
	var offsets []int
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/menu-items", r.URL.Path)
		assert.Equal(t, "Nails Studio", r.URL.Query().Get("category"))
		assert.Equal(t, "2", r.URL.Query().Get("limit"))

		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		offsets = append(offsets, offset)

		page := ListMenuItemsResponse{Total: 5, Offset: offset, Limit: 2, HasMore: offset+2 < 5}
		for i := offset; i < offset+2 && i < 5; i++ {
			page.Data = append(page.Data, MenuItemDTO{ID: int64(i + 1), Category: "Nails Studio", Name: "item", PriceCents: 5000})
		}
		_ = json.NewEncoder(w).Encode(page)
	})

	items, err := client.ListAllMenuItems(context.Background(), " Nails Studio ", "", 2)
	require.NoError(t, err)
	assert.Len(t, items, 5)
	assert.Equal(t, []int{0, 2, 4}, offsets)
	assert.Equal(t, int64(5), items[4].ID)
}

func TestListAllMenuItems_SafetyCap(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		_ = json.NewEncoder(w).Encode(ListMenuItemsResponse{
			Data:    []MenuItemDTO{{ID: int64(calls)}},
			Offset:  offset,
			Limit:   1,
			HasMore: true,
		})
	})

	items, err := client.ListAllMenuItems(context.Background(), "", "", 1)
	require.NoError(t, err)
	assert.Equal(t, maxMenuPages, calls)
	assert.Len(t, items, maxMenuPages)
}
