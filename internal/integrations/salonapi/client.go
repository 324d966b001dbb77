package salonapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
)

const (
	// DefaultMenuPageSize размер страницы при выборке всего прайс-листа
	DefaultMenuPageSize = 100

	// maxMenuPages ограничение числа страниц прайс-листа
	maxMenuPages = 50
)

// Client клиент для работы с бэкендом салона
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента бэкенда салона
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// ListAppointmentsByDate получает записи на дату.
// Отдельного фильтра по дате у бэкенда нет, поэтому список фильтруется на клиенте.
func (c *Client) ListAppointmentsByDate(ctx context.Context, date string) ([]domain.Appointment, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/appointments", nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")
	// ответ должен отражать текущее состояние бэкенда
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, readAPIError(resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", ErrInvalidResponse, err)
	}

	items, err := coerceAppointments(body)
	if err != nil {
		return nil, err
	}

	result := make([]domain.Appointment, 0, len(items))
	for i := range items {
		if items[i].Date == date {
			result = append(result, items[i].toDomain())
		}
	}

	c.log.Info("ListAppointmentsByDate: date=%s, total=%d, matched=%d", date, len(items), len(result))
	return result, nil
}

// CreateAppointment создает запись
func (c *Client) CreateAppointment(ctx context.Context, appointment *domain.AppointmentRequest) (*domain.Appointment, error) {
	payload, err := json.Marshal(newCreateAppointmentRequest(appointment))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/appointments", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := readAPIError(resp)
		c.log.Warn("CreateAppointment: backend rejected date=%s time=%s: %v", appointment.Date, appointment.Time, apiErr)
		return nil, apiErr
	}

	var created AppointmentDTO
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	result := created.toDomain()
	return &result, nil
}

// ListMenuItems получает одну страницу прайс-листа
func (c *Client) ListMenuItems(ctx context.Context, params ListMenuItemsParams) (*ListMenuItemsResponse, error) {
	query := url.Values{}
	if v := strings.TrimSpace(params.Category); v != "" {
		query.Set("category", v)
	}
	if v := strings.TrimSpace(params.Query); v != "" {
		query.Set("q", v)
	}
	if params.Offset != nil {
		query.Set("offset", strconv.Itoa(*params.Offset))
	}
	if params.Limit != nil {
		query.Set("limit", strconv.Itoa(*params.Limit))
	}

	endpoint := c.baseURL + "/menu-items"
	if encoded := query.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, readAPIError(resp)
	}

	var page ListMenuItemsResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	return &page, nil
}

// ListAllMenuItems обходит все страницы прайс-листа
func (c *Client) ListAllMenuItems(ctx context.Context, category, q string, pageSize int) ([]domain.MenuItem, error) {
	if pageSize <= 0 {
		pageSize = DefaultMenuPageSize
	}

	items := make([]domain.MenuItem, 0)
	offset := 0
	for page := 0; page < maxMenuPages; page++ {
		resp, err := c.ListMenuItems(ctx, ListMenuItemsParams{
			Category: category,
			Query:    q,
			Offset:   ptr.Ptr(offset),
			Limit:    ptr.Ptr(pageSize),
		})
		if err != nil {
			return nil, err
		}

		for i := range resp.Data {
			items = append(items, resp.Data[i].toDomain())
		}
		if !resp.HasMore {
			return items, nil
		}
		offset = resp.Offset + resp.Limit
	}

	c.log.Warn("ListAllMenuItems: stopped after %d pages, category=%q", maxMenuPages, category)
	return items, nil
}

// coerceAppointments принимает массив или объект-обертку с массивом под одним из известных ключей
func coerceAppointments(body []byte) ([]AppointmentDTO, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, nil
	}

	var items []AppointmentDTO
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("%w: failed to decode appointments: %v", ErrInvalidResponse, err)
		}
		return items, nil
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &wrapper); err != nil {
		// не объект и не массив: считаем, что записей нет
		return nil, nil
	}

	for _, key := range []string{"appointments", "data", "items", "results", "bookings"} {
		if raw, ok := wrapper[key]; ok && isJSONArray(raw) {
			if err := json.Unmarshal(raw, &items); err != nil {
				return nil, fmt.Errorf("%w: failed to decode %s: %v", ErrInvalidResponse, key, err)
			}
			return items, nil
		}
	}

	if raw, ok := wrapper["data"]; ok {
		var nested map[string]json.RawMessage
		if err := json.Unmarshal(raw, &nested); err == nil {
			for _, key := range []string{"appointments", "items"} {
				if inner, ok := nested[key]; ok && isJSONArray(inner) {
					if err := json.Unmarshal(inner, &items); err != nil {
						return nil, fmt.Errorf("%w: failed to decode data.%s: %v", ErrInvalidResponse, key, err)
					}
					return items, nil
				}
			}
		}
	}

	return nil, nil
}

func isJSONArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}

// readAPIError извлекает сообщение: поле error, затем message, затем текст тела, затем текст статуса
func readAPIError(resp *http.Response) *APIError {
	body, _ := io.ReadAll(resp.Body)
	apiErr := &APIError{Status: resp.StatusCode, Body: string(body)}

	fallback := http.StatusText(resp.StatusCode)
	if fallback == "" {
		fallback = "Request failed"
	}

	if strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		apiErr.Message = jsonErrorMessage(body, fallback)
		return apiErr
	}

	if text := strings.TrimSpace(string(body)); text != "" {
		apiErr.Message = text
		return apiErr
	}
	apiErr.Message = fallback
	return apiErr
}

func jsonErrorMessage(body []byte, fallback string) string {
	var text string
	if err := json.Unmarshal(body, &text); err == nil {
		if strings.TrimSpace(text) != "" {
			return text
		}
		return fallback
	}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return fallback
	}
	if strings.TrimSpace(eb.Error) != "" {
		return eb.Error
	}
	if strings.TrimSpace(eb.Message) != "" {
		return eb.Message
	}
	return fallback
}
