package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"clinic-agenda-server/internal/models"
)

// RemoteRepository is the upstream citas API the store consumes. It is an
// external collaborator: any implementation error is treated as a transient
// remote failure and recovered from the local mirror.
type RemoteRepository interface {
	List(ctx context.Context) ([]models.Appointment, error)
	Create(ctx context.Context, cita models.Appointment) (models.Appointment, error)
	Update(ctx context.Context, id string, cita models.Appointment) error
	Delete(ctx context.Context, id string) error
	Replace(ctx context.Context, citas []models.Appointment) error
	Ping(ctx context.Context) error
}

// APIClient is the production RemoteRepository over HTTP.
type APIClient struct {
	baseURL string
	client  *http.Client
}

// NewAPIClient creates a client for the upstream API at baseURL.
func NewAPIClient(baseURL string, timeout time.Duration) *APIClient {
	return &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// List fetches the full appointment collection (GET /citas).
func (c *APIClient) List(ctx context.Context) ([]models.Appointment, error) {
	var citas []models.Appointment
	if err := c.do(ctx, http.MethodGet, "/citas", nil, &citas); err != nil {
		return nil, err
	}
	return citas, nil
}

// Create adds one appointment (POST /citas/agregar) and returns it with the
// remote-assigned id.
func (c *APIClient) Create(ctx context.Context, cita models.Appointment) (models.Appointment, error) {
	var created models.Appointment
	if err := c.do(ctx, http.MethodPost, "/citas/agregar", cita, &created); err != nil {
		return models.Appointment{}, err
	}
	return created, nil
}

// Update replaces the appointment with the given id (PUT /citas/:id).
func (c *APIClient) Update(ctx context.Context, id string, cita models.Appointment) error {
	return c.do(ctx, http.MethodPut, "/citas/"+id, cita, nil)
}

// Delete removes the appointment with the given id (DELETE /citas/:id).
func (c *APIClient) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/citas/"+id, nil, nil)
}

// Replace bulk-replaces the whole collection (POST /citas).
func (c *APIClient) Replace(ctx context.Context, citas []models.Appointment) error {
	if citas == nil {
		citas = []models.Appointment{}
	}
	return c.do(ctx, http.MethodPost, "/citas", citas, nil)
}

// Ping probes the health endpoint (GET /status) and fails unless it reports
// an OK status.
func (c *APIClient) Ping(ctx context.Context) error {
	var status struct {
		Status string `json:"status"`
	}
	if err := c.do(ctx, http.MethodGet, "/status", nil, &status); err != nil {
		return err
	}
	if status.Status != "OK" {
		return fmt.Errorf("remote status %q", status.Status)
	}
	return nil
}

func (c *APIClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%s %s: decode response: %w", method, path, err)
		}
	}
	return nil
}
