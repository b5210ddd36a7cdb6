package dal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"membership-console/models"
	"membership-console/utils/logger"
)

// RegistryClient talks to the remote membership registry over REST.
type RegistryClient struct {
	base   string
	client *http.Client
	config *models.Config
	logger logger.Logger
}

// NewRegistryClient creates a new registry client
func NewRegistryClient(cfg *models.Config, log logger.Logger) (*RegistryClient, error) {
	if cfg.RegistryBaseURL == "" {
		return nil, fmt.Errorf("registry base URL is not configured")
	}

	rc := &RegistryClient{
		base:   strings.TrimRight(cfg.RegistryBaseURL, "/"),
		client: &http.Client{},
		config: cfg,
		logger: log,
	}

	log.Infof("Registry client initialized for %s", rc.base)
	return rc, nil
}

// GetStates retrieves the state reference list
func (rc *RegistryClient) GetStates(ctx context.Context) ([]models.GeoState, error) {
	var states []models.GeoState
	if err := rc.getJSON(ctx, rc.base+"/states", &states); err != nil {
		return nil, fmt.Errorf("failed to fetch states: %w", err)
	}
	return states, nil
}

// GetDistricts retrieves the district reference list
func (rc *RegistryClient) GetDistricts(ctx context.Context) ([]models.GeoDistrict, error) {
	var districts []models.GeoDistrict
	if err := rc.getJSON(ctx, rc.base+"/districts", &districts); err != nil {
		return nil, fmt.Errorf("failed to fetch districts: %w", err)
	}
	return districts, nil
}

// FetchCollection retrieves a full entity collection as raw records
func (rc *RegistryClient) FetchCollection(ctx context.Context, collection string) ([]json.RawMessage, error) {
	var records []json.RawMessage
	if err := rc.getJSON(ctx, rc.base+"/"+collection+"/", &records); err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", collection, err)
	}
	return records, nil
}

// Register creates a new entity in the given collection
func (rc *RegistryClient) Register(ctx context.Context, collection string, payload map[string]interface{}) error {
	url := rc.base + "/" + collection + "/register"
	if err := rc.sendJSON(ctx, http.MethodPost, url, payload); err != nil {
		return fmt.Errorf("failed to register in %s: %w", collection, err)
	}
	return nil
}

// Update replaces the given fields of one entity
func (rc *RegistryClient) Update(ctx context.Context, collection, id string, payload map[string]interface{}) error {
	url := rc.base + "/" + collection + "/" + id
	if err := rc.sendJSON(ctx, http.MethodPut, url, payload); err != nil {
		return fmt.Errorf("failed to update %s/%s: %w", collection, id, err)
	}
	return nil
}

// Delete removes one entity
func (rc *RegistryClient) Delete(ctx context.Context, collection, id string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, rc.base+"/"+collection+"/"+id, nil)
	if err != nil {
		return err
	}

	resp, err := rc.client.Do(req)
	if err != nil {
		rc.logger.Errorf("Failed to delete %s/%s: %v", collection, id, err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("delete %s/%s: registry returned %s", collection, id, resp.Status)
	}
	return nil
}

func (rc *RegistryClient) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := rc.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("registry returned %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, out)
}

func (rc *RegistryClient) sendJSON(ctx context.Context, method, url string, payload map[string]interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := rc.client.Do(req)
	if err != nil {
		rc.logger.Errorf("%s %s failed: %v", method, url, err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("registry returned %s", resp.Status)
	}
	return nil
}
