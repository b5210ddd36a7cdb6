package dal

import (
	"context"
	"encoding/json"
	"io"

	"membership-console/models"
)

// RegistryClientInterface defines the contract for talking to the remote
// membership registry. Raw collection records stay opaque JSON so the
// service layer can normalize heterogeneous shapes itself.
type RegistryClientInterface interface {
	// Reference data
	GetStates(ctx context.Context) ([]models.GeoState, error)
	GetDistricts(ctx context.Context) ([]models.GeoDistrict, error)

	// Entity collections
	FetchCollection(ctx context.Context, collection string) ([]json.RawMessage, error)
	Register(ctx context.Context, collection string, payload map[string]interface{}) error
	Update(ctx context.Context, collection, id string, payload map[string]interface{}) error
	Delete(ctx context.Context, collection, id string) error

	// Image collaborator: multipart file in, hosted URL out
	UploadFile(ctx context.Context, filename string, file io.Reader) (string, error)
}
