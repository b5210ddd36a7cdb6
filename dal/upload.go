package dal

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/tidwall/gjson"
)

// UploadFile forwards a file to the image collaborator and returns the
// hosted URL. Only the URL travels onward; file bytes are never retained.
// The collaborator answers with either a "url" or an "image" field.
func (rc *RegistryClient) UploadFile(ctx context.Context, filename string, file io.Reader) (string, error) {
	if rc.config.UploadURL == "" {
		return "", fmt.Errorf("upload URL is not configured")
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rc.config.UploadURL, &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := rc.client.Do(req)
	if err != nil {
		rc.logger.Errorf("Upload of %s failed: %v", filename, err)
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("upload service returned %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	url := gjson.GetBytes(body, "url")
	if !url.Exists() {
		url = gjson.GetBytes(body, "image")
	}
	if !url.Exists() || url.String() == "" {
		return "", fmt.Errorf("upload response carried no url field")
	}

	rc.logger.Infof("Uploaded %s -> %s", filename, url.String())
	return url.String(), nil
}
