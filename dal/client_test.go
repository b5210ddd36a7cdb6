package dal

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"membership-console/models"
	"membership-console/utils/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type RegistryClientTestSuite struct {
	suite.Suite
	ctx context.Context
	log logger.Logger
}

func (suite *RegistryClientTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.log = logger.NewLogger("error", "json")
}

func TestRegistryClientTestSuite(t *testing.T) {
	suite.Run(t, new(RegistryClientTestSuite))
}

func (suite *RegistryClientTestSuite) newClient(server *httptest.Server) *RegistryClient {
	cfg := &models.Config{
		RegistryBaseURL: server.URL,
		UploadURL:       server.URL + "/upload",
	}
	client, err := NewRegistryClient(cfg, suite.log)
	suite.Require().NoError(err)
	return client
}

func (suite *RegistryClientTestSuite) TestNewClientRequiresBaseURL() {
	_, err := NewRegistryClient(&models.Config{}, suite.log)
	assert.Error(suite.T(), err)
}

func (suite *RegistryClientTestSuite) TestGetStates() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(suite.T(), "/states", r.URL.Path)
		assert.Equal(suite.T(), http.MethodGet, r.Method)
		_ = json.NewEncoder(w).Encode([]models.GeoState{
			{ID: 1, Code: "KA", Name: "Karnataka"},
		})
	}))
	defer server.Close()

	states, err := suite.newClient(server).GetStates(suite.ctx)

	suite.Require().NoError(err)
	suite.Require().Len(states, 1)
	assert.Equal(suite.T(), "Karnataka", states[0].Name)
}

func (suite *RegistryClientTestSuite) TestGetDistricts() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(suite.T(), "/districts", r.URL.Path)
		_ = json.NewEncoder(w).Encode([]models.GeoDistrict{
			{ID: 10, StateID: 1, Name: "Mysuru"},
			{ID: 11, StateID: 1, Name: "Udupi"},
		})
	}))
	defer server.Close()

	districts, err := suite.newClient(server).GetDistricts(suite.ctx)

	suite.Require().NoError(err)
	assert.Len(suite.T(), districts, 2)
}

func (suite *RegistryClientTestSuite) TestFetchCollectionKeepsRecordsRaw() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(suite.T(), "/clubs/", r.URL.Path)
		_, _ = w.Write([]byte(`[{"clubId":"a","extraServerField":true},{"_id":"b"}]`))
	}))
	defer server.Close()

	records, err := suite.newClient(server).FetchCollection(suite.ctx, "clubs")

	suite.Require().NoError(err)
	suite.Require().Len(records, 2)
	// Raw payloads pass through untouched for the normalizer.
	assert.Contains(suite.T(), string(records[0]), "extraServerField")
}

func (suite *RegistryClientTestSuite) TestRegisterPostsJSON() {
	var body map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(suite.T(), "/clubs/register", r.URL.Path)
		assert.Equal(suite.T(), http.MethodPost, r.Method)
		assert.Equal(suite.T(), "application/json", r.Header.Get("Content-Type"))
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	err := suite.newClient(server).Register(suite.ctx, "clubs", map[string]interface{}{"clubName": "Fresh Club"})

	suite.Require().NoError(err)
	assert.Equal(suite.T(), "Fresh Club", body["clubName"])
}

func (suite *RegistryClientTestSuite) TestUpdatePutsToEntityPath() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(suite.T(), "/clubs/a", r.URL.Path)
		assert.Equal(suite.T(), http.MethodPut, r.Method)
	}))
	defer server.Close()

	err := suite.newClient(server).Update(suite.ctx, "clubs", "a", map[string]interface{}{"approvalStatus": "approved"})
	assert.NoError(suite.T(), err)
}

func (suite *RegistryClientTestSuite) TestDelete() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(suite.T(), "/clubs/a", r.URL.Path)
		assert.Equal(suite.T(), http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	err := suite.newClient(server).Delete(suite.ctx, "clubs", "a")
	assert.NoError(suite.T(), err)
}

func (suite *RegistryClientTestSuite) TestErrorStatusSurfaces() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := suite.newClient(server)

	_, err := client.GetStates(suite.ctx)
	assert.Error(suite.T(), err)

	assert.Error(suite.T(), client.Register(suite.ctx, "clubs", nil))
	assert.Error(suite.T(), client.Update(suite.ctx, "clubs", "a", nil))
	assert.Error(suite.T(), client.Delete(suite.ctx, "clubs", "a"))
}

func (suite *RegistryClientTestSuite) TestUploadFileReturnsURL() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		suite.Require().NoError(r.ParseMultipartForm(1 << 20))
		file, header, err := r.FormFile("file")
		suite.Require().NoError(err)
		defer file.Close()

		content, _ := io.ReadAll(file)
		assert.Equal(suite.T(), "certificate.png", header.Filename)
		assert.Equal(suite.T(), "fake image bytes", string(content))

		_, _ = w.Write([]byte(`{"url":"https://cdn.example.com/certificate.png"}`))
	}))
	defer server.Close()

	url, err := suite.newClient(server).UploadFile(suite.ctx, "certificate.png", strings.NewReader("fake image bytes"))

	suite.Require().NoError(err)
	assert.Equal(suite.T(), "https://cdn.example.com/certificate.png", url)
}

func (suite *RegistryClientTestSuite) TestUploadFileAcceptsImageField() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"image":"https://cdn.example.com/alt.png"}`))
	}))
	defer server.Close()

	url, err := suite.newClient(server).UploadFile(suite.ctx, "alt.png", strings.NewReader("x"))

	suite.Require().NoError(err)
	assert.Equal(suite.T(), "https://cdn.example.com/alt.png", url)
}

func (suite *RegistryClientTestSuite) TestUploadFileMissingURLField() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	_, err := suite.newClient(server).UploadFile(suite.ctx, "x.png", strings.NewReader("x"))
	assert.Error(suite.T(), err)
}
