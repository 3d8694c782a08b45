package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"jobboard_backend/internal/auth"
	"jobboard_backend/internal/config"
	"jobboard_backend/internal/email"
	"jobboard_backend/internal/handlers"
	"jobboard_backend/internal/middleware"
	"jobboard_backend/internal/models"
	"jobboard_backend/internal/repositories"
	"jobboard_backend/internal/routes"
	"jobboard_backend/internal/services"
	"jobboard_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// recordingEmailProvider satisfies email.Provider for tests.
type recordingEmailProvider struct {
	mu   sync.Mutex
	sent int
}

func (p *recordingEmailProvider) Send(*email.Email) error { return nil }
func (p *recordingEmailProvider) SendTemplate([]string, string, string, email.TemplateData) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent++
	return nil
}
func (p *recordingEmailProvider) Validate() error { return nil }
func (p *recordingEmailProvider) Close() error    { return nil }

// memoryStorage is a minimal in-memory storage.Storage.
type memoryStorage struct {
	mu    sync.Mutex
	files map[string][]byte
}

func (s *memoryStorage) Save(ctx context.Context, path string, reader io.Reader, contentType string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[path] = data
	return nil
}

func (s *memoryStorage) Get(ctx context.Context, path string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.files[path]
	if !ok {
		return nil, fmt.Errorf("file not found: %s", path)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *memoryStorage) Delete(ctx context.Context, path string) error { return nil }
func (s *memoryStorage) Exists(ctx context.Context, path string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.files[path]
	return ok, nil
}
func (s *memoryStorage) GetURL(ctx context.Context, path string) (string, error) {
	return "/files/" + path, nil
}
func (s *memoryStorage) GetSize(ctx context.Context, path string) (int64, error) { return 0, nil }

func setupTestServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.Server.Env = "development"
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.TTL = 60
	cfg.Email.BaseURL = "http://localhost:4000"
	cfg.Upload.MaxSize = 5 * 1024 * 1024
	cfg.Upload.AllowedTypes = []string{"application/pdf"}
	config.AppConfig = cfg

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.PendingUser{},
		&models.Token{},
		&models.JobAdvert{},
		&models.JobApplication{},
		&models.Restaurant{},
	))

	provider := &recordingEmailProvider{}
	fileStorage := &memoryStorage{files: make(map[string][]byte)}

	userRepo := repositories.NewUserRepository()
	tokenRepo := repositories.NewTokenRepository()
	advertRepo := repositories.NewAdvertRepository()
	applicationRepo := repositories.NewApplicationRepository()
	restaurantRepo := repositories.NewRestaurantRepository()

	authService := services.NewAuthService(userRepo, tokenRepo, provider)
	advertService := services.NewAdvertService(advertRepo)
	applicationService := services.NewApplicationService(applicationRepo, advertRepo, fileStorage, provider)
	restaurantService := services.NewRestaurantService(restaurantRepo)

	baseHandler := handlers.NewBaseHandler(validator.New())
	appHandlers := &handlers.AppHandlers{
		AuthHandler:        handlers.NewAuthHandler(baseHandler, authService),
		AdvertHandler:      handlers.NewAdvertHandler(baseHandler, advertService, applicationService),
		ApplicationHandler: handlers.NewApplicationHandler(baseHandler, applicationService),
		RestaurantHandler:  handlers.NewRestaurantHandler(baseHandler, restaurantService),
		FileHandler:        handlers.NewFileHandler(baseHandler, fileStorage, applicationRepo),
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.DBMiddleware(db))
	routes.RegisterRoutes(router, appHandlers)

	return router, db
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func createUserWithToken(t *testing.T, db *gorm.DB, emailAddr string) (models.User, string) {
	t.Helper()

	user := models.User{Email: emailAddr, PasswordHash: "hash", IsActive: true}
	require.NoError(t, db.Create(&user).Error)

	token, err := auth.GenerateToken(user.ID, user.Email)
	require.NoError(t, err)

	return user, token
}

func TestRegisterVerifyLoginFlow(t *testing.T) {
	router, db := setupTestServer(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email":    "alice@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var pending models.PendingUser
	require.NoError(t, db.First(&pending, "email = ?", "alice@example.com").Error)

	// A wrong code is rejected.
	w = doJSON(t, router, http.MethodPost, "/api/v1/auth/verify-account", "", gin.H{
		"email": "alice@example.com",
		"code":  "definitely-wrong",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// The real code signs the user in.
	w = doJSON(t, router, http.MethodPost, "/api/v1/auth/verify-account", "", gin.H{
		"email": "alice@example.com",
		"code":  pending.VerificationCode,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var verifyResp struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &verifyResp))
	assert.NotEmpty(t, verifyResp.AccessToken)

	w = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    "alice@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Bad credentials stay unauthorized.
	w = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    "alice@example.com",
		"password": "wrongpassword",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdvertEndpoints(t *testing.T) {
	router, db := setupTestServer(t)
	_, ownerToken := createUserWithToken(t, db, "owner@example.com")
	_, intruderToken := createUserWithToken(t, db, "intruder@example.com")

	payload := gin.H{
		"title":            "Backend Engineer",
		"company_name":     "Acme Corp",
		"experience_level": "MID_LEVEL",
		"employment_type":  "FULL_TIME",
		"description":      "We build things.",
		"job_type":         "REMOTE",
		"deadline":         time.Now().Add(30 * 24 * time.Hour).Format(time.RFC3339),
	}

	// Authentication is required to create.
	w := doJSON(t, router, http.MethodPost, "/api/v1/adverts", "", payload)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/adverts", ownerToken, payload)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	// The public listing shows it.
	w = doJSON(t, router, http.MethodGet, "/api/v1/adverts", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Adverts []json.RawMessage `json:"adverts"`
		Total   int64             `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.EqualValues(t, 1, list.Total)

	// /adverts/my must resolve as its own route, not as an advert id.
	w = doJSON(t, router, http.MethodGet, "/api/v1/adverts/my", ownerToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.EqualValues(t, 1, list.Total)

	w = doJSON(t, router, http.MethodGet, "/api/v1/adverts/"+created.ID, "", nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// A non-owner hits a hard 403 on update and delete.
	update := gin.H{}
	for k, v := range payload {
		update[k] = v
	}
	update["title"] = "Hijacked"

	w = doJSON(t, router, http.MethodPut, "/api/v1/adverts/"+created.ID, intruderToken, update)
	assert.Equal(t, http.StatusForbidden, w.Code, w.Body.String())

	w = doJSON(t, router, http.MethodDelete, "/api/v1/adverts/"+created.ID, intruderToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// The owner succeeds.
	w = doJSON(t, router, http.MethodPut, "/api/v1/adverts/"+created.ID, ownerToken, update)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, router, http.MethodDelete, "/api/v1/adverts/"+created.ID, ownerToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestApplyEndpoint(t *testing.T) {
	router, db := setupTestServer(t)
	owner, ownerToken := createUserWithToken(t, db, "owner@example.com")

	advert := models.JobAdvert{
		Title:           "Backend Engineer",
		CompanyName:     "Acme Corp",
		ExperienceLevel: models.ExperienceLevelMid,
		EmploymentType:  models.EmploymentTypeFullTime,
		Description:     "We build things.",
		JobType:         models.LocationTypeRemote,
		IsPublished:     true,
		Deadline:        time.Now().Add(24 * time.Hour),
		CreatedByID:     owner.ID,
	}
	require.NoError(t, db.Create(&advert).Error)

	buildForm := func(t *testing.T) (*bytes.Buffer, string) {
		t.Helper()
		var buf bytes.Buffer
		writer := multipart.NewWriter(&buf)
		require.NoError(t, writer.WriteField("name", "Alice"))
		require.NoError(t, writer.WriteField("email", "alice@example.com"))

		header := make(map[string][]string)
		header["Content-Disposition"] = []string{`form-data; name="resume"; filename="resume.pdf"`}
		header["Content-Type"] = []string{"application/pdf"}
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write([]byte("%PDF-1.4 fake"))
		require.NoError(t, err)

		require.NoError(t, writer.Close())
		return &buf, writer.FormDataContentType()
	}

	body, contentType := buildForm(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/adverts/"+advert.ID+"/apply", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// The same email cannot apply twice.
	body, contentType = buildForm(t)
	req = httptest.NewRequest(http.MethodPost, "/api/v1/adverts/"+advert.ID+"/apply", body)
	req.Header.Set("Content-Type", contentType)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())

	// /applications/my matches the authenticated owner's email, not Alice's.
	w = doJSON(t, router, http.MethodGet, "/api/v1/applications/my", ownerToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var mine struct {
		Applications []json.RawMessage `json:"applications"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &mine))
	assert.Empty(t, mine.Applications)
}
