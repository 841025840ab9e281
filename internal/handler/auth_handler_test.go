package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Om-Rajpure/Advance-Timetable-Generator/internal/dto"
	"github.com/Om-Rajpure/Advance-Timetable-Generator/internal/middleware"
	"github.com/Om-Rajpure/Advance-Timetable-Generator/internal/models"
	"github.com/Om-Rajpure/Advance-Timetable-Generator/internal/service"
)

type authRepoMock struct {
	usersByEmail map[string]*models.User
	created      []*models.User
}

func newAuthRepoMock() *authRepoMock {
	return &authRepoMock{usersByEmail: make(map[string]*models.User)}
}

func (m *authRepoMock) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if user, ok := m.usersByEmail[email]; ok {
		return user, nil
	}
	return nil, sql.ErrNoRows
}

func (m *authRepoMock) Create(ctx context.Context, user *models.User) error {
	m.created = append(m.created, user)
	m.usersByEmail[user.Email] = user
	return nil
}

func (m *authRepoMock) UpdateLastLogin(ctx context.Context, id string, ts time.Time) error {
	return nil
}

func testAuthService(repo *authRepoMock) *service.AuthService {
	return service.NewAuthService(repo, nil, nil, service.AuthConfig{
		Secret:     "handler-test-secret",
		Expiration: time.Hour,
		Issuer:     "timetable-api",
	})
}

func seedUser(t *testing.T, repo *authRepoMock, email, password string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	repo.usersByEmail[email] = &models.User{
		ID:           "user-1",
		Email:        email,
		PasswordHash: string(hash),
		FullName:     "Test Coordinator",
		Role:         models.RoleCoordinator,
		Active:       true,
	}
}

func TestAuthHandlerLoginIssuesToken(t *testing.T) {
	repo := newAuthRepoMock()
	seedUser(t, repo, "coord@college.edu", "sup3rsecret")
	handler := NewAuthHandler(testAuthService(repo))
	w := httptest.NewRecorder()
	c := jsonContext(t, w, http.MethodPost, "/auth/login", dto.LoginRequest{
		Email:    "coord@college.edu",
		Password: "sup3rsecret",
	})

	handler.Login(c)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data dto.AuthResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.NotEmpty(t, envelope.Data.AccessToken)
	assert.Equal(t, "Bearer", envelope.Data.TokenType)
	require.NotNil(t, envelope.Data.User)
	assert.Equal(t, models.RoleCoordinator, envelope.Data.User.Role)
}

func TestAuthHandlerLoginWrongPassword(t *testing.T) {
	repo := newAuthRepoMock()
	seedUser(t, repo, "coord@college.edu", "sup3rsecret")
	handler := NewAuthHandler(testAuthService(repo))
	w := httptest.NewRecorder()
	c := jsonContext(t, w, http.MethodPost, "/auth/login", dto.LoginRequest{
		Email:    "coord@college.edu",
		Password: "wrongwrong",
	})

	handler.Login(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandlerLoginRejectsInvalidBody(t *testing.T) {
	handler := NewAuthHandler(testAuthService(newAuthRepoMock()))
	w := httptest.NewRecorder()
	c := jsonContext(t, w, http.MethodPost, "/auth/login", []byte(`garbage`))

	handler.Login(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandlerRegisterCreatesViewer(t *testing.T) {
	repo := newAuthRepoMock()
	handler := NewAuthHandler(testAuthService(repo))
	w := httptest.NewRecorder()
	c := jsonContext(t, w, http.MethodPost, "/auth/register", dto.RegisterRequest{
		Email:    "new@college.edu",
		Password: "longenough",
		FullName: "New User",
	})

	handler.Register(c)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, repo.created, 1)
	assert.Equal(t, models.RoleViewer, repo.created[0].Role)
}

func TestAuthHandlerMeReturnsClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewAuthHandler(testAuthService(newAuthRepoMock()))
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/auth/me", nil)
	c.Request = req
	c.Set(middleware.ContextUserKey, &models.TokenClaims{
		UserID: "user-1",
		Email:  "coord@college.edu",
		Role:   models.RoleCoordinator,
	})

	handler.Me(c)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data models.TokenClaims `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, "user-1", envelope.Data.UserID)
}

func TestAuthHandlerMeUnauthenticated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewAuthHandler(testAuthService(newAuthRepoMock()))
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/auth/me", nil)
	c.Request = req

	handler.Me(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
