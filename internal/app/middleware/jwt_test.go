package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Hariokas/PersonRegistrationSystem/internal/domain/models"
	"github.com/Hariokas/PersonRegistrationSystem/internal/domain/services"
	"github.com/Hariokas/PersonRegistrationSystem/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthRouter(t *testing.T) (*gin.Engine, services.InterfaceJWTService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{JWTSecretKey: "test-secret-key", JWTExpirationHours: 1}
	InitAuthMiddleware(cfg)

	router := gin.New()
	authed := router.Group("", Authentication())
	authed.GET("/whoami", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{
			"user_id":  GetUserID(ctx),
			"username": GetUsername(ctx),
			"role":     GetRole(ctx),
		})
	})
	authed.GET("/admin-only", RequireAdmin(), func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router, services.NewJWTService(cfg)
}

func issueToken(t *testing.T, jwtService services.InterfaceJWTService, role models.Role) string {
	t.Helper()
	user := &models.User{Username: "johndoe1", Role: role}
	user.ID = 7
	token, err := jwtService.GenerateToken(user)
	require.NoError(t, err)
	return token
}

func TestAuthenticationMissingToken(t *testing.T) {
	router, _ := setupAuthRouter(t)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestAuthenticationBadToken(t *testing.T) {
	router, _ := setupAuthRouter(t)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	request.Header.Set("Authorization", "Bearer not-a-token")
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestAuthenticationValidToken(t *testing.T) {
	router, jwtService := setupAuthRouter(t)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	request.Header.Set("Authorization", "Bearer "+issueToken(t, jwtService, models.RoleUser))
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"user_id":7`)
	assert.Contains(t, recorder.Body.String(), `"username":"johndoe1"`)
}

func TestRequireAdmin(t *testing.T) {
	router, jwtService := setupAuthRouter(t)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	request.Header.Set("Authorization", "Bearer "+issueToken(t, jwtService, models.RoleUser))
	router.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusForbidden, recorder.Code, "普通用户不能访问管理接口")

	recorder = httptest.NewRecorder()
	request = httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	request.Header.Set("Authorization", "Bearer "+issueToken(t, jwtService, models.RoleAdmin))
	router.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusOK, recorder.Code)
}
