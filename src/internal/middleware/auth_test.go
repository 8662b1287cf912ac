package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret, userID string, expiresIn time.Duration) string {
	t.Helper()

	now := time.Now()
	claims := Claims{
		UserID: userID,
		Email:  "admin@example.com",
		Role:   "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func identifyRouter(m *AuthMiddleware) (*gin.Engine, *[]*primitive.ObjectID) {
	gin.SetMode(gin.TestMode)

	var actors []*primitive.ObjectID
	router := gin.New()
	router.GET("/probe", m.Identify(), func(c *gin.Context) {
		actors = append(actors, ActorFromContext(c))
		c.Status(http.StatusOK)
	})
	return router, &actors
}

func TestIdentifyAllowsAnonymousRequests(t *testing.T) {
	router, actors := identifyRouter(NewAuthMiddleware(testSecret))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/probe", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, *actors, 1)
	assert.Nil(t, (*actors)[0])
}

func TestIdentifyResolvesActorFromValidToken(t *testing.T) {
	router, actors := identifyRouter(NewAuthMiddleware(testSecret))

	userID := primitive.NewObjectID()
	token := signToken(t, testSecret, userID.Hex(), time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, *actors, 1)
	require.NotNil(t, (*actors)[0])
	assert.Equal(t, userID, *(*actors)[0])
}

func TestIdentifyRejectsInvalidToken(t *testing.T) {
	router, actors := identifyRouter(NewAuthMiddleware(testSecret))

	token := signToken(t, "wrong-secret", primitive.NewObjectID().Hex(), time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, *actors)
}

func TestIdentifyRejectsExpiredToken(t *testing.T) {
	router, actors := identifyRouter(NewAuthMiddleware(testSecret))

	token := signToken(t, testSecret, primitive.NewObjectID().Hex(), -time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, *actors)
}

func TestRequireAuthRejectsAnonymousRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewAuthMiddleware(testSecret)

	router := gin.New()
	router.GET("/secure", m.Identify(), m.RequireAuth(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/secure", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := signToken(t, testSecret, primitive.NewObjectID().Hex(), time.Hour)
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
