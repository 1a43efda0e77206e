package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"neighbrewhood-backend/internal/repository"
	"neighbrewhood-backend/internal/services"

	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"
)

const brewerQuery = `SELECT id, user_id, latitude, longitude, phone_number, can_claim, created_at, updated_at`

func profileChain(t *testing.T) (http.Handler, pgxmock.PgxPoolIface, string) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	db := &repository.DB{Pool: mock}
	userService := services.NewUserService(repository.NewUserRepository(db), "test-secret")
	brewerService := services.NewBrewerService(repository.NewBrewerRepository(db))

	token, err := userService.GenerateJWT("user-1")
	require.NoError(t, err)

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		brewer := GetBrewer(r.Context())
		require.NotNil(t, brewer)
		require.Equal(t, "user-1", GetUserID(r.Context()))
		w.WriteHeader(http.StatusOK)
	})
	chain := AuthMiddleware(userService)(ProfileRequired(brewerService)(inner))
	return chain, mock, token
}

func TestProfileRequired_NoProfile(t *testing.T) {
	chain, mock, token := profileChain(t)

	mock.ExpectQuery(brewerQuery).
		WithArgs("user-1").
		WillReturnRows(pgxmock.NewRows([]string{"id"}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/swaps", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	chain.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "You must create a profile")
}

func TestProfileRequired_WithProfile(t *testing.T) {
	chain, mock, token := profileChain(t)

	now := time.Now()
	mock.ExpectQuery(brewerQuery).
		WithArgs("user-1").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "user_id", "latitude", "longitude", "phone_number", "can_claim", "created_at", "updated_at",
		}).AddRow("brewer-1", "user-1", 40.0, -105.0, "+15551234567", true, now, now))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/swaps", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	chain.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	db := &repository.DB{Pool: mock}
	userService := services.NewUserService(repository.NewUserRepository(db), "test-secret")

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := AuthMiddleware(userService)(inner)

	// Missing header
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// Malformed header
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token abc")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// Bad token
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
