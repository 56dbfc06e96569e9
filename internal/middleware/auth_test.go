package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/MorseWayne/shop_front/internal/domain"
	"github.com/MorseWayne/shop_front/internal/service"
)

// MockJWTService 是用于测试的JWT服务模拟实现
type MockJWTService struct {
	validTokens   map[string]*service.Claims
	expiredTokens map[string]bool
}

func NewMockJWTService() *MockJWTService {
	return &MockJWTService{
		validTokens:   make(map[string]*service.Claims),
		expiredTokens: make(map[string]bool),
	}
}

func (m *MockJWTService) GenerateAccessToken(user *domain.User) (string, error) {
	token := "mock_access_token_" + user.Username
	m.validTokens[token] = &service.Claims{
		UserID:   user.ID,
		Username: user.Username,
		Type:     "access",
	}
	return token, nil
}

func (m *MockJWTService) ValidateAccessToken(tokenString string) (*service.Claims, error) {
	if m.expiredTokens[tokenString] {
		return nil, service.ErrTokenExpired
	}

	claims, exists := m.validTokens[tokenString]
	if !exists {
		return nil, service.ErrInvalidToken
	}
	return claims, nil
}

func (m *MockJWTService) AddExpiredToken(token string) {
	m.expiredTokens[token] = true
}

func createTestHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := UserFromContext(r.Context())
		if user != nil {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("authenticated"))
		} else {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("not authenticated"))
		}
	}
}

func TestAuthMiddleware_Success(t *testing.T) {
	mockJWT := NewMockJWTService()
	logger := zap.NewNop()

	user := &domain.User{ID: "64f1c0ffee01", Username: "testuser"}
	token, err := mockJWT.GenerateAccessToken(user)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	handler := AuthMiddleware(mockJWT, logger)(createTestHandler())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d, body=%s", rec.Code, http.StatusOK, rec.Body.String())
	}
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	mockJWT := NewMockJWTService()
	logger := zap.NewNop()

	user := &domain.User{ID: "64f1c0ffee01", Username: "testuser"}
	token, _ := mockJWT.GenerateAccessToken(user)
	expired := "expired_token"
	mockJWT.AddExpiredToken(expired)

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "wrong scheme", header: "Basic " + token},
		{name: "empty token", header: "Bearer "},
		{name: "unknown token", header: "Bearer nonsense"},
		{name: "expired token", header: "Bearer " + expired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := AuthMiddleware(mockJWT, logger)(createTestHandler())

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
			}
		})
	}
}

func TestUserFromContext(t *testing.T) {
	if user := UserFromContext(context.Background()); user != nil {
		t.Errorf("UserFromContext(empty) = %v, want nil", user)
	}

	want := &domain.User{ID: "u1", Username: "alice"}
	ctx := ContextWithUser(context.Background(), want)
	if got := UserFromContext(ctx); got != want {
		t.Errorf("UserFromContext() = %v, want %v", got, want)
	}
}
