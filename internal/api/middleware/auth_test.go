package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/inest/inest-backend/internal/core/domain"
)

type stubVerifier map[string]domain.Identity

func (s stubVerifier) Verify(token string) (*domain.Identity, error) {
	id, ok := s[token]
	if !ok {
		return nil, domain.ErrInvalidToken
	}
	return &id, nil
}

var verifier = stubVerifier{
	"good-token": {UserID: "user-1", Role: domain.RoleAdmin},
}

func newContext(authHeader string) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	return e, e.NewContext(req, rec), rec
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	_, c, rec := newContext("Bearer good-token")

	called := false
	handler := Auth(verifier)(func(c echo.Context) error {
		called = true
		id, ok := IdentityFrom(c)
		if !ok {
			t.Fatalf("identity not set")
		}
		if id.UserID != "user-1" || id.Role != domain.RoleAdmin {
			t.Fatalf("unexpected identity %+v", id)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	for name, header := range map[string]string{
		"missing header": "",
		"wrong scheme":   "Token good-token",
		"empty token":    "Bearer ",
		"invalid token":  "Bearer not-a-token",
	} {
		t.Run(name, func(t *testing.T) {
			e, c, rec := newContext(header)

			handler := Auth(verifier)(func(c echo.Context) error {
				t.Fatalf("should not reach next")
				return nil
			})

			if err := handler(c); err != nil {
				e.HTTPErrorHandler(err, c)
			}
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	for name, tc := range map[string]struct {
		header       string
		wantIdentity bool
	}{
		"valid token":   {"Bearer good-token", true},
		"no header":     {"", false},
		"invalid token": {"Bearer forged", false},
		"wrong scheme":  {"Basic abc", false},
	} {
		t.Run(name, func(t *testing.T) {
			_, c, rec := newContext(tc.header)

			called := false
			handler := OptionalAuth(verifier)(func(c echo.Context) error {
				called = true
				_, ok := IdentityFrom(c)
				if ok != tc.wantIdentity {
					t.Fatalf("identity present = %v, want %v", ok, tc.wantIdentity)
				}
				return c.NoContent(http.StatusOK)
			})

			if err := handler(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if !called || rec.Code != http.StatusOK {
				t.Fatalf("expected request to proceed, called=%v code=%d", called, rec.Code)
			}
		})
	}
}
