package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/tivit/users-api/internal/api/middleware"
	"github.com/tivit/users-api/internal/core/domain"
)

type stubGateway struct {
	getFn func(ctx context.Context, path string) ([]byte, error)
}

func (s *stubGateway) Get(ctx context.Context, path string) ([]byte, error) {
	return s.getFn(ctx, path)
}

func gatewayContext(t *testing.T, principal *domain.Principal) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/user", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if principal != nil {
		c.Set(middleware.PrincipalKey, *principal)
	}
	return c, rec
}

func TestGatewayHandler_User_Success(t *testing.T) {
	stub := &stubGateway{
		getFn: func(ctx context.Context, path string) ([]byte, error) {
			if path != "/user" {
				t.Fatalf("unexpected path: %s", path)
			}
			return []byte(`{"message":"hello user"}`), nil
		},
	}
	h := NewGatewayHandler(stub, zerolog.Nop())

	c, rec := gatewayContext(t, &domain.Principal{Username: "user", Role: domain.RoleUser})
	if err := h.User(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != `{"message":"hello user"}` {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestGatewayHandler_Admin_PathRouting(t *testing.T) {
	var requested string
	stub := &stubGateway{
		getFn: func(ctx context.Context, path string) ([]byte, error) {
			requested = path
			return []byte(`{}`), nil
		},
	}
	h := NewGatewayHandler(stub, zerolog.Nop())

	c, _ := gatewayContext(t, &domain.Principal{Username: "admin", Role: domain.RoleAdmin})
	if err := h.Admin(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if requested != "/admin" {
		t.Fatalf("expected /admin, got %s", requested)
	}
}

func TestGatewayHandler_DownstreamFailure(t *testing.T) {
	stub := &stubGateway{
		getFn: func(ctx context.Context, path string) ([]byte, error) {
			return nil, errors.New("connection refused")
		},
	}
	h := NewGatewayHandler(stub, zerolog.Nop())

	c, rec := gatewayContext(t, &domain.Principal{Username: "user", Role: domain.RoleUser})
	_ = h.User(c)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
}

func TestGatewayHandler_MissingPrincipal(t *testing.T) {
	stub := &stubGateway{
		getFn: func(ctx context.Context, path string) ([]byte, error) {
			t.Fatalf("gateway should not be called")
			return nil, nil
		},
	}
	h := NewGatewayHandler(stub, zerolog.Nop())

	c, rec := gatewayContext(t, nil)
	e := c.Echo()
	if err := h.User(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
