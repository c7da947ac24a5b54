package httpserver

import (
	"net/http"
	"strings"
	"testing"

	"storefront/internal/domain"
)

func TestCheckoutRequiresUser(t *testing.T) {
	f := newFixture(t)
	rec := f.do(http.MethodPost, "/api/v1/orders/checkout", `{"phone":"1","address":"x"}`, guestHeader, "guest-token")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestCheckoutCreated(t *testing.T) {
	f := newFixture(t)
	rec := f.do(http.MethodPost, "/api/v1/orders/checkout", `{"phone":"555","address":"Calle 1"}`, bearer("cust")...)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"handoffUrl":"https://wa.me/1?text=x"`) || !strings.Contains(body, `"total":"46.78"`) {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestCheckoutValidationError(t *testing.T) {
	f := newFixture(t)
	f.orders.err = domain.ErrInvalidInput
	rec := f.do(http.MethodPost, "/api/v1/orders/checkout", `{}`, bearer("cust")...)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestGetOrderIncludesProgress(t *testing.T) {
	f := newFixture(t)
	rec := f.do(http.MethodGet, "/api/v1/orders/ord-1", "", bearer("cust")...)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{`"statusText":"Enviado"`, `"statusColor":"success"`, `"kind":"step"`, `"label":"Enviado"`} {
		if !strings.Contains(body, want) {
			t.Fatalf("missing %s in %s", want, body)
		}
	}
}

func TestGetOrderNotFound(t *testing.T) {
	f := newFixture(t)
	f.orders.err = domain.ErrNotFound
	if rec := f.do(http.MethodGet, "/api/v1/orders/other", "", bearer("cust")...); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestListMyOrdersForwardsFilter(t *testing.T) {
	f := newFixture(t)
	rec := f.do(http.MethodGet, "/api/v1/orders?status=delivered", "", bearer("cust")...)
	if rec.Code != http.StatusOK || f.orders.filtered != "delivered" {
		t.Fatalf("unexpected response %d filter=%q", rec.Code, f.orders.filtered)
	}
}

func TestOrderStats(t *testing.T) {
	f := newFixture(t)
	rec := f.do(http.MethodGet, "/api/v1/orders/stats", "", bearer("cust")...)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"open":2`) {
		t.Fatalf("unexpected stats %d %s", rec.Code, rec.Body.String())
	}
}

func TestAdminUpdateOrderStatus(t *testing.T) {
	f := newFixture(t)
	rec := f.do(http.MethodPatch, "/api/v1/admin/orders/ord-1/status", `{"status":"cancelled"}`, bearer("admin")...)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if f.orders.status != "cancelled" || !strings.Contains(rec.Body.String(), `"kind":"cancelled"`) {
		t.Fatalf("unexpected update %q %s", f.orders.status, rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), `"steps"`) {
		t.Fatalf("cancelled orders carry no steps: %s", rec.Body.String())
	}
}
