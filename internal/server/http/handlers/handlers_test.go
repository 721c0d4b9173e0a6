package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/quickmart/internal/domain/errors"
	"github.com/polkiloo/quickmart/internal/domain/model"
	pkgAuth "github.com/polkiloo/quickmart/internal/pkg/auth"
	"github.com/polkiloo/quickmart/internal/presenter"
	"github.com/polkiloo/quickmart/internal/server/http/dto"
	"github.com/polkiloo/quickmart/internal/server/http/middleware"
	testhelpers "github.com/polkiloo/quickmart/internal/test"
	"github.com/polkiloo/quickmart/internal/usecase"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var (
	customer = model.Principal{UserID: 7, Role: model.RoleCustomer}
	operator = model.Principal{UserID: 1, Role: model.RoleAdmin}
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func as(p model.Principal) func(*gin.Context) {
	return func(c *gin.Context) {
		c.Set(middleware.PrincipalContextKey, p)
	}
}

func performRequest(t *testing.T, method, path string, handler gin.HandlerFunc, setup func(*gin.Context), body []byte) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	route := path
	if strings.HasPrefix(path, "/orders/") {
		route = "/orders/:id"
	}
	router.Handle(method, route, func(c *gin.Context) {
		if setup != nil {
			setup(c)
		}
		handler(c)
	})

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, resp *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", resp.Body.String(), err)
	}
	return body
}

func TestCurrentPrincipal(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if _, ok := CurrentPrincipal(c); ok {
		t.Fatal("expected no principal when not set")
	}

	c.Set(middleware.PrincipalContextKey, operator)
	got, ok := CurrentPrincipal(c)
	if !ok || got != operator {
		t.Fatalf("expected operator principal, got %+v", got)
	}

	c.Set(middleware.PrincipalContextKey, "garbage")
	if _, ok := CurrentPrincipal(c); ok {
		t.Fatal("expected unexpected value type to be rejected")
	}
}

func TestRespondError(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("%w: items are empty", domainErrors.ErrMalformedOrder), http.StatusBadRequest},
		{domainErrors.ErrMissingTotal, http.StatusBadRequest},
		{domainErrors.ErrMissingDeliveryTarget, http.StatusBadRequest},
		{domainErrors.ErrMalformedUpdate, http.StatusBadRequest},
		{domainErrors.ErrUnauthorized, http.StatusUnauthorized},
		{domainErrors.ErrForbidden, http.StatusForbidden},
		{domainErrors.ErrNotFound, http.StatusNotFound},
		{domainErrors.ErrAlreadyExists, http.StatusConflict},
		{fmt.Errorf("%w: %w", domainErrors.ErrUnexpectedStore, errors.New("reset")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			resp := performRequest(t, http.MethodGet, "/orders/abc", func(c *gin.Context) {
				respondError(c, discardLogger(), tt.err)
			}, nil, nil)
			if resp.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, resp.Code)
			}
			if body := decodeEnvelope(t, resp); body["success"] != false {
				t.Fatalf("expected failure envelope, got %v", body)
			}
		})
	}
}

func TestRespondErrorIncludesValidationDetail(t *testing.T) {
	err := fmt.Errorf("%w: unsupported payment method %q", domainErrors.ErrMalformedOrder, "barter")
	resp := performRequest(t, http.MethodGet, "/orders/abc", func(c *gin.Context) {
		respondError(c, discardLogger(), err)
	}, nil, nil)
	var env dto.Envelope
	if err := json.Unmarshal(resp.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(env.Errors) != 1 || env.Errors[0] != err.Error() {
		t.Fatalf("expected validation detail, got %+v", env.Errors)
	}
}

func TestAuthHandlerRegister(t *testing.T) {
	name := testhelpers.RandomASCIIString(5, 10)
	email := testhelpers.RandomEmail()
	password := testhelpers.RandomASCIIString(16, 32)
	body, _ := json.Marshal(dto.RegisterRequest{Name: name, Email: email, Password: password})
	handler := NewAuthHandler(testhelpers.QuickmartFacadeStub{RegisterFn: func(ctx context.Context, in usecase.RegisterInput) (*model.User, string, error) {
		if in.Name != name || in.Email != email || in.Password != password {
			t.Fatalf("unexpected input passed to facade: %+v", in)
		}
		return &model.User{ID: 3, Name: name, Email: email, Role: model.RoleCustomer}, "session-token", nil
	}}, discardLogger())

	resp := performRequest(t, http.MethodPost, "/register", handler.Register, nil, body)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}
	if got := resp.Header().Get("Authorization"); got != "Bearer session-token" {
		t.Fatalf("unexpected authorization header %q", got)
	}

	var env struct {
		Success bool             `json:"success"`
		Data    dto.AuthResponse `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !env.Success || env.Data.Token != "session-token" || env.Data.User.ID != 3 || env.Data.User.Role != "customer" {
		t.Fatalf("unexpected response %+v", env)
	}

	result := resp.Result()
	t.Cleanup(func() {
		_ = result.Body.Close()
	})
	found := false
	for _, cookie := range result.Cookies() {
		if cookie.Name == "quickmart_token" && cookie.Value == "session-token" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected auth cookie named quickmart_token")
	}
}

func TestAuthHandlerRegisterFailures(t *testing.T) {
	valid := []byte(`{"name":"a","email":"a@b.c","password":"b"}`)
	failWith := func(err error) testhelpers.QuickmartFacadeStub {
		return testhelpers.QuickmartFacadeStub{RegisterFn: func(context.Context, usecase.RegisterInput) (*model.User, string, error) {
			return nil, "", err
		}}
	}
	tests := []struct {
		name   string
		facade testhelpers.QuickmartFacadeStub
		body   []byte
		status int
	}{
		{name: "bad json", body: []byte("not json"), status: http.StatusBadRequest},
		{name: "invalid credentials", body: []byte(`{}`), facade: failWith(domainErrors.ErrInvalidCredentials), status: http.StatusBadRequest},
		{name: "password too long", body: valid, facade: failWith(pkgAuth.ErrPasswordTooLong), status: http.StatusBadRequest},
		{name: "already exists", body: valid, facade: failWith(domainErrors.ErrAlreadyExists), status: http.StatusConflict},
		{name: "internal", body: valid, facade: failWith(errors.New("boom")), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPost, "/register", NewAuthHandler(tt.facade, discardLogger()).Register, nil, tt.body)
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestAuthHandlerLogin(t *testing.T) {
	failWith := func(err error) testhelpers.QuickmartFacadeStub {
		return testhelpers.QuickmartFacadeStub{AuthenticateFn: func(context.Context, string, string) (*model.User, string, error) {
			return nil, "", err
		}}
	}
	tests := []struct {
		name   string
		facade testhelpers.QuickmartFacadeStub
		body   []byte
		status int
	}{
		{name: "ok", body: []byte(`{"email":"a@b.c","password":"b"}`), status: http.StatusOK},
		{name: "bad json", body: []byte("not json"), status: http.StatusBadRequest},
		{name: "invalid", body: []byte(`{"email":"a@b.c","password":"b"}`), facade: failWith(domainErrors.ErrInvalidCredentials), status: http.StatusUnauthorized},
		{name: "internal", body: []byte(`{"email":"a@b.c","password":"b"}`), facade: failWith(errors.New("boom")), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPost, "/login", NewAuthHandler(tt.facade, discardLogger()).Login, nil, tt.body)
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
			if tt.status == http.StatusOK && resp.Header().Get("Authorization") == "" {
				t.Fatal("expected auth header to be set")
			}
		})
	}
}

func TestAuthHandlerProfile(t *testing.T) {
	handler := NewAuthHandler(testhelpers.QuickmartFacadeStub{}, discardLogger())
	resp := performRequest(t, http.MethodGet, "/profile", handler.Profile, as(customer), nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodGet, "/profile", handler.Profile, nil, nil)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without principal, got %d", resp.Code)
	}

	missing := NewAuthHandler(testhelpers.QuickmartFacadeStub{ProfileFn: func(context.Context, model.Principal) (*model.User, error) {
		return nil, domainErrors.ErrNotFound
	}}, discardLogger())
	resp = performRequest(t, http.MethodGet, "/profile", missing.Profile, as(customer), nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for deleted account, got %d", resp.Code)
	}
}

func TestOrderHandlerCreate(t *testing.T) {
	body := []byte(`{"items":[{"productId":"p1","price":2.5,"quantity":2}],"paymentMethod":"cash","totalAmount":5,"location":{"lat":1,"lng":2}}`)
	var got usecase.CreateOrderInput
	handler := NewOrderHandler(testhelpers.QuickmartFacadeStub{PlaceFn: func(_ context.Context, p model.Principal, in usecase.CreateOrderInput) (presenter.OwnerOrder, error) {
		if p != customer {
			t.Fatalf("unexpected principal %+v", p)
		}
		got = in
		return presenter.OwnerOrder{ID: "o1", LegacyID: "o1", Status: "placed", Progress: 20}, nil
	}}, discardLogger())

	resp := performRequest(t, http.MethodPost, "/orders", handler.Create, as(customer), body)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	if len(got.Items) != 1 || got.Items[0].ProductRef != "p1" || got.Location == nil {
		t.Fatalf("request not mapped: %+v", got)
	}
	env := decodeEnvelope(t, resp)
	if env["message"] != "Order created successfully" {
		t.Fatalf("unexpected message %v", env["message"])
	}
	order := env["data"].(map[string]any)["order"].(map[string]any)
	if order["_id"] != "o1" || order["progress"] != float64(20) {
		t.Fatalf("unexpected order payload %v", order)
	}
}

func TestOrderHandlerCreateFailures(t *testing.T) {
	failWith := func(err error) testhelpers.QuickmartFacadeStub {
		return testhelpers.QuickmartFacadeStub{PlaceFn: func(context.Context, model.Principal, usecase.CreateOrderInput) (presenter.OwnerOrder, error) {
			return presenter.OwnerOrder{}, err
		}}
	}
	tests := []struct {
		name   string
		facade testhelpers.QuickmartFacadeStub
		setup  func(*gin.Context)
		body   []byte
		status int
	}{
		{name: "no principal", body: []byte(`{}`), status: http.StatusUnauthorized},
		{name: "bad json", setup: as(customer), body: []byte("{"), status: http.StatusBadRequest},
		{name: "missing total", setup: as(customer), body: []byte(`{}`), facade: failWith(domainErrors.ErrMissingTotal), status: http.StatusBadRequest},
		{name: "store failure", setup: as(customer), body: []byte(`{}`), facade: failWith(domainErrors.ErrUnexpectedStore), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPost, "/orders", NewOrderHandler(tt.facade, discardLogger()).Create, tt.setup, tt.body)
			if resp.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestOrderHandlerListings(t *testing.T) {
	var mineClass, allClass model.StatusClass
	facade := testhelpers.QuickmartFacadeStub{
		MyOrdersFn: func(_ context.Context, _ model.Principal, class model.StatusClass) ([]presenter.OwnerOrder, error) {
			mineClass = class
			return []presenter.OwnerOrder{{ID: "a"}, {ID: "b"}}, nil
		},
		AllOrdersFn: func(_ context.Context, _ model.Principal, class model.StatusClass) ([]presenter.AdminOrder, error) {
			allClass = class
			return nil, nil
		},
	}
	handler := NewOrderHandler(facade, discardLogger())

	router := gin.New()
	router.GET("/mine", as(customer), handler.MyOrders)
	router.GET("/all", as(operator), handler.List)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/mine?status=completed", nil))
	if resp.Code != http.StatusOK || mineClass != model.StatusClassCompleted {
		t.Fatalf("unexpected result %d class %q", resp.Code, mineClass)
	}
	env := decodeEnvelope(t, resp)
	if env["count"] != float64(2) {
		t.Fatalf("expected count 2, got %v", env["count"])
	}

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/all?status=whatever", nil))
	if resp.Code != http.StatusOK || allClass != model.StatusClassAny {
		t.Fatalf("unexpected result %d class %q", resp.Code, allClass)
	}
	if env := decodeEnvelope(t, resp); env["count"] != float64(0) {
		t.Fatalf("expected count 0, got %v", env["count"])
	}
}

func TestOrderHandlerListForbidden(t *testing.T) {
	handler := NewOrderHandler(testhelpers.QuickmartFacadeStub{AllOrdersFn: func(context.Context, model.Principal, model.StatusClass) ([]presenter.AdminOrder, error) {
		return nil, domainErrors.ErrForbidden
	}}, discardLogger())
	resp := performRequest(t, http.MethodGet, "/orders", handler.List, as(customer), nil)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.Code)
	}
}

func TestOrderHandlerGetPicksView(t *testing.T) {
	var ownerCalls, adminCalls int
	facade := testhelpers.QuickmartFacadeStub{
		OwnerOrderFn: func(_ context.Context, _ model.Principal, id string) (presenter.OwnerOrder, error) {
			ownerCalls++
			return presenter.OwnerOrder{ID: id}, nil
		},
		AdminOrderFn: func(_ context.Context, _ model.Principal, id string) (presenter.AdminOrder, error) {
			adminCalls++
			return presenter.AdminOrder{ID: id}, nil
		},
	}
	handler := NewOrderHandler(facade, discardLogger())

	if resp := performRequest(t, http.MethodGet, "/orders/abc", handler.Get, as(customer), nil); resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if resp := performRequest(t, http.MethodGet, "/orders/abc", handler.Get, as(operator), nil); resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if ownerCalls != 1 || adminCalls != 1 {
		t.Fatalf("expected one call per view, got owner=%d admin=%d", ownerCalls, adminCalls)
	}
}

func TestOrderHandlerGetFailures(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{domainErrors.ErrNotFound, http.StatusNotFound},
		{domainErrors.ErrForbidden, http.StatusForbidden},
	}
	for _, tt := range tests {
		handler := NewOrderHandler(testhelpers.QuickmartFacadeStub{OwnerOrderFn: func(context.Context, model.Principal, string) (presenter.OwnerOrder, error) {
			return presenter.OwnerOrder{}, tt.err
		}}, discardLogger())
		resp := performRequest(t, http.MethodGet, "/orders/abc", handler.Get, as(customer), nil)
		if resp.Code != tt.status {
			t.Fatalf("expected %d for %v, got %d", tt.status, tt.err, resp.Code)
		}
	}
}

func TestOrderHandlerUpdateStatus(t *testing.T) {
	var got usecase.StatusUpdate
	handler := NewOrderHandler(testhelpers.QuickmartFacadeStub{UpdateStatusFn: func(_ context.Context, _ model.Principal, id string, in usecase.StatusUpdate) (presenter.AdminOrder, error) {
		if id != "abc" {
			t.Fatalf("unexpected id %q", id)
		}
		got = in
		return presenter.AdminOrder{ID: id, OrderStatus: in.OrderStatus}, nil
	}}, discardLogger())

	resp := performRequest(t, http.MethodPut, "/orders/abc", handler.UpdateStatus, as(operator), []byte(`{"status":"delivered","driverName":"Sam"}`))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if got.OrderStatus != "delivered" || got.DriverName == nil || *got.DriverName != "Sam" {
		t.Fatalf("unexpected update %+v", got)
	}
	if env := decodeEnvelope(t, resp); env["message"] != "Order status updated successfully" {
		t.Fatalf("unexpected message %v", env["message"])
	}

	failing := NewOrderHandler(testhelpers.QuickmartFacadeStub{UpdateStatusFn: func(context.Context, model.Principal, string, usecase.StatusUpdate) (presenter.AdminOrder, error) {
		return presenter.AdminOrder{}, fmt.Errorf("%w: order status is empty", domainErrors.ErrMalformedUpdate)
	}}, discardLogger())
	if resp := performRequest(t, http.MethodPut, "/orders/abc", failing.UpdateStatus, as(operator), []byte(`{}`)); resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	if resp := performRequest(t, http.MethodPut, "/orders/abc", failing.UpdateStatus, as(operator), []byte(`[`)); resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for broken json, got %d", resp.Code)
	}
}

func TestOrderHandlerUpdate(t *testing.T) {
	var got usecase.OrderUpdate
	handler := NewOrderHandler(testhelpers.QuickmartFacadeStub{UpdateFn: func(_ context.Context, _ model.Principal, id string, in usecase.OrderUpdate) (presenter.AdminOrder, error) {
		got = in
		return presenter.AdminOrder{ID: id}, nil
	}}, discardLogger())

	resp := performRequest(t, http.MethodPut, "/orders/abc", handler.Update, as(operator), []byte(`{"paymentStatus":"paid"}`))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if got.PaymentStatus == nil || *got.PaymentStatus != "paid" || got.OrderStatus != nil {
		t.Fatalf("unexpected update %+v", got)
	}
	if env := decodeEnvelope(t, resp); env["message"] != "Order updated successfully" {
		t.Fatalf("unexpected message %v", env["message"])
	}
}

func TestOrderHandlerDelete(t *testing.T) {
	deleted := ""
	handler := NewOrderHandler(testhelpers.QuickmartFacadeStub{DeleteFn: func(_ context.Context, _ model.Principal, id string) error {
		if id == "gone" {
			return domainErrors.ErrNotFound
		}
		deleted = id
		return nil
	}}, discardLogger())

	resp := performRequest(t, http.MethodDelete, "/orders/abc", handler.Delete, as(operator), nil)
	if resp.Code != http.StatusOK || deleted != "abc" {
		t.Fatalf("expected delete of abc, got %d %q", resp.Code, deleted)
	}

	resp = performRequest(t, http.MethodDelete, "/orders/gone", handler.Delete, as(operator), nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestHealthHandler(t *testing.T) {
	handler := NewHealthHandler(testhelpers.QuickmartFacadeStub{}, discardLogger())
	resp := performRequest(t, http.MethodGet, "/health", handler.Check, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if env := decodeEnvelope(t, resp); env["message"] != "Quickmart API is running" || env["timestamp"] == nil {
		t.Fatalf("unexpected body %v", env)
	}

	down := NewHealthHandler(testhelpers.QuickmartFacadeStub{HealthFn: func(context.Context) error {
		return errors.New("connection refused")
	}}, discardLogger())
	resp = performRequest(t, http.MethodGet, "/health", down.Check, nil, nil)
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.Code)
	}
}
