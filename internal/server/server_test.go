package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/arzan03/ElectricTools/internal/models"
	"github.com/arzan03/ElectricTools/internal/repository/memory"
	"github.com/arzan03/ElectricTools/internal/server"
	"github.com/arzan03/ElectricTools/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeGateway struct {
	amounts []int64
}

func (g *fakeGateway) CreateIntent(_ context.Context, amount int64, _ string) (string, error) {
	g.amounts = append(g.amounts, amount)
	return "pi_test_secret", nil
}

type testServer struct {
	app      *fiber.App
	users    *services.UserService
	payments *memory.PaymentStore
	gateway  *fakeGateway
}

func newTestServer(t *testing.T, anonymousReviews bool) *testServer {
	t.Helper()

	userStore := memory.NewUserStore()
	toolStore := memory.NewToolStore()
	orderStore := memory.NewOrderStore()
	paymentStore := memory.NewPaymentStore()
	gw := &fakeGateway{}

	tokens := services.NewTokenService("test-secret", time.Hour)
	users := services.NewUserService(userStore, tokens)
	app := server.New(server.Deps{
		Tokens:                tokens,
		Users:                 users,
		Tools:                 services.NewToolService(toolStore, nil, nil),
		Orders:                services.NewOrderService(orderStore, paymentStore, memory.Transactor{}),
		Payments:              services.NewPaymentService(gw, paymentStore, "usd"),
		Reviews:               services.NewReviewService(memory.NewReviewStore()),
		Stats:                 services.NewStatsService(userStore, toolStore, orderStore, paymentStore),
		ReviewAnonymousCreate: anonymousReviews,
	})
	return &testServer{app: app, users: users, payments: paymentStore, gateway: gw}
}

func (s *testServer) do(t *testing.T, method, path string, body any, token string) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func (s *testServer) signIn(t *testing.T, email string) (models.User, string) {
	t.Helper()

	status, data := s.do(t, http.MethodPut, "/user/email/"+url.PathEscape(email), map[string]string{"name": "Tester"}, "")
	require.Equal(t, http.StatusOK, status, string(data))

	var out struct {
		Result models.User `json:"result"`
		Token  string      `json:"token"`
	}
	require.NoError(t, json.Unmarshal(data, &out))
	require.NotEmpty(t, out.Token)
	return out.Result, out.Token
}

func (s *testServer) admin(t *testing.T, email string) string {
	t.Helper()
	_, token := s.signIn(t, email)
	_, err := s.users.PromoteByEmail(context.Background(), email)
	require.NoError(t, err)
	return token
}

func decode[T any](t *testing.T, data []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(data, &v), string(data))
	return v
}

type message struct {
	Message string `json:"message"`
}

func TestRoot(t *testing.T) {
	s := newTestServer(t, true)

	status, data := s.do(t, http.MethodGet, "/", nil, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Hello Electric Tools Manufacturer!", string(data))
}

func TestGuardedRoutes(t *testing.T) {
	s := newTestServer(t, true)
	_, token := s.signIn(t, "ann@example.com")

	routes := []struct{ method, path string }{
		{http.MethodGet, "/orders?email=ann@example.com"},
		{http.MethodPost, "/create-payment-intent"},
		{http.MethodPost, "/tool"},
		{http.MethodGet, "/users"},
		{http.MethodGet, "/admin-stats"},
	}
	for _, r := range routes {
		status, data := s.do(t, r.method, r.path, nil, "")
		assert.Equal(t, http.StatusUnauthorized, status, r.path)
		assert.Equal(t, "unauthorized access", decode[message](t, data).Message)

		status, data = s.do(t, r.method, r.path, nil, "not-a-jwt")
		assert.Equal(t, http.StatusForbidden, status, r.path)
		assert.Equal(t, "forbidden access", decode[message](t, data).Message)
	}

	for _, r := range routes[2:] {
		status, _ := s.do(t, r.method, r.path, nil, token)
		assert.Equal(t, http.StatusForbidden, status, "non-admin %s", r.path)
	}
}

func TestOrdersOfAnotherCustomer(t *testing.T) {
	s := newTestServer(t, true)
	_, token := s.signIn(t, "ann@example.com")

	status, _ := s.do(t, http.MethodGet, "/orders?email=bob@example.com", nil, token)
	assert.Equal(t, http.StatusForbidden, status)

	status, data := s.do(t, http.MethodGet, "/orders?email=ann@example.com", nil, token)
	assert.Equal(t, http.StatusOK, status)
	assert.Empty(t, decode[[]models.Order](t, data))
}

func TestToolLifecycle(t *testing.T) {
	s := newTestServer(t, true)
	token := s.admin(t, "boss@example.com")

	drill := models.Tool{Name: "Cordless Drill", Price: 89.5, Quantity: 40, MinOrder: 5, Description: "18V"}
	status, data := s.do(t, http.MethodPost, "/tool", drill, token)
	require.Equal(t, http.StatusOK, status, string(data))
	created := decode[struct {
		Acknowledged bool               `json:"acknowledged"`
		InsertedID   primitive.ObjectID `json:"insertedId"`
	}](t, data)
	assert.True(t, created.Acknowledged)
	require.False(t, created.InsertedID.IsZero())
	id := created.InsertedID.Hex()

	t.Run("duplicate name", func(t *testing.T) {
		status, data := s.do(t, http.MethodPost, "/tool", drill, token)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "This tool already exists", decode[message](t, data).Message)

		_, data = s.do(t, http.MethodGet, "/tools", nil, "")
		assert.Len(t, decode[[]models.Tool](t, data), 1)
	})

	t.Run("get returns posted fields", func(t *testing.T) {
		status, data := s.do(t, http.MethodGet, "/tool/"+id, nil, "")
		require.Equal(t, http.StatusOK, status)
		got := decode[models.Tool](t, data)
		want := drill
		want.ID = created.InsertedID
		assert.Equal(t, want, got)
	})

	t.Run("missing and malformed ids", func(t *testing.T) {
		status, data := s.do(t, http.MethodGet, "/tool/"+primitive.NewObjectID().Hex(), nil, "")
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "not found", decode[message](t, data).Message)

		status, _ = s.do(t, http.MethodGet, "/tool/xyz", nil, "")
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("search and count", func(t *testing.T) {
		_, data := s.do(t, http.MethodGet, "/all-tools?search=drill&page=0&limit=10", nil, "")
		assert.Len(t, decode[[]models.Tool](t, data), 1)

		status, data := s.do(t, http.MethodGet, "/all-tools?page=4611686018427387904&limit=4", nil, "")
		assert.Equal(t, http.StatusOK, status)
		assert.Empty(t, decode[[]models.Tool](t, data))

		_, data = s.do(t, http.MethodGet, "/tools-count?search=saw", nil, "")
		assert.EqualValues(t, 0, decode[map[string]int](t, data)["count"])
	})

	t.Run("update and delete", func(t *testing.T) {
		drill.Price = 79
		status, _ := s.do(t, http.MethodPut, "/tool/"+id, drill, token)
		require.Equal(t, http.StatusOK, status)

		_, data := s.do(t, http.MethodGet, "/tool/"+id, nil, "")
		assert.Equal(t, 79.0, decode[models.Tool](t, data).Price)

		status, _ = s.do(t, http.MethodDelete, "/tool/"+id, nil, token)
		assert.Equal(t, http.StatusOK, status)
		status, _ = s.do(t, http.MethodGet, "/tool/"+id, nil, "")
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("image upload without storage", func(t *testing.T) {
		status, _ := s.do(t, http.MethodPost, "/tool/"+id+"/image", nil, token)
		assert.Equal(t, http.StatusBadRequest, status)
	})
}

func TestOrderPaymentFlow(t *testing.T) {
	s := newTestServer(t, true)
	_, token := s.signIn(t, "ann@example.com")

	status, data := s.do(t, http.MethodPost, "/order", map[string]any{
		"customerEmail": "ann@example.com",
		"toolName":      "Cordless Drill",
		"toolPrice":     89.5,
		"quantity":      2,
		"paid":          true,
	}, "")
	require.Equal(t, http.StatusOK, status, string(data))
	placed := decode[struct {
		InsertedID primitive.ObjectID `json:"insertedId"`
		Order      models.Order       `json:"order"`
	}](t, data)
	assert.False(t, placed.Order.Paid)
	orderPath := "/order/" + placed.InsertedID.Hex()

	status, data = s.do(t, http.MethodPost, "/create-payment-intent", map[string]any{"toolPrice": 19.99}, token)
	require.Equal(t, http.StatusOK, status, string(data))
	assert.Equal(t, "pi_test_secret", decode[map[string]string](t, data)["clientSecret"])
	assert.Equal(t, []int64{1999}, s.gateway.amounts)

	status, _ = s.do(t, http.MethodPost, "/create-payment-intent", map[string]any{}, token)
	assert.Equal(t, http.StatusBadRequest, status)

	status, data = s.do(t, http.MethodPatch, orderPath, map[string]any{
		"transactionId":  "pi_123",
		"totalToolPrice": 179,
		"date":           "2024-05-01",
	}, token)
	require.Equal(t, http.StatusOK, status, string(data))
	paid := decode[models.Order](t, data)
	assert.True(t, paid.Paid)
	require.NotNil(t, paid.TransactionID)
	assert.Equal(t, "pi_123", *paid.TransactionID)

	status, data = s.do(t, http.MethodGet, orderPath, nil, token)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, decode[models.Order](t, data).Paid)

	require.Len(t, s.payments.All(), 1)
	assert.Equal(t, placed.InsertedID, s.payments.All()[0].OrderID)

	status, _ = s.do(t, http.MethodPatch, orderPath, map[string]any{"transactionId": "pi_456"}, token)
	assert.Equal(t, http.StatusConflict, status)
	assert.Len(t, s.payments.All(), 1)

	status, data = s.do(t, http.MethodGet, "/payments?email=ann@example.com", nil, token)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]models.Payment](t, data), 1)

	status, data = s.do(t, http.MethodGet, "/orders?email=ann@example.com", nil, token)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]models.Order](t, data), 1)
}

func TestUsers(t *testing.T) {
	s := newTestServer(t, true)
	ann, annToken := s.signIn(t, "ann@example.com")
	bob, _ := s.signIn(t, "bob@example.com")
	bossToken := s.admin(t, "boss@example.com")

	t.Run("jwt for known and unknown emails", func(t *testing.T) {
		status, data := s.do(t, http.MethodGet, "/jwt?email=ann@example.com", nil, "")
		assert.Equal(t, http.StatusOK, status)
		assert.NotEmpty(t, decode[map[string]string](t, data)["accessToken"])

		status, data = s.do(t, http.MethodGet, "/jwt?email=ghost@example.com", nil, "")
		assert.Equal(t, http.StatusForbidden, status)
		assert.Empty(t, decode[map[string]string](t, data)["accessToken"])
	})

	t.Run("role in payload is ignored", func(t *testing.T) {
		status, data := s.do(t, http.MethodPost, "/user", map[string]string{"email": "eve@example.com", "role": "admin"}, "")
		require.Equal(t, http.StatusOK, status)
		assert.Empty(t, decode[models.User](t, data).Role)

		_, data = s.do(t, http.MethodGet, "/user/admin/eve@example.com", nil, "")
		assert.False(t, decode[map[string]bool](t, data)["isAdmin"])
	})

	t.Run("profile is self only", func(t *testing.T) {
		status, data := s.do(t, http.MethodPut, "/user/"+ann.ID.Hex(), map[string]string{"location": "Dhaka"}, annToken)
		require.Equal(t, http.StatusOK, status, string(data))
		assert.Equal(t, "Dhaka", decode[models.User](t, data).Location)

		status, _ = s.do(t, http.MethodPut, "/user/"+bob.ID.Hex(), map[string]string{"location": "Dhaka"}, annToken)
		assert.Equal(t, http.StatusForbidden, status)

		status, _ = s.do(t, http.MethodGet, "/user?email=bob@example.com", nil, annToken)
		assert.Equal(t, http.StatusForbidden, status)

		status, data = s.do(t, http.MethodGet, "/user?email=ann@example.com", nil, annToken)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, "Dhaka", decode[models.User](t, data).Location)
	})

	t.Run("promote twice", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			status, data := s.do(t, http.MethodPut, "/user/admin/"+bob.ID.Hex(), nil, bossToken)
			require.Equal(t, http.StatusOK, status, string(data))
			assert.Equal(t, models.RoleAdmin, decode[models.User](t, data).Role)
		}

		_, data := s.do(t, http.MethodGet, "/user/admin/bob@example.com", nil, "")
		assert.True(t, decode[map[string]bool](t, data)["isAdmin"])
	})

	t.Run("admin listing and stats", func(t *testing.T) {
		status, data := s.do(t, http.MethodGet, "/users", nil, bossToken)
		require.Equal(t, http.StatusOK, status)
		assert.Len(t, decode[[]models.User](t, data), 4)

		status, data = s.do(t, http.MethodGet, "/admin-stats", nil, bossToken)
		require.Equal(t, http.StatusOK, status)
		assert.EqualValues(t, 4, decode[services.Stats](t, data).Customers)
	})

	t.Run("admin deletes user", func(t *testing.T) {
		status, _ := s.do(t, http.MethodDelete, "/user/"+ann.ID.Hex(), nil, bossToken)
		assert.Equal(t, http.StatusOK, status)

		status, _ = s.do(t, http.MethodDelete, "/user/"+ann.ID.Hex(), nil, bossToken)
		assert.Equal(t, http.StatusNotFound, status)
	})
}

func TestReviews(t *testing.T) {
	t.Run("anonymous allowed", func(t *testing.T) {
		s := newTestServer(t, true)

		status, data := s.do(t, http.MethodPost, "/review", map[string]any{"name": "Ann", "text": "sturdy", "rating": 5}, "")
		require.Equal(t, http.StatusOK, status, string(data))

		status, _ = s.do(t, http.MethodPost, "/review", map[string]any{"text": "sturdy", "rating": 9}, "")
		assert.Equal(t, http.StatusBadRequest, status)

		_, data = s.do(t, http.MethodGet, "/reviews", nil, "")
		assert.Len(t, decode[[]models.Review](t, data), 1)
	})

	t.Run("authenticated required", func(t *testing.T) {
		s := newTestServer(t, false)
		_, token := s.signIn(t, "ann@example.com")

		status, _ := s.do(t, http.MethodPost, "/review", map[string]any{"text": "sturdy", "rating": 4}, "")
		assert.Equal(t, http.StatusUnauthorized, status)

		status, _ = s.do(t, http.MethodPost, "/review", map[string]any{"text": "sturdy", "rating": 4, "email": "x@example.com"}, token)
		require.Equal(t, http.StatusOK, status)

		_, data := s.do(t, http.MethodGet, "/reviews", nil, "")
		reviews := decode[[]models.Review](t, data)
		require.Len(t, reviews, 1)
		assert.Equal(t, "ann@example.com", reviews[0].Email)
	})
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t, true)

	status, data := s.do(t, http.MethodGet, "/nope", nil, "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.NotEmpty(t, decode[message](t, data).Message)
}
