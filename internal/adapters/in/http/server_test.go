package http_test

import (
	"context"
	"encoding/json"
	"io"
	"iter"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpadapter "orders/internal/adapters/in/http"
	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id int64) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) Search(
	ctx context.Context,
	filters map[string]string,
	limit, offset int,
) iter.Seq2[*order.Order, error] {
	args := m.Called(ctx, filters, limit, offset)
	return args.Get(0).(iter.Seq2[*order.Order, error])
}

type MockNotificationPublisher struct{ mock.Mock }

func (m *MockNotificationPublisher) Publish(ctx context.Context, topic string, o *order.Order) error {
	args := m.Called(ctx, topic, o)
	return args.Error(0)
}

const (
	testUser     = "admin"
	testPassword = "secret"
)

func newTestServer(repo *MockOrderRepository) (*echo.Echo, *MockNotificationPublisher) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	publisher := new(MockNotificationPublisher)

	server := httpadapter.NewServer(
		commands.NewCreateOrderCommandHandler(repo, publisher, commands.DevEnvironment, "orders.created", logger),
		commands.NewUpdateOrderCommandHandler(repo, logger),
		queries.NewSearchOrdersQueryHandler(repo, logger),
		testUser,
		testPassword,
	)

	e := echo.New()
	server.RegisterRoutes(e)
	return e, publisher
}

func validBody() string {
	return `{
		"firstName": "Mary",
		"lastName": "Smith",
		"telephoneNumber": "1234567890",
		"email": "mary@example.com",
		"deliveryAddress": "123 Main St",
		"customerCount": 10
	}`
}

func doJSON(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) []string {
	t.Helper()
	var response struct {
		Code     int      `json:"code"`
		Messages []string `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	return response.Messages
}

func TestCreateOrder_Valid_ReturnsCreatedOrder(t *testing.T) {
	repo := new(MockOrderRepository)
	repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).
		Run(func(args mock.Arguments) {
			require.NoError(t, args.Get(1).(*order.Order).AssignID(7))
		}).
		Return(nil).Once()

	e, _ := newTestServer(repo)
	rec := doJSON(e, http.MethodPost, "/api/orders", validBody())

	require.Equal(t, http.StatusCreated, rec.Code)

	var response map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, float64(7), response["id"])
	assert.Equal(t, "Mary", response["firstName"])
	assert.Equal(t, float64(10), response["customerCount"])
	assert.Equal(t, "13.30", response["orderTotal"])
	assert.NotEmpty(t, response["orderDate"])
	repo.AssertExpectations(t)
}

func TestCreateOrder_BlankFields_ReturnsAllRequiredMessages(t *testing.T) {
	e, _ := newTestServer(new(MockOrderRepository))
	rec := doJSON(e, http.MethodPost, "/api/orders", `{"customerCount": 5}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{
		"First name is required",
		"Last name is required",
		"Telephone number is required",
		"Email is required",
		"Delivery address is required",
	}, decodeError(t, rec))
}

func TestCreateOrder_InvalidCustomerCount(t *testing.T) {
	e, _ := newTestServer(new(MockOrderRepository))
	body := strings.Replace(validBody(), `"customerCount": 10`, `"customerCount": 7`, 1)
	rec := doJSON(e, http.MethodPost, "/api/orders", body)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"Invalid number of customers. Valid values are 5, 10, or 15."}, decodeError(t, rec))
}

func TestCreateOrder_MalformedBody(t *testing.T) {
	e, _ := newTestServer(new(MockOrderRepository))
	rec := doJSON(e, http.MethodPost, "/api/orders", `{not json`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateOrder_RepositoryFailure_ReturnsInternalError(t *testing.T) {
	repo := new(MockOrderRepository)
	repo.On("Add", mock.Anything, mock.Anything).Return(assert.AnError).Once()

	e, _ := newTestServer(repo)
	rec := doJSON(e, http.MethodPost, "/api/orders", validBody())

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestUpdateOrder_Valid_ReturnsUpdatedOrder(t *testing.T) {
	existing := order.Restore(7, order.Details{
		FirstName:       "Mary",
		LastName:        "Smith",
		TelephoneNumber: "1234567890",
		Email:           "mary@example.com",
		DeliveryAddress: "123 Main St",
		CustomerCount:   5,
	}, order.TotalFor(5), time.Now())

	repo := new(MockOrderRepository)
	repo.On("Get", mock.Anything, int64(7)).Return(existing, nil).Once()
	repo.On("Update", mock.Anything, existing).Return(nil).Once()

	e, _ := newTestServer(repo)
	rec := doJSON(e, http.MethodPut, "/api/orders/7", validBody())

	require.Equal(t, http.StatusOK, rec.Code)

	var response map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, float64(7), response["id"])
	assert.Equal(t, "13.30", response["orderTotal"])
	repo.AssertExpectations(t)
}

func TestUpdateOrder_UnknownID_ReturnsNotFound(t *testing.T) {
	repo := new(MockOrderRepository)
	repo.On("Get", mock.Anything, int64(404)).Return(nil, errs.NewObjectNotFoundError("id", int64(404))).Once()

	e, _ := newTestServer(repo)
	rec := doJSON(e, http.MethodPut, "/api/orders/404", validBody())

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateOrder_WindowElapsed_ReturnsBadRequestWithMessage(t *testing.T) {
	stale := order.Restore(7, order.Details{
		FirstName:       "Mary",
		LastName:        "Smith",
		TelephoneNumber: "1234567890",
		Email:           "mary@example.com",
		DeliveryAddress: "123 Main St",
		CustomerCount:   5,
	}, order.TotalFor(5), time.Now().Add(-10*time.Minute))

	repo := new(MockOrderRepository)
	repo.On("Get", mock.Anything, int64(7)).Return(stale, nil).Once()

	e, _ := newTestServer(repo)
	rec := doJSON(e, http.MethodPut, "/api/orders/7", validBody())

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"Order cannot be updated after 5 minutes."}, decodeError(t, rec))
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateOrder_NonNumericID(t *testing.T) {
	e, _ := newTestServer(new(MockOrderRepository))
	rec := doJSON(e, http.MethodPut, "/api/orders/abc", validBody())

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func seqOf(orders ...*order.Order) iter.Seq2[*order.Order, error] {
	return func(yield func(*order.Order, error) bool) {
		for _, o := range orders {
			if !yield(o, nil) {
				return
			}
		}
	}
}

func searchRequest(target, body string, withAuth bool) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if withAuth {
		req.SetBasicAuth(testUser, testPassword)
	}
	return req
}

func TestSearchOrders_WithoutCredentials_ReturnsUnauthorized(t *testing.T) {
	e, _ := newTestServer(new(MockOrderRepository))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, searchRequest("/api/orders/search", `{}`, false))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSearchOrders_WrongCredentials_ReturnsUnauthorized(t *testing.T) {
	e, _ := newTestServer(new(MockOrderRepository))

	req := httptest.NewRequest(http.MethodPost, "/api/orders/search", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.SetBasicAuth(testUser, "wrong")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSearchOrders_DefaultsLimitAndOffset(t *testing.T) {
	found := order.Restore(1, order.Details{
		FirstName:       "Mary",
		LastName:        "Smith",
		TelephoneNumber: "1234567890",
		Email:           "mary@example.com",
		DeliveryAddress: "123 Main St",
		CustomerCount:   5,
	}, order.TotalFor(5), time.Now())

	repo := new(MockOrderRepository)
	repo.On("Search", mock.Anything, map[string]string{"firstName": "Mar"}, 10, 0).
		Return(seqOf(found)).Once()

	e, _ := newTestServer(repo)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, searchRequest("/api/orders/search", `{"firstName": "Mar"}`, true))

	require.Equal(t, http.StatusOK, rec.Code)

	var response []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Len(t, response, 1)
	assert.Equal(t, "Mary", response[0]["firstName"])
	assert.Equal(t, "6.65", response[0]["orderTotal"])
	repo.AssertExpectations(t)
}

func TestSearchOrders_ExplicitLimitAndOffset(t *testing.T) {
	repo := new(MockOrderRepository)
	repo.On("Search", mock.Anything, map[string]string{}, 5, 20).Return(seqOf()).Once()

	e, _ := newTestServer(repo)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, searchRequest("/api/orders/search?limit=5&offset=20", `{}`, true))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
	repo.AssertExpectations(t)
}

func TestSearchOrders_NegativeLimit_ReturnsBadRequest(t *testing.T) {
	e, _ := newTestServer(new(MockOrderRepository))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, searchRequest("/api/orders/search?limit=-1", `{}`, true))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchOrders_SpecialCharactersInFilter_DoNotError(t *testing.T) {
	repo := new(MockOrderRepository)
	repo.On("Search", mock.Anything, map[string]string{"lastName": "'; DROP TABLE orders; --"}, 10, 0).
		Return(seqOf()).Once()

	e, _ := newTestServer(repo)
	rec := httptest.NewRecorder()
	body := `{"lastName": "'; DROP TABLE orders; --"}`
	e.ServeHTTP(rec, searchRequest("/api/orders/search", body, true))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
	repo.AssertExpectations(t)
}
