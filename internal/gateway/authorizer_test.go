package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"flight-booking/internal/checkout"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockProcessor struct {
	mock.Mock
}

func (m *MockProcessor) Submit(ctx context.Context, req checkout.PaymentRequest) (checkout.PaymentReceipt, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(checkout.PaymentReceipt), args.Error(1)
}

func authorizerServer(t *testing.T, status int, body string) (*httptest.Server, *string) {
	t.Helper()
	var gotCard string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, authorizePath, r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var req authorizationRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gotCard = req.CreditCardNumber

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &gotCard
}

func TestHTTPAuthorizer_Authorized(t *testing.T) {
	srv, gotCard := authorizerServer(t, http.StatusOK, `{"status":"Authorized"}`)
	a := NewHTTPAuthorizer(srv.URL+"/", time.Second, nil, zap.NewNop())

	receipt, err := a.Submit(context.Background(), paymentRequest(checkout.PaymentMethodCredit))
	require.NoError(t, err)
	assert.Equal(t, int64(511000), receipt.Amount)
	assert.Equal(t, "4111-1111-1111-1111", *gotCard)
}

func TestHTTPAuthorizer_Declined(t *testing.T) {
	srv, _ := authorizerServer(t, http.StatusPaymentRequired, `{"status":"Declined"}`)
	a := NewHTTPAuthorizer(srv.URL, time.Second, nil, zap.NewNop())

	_, err := a.Submit(context.Background(), paymentRequest(checkout.PaymentMethodDebit))
	assert.ErrorIs(t, err, ErrDeclined)
}

func TestHTTPAuthorizer_BadRequest(t *testing.T) {
	srv, _ := authorizerServer(t, http.StatusBadRequest, `{"error":"INVALID_CARD_FORMAT"}`)
	a := NewHTTPAuthorizer(srv.URL, time.Second, nil, zap.NewNop())

	_, err := a.Submit(context.Background(), paymentRequest(checkout.PaymentMethodCredit))
	assert.ErrorIs(t, err, ErrDeclined)
}

func TestHTTPAuthorizer_UnexpectedStatus(t *testing.T) {
	srv, _ := authorizerServer(t, http.StatusBadGateway, `upstream down`)
	a := NewHTTPAuthorizer(srv.URL, time.Second, nil, zap.NewNop())

	_, err := a.Submit(context.Background(), paymentRequest(checkout.PaymentMethodCredit))
	assert.ErrorContains(t, err, "unexpected status code 502")
}

func TestHTTPAuthorizer_NonCardUsesFallback(t *testing.T) {
	fallback := &MockProcessor{}
	req := paymentRequest(checkout.PaymentMethodBankTransfer)
	fallback.On("Submit", mock.Anything, req).Return(checkout.PaymentReceipt{Reference: "PSE-1"}, nil)

	a := NewHTTPAuthorizer("http://unused.invalid", time.Second, fallback, zap.NewNop())

	receipt, err := a.Submit(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "PSE-1", receipt.Reference)
	fallback.AssertExpectations(t)
}

func TestHTTPAuthorizer_NonCardWithoutFallback(t *testing.T) {
	a := NewHTTPAuthorizer("http://unused.invalid", time.Second, nil, zap.NewNop())

	_, err := a.Submit(context.Background(), paymentRequest(checkout.PaymentMethodPayPal))
	assert.ErrorIs(t, err, ErrDeclined)
}
