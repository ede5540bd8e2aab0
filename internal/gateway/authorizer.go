package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"flight-booking/internal/checkout"

	"go.uber.org/zap"
)

const authorizePath = "/credit-card-authorizer/authorize"

type authorizationRequest struct {
	CreditCardNumber string `json:"credit_card_number"`
}

type authorizationResponse struct {
	Status string `json:"status"`
}

// HTTPAuthorizer authorizes card payments against a remote card-authorizer
// service. Methods that carry no card are handed to Fallback.
type HTTPAuthorizer struct {
	baseURL    string
	httpClient *http.Client
	fallback   checkout.PaymentProcessor
	log        *zap.Logger
}

var _ checkout.PaymentProcessor = (*HTTPAuthorizer)(nil)

func NewHTTPAuthorizer(baseURL string, timeout time.Duration, fallback checkout.PaymentProcessor, log *zap.Logger) *HTTPAuthorizer {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPAuthorizer{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		fallback:   fallback,
		log:        log.With(zap.String("gateway", "http_authorizer")),
	}
}

func (a *HTTPAuthorizer) Submit(ctx context.Context, req checkout.PaymentRequest) (checkout.PaymentReceipt, error) {
	if !req.Method.IsCard() {
		if a.fallback == nil {
			return checkout.PaymentReceipt{}, declined("payment method not supported")
		}
		return a.fallback.Submit(ctx, req)
	}

	status, err := a.authorize(ctx, dashedCardNumber(req.Payment.CardNumber))
	if err != nil {
		a.log.Error("Card authorization failed",
			zap.Error(err),
			zap.String("checkout_id", req.CheckoutID),
		)
		return checkout.PaymentReceipt{}, err
	}

	if status != "Authorized" {
		a.log.Info("Card declined",
			zap.String("checkout_id", req.CheckoutID),
			zap.String("card", checkout.MaskCardNumber(req.Payment.CardNumber)),
		)
		return checkout.PaymentReceipt{}, declined(status)
	}

	return newReceipt(req.Amount), nil
}

// authorize returns "Authorized" or "Declined".
func (a *HTTPAuthorizer) authorize(ctx context.Context, cardNumber string) (string, error) {
	jsonData, err := json.Marshal(authorizationRequest{CreditCardNumber: cardNumber})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+authorizePath, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", ErrTimeout
		}
		return "", fmt.Errorf("failed to call authorizer: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK, http.StatusPaymentRequired:
		var authResp authorizationResponse
		if err := json.Unmarshal(body, &authResp); err != nil {
			return "", fmt.Errorf("failed to unmarshal response: %w", err)
		}
		return authResp.Status, nil
	case http.StatusBadRequest:
		return "", declined("invalid card format")
	default:
		return "", fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, string(body))
	}
}

// dashedCardNumber renders "4111 1111 1111 1111" as "4111-1111-1111-1111".
func dashedCardNumber(formatted string) string {
	return strings.ReplaceAll(checkout.FormatCardNumber(formatted), " ", "-")
}
