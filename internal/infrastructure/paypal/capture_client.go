package paypal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/throwin-app/throwin-payment-service/internal/domain"
)

type HTTPCaptureClient struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	httpClient   *http.Client
}

func NewHTTPCaptureClient(baseURL, clientID, clientSecret string) *HTTPCaptureClient {
	return &HTTPCaptureClient{
		BaseURL:      baseURL,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		httpClient:   &http.Client{Timeout: 15 * time.Second},
	}
}

type captureRequest struct {
	PaymentID string `json:"payment_id"`
	Amount    string `json:"amount"`
	Currency  string `json:"currency"`
	Token     string `json:"token"`
}

type captureResponse struct {
	Success       bool   `json:"success"`
	TransactionID string `json:"transaction_id"`
	Reason        string `json:"reason,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Capture posts the capture to the provider. The caller's context bounds
// the call; the core only sees the boolean outcome and the external id.
func (c *HTTPCaptureClient) Capture(ctx context.Context, paymentID string, amount domain.Money, token string) (*domain.CaptureResult, error) {
	requestBodyBytes, err := json.Marshal(captureRequest{
		PaymentID: paymentID,
		Amount:    amount.String(),
		Currency:  "JPY",
		Token:     token,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/v2/payments/capture", c.BaseURL), bytes.NewBuffer(requestBodyBytes))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.ClientID, c.ClientSecret)

	response, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()
	responseBodyBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, err
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		var captureResp captureResponse
		if err := json.Unmarshal(responseBodyBytes, &captureResp); err != nil {
			return nil, err
		}
		return &domain.CaptureResult{
			Success:       captureResp.Success,
			ExternalTxnID: captureResp.TransactionID,
			FailureReason: captureResp.Reason,
		}, nil
	}

	var errorResp errorResponse
	if err := json.Unmarshal(responseBodyBytes, &errorResp); err != nil {
		return nil, fmt.Errorf("provider returned status %d", response.StatusCode)
	}
	return nil, errors.New(errorResp.Error)
}
