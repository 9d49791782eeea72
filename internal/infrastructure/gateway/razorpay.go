// Package gateway provides the payment provider implementations. The
// provider is chosen once at startup from config.
package gateway

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"keyforge/internal/application/payment/usecases"
	"keyforge/internal/shared/config"
	"keyforge/internal/shared/logger"
)

const razorpayBaseURL = "https://api.razorpay.com/v1"

// RazorpayGateway is a thin client for the Razorpay REST API. Orders,
// payments and refunds go over HTTP with basic auth; the signature
// checks are pure HMAC-SHA256 and never hit the network.
type RazorpayGateway struct {
	client        *http.Client
	baseURL       string
	keyID         string
	keySecret     string
	webhookSecret string
	logger        logger.Interface
}

func NewRazorpayGateway(cfg config.PaymentConfig, logger logger.Interface) *RazorpayGateway {
	return &RazorpayGateway{
		client:        &http.Client{Timeout: 15 * time.Second},
		baseURL:       razorpayBaseURL,
		keyID:         cfg.KeyID,
		keySecret:     cfg.KeySecret,
		webhookSecret: cfg.WebhookSecret,
		logger:        logger,
	}
}

func (g *RazorpayGateway) CreateOrder(ctx context.Context, req usecases.CreateOrderRequest) (*usecases.GatewayOrder, error) {
	body := map[string]interface{}{
		"amount":   req.Amount,
		"currency": req.Currency,
		"receipt":  req.Receipt,
	}
	var out struct {
		ID       string `json:"id"`
		Amount   int64  `json:"amount"`
		Currency string `json:"currency"`
	}
	if err := g.do(ctx, http.MethodPost, "/orders", body, &out); err != nil {
		return nil, err
	}
	return &usecases.GatewayOrder{ID: out.ID, Amount: out.Amount, Currency: out.Currency}, nil
}

func (g *RazorpayGateway) FetchPayment(ctx context.Context, paymentID string) (*usecases.GatewayPayment, error) {
	var out struct {
		ID      string `json:"id"`
		OrderID string `json:"order_id"`
		Amount  int64  `json:"amount"`
		Status  string `json:"status"`
	}
	if err := g.do(ctx, http.MethodGet, "/payments/"+paymentID, nil, &out); err != nil {
		return nil, err
	}
	return &usecases.GatewayPayment{ID: out.ID, OrderID: out.OrderID, Amount: out.Amount, Status: out.Status}, nil
}

// VerifySignature checks the checkout callback signature:
// HMAC-SHA256(orderID|paymentID, keySecret) hex-encoded.
func (g *RazorpayGateway) VerifySignature(orderID, paymentID, signature string) bool {
	return hmacEqual(g.keySecret, orderID+"|"+paymentID, signature)
}

// VerifyWebhookSignature checks the X-Razorpay-Signature header value
// against HMAC-SHA256 of the raw request body.
func (g *RazorpayGateway) VerifyWebhookSignature(body []byte, signature string) bool {
	return hmacEqual(g.webhookSecret, string(body), signature)
}

func (g *RazorpayGateway) IssueRefund(ctx context.Context, paymentID string, amount int64, reason string) (*usecases.GatewayRefund, error) {
	body := map[string]interface{}{"amount": amount}
	if reason != "" {
		body["notes"] = map[string]string{"reason": reason}
	}
	var out struct {
		ID     string `json:"id"`
		Amount int64  `json:"amount"`
	}
	if err := g.do(ctx, http.MethodPost, "/payments/"+paymentID+"/refund", body, &out); err != nil {
		return nil, err
	}
	return &usecases.GatewayRefund{ID: out.ID, Amount: out.Amount}, nil
}

func (g *RazorpayGateway) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.SetBasicAuth(g.keyID, g.keySecret)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("razorpay request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		g.logger.Warnw("razorpay error response",
			"method", method, "path", path, "status", resp.StatusCode, "body", string(payload))
		return fmt.Errorf("razorpay returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode razorpay response: %w", err)
	}
	return nil
}

func hmacHex(secret, message string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(message))
	return hex.EncodeToString(mac.Sum(nil))
}

func hmacEqual(secret, message, signature string) bool {
	if secret == "" || signature == "" {
		return false
	}
	return hmac.Equal([]byte(hmacHex(secret, message)), []byte(signature))
}
