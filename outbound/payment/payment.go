// Package payment talks to the payment gateway: order creation over its REST
// API and webhook-style signature verification for the checkout callback.
package payment

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

	"festival-pass/common"
	"festival-pass/common/otel"

	"github.com/spf13/viper"
)

const ordersPath = "/v1/orders"

type Provider struct {
	Cfg *viper.Viper

	client   *http.Client
	baseUrl  string
	keyId    string
	secret   string
	currency string
}

func (p *Provider) Init() {
	p.baseUrl = p.Cfg.GetString("payment.base_url")
	p.keyId = p.Cfg.GetString("payment.key_id")
	p.secret = p.Cfg.GetString("payment.key_secret")

	p.currency = p.Cfg.GetString("payment.currency")
	if p.currency == "" {
		p.currency = "INR"
	}

	p.client = &http.Client{Timeout: p.Cfg.GetDuration("payment.timeout")}
}

// Key returns the public key id the checkout page embeds.
func (p *Provider) Key() string {
	return p.keyId
}

func (p *Provider) Currency() string {
	return p.currency
}

type createOrderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type createOrderResponse struct {
	Id string `json:"id"`
}

// CreateOrder registers an order with the gateway and returns its order id.
// The gateway counts in the currency's minor unit, so rupees are multiplied
// by 100 here and nowhere else.
func (p *Provider) CreateOrder(ctx context.Context, amount int64, receipt string) (string, error) {
	ctx, span := otel.Tracer.Start(ctx, "PaymentProvider.CreateOrder")
	defer span.End()

	body, err := json.Marshal(createOrderRequest{
		Amount:   amount * 100,
		Currency: p.currency,
		Receipt:  receipt,
	})
	if err != nil {
		common.UtilSpanError(span, err)
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseUrl+ordersPath, bytes.NewReader(body))
	if err != nil {
		common.UtilSpanError(span, err)
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(p.keyId, p.secret)

	resp, err := p.client.Do(req)
	if err != nil {
		common.UtilSpanError(span, err)
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		err = fmt.Errorf("create order: gateway returned %d: %s", resp.StatusCode, payload)
		common.UtilSpanError(span, err)
		return "", err
	}

	var order createOrderResponse
	if err = json.NewDecoder(resp.Body).Decode(&order); err != nil {
		common.UtilSpanError(span, err)
		return "", err
	}

	if order.Id == "" {
		err = fmt.Errorf("create order: gateway response missing order id")
		common.UtilSpanError(span, err)
		return "", err
	}

	return order.Id, nil
}

// VerifySignature checks the checkout callback signature: hex HMAC-SHA256 of
// "{order_id}|{payment_id}" under the secret key, compared in constant time.
func (p *Provider) VerifySignature(orderId, paymentId, signature string) bool {
	mac := hmac.New(sha256.New, []byte(p.secret))
	mac.Write([]byte(orderId + "|" + paymentId))
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}
