package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"

	applog "prodcat/internal/log"
)

// CartNotifier is the outbound notification surface used by the product and
// reservation services. Implementations must never return an error to the
// caller: delivery is best-effort by contract.
type CartNotifier interface {
	NotifyProductUpdated(productID int64, title string, price int64, imageURL string)
	NotifyOutOfStock(productID int64)
	NotifyBackInStock(productID int64)
	NotifyProductDeleted(productID int64)
}

// CartWebhookClient posts fire-and-forget events to the external cart
// service. Failures are logged and dropped; they never roll back or retry
// the storage transaction that triggered them, and each send runs detached
// so the owning request is not held up.
type CartWebhookClient struct {
	baseURL string
	client  *http.Client
}

// NewCartWebhookClient returns a disabled client when baseURL is empty.
func NewCartWebhookClient(baseURL string) *CartWebhookClient {
	return &CartWebhookClient{
		baseURL: baseURL,
		client: &http.Client{
			// Slow or unreachable cart service must never hold a
			// request open: 3s to connect, 5s overall.
			Timeout: 5 * time.Second,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{Timeout: 3 * time.Second}).DialContext,
			},
		},
	}
}

func (w *CartWebhookClient) enabled() bool { return w.baseURL != "" }

func (w *CartWebhookClient) NotifyProductUpdated(productID int64, title string, price int64, imageURL string) {
	if !w.enabled() {
		return
	}
	payload := map[string]any{"title": title, "price": price, "image_url": nil}
	if imageURL != "" {
		payload["image_url"] = imageURL
	}
	url := fmt.Sprintf("%s/internal/cart/products/%d/updated", w.baseURL, productID)
	go w.send(url, payload, "product_updated", productID)
}

func (w *CartWebhookClient) NotifyOutOfStock(productID int64) {
	if !w.enabled() {
		return
	}
	url := fmt.Sprintf("%s/internal/cart/products/%d/out-of-stock", w.baseURL, productID)
	go w.send(url, nil, "out_of_stock", productID)
}

func (w *CartWebhookClient) NotifyBackInStock(productID int64) {
	if !w.enabled() {
		return
	}
	url := fmt.Sprintf("%s/internal/cart/products/%d/back-in-stock", w.baseURL, productID)
	go w.send(url, nil, "back_in_stock", productID)
}

func (w *CartWebhookClient) NotifyProductDeleted(productID int64) {
	if !w.enabled() {
		return
	}
	url := fmt.Sprintf("%s/internal/cart/products/%d/deleted", w.baseURL, productID)
	go w.send(url, nil, "product_deleted", productID)
}

func (w *CartWebhookClient) send(url string, payload map[string]any, event string, productID int64) {
	deliveryID := uuid.NewString()
	fields := map[string]any{"event": event, "product_id": productID, "delivery_id": deliveryID}

	var body *bytes.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			applog.BackgroundError("webhook.send.fail", err, fields)
			return
		}
		body = bytes.NewReader(b)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(http.MethodPost, url, body)
	if err != nil {
		applog.BackgroundError("webhook.send.fail", err, fields)
		return
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Delivery-ID", deliveryID)

	resp, err := w.client.Do(req)
	if err != nil {
		applog.BackgroundError("webhook.send.fail", err, fields)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		fields["status_code"] = resp.StatusCode
		applog.BackgroundError("webhook.send.fail", fmt.Errorf("cart service returned %d", resp.StatusCode), fields)
		return
	}
	fields["status_code"] = resp.StatusCode
	applog.BackgroundInfo("webhook.sent", fields)
}
