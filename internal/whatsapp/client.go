// Package whatsapp posts text replies to the Meta Graph API. Replies are
// fire-and-forget: failures are logged by the caller, never retried.
package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"quotebot/platform/config"
	"quotebot/platform/logger"
	"quotebot/platform/phone"
)

// Client sends text messages through the WhatsApp Cloud API.
type Client struct {
	baseURL       string
	accessToken   string
	phoneNumberID string
	http          *http.Client
	log           *logger.Logger
}

type textPayload struct {
	MessagingProduct string      `json:"messaging_product"`
	To               string      `json:"to"`
	Type             string      `json:"type"`
	Text             textContent `json:"text"`
}

type textContent struct {
	Body string `json:"body"`
}

// NewClient creates the reply client. Returns nil when the access token or
// phone number ID is missing; a nil client turns SendReply into a no-op so
// the rest of the pipeline keeps working in a partially configured deployment.
func NewClient(cfg config.WhatsAppConfig, log *logger.Logger) *Client {
	if cfg.GetMetaAccessToken() == "" || cfg.GetPhoneNumberID() == "" {
		return nil
	}

	return &Client{
		baseURL:       strings.TrimRight(cfg.GetGraphAPIBaseURL(), "/"),
		accessToken:   cfg.GetMetaAccessToken(),
		phoneNumberID: cfg.GetPhoneNumberID(),
		http:          &http.Client{Timeout: 10 * time.Second},
		log:           log,
	}
}

// SendReply posts a text message to the given phone number.
func (c *Client) SendReply(ctx context.Context, toPhoneNumber string, message string) error {
	if c == nil {
		return nil
	}

	normalized := strings.TrimPrefix(phone.NormalizeE164(toPhoneNumber), "+")

	payload := textPayload{
		MessagingProduct: "whatsapp",
		To:               normalized,
		Type:             "text",
		Text:             textContent{Body: message},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal whatsapp payload: %w", err)
	}

	url := fmt.Sprintf("%s/%s/messages", c.baseURL, c.phoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("whatsapp request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("whatsapp api returned %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	c.log.Info("whatsapp reply sent", "phone", normalized)
	return nil
}
