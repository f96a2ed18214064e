package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	config "github.com/Wesley-SdS/modern-ecommerce/configs"
	"github.com/Wesley-SdS/modern-ecommerce/internal/money"
)

type SMSResponse struct {
	SMSMessageData struct {
		Message    string `json:"Message"`
		Recipients []struct {
			StatusCode int    `json:"statusCode"`
			Number     string `json:"number"`
			Cost       string `json:"cost"`
			Status     string `json:"status"`
			MessageID  string `json:"messageId"`
		} `json:"Recipients"`
	} `json:"SMSMessageData"`
}

// SMSNotifier sends order texts through the Africa's Talking messaging API.
type SMSNotifier struct {
	cfg    config.AfricaTalkingConfig
	client *http.Client
}

func NewSMSNotifier(cfg config.AfricaTalkingConfig, client *http.Client) *SMSNotifier {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &SMSNotifier{cfg: cfg, client: client}
}

// NotifyOrderPaid is a no-op for customers without a phone number.
func (s *SMSNotifier) NotifyOrderPaid(ctx context.Context, n OrderNotice) error {
	if n.Phone == "" {
		return nil
	}

	message := fmt.Sprintf("Your order #%s has been paid! Total: %s. Thank you for shopping with us!",
		n.OrderID, money.FormatCentsIn(n.TotalCents, n.Currency, "pt-BR"))

	data := url.Values{}
	data.Set("username", s.cfg.Username)
	data.Set("to", n.Phone)
	data.Set("message", message)
	data.Set("from", s.cfg.SenderID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.SMSURL, strings.NewReader(data.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create SMS request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("apikey", s.cfg.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		log.Error().Err(err).Str("order_id", n.OrderID).Str("to", n.Phone).Msg("SMS send failed")
		return fmt.Errorf("SMS send failed: %w", err)
	}
	defer resp.Body.Close()

	var smsResp SMSResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&smsResp)

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		log.Error().
			Int("status", resp.StatusCode).
			Str("order_id", n.OrderID).
			Str("message", smsResp.SMSMessageData.Message).
			AnErr("decode_error", decodeErr).
			Msg("SMS API returned non-success status")
		return fmt.Errorf("SMS API returned non-success status: %d", resp.StatusCode)
	}
	if decodeErr != nil {
		return fmt.Errorf("failed to decode SMS response: %w", decodeErr)
	}

	log.Info().Str("order_id", n.OrderID).Str("to", n.Phone).Str("message", smsResp.SMSMessageData.Message).Msg("SMS sent")
	return nil
}
