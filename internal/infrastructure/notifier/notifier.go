package notifier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

// HTTPMailSender posts to the mail relay. Mail is a non-critical side
// channel: every failure is logged and swallowed.
type HTTPMailSender struct {
	Address    string
	httpClient *http.Client
}

func NewHTTPMailSender(address string) *HTTPMailSender {
	return &HTTPMailSender{
		Address:    address,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *HTTPMailSender) Send(subject, body, recipient string) error {
	payload, err := json.Marshal(MailPayload{
		Subject:   subject,
		Body:      body,
		Recipient: recipient,
	})
	if err != nil {
		log.Printf("Failed to marshal mail payload: %v\n", err)
		return err
	}

	resp, err := s.httpClient.Post(fmt.Sprintf("%s/mail/send", s.Address), "application/json", bytes.NewBuffer(payload))
	if err != nil {
		log.Printf("Mail send failed: %v\n", err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	log.Printf("Mail relay returned status %d", resp.StatusCode)
	return fmt.Errorf("mail relay returned status %d", resp.StatusCode)
}
