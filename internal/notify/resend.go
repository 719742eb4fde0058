// Package notify sends transactional email through the Resend API.
// Delivery failure is a soft outcome: callers get a boolean, log, and move
// on. A lost email never ends a session.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.resend.com"

type emailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// HTTPStatusError captures non-2xx responses from the email provider.
type HTTPStatusError struct {
	StatusCode int
	Body       string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("notify: unexpected status %d: %s", e.StatusCode, e.Body)
}

type Client struct {
	baseURL    string
	apiKey     string
	from       string
	httpClient *http.Client
}

func NewClient(apiKey, baseURL, from string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		from:       from,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// SendWelcome mails a new contact after their profile was captured.
func (c *Client) SendWelcome(ctx context.Context, email, name string) bool {
	html := fmt.Sprintf(`<h2>Welcome, %s!</h2>
<p>Thank you for contacting us. We've received your information
and someone from our team will be in touch soon.</p>
<p>In the meantime, feel free to reply to this email if you have any questions.</p>
<br>
<p>Best regards,<br>The Support Team</p>`, name)

	if err := c.send(ctx, email, "Thanks for Reaching out!", html); err != nil {
		log.Printf("welcome email to %s failed: %v", email, err)
		return false
	}
	return true
}

// SendReminder mails an upcoming-consultation reminder.
func (c *Client) SendReminder(ctx context.Context, email, name string, scheduledFor time.Time) bool {
	html := fmt.Sprintf(`<h2>Hi %s!</h2>
<p>This is a friendly reminder that your consultation is scheduled for:</p>
<p><strong>%s</strong></p>
<p>If you need to reschedule, please let us know.</p>
<br>
<p>Best regards,<br>The Support Team</p>`, name, scheduledFor.Format("2006-01-02 15:04"))

	if err := c.send(ctx, email, "Reminder: Your Consultation is Coming Up!", html); err != nil {
		log.Printf("reminder email to %s failed: %v", email, err)
		return false
	}
	return true
}

func (c *Client) send(ctx context.Context, to, subject, html string) error {
	body, err := json.Marshal(emailRequest{
		From:    c.from,
		To:      []string{to},
		Subject: subject,
		HTML:    html,
	})
	if err != nil {
		return fmt.Errorf("marshal email request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/emails", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send email request: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		buf, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return &HTTPStatusError{StatusCode: res.StatusCode, Body: string(buf)}
	}
	return nil
}
