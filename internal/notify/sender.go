package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/manav03panchal/crewboard/internal/config"
	"github.com/manav03panchal/crewboard/internal/logging"
	"github.com/manav03panchal/crewboard/internal/model"
	"github.com/manav03panchal/crewboard/internal/storage"
)

// Sender posts report text to saved webhooks and records the outcome on
// each webhook.
type Sender struct {
	webhookRepo *storage.WebhookRepo
	httpClient  *HTTPClient
	cfg         config.WebhookConfig
	now         func() time.Time
}

// NewSender creates a sender using the HTTP and webhook sections of cfg.
func NewSender(webhookRepo *storage.WebhookRepo, cfg *config.RuntimeConfig) *Sender {
	return &Sender{
		webhookRepo: webhookRepo,
		httpClient:  NewHTTPClient(cfg.HTTP),
		cfg:         cfg.Webhook,
		now:         time.Now,
	}
}

// DispatchResult contains the result of sending to a single webhook.
type DispatchResult struct {
	WebhookName string
	Success     bool
	StatusCode  int
	Attempts    int
	Duration    time.Duration
	Error       error
}

// SendReport posts text to the webhook. A success stamps LastUsed; a failure
// stores LastError.
func (s *Sender) SendReport(ctx context.Context, webhook *model.Webhook, text string) DispatchResult {
	result := DispatchResult{WebhookName: webhook.Name}
	log := logging.LoggerFromContext(ctx).With(
		logging.KeyWebhook, webhook.Name,
		logging.KeyURL, webhook.URL,
	)

	formatter := GetFormatter(webhook)
	payload, err := formatter.Format(NewMessage(text, s.cfg, s.now()))
	if err != nil {
		result.Error = fmt.Errorf("failed to format report: %w", err)
		s.updateWebhookStatus(webhook.Name, result.Error)
		return result
	}

	sendResult := s.httpClient.Send(ctx, webhook.URL, formatter.ContentType(), payload)
	result.StatusCode = sendResult.StatusCode
	result.Attempts = sendResult.Attempts
	result.Duration = sendResult.Duration
	result.Error = sendResult.Error
	result.Success = sendResult.Error == nil

	if result.Success {
		log.Info("report sent", logging.KeyAttempt, result.Attempts, logging.KeyDuration, result.Duration.Milliseconds())
	} else {
		log.Warn("report send failed", logging.KeyAttempt, result.Attempts, logging.KeyError, result.Error)
	}

	s.updateWebhookStatus(webhook.Name, result.Error)
	return result
}

// SendToName resolves a webhook by name (empty for the default) and sends to it.
func (s *Sender) SendToName(ctx context.Context, name, text string) (DispatchResult, error) {
	webhook, err := s.webhookRepo.Resolve(name)
	if err != nil {
		return DispatchResult{WebhookName: name}, err
	}
	return s.SendReport(ctx, webhook, text), nil
}

// Broadcast sends text to every saved webhook concurrently.
func (s *Sender) Broadcast(ctx context.Context, text string) ([]DispatchResult, error) {
	webhooks, err := s.webhookRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list webhooks: %w", err)
	}

	var wg sync.WaitGroup
	results := make([]DispatchResult, len(webhooks))
	for i, webhook := range webhooks {
		wg.Add(1)
		go func(idx int, wh *model.Webhook) {
			defer wg.Done()
			results[idx] = s.SendReport(ctx, wh, text)
		}(i, webhook)
	}

	wg.Wait()
	return results, nil
}

// updateWebhookStatus records the delivery outcome on the webhook.
func (s *Sender) updateWebhookStatus(name string, sendErr error) {
	var err error
	if sendErr == nil {
		err = s.webhookRepo.UpdateLastUsed(name, s.now())
	} else {
		err = s.webhookRepo.RecordError(name, sendErr)
	}
	if err != nil {
		logging.Warn("failed to record webhook status", logging.KeyWebhook, name, logging.KeyError, err)
	}
}
