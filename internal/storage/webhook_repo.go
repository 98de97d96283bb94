package storage

import (
	"time"

	"github.com/manav03panchal/crewboard/internal/errors"
	"github.com/manav03panchal/crewboard/internal/model"
)

// WebhookRepo provides operations for saved webhook endpoints.
type WebhookRepo struct {
	db *DB
}

// NewWebhookRepo creates a new webhook repository.
func NewWebhookRepo(db *DB) *WebhookRepo {
	return &WebhookRepo{db: db}
}

// Save creates or replaces a webhook. Replacing keeps the original creation time.
func (r *WebhookRepo) Save(webhook *model.Webhook) error {
	webhook.Key = model.GenerateWebhookKey(webhook.Name)
	if existing, err := r.Get(webhook.Name); err == nil {
		webhook.CreatedAt = existing.CreatedAt
	}
	if webhook.CreatedAt.IsZero() {
		webhook.CreatedAt = time.Now()
	}
	return r.db.Set(webhook)
}

// Get retrieves a webhook by name.
func (r *WebhookRepo) Get(name string) (*model.Webhook, error) {
	webhook := &model.Webhook{}
	if err := r.db.Get(model.GenerateWebhookKey(name), webhook); err != nil {
		if IsErrKeyNotFound(err) {
			return nil, errors.NewUserErrorFrom(errors.ErrWebhookNotFound, "name", name)
		}
		return nil, err
	}
	return webhook, nil
}

// Resolve picks the webhook to send to. An empty name means the default
// webhook, or the only one saved.
func (r *WebhookRepo) Resolve(name string) (*model.Webhook, error) {
	if name != "" {
		return r.Get(name)
	}
	if wh, err := r.Get(model.DefaultWebhookName); err == nil {
		return wh, nil
	}
	all, err := r.List()
	if err != nil {
		return nil, err
	}
	switch len(all) {
	case 0:
		return nil, errors.ErrWebhookNotConfigured
	case 1:
		return all[0], nil
	}
	return nil, errors.NewUserError(
		"several webhooks are saved and none is named 'default'",
		"Pass --name <webhook> to choose one.",
	)
}

// List retrieves all webhooks.
func (r *WebhookRepo) List() ([]*model.Webhook, error) {
	return GetAllByPrefix(r.db, model.PrefixWebhook+":", func() *model.Webhook {
		return &model.Webhook{}
	})
}

// Delete removes a webhook by name.
func (r *WebhookRepo) Delete(name string) error {
	if _, err := r.Get(name); err != nil {
		return err
	}
	return r.db.Delete(model.GenerateWebhookKey(name))
}

// UpdateLastUsed records a successful delivery and clears the last error.
func (r *WebhookRepo) UpdateLastUsed(name string, at time.Time) error {
	webhook, err := r.Get(name)
	if err != nil {
		return err
	}
	webhook.LastUsed = at
	webhook.LastError = ""
	return r.db.Set(webhook)
}

// RecordError stores the outcome of a failed delivery.
func (r *WebhookRepo) RecordError(name string, sendErr error) error {
	webhook, err := r.Get(name)
	if err != nil {
		return err
	}
	webhook.LastError = sendErr.Error()
	return r.db.Set(webhook)
}

// Exists checks if a webhook with the given name exists.
func (r *WebhookRepo) Exists(name string) (bool, error) {
	return r.db.Exists(model.GenerateWebhookKey(name))
}
