package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/skillswap/backend/internal/infrastructure/outbox"
	"github.com/skillswap/backend/usecase"
)

// ConnectionHealth abstracts the connection monitor functionality.
type ConnectionHealth interface {
	IsOnline() bool
}

// SMTPSender is the concrete delivery mechanism behind the dispatcher.
type SMTPSender interface {
	Send(to, subject, body string) error
}

// DispatcherConfig controls how frequently the outbox is drained.
type DispatcherConfig struct {
	Interval   time.Duration
	BatchSize  int
	MaxRetries int
	Retention  time.Duration
}

// MailDispatcher delivers mail immediately when possible and falls back
// to the durable outbox, which a cron schedule drains.
type MailDispatcher struct {
	store  *outbox.Store
	health ConnectionHealth
	sender SMTPSender
	logger *zap.Logger
	cron   *cron.Cron
	cfg    DispatcherConfig
}

func NewMailDispatcher(
	store *outbox.Store,
	health ConnectionHealth,
	sender SMTPSender,
	logger *zap.Logger,
	cfg DispatcherConfig,
) *MailDispatcher {
	if cfg.Interval <= 0 {
		cfg.Interval = 30 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.Retention <= 0 {
		cfg.Retention = 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	d := &MailDispatcher{
		store:  store,
		health: health,
		sender: sender,
		logger: logger,
		cfg:    cfg,
		cron:   cron.New(cron.WithSeconds()),
	}

	schedule := fmt.Sprintf("@every %ds", int(cfg.Interval.Seconds()))
	_, _ = d.cron.AddFunc(schedule, func() {
		if err := d.Drain(); err != nil {
			d.logger.Error("outbox drain failed", zap.Error(err))
		}
	})
	_, _ = d.cron.AddFunc("@hourly", func() {
		if err := d.store.Cleanup(time.Now().Add(-d.cfg.Retention)); err != nil {
			d.logger.Warn("outbox cleanup failed", zap.Error(err))
		}
	})

	return d
}

// Start launches the cron scheduler.
func (d *MailDispatcher) Start() {
	if d == nil || d.cron == nil {
		return
	}
	d.cron.Start()
	d.logger.Info("mail dispatcher started")
}

// Stop gracefully stops the scheduler.
func (d *MailDispatcher) Stop(ctx context.Context) {
	if d == nil || d.cron == nil {
		return
	}
	stopCtx := d.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	d.logger.Info("mail dispatcher stopped")
}

// SendMail attempts immediate delivery and persists the message on
// failure so the request that triggered it still succeeds.
func (d *MailDispatcher) SendMail(ctx context.Context, to, subject, body string) error {
	if d == nil || d.store == nil {
		return fmt.Errorf("mail dispatcher not configured")
	}

	if err := d.sender.Send(to, subject, body); err == nil {
		return nil
	} else {
		d.logger.Warn("immediate mail delivery failed, queueing", zap.Error(err))
	}

	return d.store.Enqueue(outbox.Message{To: to, Subject: subject, Body: body})
}

// Drain retries queued messages synchronously.
func (d *MailDispatcher) Drain() error {
	if d == nil || d.store == nil {
		return nil
	}
	if d.health != nil && !d.health.IsOnline() {
		d.logger.Debug("skipping outbox drain (offline)")
		return nil
	}

	msgs, err := d.store.GetBatch(d.cfg.BatchSize)
	if err != nil {
		return err
	}

	for _, msg := range msgs {
		if err := d.sender.Send(msg.To, msg.Subject, msg.Body); err != nil {
			d.logger.Error("failed to deliver queued mail",
				zap.String("message_id", msg.ID),
				zap.Error(err))

			msg.Retries++
			if msg.Retries >= d.cfg.MaxRetries {
				d.logger.Warn("dropping queued mail (max retries reached)", zap.String("message_id", msg.ID))
				_ = d.store.Remove(msg)
				continue
			}

			if err := d.store.Remove(msg); err != nil {
				d.logger.Warn("failed to remove queued mail", zap.Error(err))
			}
			if err := d.store.Requeue(msg); err != nil {
				d.logger.Error("failed to requeue mail", zap.Error(err))
			}
			continue
		}

		if err := d.store.Remove(msg); err != nil {
			d.logger.Warn("failed to purge delivered mail", zap.Error(err))
		}
	}
	return nil
}

// Size returns the number of queued messages.
func (d *MailDispatcher) Size() int {
	if d == nil || d.store == nil {
		return 0
	}
	size, err := d.store.Size()
	if err != nil {
		return 0
	}
	return size
}

var _ usecase.MailSender = (*MailDispatcher)(nil)
