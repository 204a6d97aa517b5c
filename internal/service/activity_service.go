package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk/internal/config"
	"github.com/spec-kit/helpdesk/internal/events"
)

// ActivityService mirrors domain events into a bounded recent-activity feed
// in redis and logs each one.
type ActivityService struct {
	dispatcher events.Dispatcher
	client     *redis.Client
	logger     *zap.Logger
	cfg        config.ActivityConfig
}

// NewActivityService creates the service. A nil redis client keeps the feed
// disabled while event logging still works.
func NewActivityService(dispatcher events.Dispatcher, client *redis.Client, logger *zap.Logger, cfg config.ActivityConfig) *ActivityService {
	return &ActivityService{
		dispatcher: dispatcher,
		client:     client,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to lifecycle events.
func (a *ActivityService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventTicketCreated, a.record)
	a.dispatcher.Subscribe(events.EventTicketStatusChanged, a.record)
	a.dispatcher.Subscribe(events.EventTicketAssigned, a.record)
	a.dispatcher.Subscribe(events.EventTicketDeleted, a.record)
}

func (a *ActivityService) record(ctx context.Context, event events.Event) error {
	a.logger.Info("ticket activity",
		zap.String("event_type", string(event.Type)),
		zap.String("ticket_id", event.TicketID),
		zap.String("actor_id", event.ActorID),
		zap.String("actor_role", string(event.ActorRole)),
	)

	if a.client == nil {
		return nil
	}
	raw, err := json.Marshal(event)
	if err != nil {
		return err
	}

	pipe := a.client.Pipeline()
	pipe.LPush(ctx, a.cfg.FeedKey, raw)
	if a.cfg.MaxEntries > 0 {
		pipe.LTrim(ctx, a.cfg.FeedKey, 0, a.cfg.MaxEntries-1)
	}
	if a.cfg.TTLMinutes > 0 {
		pipe.Expire(ctx, a.cfg.FeedKey, time.Duration(a.cfg.TTLMinutes)*time.Minute)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		a.logger.Warn("activity feed write failed", zap.Error(err))
	}
	return nil
}

// Recent returns up to limit most-recent activity events, newest first.
func (a *ActivityService) Recent(ctx context.Context, limit int64) ([]events.Event, error) {
	if a.client == nil || limit <= 0 {
		return nil, nil
	}
	raws, err := a.client.LRange(ctx, a.cfg.FeedKey, 0, limit-1).Result()
	if err != nil {
		return nil, err
	}
	result := make([]events.Event, 0, len(raws))
	for _, raw := range raws {
		var event events.Event
		if err := json.Unmarshal([]byte(raw), &event); err != nil {
			continue
		}
		result = append(result, event)
	}
	return result, nil
}
