// Package scheduler runs live campaign dispatch over asynq.
package scheduler

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"recruit_portal_backend/platform/config"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

// Client enqueues campaign dispatch tasks.
type Client struct {
	client *asynq.Client
	queue  string
}

// NewClient creates the asynq client from the scheduler config.
func NewClient(cfg config.SchedulerConfig) (*Client, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	return &Client{
		client: asynq.NewClient(opt),
		queue:  queue,
	}, nil
}

// Close releases the underlying Redis connection.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// EnqueueDispatch queues a dispatch round for immediate processing.
func (c *Client) EnqueueDispatch(ctx context.Context, campaignID uuid.UUID) error {
	return c.enqueue(ctx, campaignID)
}

// EnqueueDispatchIn queues a dispatch round after the given delay. Used for
// retry backoff and call-window reopening.
func (c *Client) EnqueueDispatchIn(ctx context.Context, campaignID uuid.UUID, delay time.Duration) error {
	return c.enqueue(ctx, campaignID, asynq.ProcessIn(delay))
}

func (c *Client) enqueue(ctx context.Context, campaignID uuid.UUID, opts ...asynq.Option) error {
	if c == nil || c.client == nil {
		return fmt.Errorf("scheduler client not configured")
	}

	task, err := NewCampaignDispatchTask(CampaignDispatchPayload{CampaignID: campaignID.String()})
	if err != nil {
		return err
	}

	opts = append(opts, asynq.Queue(c.queue))
	_, err = c.client.EnqueueContext(ctx, task, opts...)
	return err
}

func redisClientOpt(redisURL string, tlsInsecure bool) (asynq.RedisClientOpt, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return asynq.RedisClientOpt{}, err
	}

	var tlsConfig *tls.Config
	if opt.TLSConfig != nil {
		clone := opt.TLSConfig.Clone()
		if tlsInsecure {
			clone.InsecureSkipVerify = true
		}
		tlsConfig = clone
	} else if tlsInsecure {
		tlsConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return asynq.RedisClientOpt{
		Addr:      opt.Addr,
		Password:  opt.Password,
		DB:        opt.DB,
		TLSConfig: tlsConfig,
	}, nil
}
