// Package media turns image sources into public objects in an S3-compatible
// store and removes them again.
//
// A Client built without credentials is still usable: uploads fail with
// errorx.NotConfigured and deletes are no-ops, so the rest of the service keeps
// running when storage is absent.
package media

import (
	"time"

	"github.com/farmlink/backend/pkg/logger"
	"github.com/farmlink/backend/pkg/pubsub"
	"github.com/farmlink/backend/pkg/storage"
)

const (
	defaultFetchTimeout  = 30 * time.Second
	defaultMaxSourceSize = 10 << 20
)

type Client struct {
	store     storage.Storage
	fetcher   Fetcher
	logger    logger.Logger
	publisher pubsub.Publisher
	orphans   OrphanLedger
}

type Option func(*Client)

// WithStore replaces the backend that NewClient would build from the configs.
func WithStore(store storage.Storage) Option {
	return func(c *Client) { c.store = store }
}

func WithFetcher(fetcher Fetcher) Option {
	return func(c *Client) { c.fetcher = fetcher }
}

func WithLogger(logger logger.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

func WithPublisher(publisher pubsub.Publisher) Option {
	return func(c *Client) { c.publisher = publisher }
}

func WithOrphanLedger(ledger OrphanLedger) Option {
	return func(c *Client) { c.orphans = ledger }
}

// NewClient never touches the network. It returns an unconfigured Client, and
// logs a single warning, when the endpoint or access key is missing or the
// backend cannot be built.
func NewClient(cfg storage.Configs, opts ...Option) *Client {
	c := &Client{}
	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = logger.NewLogger(logger.INFO)
	}
	if c.fetcher == nil {
		c.fetcher = NewHTTPFetcher(defaultFetchTimeout, defaultMaxSourceSize)
	}

	if !cfg.Enabled() {
		c.store = nil
		c.logger.Warnf("media: object storage is not configured, image uploads are disabled")
		return c
	}

	if c.store == nil {
		store, err := storage.New(cfg)
		if err != nil {
			c.logger.Warnf("media: cannot initialize object storage, image uploads are disabled: %v", err)
			return c
		}
		c.store = store
	}

	return c
}

func (c *Client) Configured() bool {
	return c != nil && c.store != nil
}
