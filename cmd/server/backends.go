package main

import (
	"context"
	"fmt"

	"fitbuilder/server/internal/config"
	"fitbuilder/server/internal/repository"
	"fitbuilder/server/internal/repository/local"
	"fitbuilder/server/internal/repository/redis"
	"fitbuilder/server/internal/storage"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

// closers releases clients in reverse order of acquisition.
type closers []func() error

func (c *closers) add(fn func() error) {
	*c = append(*c, fn)
}

func (c closers) Close() error {
	var err error
	for i := len(c) - 1; i >= 0; i-- {
		err = multierr.Append(err, c[i]())
	}
	return err
}

// clients lazily creates the S3 client shared by the slot and media storage.
type clients struct {
	cfg      config.Config
	s3Client *s3.Client
	closers  closers
}

func (c *clients) s3(ctx context.Context) (*s3.Client, error) {
	if c.s3Client != nil {
		return c.s3Client, nil
	}
	client, err := storage.NewS3Client(ctx, c.cfg.S3)
	if err != nil {
		return nil, fmt.Errorf("s3 client: %w", err)
	}
	c.s3Client = client
	return client, nil
}

// openSlot returns the slot the guest routine store persists to.
func (c *clients) openSlot(ctx context.Context) (repository.Slot, error) {
	switch c.cfg.Storage.Backend {
	case config.BackendMemory:
		log.Warnln("guest routines are kept in memory and are lost on restart")
		return local.NewMemorySlot(), nil
	case config.BackendFile:
		log.Infof("guest routines are stored under %s", c.cfg.Storage.Dir)
		return local.NewFileSlot(c.cfg.Storage.Dir), nil
	case config.BackendRedis:
		client, err := redis.ConnectRedis(ctx, c.cfg.Redis.Address, c.cfg.Redis.Password, c.cfg.Redis.DB)
		if err != nil {
			return nil, err
		}
		c.closers.add(client.Close)
		return redis.NewSlot(client, c.cfg.Redis.KeyPrefix), nil
	case config.BackendS3:
		client, err := c.s3(ctx)
		if err != nil {
			return nil, err
		}
		log.Infof("guest routines are stored in bucket %s under %s", c.cfg.S3.BucketName, c.cfg.S3.SlotPrefix)
		return storage.NewObjectSlot(client, c.cfg.S3.BucketName, c.cfg.S3.SlotPrefix), nil
	}
	return nil, fmt.Errorf("%w: %q", config.ErrUnknownBackend, c.cfg.Storage.Backend)
}

// openMedia presigns exercise media when a bucket is configured.
func (c *clients) openMedia(ctx context.Context) (storage.MediaStorage, error) {
	if !c.cfg.S3.MediaConfigured() {
		return storage.PassthroughMedia{}, nil
	}
	client, err := c.s3(ctx)
	if err != nil {
		return nil, err
	}
	return storage.NewS3Media(client, c.cfg.S3), nil
}

func (c *clients) openStore(ctx context.Context, opts ...local.Option) (*local.Store, error) {
	slot, err := c.openSlot(ctx)
	if err != nil {
		return nil, err
	}
	return local.NewStore(slot, c.cfg.Storage.Key, opts...), nil
}
