package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fitbuilder/server/internal/repository"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

// casScript replaces KEYS[1] with ARGV[3] only if it still holds ARGV[2],
// or, when ARGV[1] is "absent", only if the key does not exist.
const casScript = `
if ARGV[1] == "absent" then
	if redis.call("EXISTS", KEYS[1]) == 1 then
		return 0
	end
elseif redis.call("GET", KEYS[1]) ~= ARGV[2] then
	return 0
end
redis.call("SET", KEYS[1], ARGV[3])
return 1
`

const (
	casModeAbsent = "absent"
	casModeMatch  = "match"
)

var _ repository.CASSlot = (*Slot)(nil)

// Slot stores routine collections as plain Redis string values, so several
// server processes can share one guest collection.
type Slot struct {
	client    *redis.Client
	keyPrefix string
}

func NewSlot(client *redis.Client, keyPrefix string) *Slot {
	return &Slot{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

func (s *Slot) Load(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := s.client.Get(ctx, s.keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (s *Slot) Store(ctx context.Context, key string, data []byte) error {
	return s.client.Set(ctx, s.keyPrefix+key, string(data), 0).Err()
}

func (s *Slot) CompareAndSwap(ctx context.Context, key string, old, next []byte) (bool, error) {
	mode := casModeMatch
	if old == nil {
		mode = casModeAbsent
	}
	res, err := s.client.Eval(ctx, casScript, []string{s.keyPrefix + key}, mode, string(old), string(next)).Int64()
	if err != nil {
		return false, err
	}
	return res == 1, nil
}

// ConnectRedis opens a client and checks it with a ping.
func ConnectRedis(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", addr, err)
	}

	log.Printf("connected to redis at %s (db %d)", addr, db)
	return client, nil
}
