package infra_redis_codecache

import (
	"context"

	"github.com/go-redis/redis"
)

// Driver mirrors allocated room codes in a redis set so allocation can
// skip obviously-taken codes without a round trip to postgres. The unique
// index on rooms.code stays authoritative; this set is best effort.
type Driver struct {
	client *redis.Client
	key    string
}

func New(client *redis.Client, key string) *Driver {
	return &Driver{
		client: client,
		key:    key,
	}
}

func (d *Driver) Contains(ctx context.Context, code string) (bool, error) {
	taken, err := d.client.SIsMember(d.key, code).Result()
	if err != nil {
		return false, err
	}
	return taken, nil
}

func (d *Driver) Add(ctx context.Context, code string) error {
	if err := d.client.SAdd(d.key, code).Err(); err != nil {
		return err
	}
	return nil
}

func (d *Driver) Remove(ctx context.Context, code string) error {
	if err := d.client.SRem(d.key, code).Err(); err != nil {
		return err
	}
	return nil
}
