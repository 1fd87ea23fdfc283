package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type Config struct {
	Host         string `split_words:"true" default:"localhost"`
	Port         int    `split_words:"true" default:"6379"`
	DB           int    `envconfig:"DB" default:"0"`
	Password     string `split_words:"true"`
	ReadTimeout  int    `split_words:"true" default:"3"`
	WriteTimeout int    `split_words:"true" default:"3"`
	DialTimeout  int    `split_words:"true" default:"5"`
}

// New builds a client from the config and verifies the connection with a
// ping, so a bad backing fails at startup rather than on first use.
func (r *Config) New() (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", r.Host, r.Port),
		DB:           r.DB,
		Password:     r.Password,
		ReadTimeout:  time.Duration(r.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(r.WriteTimeout) * time.Second,
		DialTimeout:  time.Duration(r.DialTimeout) * time.Second,
	})

	cmd := client.Ping(context.Background())
	if cmd.Err() != nil {
		return nil, cmd.Err()
	}

	return client, nil
}
