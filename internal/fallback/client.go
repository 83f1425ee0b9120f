package fallback

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// ErrNotFound is returned when no snapshot exists under a key
var ErrNotFound = errors.New("fallback: key not found")

// Client is the local fallback store: a string-keyed collection of
// JSON-serialized snapshots, one whole collection per key. Writes replace
// the entire snapshot; there is no row-level update.
type Client struct {
	rdb *redis.Client
}

// NewClient creates a new fallback store client
func NewClient(addr, password string, db int) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// GetClient returns the underlying Redis client
func (c *Client) GetClient() *redis.Client {
	return c.rdb
}

// Close closes the connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

func ownerKey(userID string) string {
	if userID == "" {
		return "anonymous"
	}
	return userID
}

func snapshotKey(userID, collection string) string {
	return fmt.Sprintf("fallback:%s:%s", ownerKey(userID), collection)
}

// GetSnapshot reads the last-known snapshot of a collection into dest
func (c *Client) GetSnapshot(ctx context.Context, userID, collection string, dest interface{}) error {
	raw, err := c.rdb.Get(ctx, snapshotKey(userID, collection)).Bytes()
	if err == redis.Nil {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("fallback get %s: %w", collection, err)
	}
	return json.Unmarshal(raw, dest)
}

// SetSnapshot replaces the whole snapshot of a collection
func (c *Client) SetSnapshot(ctx context.Context, userID, collection string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("fallback marshal %s: %w", collection, err)
	}
	return c.rdb.Set(ctx, snapshotKey(userID, collection), raw, 0).Err()
}

// GetCart reads a user's cart into dest
func (c *Client) GetCart(ctx context.Context, userID string, dest interface{}) error {
	raw, err := c.rdb.Get(ctx, fmt.Sprintf("cart:%s", ownerKey(userID))).Bytes()
	if err == redis.Nil {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("fallback get cart: %w", err)
	}
	return json.Unmarshal(raw, dest)
}

// SetCart replaces a user's cart
func (c *Client) SetCart(ctx context.Context, userID string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("fallback marshal cart: %w", err)
	}
	return c.rdb.Set(ctx, fmt.Sprintf("cart:%s", ownerKey(userID)), raw, 0).Err()
}

// DeleteCart removes a user's cart
func (c *Client) DeleteCart(ctx context.Context, userID string) error {
	return c.rdb.Del(ctx, fmt.Sprintf("cart:%s", ownerKey(userID))).Err()
}

// GetProfile reads a user's saved checkout profile into dest
func (c *Client) GetProfile(ctx context.Context, userID string, dest interface{}) error {
	raw, err := c.rdb.Get(ctx, fmt.Sprintf("profile:%s", ownerKey(userID))).Bytes()
	if err == redis.Nil {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("fallback get profile: %w", err)
	}
	return json.Unmarshal(raw, dest)
}

// SetProfile replaces a user's saved checkout profile
func (c *Client) SetProfile(ctx context.Context, userID string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("fallback marshal profile: %w", err)
	}
	return c.rdb.Set(ctx, fmt.Sprintf("profile:%s", ownerKey(userID)), raw, 0).Err()
}
