package rdx

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

var Conn *redis.Client

func init() {
	_ = godotenv.Load()

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	Conn = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := Conn.Ping(ctx).Err(); err != nil {
		log.Printf("Redis not reachable at %s: %v", addr, err)
	}
}

// Store adapts the redis connection to the key-value interface the booking
// store works against. Values are whole JSON documents; there are no
// partial writes.
type Store struct {
	conn *redis.Client
}

func NewStore() *Store {
	return &Store{conn: Conn}
}

// Get returns the value at key, or "" when the key does not exist.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	val, err := s.conn.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return val, err
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	return s.conn.Set(ctx, key, value, 0).Err()
}

func (s *Store) Del(ctx context.Context, key string) error {
	return s.conn.Del(ctx, key).Err()
}

// ---- Session helpers ----

const sessionTTL = 24 * time.Hour

// SetSession marks a user as logged in, storing their current token.
func SetSession(ctx context.Context, userID, token string) error {
	return Conn.Set(ctx, "session:"+userID, token, sessionTTL).Err()
}

// HasSession reports whether the user currently holds a login session.
func HasSession(ctx context.Context, userID string) bool {
	n, err := Conn.Exists(ctx, "session:"+userID).Result()
	return err == nil && n > 0
}

// ClearSession logs the user out.
func ClearSession(ctx context.Context, userID string) error {
	return Conn.Del(ctx, "session:"+userID).Err()
}

// ---- One-shot messages ----

// SetAuthMessage stores a message shown to the client on its next page
// load, e.g. "Please login to see your bookings".
func SetAuthMessage(ctx context.Context, clientKey, msg string) error {
	return Conn.Set(ctx, "authmsg:"+clientKey, msg, 10*time.Minute).Err()
}

// PopAuthMessage reads and clears the pending message in one step, so the
// client sees it exactly once.
func PopAuthMessage(ctx context.Context, clientKey string) string {
	msg, err := Conn.GetDel(ctx, "authmsg:"+clientKey).Result()
	if err != nil {
		return ""
	}
	return msg
}
