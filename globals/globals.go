package globals

import (
	"context"
	"os"

	"github.com/joho/godotenv"
)

var JwtSecret []byte

// Context keys
type ContextKey string

const UserIDKey ContextKey = "userId"
const UsernameKey ContextKey = "username"

var Ctx = context.Background()

func init() {
	// .env may carry the secret; ignore if absent
	_ = godotenv.Load()
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "vroomly_dev_secret"
	}
	JwtSecret = []byte(secret)
}
