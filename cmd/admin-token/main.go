// Command admin-token prints a bearer token for the /api/admin routes.
//
//	admin-token [subject] [ttl]
package main

import (
	"fmt"
	"os"
	"time"

	"funnel_backend/platform/config"
	"funnel_backend/platform/httpkit"

	"github.com/google/uuid"
)

const defaultTTL = 24 * time.Hour

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	subject := uuid.NewString()
	if len(os.Args) > 1 && os.Args[1] != "" {
		subject = os.Args[1]
	}

	ttl := defaultTTL
	if len(os.Args) > 2 {
		parsed, err := time.ParseDuration(os.Args[2])
		if err != nil || parsed <= 0 {
			panic("invalid ttl: " + os.Args[2])
		}
		ttl = parsed
	}

	token, err := httpkit.SignAccessToken(cfg, subject, []string{"admin"}, ttl)
	if err != nil {
		panic("failed to sign token: " + err.Error())
	}
	fmt.Println(token)
}
