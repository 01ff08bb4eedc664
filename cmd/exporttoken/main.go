// Command exporttoken mints a bearer token for GET /api/export.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	jwttoken "symposium/internal/jwt_token"
	"symposium/internal/platform/config"
)

func main() {
	var subject string
	var ttl time.Duration

	flag.StringVar(&subject, "subject", "organizer", "who the token is issued to")
	flag.DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	if err := run(subject, ttl); err != nil {
		fmt.Fprintf(os.Stderr, "exporttoken: %v\n", err)
		os.Exit(1)
	}
}

func run(subject string, ttl time.Duration) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.Export.SigningKey == "" {
		return fmt.Errorf("EXPORT_SIGNING_KEY is not set")
	}
	if ttl <= 0 {
		return fmt.Errorf("-ttl must be positive")
	}

	token, err := jwttoken.NewJWTService(cfg.Export.SigningKey).GenerateToken(subject, jwttoken.ScopeExport, ttl)
	if err != nil {
		return fmt.Errorf("sign token: %w", err)
	}
	fmt.Println(token)
	return nil
}
