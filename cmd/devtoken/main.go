// Command devtoken prints a signed bearer token for calling the API during
// development. It signs with the same JWT_SECRET the server verifies with.
package main

import (
	"flag"
	"fmt"
	"os"

	"conferencecentral/config"
	"conferencecentral/internal/adapters/auth"
)

func main() {
	userID := flag.String("user", "dev-user", "subject user id")
	email := flag.String("email", "dev@conferencecentral.example", "email claim")
	expiry := flag.Duration("expiry", 0, "token lifetime (defaults to TOKEN_EXPIRY)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	ttl := *expiry
	if ttl == 0 {
		ttl = cfg.TokenExpiry
	}

	token, err := auth.NewJWTIssuer(cfg.JWTSecret).Issue(*userID, *email, ttl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "issue token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
