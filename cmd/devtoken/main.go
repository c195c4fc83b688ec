// Command devtoken prints a bearer token for local testing of the booking API.
//
//	go run ./cmd/devtoken -user user-1
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/Eursukkul/hotel-booking/config"
	"github.com/Eursukkul/hotel-booking/pkg/jwt"
)

func main() {
	userID := flag.String("user", "", "user id to put in the token subject")
	ttl := flag.Duration("ttl", 0, "token lifetime (defaults to JWT_TTL)")
	flag.Parse()

	if *userID == "" {
		log.Fatal("-user is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if *ttl <= 0 {
		*ttl = cfg.JWTTTL
	}

	token, err := jwt.New(cfg.JWTSecret, *ttl).GenerateToken(*userID)
	if err != nil {
		log.Fatalf("failed to sign token: %v", err)
	}
	fmt.Println(token)
}
