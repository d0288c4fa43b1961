// Command token signs an access token with the configured secret so the
// board API can be called locally without the identity service.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	model "board-post-service/internal/domain/models"
	"board-post-service/internal/infrastructure/auth"
	"board-post-service/internal/infrastructure/config"
)

func main() {
	var (
		userID   int64
		nickname string
		interest string
		ttl      time.Duration
	)
	flag.Int64Var(&userID, "user", 0, "user id to embed")
	flag.StringVar(&nickname, "nickname", "", "display name to embed")
	flag.StringVar(&interest, "interest", "", "interest category for the interest feed")
	flag.DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	flag.Parse()

	if userID <= 0 {
		fmt.Fprintln(os.Stderr, "token: -user must be a positive id")
		os.Exit(2)
	}

	cfg := config.MustLoad()
	token, err := auth.GenerateToken([]byte(cfg.Auth.JWTSecret), &model.User{
		ID:       userID,
		Nickname: nickname,
		Interest: interest,
	}, ttl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "sign token: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(token)
}
