package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/plateful/ordering-service/internal/config"
	"github.com/plateful/ordering-service/internal/infrastructure/persistence/redis"
	"github.com/plateful/ordering-service/internal/pkg/generator"
	"github.com/plateful/ordering-service/internal/pkg/logger"
)

// sessionctl issues and revokes bearer tokens against the session store.
// There is no signup flow in this service; operators mint sessions for the
// client apps with this tool.
//
//	sessionctl -config config.json create -user user-123
//	sessionctl -config config.json revoke -token <token>
func main() {
	configPath := flag.String("config", "config.json", "Path to configuration file")
	flag.Parse()

	log := logger.NewLogger()

	if flag.NArg() < 1 {
		usage()
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal("Failed to load configuration", "error", err)
	}

	redisConn, err := redis.NewConnection(cfg.Redis)
	if err != nil {
		log.Fatal("Failed to connect to Redis", "error", err)
	}
	defer redisConn.Close()

	sessions := redis.NewSessionStore(
		redisConn,
		time.Duration(cfg.Loyalty.SessionTTLMinutes)*time.Minute,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	switch flag.Arg(0) {
	case "create":
		fs := flag.NewFlagSet("create", flag.ExitOnError)
		userID := fs.String("user", "", "User ID to create a session for")
		fs.Parse(flag.Args()[1:])

		if *userID == "" {
			log.Fatal("create requires -user")
		}

		token := generator.NewReferenceGenerator().GenerateSessionToken()
		if err := sessions.PutSession(ctx, token, *userID); err != nil {
			log.Fatal("Failed to create session", "error", err, "user_id", *userID)
		}

		fmt.Println(token)

	case "revoke":
		fs := flag.NewFlagSet("revoke", flag.ExitOnError)
		token := fs.String("token", "", "Session token to revoke")
		fs.Parse(flag.Args()[1:])

		if *token == "" {
			log.Fatal("revoke requires -token")
		}

		if err := sessions.DeleteSession(ctx, *token); err != nil {
			log.Fatal("Failed to revoke session", "error", err)
		}

		log.Info("Session revoked")

	default:
		usage()
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: sessionctl [-config path] create -user <id> | revoke -token <token>")
	os.Exit(2)
}
