package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/academylabs/backend/domain"
	"github.com/academylabs/backend/internal/config"
	pgInfra "github.com/academylabs/backend/internal/infrastructure/postgres"
	redisInfra "github.com/academylabs/backend/internal/infrastructure/redis"
	"github.com/academylabs/backend/pkg/logger"
	"github.com/academylabs/backend/repository/postgres"
	redisRepo "github.com/academylabs/backend/repository/redis"
)

const usage = `academy-admin manages identities out of band.

Commands:
  seed-admin  -email EMAIL -password PASSWORD [-super]
      Create an identity with admin (optionally superAdmin) claims.
  set-claims  -uid UID [-admin] [-super]
      Replace the identity's privilege flags.
  revoke      -uid UID
      Force-expire every session of the identity.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fatal("config error: %v", err)
	}
	zapLogger, err := logger.New(logger.Config{Level: "warn", Encoding: "console"})
	if err != nil {
		fatal("logger error: %v", err)
	}
	defer zapLogger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	pool, err := pgInfra.NewPool(ctx, cfg.Database, zapLogger)
	if err != nil {
		fatal("postgres connection failed: %v", err)
	}
	defer pool.Close()

	identities := postgres.NewIdentityRepository(pool)
	users := postgres.NewUserRepository(pool)

	switch os.Args[1] {
	case "seed-admin":
		fs := flag.NewFlagSet("seed-admin", flag.ExitOnError)
		email := fs.String("email", "", "identity email")
		password := fs.String("password", "", "initial password")
		super := fs.Bool("super", false, "grant superAdmin as well")
		fs.Parse(os.Args[2:])
		if *email == "" || *password == "" {
			fatal("seed-admin requires -email and -password")
		}

		identity := &domain.Identity{
			ID:    uuid.NewString(),
			Email: *email,
			Claims: domain.Claims{
				Admin:      true,
				SuperAdmin: *super,
				Version:    domain.ClaimsVersion,
			},
			Active: true,
		}
		if err := identity.SetPassword(*password); err != nil {
			fatal("password hash failed: %v", err)
		}
		if err := identities.Create(ctx, identity); err != nil {
			fatal("identity create failed: %v", err)
		}
		user := &domain.User{
			ID:     identity.ID,
			Email:  identity.Email,
			Roles:  []string{domain.RoleAdmin},
			Status: "active",
		}
		if err := users.Upsert(ctx, user); err != nil {
			fatal("user record create failed: %v", err)
		}
		fmt.Println(identity.ID)

	case "set-claims":
		fs := flag.NewFlagSet("set-claims", flag.ExitOnError)
		uid := fs.String("uid", "", "target identity id")
		admin := fs.Bool("admin", false, "grant admin")
		super := fs.Bool("super", false, "grant superAdmin")
		fs.Parse(os.Args[2:])
		if *uid == "" {
			fatal("set-claims requires -uid")
		}
		err := identities.SetClaims(ctx, *uid, domain.Claims{
			Admin:      *admin,
			SuperAdmin: *super,
			Version:    domain.ClaimsVersion,
		})
		if err != nil {
			fatal("set claims failed: %v", err)
		}

	case "revoke":
		fs := flag.NewFlagSet("revoke", flag.ExitOnError)
		uid := fs.String("uid", "", "target identity id")
		fs.Parse(os.Args[2:])
		if *uid == "" {
			fatal("revoke requires -uid")
		}
		redisClient, err := redisInfra.NewClient(cfg.Redis)
		if err != nil {
			fatal("redis connection failed: %v", err)
		}
		defer redisClient.Close()
		revocations := redisRepo.NewRevocationRepository(redisClient, cfg.Auth.RefreshWindow)
		if err := revocations.Revoke(ctx, *uid, time.Now()); err != nil {
			fatal("revoke failed: %v", err)
		}

	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
