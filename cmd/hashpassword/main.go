package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/angelmondragon/storefront-backend/pkg/config"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/security"
)

// hashpassword prints an argon2id hash suitable for STOREFRONT_ADMIN_PASSWORD_HASH.
// The password is read from -password or, when omitted, from the first line of stdin.
func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "hashpassword", Output: os.Stderr})

	_ = godotenv.Load()

	password := flag.String("password", "", "password to hash (reads stdin when empty)")
	flag.Parse()

	var params config.PasswordConfig
	if err := envconfig.Process(config.EnvPrefix, &params); err != nil {
		logg.Error(ctx, "failed to load argon parameters", err)
		os.Exit(1)
	}

	value := *password
	if value == "" {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			logg.Error(ctx, "failed to read password from stdin", err)
			os.Exit(1)
		}
		value = strings.TrimRight(line, "\r\n")
	}
	if value == "" {
		logg.Error(ctx, "password is required", fmt.Errorf("empty password"))
		os.Exit(2)
	}

	hash, err := security.HashPassword(value, params)
	if err != nil {
		logg.Error(ctx, "failed to hash password", err)
		os.Exit(1)
	}
	fmt.Println(hash)
}
