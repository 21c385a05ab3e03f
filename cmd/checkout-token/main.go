// Command checkout-token mints a buyer token for local testing against the
// checkout API. It reads the same AUTH_* settings as the server, and can
// generate a key with -new-key.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/MikeRez0/studiocheckout/internal/adapter/auth"
	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type tokenConfig struct {
	KeyHex string        `env:"AUTH_SYMMETRIC_KEY"`
	TTL    time.Duration `env:"AUTH_TOKEN_TTL" envDefault:"720h"`
}

func main() {
	buyer := flag.String("buyer", "", "buyer reference the token is issued to")
	envFile := flag.String("env-file", ".env", "optional env file")
	newKey := flag.Bool("new-key", false, "print a fresh AUTH_SYMMETRIC_KEY and exit")
	flag.Parse()

	if *newKey {
		tokens, err := auth.New("", 0)
		if err != nil {
			fmt.Fprintf(os.Stderr, "generate key: %s\n", err)
			os.Exit(1)
		}
		fmt.Println(tokens.KeyHex())
		return
	}

	if *buyer == "" {
		fmt.Fprintln(os.Stderr, "usage: checkout-token -buyer <buyer reference>")
		os.Exit(2)
	}

	_ = godotenv.Load(*envFile)

	conf := tokenConfig{}
	if err := env.Parse(&conf); err != nil {
		fmt.Fprintf(os.Stderr, "config error: %s\n", err)
		os.Exit(2)
	}
	if conf.KeyHex == "" {
		fmt.Fprintln(os.Stderr, "AUTH_SYMMETRIC_KEY is required")
		os.Exit(2)
	}

	tokens, err := auth.New(conf.KeyHex, conf.TTL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "token service: %s\n", err)
		os.Exit(1)
	}
	token, err := tokens.CreateToken(*buyer)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create token: %s\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
