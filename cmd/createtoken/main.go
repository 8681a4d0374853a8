// Command createtoken mints a long-lived bearer token for a punch device.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"cardtime.app/cardtime/security"
)

func main() {
	userID := flag.String("user", "", "user id the token authenticates as")
	issuer := flag.String("issuer", "cardtime", "token issuer")
	audience := flag.String("audience", "cardtime", "token audience")
	timeout := flag.Duration("timeout", 24*time.Hour, "token lifetime")
	flag.Parse()

	if *userID == "" {
		fmt.Fprintln(os.Stderr, "usage: createtoken -user <id>")
		os.Exit(2)
	}

	token, err := security.CreateIdentityToken(*userID, security.TokenSettings{
		Issuer:   *issuer,
		Audience: *audience,
		SignKey:  os.Getenv("CARDTIME_JWT_SIGNKEY"),
		Timeout:  *timeout,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(token)
}
