package main

import (
	"fmt"
	"log"
	"time"

	"github.com/docbrief/docbrief/pkg/config"
	pkgjwt "github.com/docbrief/docbrief/pkg/jwt"
)

// Prints signed bearer tokens for local development. Users are
// provisioned automatically on first authenticated request, so no
// database rows need to exist up front.
func main() {
	log.Println("🔑 Generating development tokens...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	verifier := pkgjwt.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.Issuer)

	testUsers := []struct {
		Subject string
		Email   string
		Name    string
	}{
		{Subject: "dev-alice", Email: "alice@test.local", Name: "Alice"},
		{Subject: "dev-bob", Email: "bob@test.local", Name: "Bob"},
		{Subject: "dev-charlie", Email: "charlie@test.local", Name: "Charlie"},
	}

	for _, u := range testUsers {
		token, err := verifier.Sign(u.Subject, u.Email, u.Name, 24*time.Hour)
		if err != nil {
			log.Fatalf("Failed to sign token for %s: %v", u.Email, err)
		}
		fmt.Printf("\n%s <%s>\n  Authorization: Bearer %s\n", u.Name, u.Email, token)
	}

	fmt.Println("\n✅ Tokens are valid for 24 hours")
}
