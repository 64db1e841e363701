// Command seedmanager provisions an operator account out of band. Seeded
// accounts are active immediately and skip email verification.
package main

import (
	"context"
	"flag"
	"log"

	"github.com/joho/godotenv"

	"github.com/dinhtankhiem/cua-hang-thuc-pham-xanh/domain"
	"github.com/dinhtankhiem/cua-hang-thuc-pham-xanh/internal/app"
	"github.com/dinhtankhiem/cua-hang-thuc-pham-xanh/internal/config"
)

func main() {
	_ = godotenv.Load()

	name := flag.String("name", "Store Manager", "display name")
	email := flag.String("email", "", "account email (required)")
	password := flag.String("password", "", "account password (required, min 8 chars)")
	role := flag.String("role", domain.RoleManager, "account role")
	flag.Parse()

	if *email == "" || len(*password) < 8 {
		log.Fatal("usage: seedmanager -email <email> -password <min 8 chars> [-name <name>] [-role <role>]")
	}
	if !domain.ValidRole(*role) {
		log.Fatalf("invalid role %q", *role)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	c, err := app.NewContainer(cfg)
	if err != nil {
		log.Fatalf("container: %v", err)
	}

	ctx := context.Background()

	if existing, err := c.UserRepo.FindByEmail(ctx, *email); err == nil && existing != nil {
		log.Fatalf("account %s already exists (%s)", *email, existing.DisplayID)
	}

	hash, err := c.PasswordSvc.Hash(*password)
	if err != nil {
		log.Fatalf("hash: %v", err)
	}

	seq, err := c.UserRepo.NextSequence(ctx, *role)
	if err != nil {
		log.Fatalf("sequence: %v", err)
	}

	user := &domain.User{
		DisplayID:    domain.FormatDisplayID(*role, seq),
		Name:         *name,
		Email:        *email,
		PasswordHash: hash,
		Role:         *role,
		Status:       domain.StatusActive,
	}

	if err := c.UserRepo.Create(ctx, user); err != nil {
		log.Fatalf("create: %v", err)
	}

	log.Printf("seeded %s account %s (%s)", user.Role, user.Email, user.DisplayID)
}
