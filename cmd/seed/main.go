package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/mzkhan/auth-api/config"
	"github.com/mzkhan/auth-api/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "admin@example.com"
	password := "password123"
	identity := "first pet"

	passwordHash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}
	identityHash, err := helpers.HashIdentity(identity)
	if err != nil {
		log.Fatalf("failed to hash identity secret: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO users (email, password_hash, identity_hash, name, phone, role)
		VALUES ($1, $2, $3, $4, $5, 'admin')
		ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, email, passwordHash, identityHash, "Admin", "0000000000").Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	fmt.Printf("seeded admin: id=%s email=%s password=%s identity=%q\n", id, email, password, identity)
}
