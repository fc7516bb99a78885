package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/pathlight/pathlight-backend/internal/config"
	"github.com/pathlight/pathlight-backend/internal/database"
	"github.com/pathlight/pathlight-backend/internal/logger"
	"github.com/pathlight/pathlight-backend/internal/model"
	"github.com/pathlight/pathlight-backend/internal/repository"
	"github.com/pathlight/pathlight-backend/internal/service"
	"golang.org/x/term"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	learnerRepo := repository.NewLearnerRepository(pool)
	authService := service.NewAuthService(cfg, rdb)

	// ─── CLI Input ─────────────────────────────────────────────────────
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Create New Learner ===")

	// Name
	fmt.Print("Enter Name: ")
	name, _ := reader.ReadString('\n')
	name = strings.TrimSpace(name)
	if name == "" {
		fmt.Println("Error: Name is required")
		return
	}

	// Email
	fmt.Print("Enter Email: ")
	email, _ := reader.ReadString('\n')
	email = strings.TrimSpace(email)
	if email == "" {
		fmt.Println("Error: Email is required")
		return
	}

	// Password
	fmt.Print("Enter Password: ")
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		fmt.Println("\nError reading password")
		return
	}
	password := string(bytePassword)
	fmt.Println() // Newline after password input
	if len(password) < 6 {
		fmt.Println("Error: Password must be at least 6 characters")
		return
	}

	// ─── Logic ─────────────────────────────────────────────────────────

	hash, err := authService.HashPassword(password)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to hash password")
	}

	learner := &model.Learner{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}

	if err := learnerRepo.Create(ctx, learner); err != nil {
		log.Fatal().Err(err).Msg("Failed to create learner")
	}

	// A token for local API poking, same as what /api/v1/auth/login returns.
	token, err := authService.GenerateLearnerToken(ctx, learner.ID)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to generate token")
	}

	fmt.Printf("\nSuccess! Learner '%s' (%s) created with ID: %d\n", learner.Name, learner.Email, learner.ID)
	fmt.Printf("Dev token:\n%s\n", token)
}
