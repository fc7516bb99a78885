package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pathlight/pathlight-backend/internal/config"
	"github.com/pathlight/pathlight-backend/internal/database"
	"github.com/pathlight/pathlight-backend/internal/logger"
	"github.com/pathlight/pathlight-backend/internal/model"
	"github.com/pathlight/pathlight-backend/internal/repository"
	"github.com/pathlight/pathlight-backend/internal/service"
)

// Seeds a demo learner with a small Go backend roadmap and a couple of quiz
// attempts, enough to exercise every dashboard view locally.
func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	learnerRepo := repository.NewLearnerRepository(pool)
	roadmapRepo := repository.NewRoadmapRepository(pool)
	authService := service.NewAuthService(cfg, rdb)

	fmt.Println("=== Seeding Demo Learner ===")

	email := "demo@pathlight.local"
	learner, err := learnerRepo.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		hash, err := authService.HashPassword("pathlight")
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to hash password")
		}
		learner = &model.Learner{Name: "Demo Learner", Email: email, PasswordHash: hash}
		if err := learnerRepo.Create(ctx, learner); err != nil {
			log.Fatal().Err(err).Msg("Failed to create learner")
		}
		fmt.Printf("Created learner with ID: %d\n", learner.ID)
	} else if err != nil {
		log.Fatal().Err(err).Msg("Failed to check existing learner")
	} else {
		fmt.Printf("Found existing learner with ID: %d\n", learner.ID)
	}

	weeks := []struct {
		title string
		tasks []string
	}{
		{"Go Fundamentals", []string{"Install the toolchain", "Syntax and control flow", "Slices and maps"}},
		{"Concurrency", []string{"Goroutines", "Channels", "The select statement"}},
		{"HTTP Services", []string{"net/http basics", "Routing with Gin", "Middleware"}},
		{"Persistence", []string{"PostgreSQL with pgx", "Migrations", "Caching with Redis"}},
	}

	rm := &model.Roadmap{
		OwnerID:  learner.ID,
		Career:   "Go Backend Developer",
		Timeline: fmt.Sprintf("%d weeks", len(weeks)),
	}
	for i, w := range weeks {
		m := model.Milestone{
			ID:    uuid.New(),
			Title: w.title,
			Week:  i + 1,
		}
		for _, t := range w.tasks {
			m.Tasks = append(m.Tasks, model.Task{ID: uuid.New(), Title: t})
		}
		rm.Milestones = append(rm.Milestones, m)
	}

	if err := roadmapRepo.Create(ctx, rm); err != nil {
		log.Fatal().Err(err).Msg("Failed to create roadmap")
	}
	fmt.Printf("Created roadmap %s with %d milestones\n", rm.ID, len(rm.Milestones))

	// Two attempts on the first milestone: one fail, one pass. The pass
	// completes the milestone through the gating transaction.
	attempts := []*model.QuizReport{
		{Score: 2, Total: 5, StrongAreas: []string{"Syntax"}, WeakAreas: []string{"Slices", "Maps"}, Summary: "Shaky on collections."},
		{Score: 4, Total: 5, StrongAreas: []string{"Syntax", "Slices"}, WeakAreas: []string{"Maps"}, Summary: "Solid improvement."},
	}
	for _, a := range attempts {
		result, err := roadmapRepo.AddQuizReport(ctx, rm.ID, rm.Milestones[0].ID, learner.ID, a)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to record quiz report")
		}
		fmt.Printf("Recorded quiz: %d%% (passed: %t, roadmap progress: %d%%)\n",
			result.Percentage, result.Passed, result.NewTotalProgress)
	}

	fmt.Println("\nSeed completed! Log in with demo@pathlight.local / pathlight")
}
