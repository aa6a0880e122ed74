package main

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/portfolio-api/config"
	"github.com/oksasatya/portfolio-api/internal/application"
	pginfra "github.com/oksasatya/portfolio-api/internal/infrastructure/postgres"
	"github.com/oksasatya/portfolio-api/pkg/helpers"
)

// seed creates a demo account through the regular signup path so the stored
// hash and public handle follow the same rules as real users.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env, cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), pginfra.PoolOptions{AppName: cfg.AppName + "-seed", MaxConns: 2})
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	users := pginfra.NewUserRepository(pool)
	auth := application.NewAuthService(application.AuthConfigFrom(cfg), users, logger)
	achievements := application.NewAchievementService(pginfra.NewAchievementRepository(pool))
	projects := application.NewProjectService(pginfra.NewProjectRepository(pool))
	resumes := application.NewResumeService(pginfra.NewResumeRepository(pool), users)

	email := getenv("SEED_EMAIL", "demo@example.com")
	password := getenv("SEED_PASSWORD", "password123")

	res, err := auth.Signup(ctx, application.SignupInput{Email: email, Password: password, Name: "Demo User"})
	if errors.Is(err, application.ErrEmailTaken) {
		logger.WithField("email", email).Info("demo user already present, nothing to do")
		return
	}
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	// the seed never hands out a session
	if err := auth.Logout(ctx, res.User.ID); err != nil {
		log.Fatalf("failed to clear seeded session: %v", err)
	}

	link := "https://github.com/oksasatya"
	for _, title := range []string{"Launched portfolio", "First open source contribution"} {
		if _, err := achievements.Create(ctx, res.User.ID, application.AchievementInput{Title: title, Link: &link}); err != nil {
			log.Fatalf("failed to seed achievement: %v", err)
		}
	}

	// slugs are global, so the demo ones carry the handle
	public := "public"
	summary := "Backend for this portfolio"
	projectSlug := res.User.PublicHandle + "-portfolio-api"
	if _, err := projects.Create(ctx, res.User.ID, application.ProjectInput{
		Title:      "Portfolio API",
		Slug:       &projectSlug,
		ShortDesc:  &summary,
		TechStack:  []string{"go", "gin", "postgres", "redis"},
		Visibility: &public,
	}); err != nil {
		log.Fatalf("failed to seed project: %v", err)
	}

	resumeSlug := res.User.PublicHandle + "-resume"
	resume, err := resumes.Create(ctx, res.User.ID, application.ResumeInput{Title: "Demo Resume", Slug: &resumeSlug})
	if err != nil {
		log.Fatalf("failed to seed resume: %v", err)
	}
	if _, err := resumes.AddVersion(ctx, res.User.ID, resume.ID, application.VersionInput{Content: "# Demo User\n\nBackend engineer."}); err != nil {
		log.Fatalf("failed to seed resume version: %v", err)
	}
	if _, err := resumes.Publish(ctx, res.User.ID, resume.ID); err != nil {
		log.Fatalf("failed to publish resume: %v", err)
	}

	logger.WithFields(logrus.Fields{
		"id":     res.User.ID,
		"email":  email,
		"handle": res.User.PublicHandle,
	}).Info("seeded demo user")
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
