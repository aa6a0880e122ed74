package router

import (
	"github.com/oksasatya/portfolio-api/internal/application"
	"github.com/oksasatya/portfolio-api/internal/container"
	"github.com/oksasatya/portfolio-api/internal/infrastructure/cache"
	"github.com/oksasatya/portfolio-api/internal/infrastructure/messaging"
	pginfra "github.com/oksasatya/portfolio-api/internal/infrastructure/postgres"
	"github.com/oksasatya/portfolio-api/internal/infrastructure/search"
	handlers "github.com/oksasatya/portfolio-api/internal/interface/http"
	"github.com/oksasatya/portfolio-api/internal/router/modules"
	"github.com/oksasatya/portfolio-api/pkg/helpers"
)

// Services are the application services built from the container singletons.
type Services struct {
	Auth         *application.AuthService
	Users        *application.UserService
	Achievements *application.AchievementService
	Projects     *application.ProjectService
	Resumes      *application.ResumeService
	Storage      *application.StorageService
}

// BuildServices wires repositories and optional adapters (reset store, mail
// queue, search index, object store) into the application services.
func BuildServices() Services {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	users := pginfra.NewUserRepository(pool)
	profiles := pginfra.NewProfileRepository(pool)
	achievements := pginfra.NewAchievementRepository(pool)
	projects := pginfra.NewProjectRepository(pool)
	resumes := pginfra.NewResumeRepository(pool)

	auth := application.NewAuthService(application.AuthConfigFrom(cfg), users, logger)
	userSvc := application.NewUserService(users, profiles, achievements, logger)
	userSvc.Projects = projects
	userSvc.Resumes = resumes

	if rdb := container.GetRedis(); rdb != nil {
		auth.Resets = cache.NewResetStore(rdb)
	}
	if pub := container.GetRabbitPub(); pub != nil {
		auth.Notifier = messaging.NewResetNotifier(pub, cfg.AppName, cfg.SupportURL)
	}
	if es := container.GetES(); es != nil {
		idx := search.NewProfileIndex(es, cfg.ESProfilesIndex)
		auth.Indexer = idx
		userSvc.Indexer = idx
	}
	objects := container.GetObjectStore()
	userSvc.Objects = objects

	return Services{
		Auth:         auth,
		Users:        userSvc,
		Achievements: application.NewAchievementService(achievements),
		Projects:     application.NewProjectService(projects),
		Resumes:      application.NewResumeService(resumes, users),
		Storage:      application.NewStorageService(objects),
	}
}

// InitModules builds every feature module and registers it with the router registry.
// Call once during startup after the container is populated.
func InitModules(r *Registry) Services {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	svc := BuildServices()
	tokens := svc.Auth.Tokens()

	cookies := helpers.NewCookieManager(cfg.CookieDomain, cfg.CookieSecure, cfg.IsProduction())

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(svc.Auth, cookies, logger), tokens))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(svc.Users, logger), tokens))
	r.Add(modules.NewAchievementModule(handlers.NewAchievementHandler(svc.Achievements, logger), tokens))
	r.Add(modules.NewProjectModule(handlers.NewProjectHandler(svc.Projects, logger), tokens))
	r.Add(modules.NewResumeModule(handlers.NewResumeHandler(svc.Resumes, logger), tokens))
	r.Add(modules.NewStorageModule(handlers.NewStorageHandler(svc.Storage, logger), tokens))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
	return svc
}
