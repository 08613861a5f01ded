package setup

import (
	"github.com/isodigm/blogcms/internal/config"
	"github.com/isodigm/blogcms/internal/handler"
	"github.com/isodigm/blogcms/internal/jwt"
	"github.com/isodigm/blogcms/internal/mailer"
	"github.com/isodigm/blogcms/internal/service"
	"github.com/isodigm/blogcms/internal/storage/pg"
)

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Config  *config.Config
	Storage *pg.Storage
	Handler *handler.Handler
	Jwt     *jwt.Jwt
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(cfg)
	if err != nil {
		return nil, err
	}

	mail := mailer.New(&cfg.Private.Smtp, cfg.Public.BaseURL)
	tokens := jwt.New(cfg.JwtKey(), cfg.JwtTTL())

	auth := service.NewAuth(storage, mail, tokens, cfg)
	posts := service.NewPosts(storage)
	comments := service.NewComments(storage, mail)
	categories := service.NewCategories(storage)
	settings := service.NewSettings(storage)

	h := handler.New(auth, posts, comments, categories, settings)

	return &Dependencies{
		Config:  cfg,
		Storage: storage,
		Handler: h,
		Jwt:     tokens,
	}, nil
}
