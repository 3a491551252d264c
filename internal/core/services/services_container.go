package services

import (
	portssvc "github.com/hardiknj/auth_session_app/internal/core/ports/services"
	"github.com/hardiknj/auth_session_app/internal/platform/config"
	"github.com/hardiknj/auth_session_app/internal/repositories/database/pgsql"
)

// NewServiceContainer wires the concrete services behind their facades.
func NewServiceContainer(
	cfg *config.Config,
	repos *pgsql.RepositoryContainer,
	mailer portssvc.MailerSvc,
	geoLocator portssvc.GeoLocatorSvc,
) *portssvc.ServiceContainer {
	tokenSvc := NewTokenService(cfg)
	return &portssvc.ServiceContainer{
		User:       NewUserService(cfg, repos.User, repos.Session, mailer),
		Session:    NewSessionService(cfg, repos.Session, repos.User, tokenSvc, geoLocator),
		Token:      tokenSvc,
		GoogleAuth: NewGoogleAuthService(cfg),
	}
}
