package auth

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/GoAuth-Admin/GoAuth-Admin/internal/db/models"
	"github.com/GoAuth-Admin/GoAuth-Admin/internal/db/repository"
	"github.com/GoAuth-Admin/GoAuth-Admin/internal/service"
)

// Gateway implements registration, login and session resolution. Lookups run
// through the audited user service with the system actor; a registered user
// is not authenticated and has to log in afterwards.
type Gateway struct {
	users  *service.UserService
	roles  *service.RoleService
	hasher *Hasher
	tokens *TokenService
}

// NewGateway creates a Gateway over the given services and credential
// primitives.
func NewGateway(svcs *service.Services, hasher *Hasher, tokens *TokenService) *Gateway {
	return &Gateway{
		users:  svcs.Users,
		roles:  svcs.Roles,
		hasher: hasher,
		tokens: tokens,
	}
}

// Login verifies the credentials and issues a session token whose subject is
// the user's email. An unknown username, a failed lookup, a wrong password
// and a disabled account all yield ErrInvalidCredentials; nothing
// distinguishes them for the caller.
func (g *Gateway) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", ErrInvalidCredentials
	}

	user, err := g.users.FindByUsername(ctx, service.SystemActor, username)
	if err != nil {
		log.Debug().Err(err).Msg("login user lookup failed")

		return "", ErrInvalidCredentials
	}

	if !g.hasher.Verify(password, user.Password) || !user.Enabled {
		return "", ErrInvalidCredentials
	}

	token, err := g.tokens.Issue(user.Email)
	if err != nil {
		return "", errors.Wrap(err, "failed to issue session token")
	}

	return token, nil
}

// Register builds and persists a new user: generated id, hashed password,
// and the well-known default role when it exists. A missing default role is
// not fatal; the user is created with no roles. Registration never
// authenticates the caller.
func (g *Gateway) Register(ctx context.Context, username, email, firstName, lastName, password string) error {
	if username == "" {
		return repository.ErrUsernameEmpty
	}

	if email == "" {
		return repository.ErrEmailEmpty
	}

	if password == "" {
		return ErrPasswordEmpty
	}

	roleIDs, err := g.defaultRoles(ctx)
	if err != nil {
		return err
	}

	hash, err := g.hasher.Hash(password)
	if err != nil {
		return errors.Wrap(err, "failed to hash registration password")
	}

	user := models.NewUser(username, email, firstName, lastName, hash, roleIDs)

	if _, err := g.users.Create(ctx, service.SystemActor, user); err != nil {
		return err
	}

	log.Info().Str("username", username).Msg("user registered")

	return nil
}

// CurrentUser verifies the session token and resolves its subject to an
// enabled user. Every failure collapses into ErrTokenInvalid.
func (g *Gateway) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	subject, err := g.tokens.Verify(token)
	if err != nil {
		return nil, ErrTokenInvalid
	}

	user, err := g.users.FindByEmail(ctx, service.SystemActor, subject)
	if err != nil {
		log.Debug().Err(err).Msg("session user lookup failed")

		return nil, ErrTokenInvalid
	}

	if !user.Enabled {
		return nil, ErrTokenInvalid
	}

	return user, nil
}

// defaultRoles resolves the well-known default role by name. Absence is
// non-fatal and yields no roles; a backend failure is surfaced.
func (g *Gateway) defaultRoles(ctx context.Context) ([]string, error) {
	role, err := g.roles.FindByName(ctx, service.SystemActor, models.DefaultRoleName)

	switch {
	case repository.IsNotFound(err):
		log.Warn().Str("role", models.DefaultRoleName).Msg("default role not found, registering user without roles")

		return nil, nil
	case err != nil:
		return nil, err
	}

	return []string{role.ID}, nil
}
