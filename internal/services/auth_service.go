package services

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"errors"
	"strings"
	"time"

	intconfig "valleycars/internal/config"
	"valleycars/internal/domain"
	"valleycars/internal/domain/models"
	"valleycars/internal/repositories"
	"valleycars/internal/utils"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// StaticTokenSubject identifies callers authenticated with ADMIN_API_TOKEN.
const StaticTokenSubject = "admin-token"

var errBadCredentials = domain.UnauthorizedError{Msg: "invalid email or password"}

type AuthService struct {
	AdminRepo     repositories.AdminRepository
	JWTSecret     string
	JWTIssuer     string
	JWTTTL        time.Duration
	AdminAPIToken string
	Now           func() time.Time
	RequestID     string
	DB            *sql.DB
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expires_at"`
	User      models.AdminUser `json:"user"`
}

func (s AuthService) repo() repositories.AdminRepository {
	if s.AdminRepo.DB != nil {
		return s.AdminRepo
	}
	if s.DB != nil {
		return repositories.AdminRepository{DB: s.DB}
	}
	return repositories.AdminRepository{DB: intconfig.DB}
}

func (s AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s AuthService) ttl() time.Duration {
	if s.JWTTTL > 0 {
		return s.JWTTTL
	}
	return 24 * time.Hour
}

// Login checks credentials and issues an HS256 token. Unknown emails,
// inactive users and wrong passwords all yield the same error.
func (s AuthService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	if strings.TrimSpace(s.JWTSecret) == "" {
		return LoginResult{}, domain.InternalError{Msg: "login is not configured"}
	}
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return LoginResult{}, domain.ValidationError{Field: "email", Msg: "email and password are required"}
	}

	user, err := s.repo().GetByEmail(ctx, email)
	if err != nil {
		if domain.IsNotFound(err) {
			return LoginResult{}, errBadCredentials
		}
		return LoginResult{}, err
	}
	if !user.Active {
		return LoginResult{}, errBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return LoginResult{}, errBadCredentials
	}

	now := s.now()
	exp := now.Add(s.ttl())
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  user.Role,
		"iss":   s.JWTIssuer,
		"iat":   now.Unix(),
		"exp":   exp.Unix(),
	})
	signed, err := token.SignedString([]byte(s.JWTSecret))
	if err != nil {
		return LoginResult{}, domain.InternalError{Msg: "failed to sign token", Err: err}
	}

	utils.LogEvent(s.RequestID, "auth", "login", "user_id="+user.ID)
	return LoginResult{Token: signed, ExpiresAt: exp.UTC(), User: user}, nil
}

// Verify accepts the static admin token or a token issued by Login.
func (s AuthService) Verify(raw string) (domain.RequestContext, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return domain.RequestContext{}, domain.UnauthorizedError{Msg: "missing token"}
	}
	if s.AdminAPIToken != "" && subtle.ConstantTimeCompare([]byte(raw), []byte(s.AdminAPIToken)) == 1 {
		return domain.RequestContext{Subject: StaticTokenSubject, Role: domain.RoleAdmin}, nil
	}
	if strings.TrimSpace(s.JWTSecret) == "" {
		return domain.RequestContext{}, domain.UnauthorizedError{Msg: "invalid token"}
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	}
	if s.JWTIssuer != "" {
		opts = append(opts, jwt.WithIssuer(s.JWTIssuer))
	}
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return []byte(s.JWTSecret), nil
	}, opts...)
	if err != nil {
		msg := "invalid token"
		if errors.Is(err, jwt.ErrTokenExpired) {
			msg = "token expired"
		}
		return domain.RequestContext{}, domain.UnauthorizedError{Msg: msg, Err: err}
	}

	sub, _ := claims.GetSubject()
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	if sub == "" || role == "" {
		return domain.RequestContext{}, domain.UnauthorizedError{Msg: "invalid token claims"}
	}
	return domain.RequestContext{Subject: sub, Email: email, Role: role}, nil
}

// EnsureAdmin creates the bootstrap admin account when it does not exist yet.
func (s AuthService) EnsureAdmin(ctx context.Context, name, email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil
	}
	_, err := s.repo().GetByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !domain.IsNotFound(err) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.InternalError{Msg: "failed to hash password", Err: err}
	}
	user, err := s.repo().Create(ctx, models.AdminUser{
		Name:         utils.FirstNonEmpty(name, "Administrator"),
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		Active:       true,
	})
	if err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "auth", "seed_admin", "user_id="+user.ID)
	return nil
}
