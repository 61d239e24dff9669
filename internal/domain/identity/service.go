package identity

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mediscan/mediscan/internal/platform/apperr"
	"github.com/mediscan/mediscan/internal/platform/auth"
)

type Service struct {
	repo      Repository
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewService(repo Repository, jwtSecret []byte, tokenTTL time.Duration) *Service {
	return &Service{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// RegisterInput carries the registration form fields.
type RegisterInput struct {
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Password     string   `json:"password"`
	Role         string   `json:"role"`
	Specialty    string   `json:"specialty"`
	Availability []string `json:"availability"`
}

// Register creates a new account. The role defaults to patient; specialty and
// availability are only retained when the role is doctor.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, apperr.New(apperr.Validation, "name, email and password are required")
	}

	role := in.Role
	if role == "" {
		role = auth.RolePatient
	}
	if role != auth.RolePatient && role != auth.RoleDoctor {
		return nil, apperr.Newf(apperr.Validation, "unknown role %q", role)
	}

	if _, err := s.repo.GetByEmail(ctx, in.Email); err == nil {
		return nil, apperr.New(apperr.Conflict, "email already registered")
	} else if !apperr.Is(err, apperr.NotFound) {
		return nil, apperr.Wrap(apperr.Internal, "could not check email", err)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "could not hash password", err)
	}

	u := &User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         role,
	}
	if role == auth.RoleDoctor {
		if in.Specialty != "" {
			u.Specialty = &in.Specialty
		}
		u.Availability = in.Availability
	}

	if err := s.repo.Create(ctx, u); err != nil {
		if apperr.Is(err, apperr.Conflict) {
			return nil, err
		}
		return nil, apperr.Wrap(apperr.Internal, "could not create user", err)
	}
	return u, nil
}

// Authenticate verifies the credentials and returns the caller identity plus
// a signed bearer token. Unknown email and wrong password yield the same
// message.
func (s *Service) Authenticate(ctx context.Context, email, password string) (auth.Identity, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return auth.Identity{}, "", apperr.New(apperr.Validation, "email and password are required")
	}

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return auth.Identity{}, "", apperr.New(apperr.Unauthenticated, "invalid email or password")
	}
	if !auth.CheckPassword(u.PasswordHash, password) {
		return auth.Identity{}, "", apperr.New(apperr.Unauthenticated, "invalid email or password")
	}

	id := auth.Identity{ID: u.ID, Role: u.Role, Email: u.Email, Name: u.Name}
	token, err := auth.IssueToken(id, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return auth.Identity{}, "", apperr.Wrap(apperr.Internal, "could not issue token", err)
	}
	return id, token, nil
}

// GetByID returns one user record.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

// ListDoctors returns all doctor accounts for the booking directory.
func (s *Service) ListDoctors(ctx context.Context) ([]*User, error) {
	doctors, err := s.repo.ListDoctors(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "could not list doctors", err)
	}
	return doctors, nil
}
