package admin

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"protrack-backend/internal/domain/audit"
	"protrack-backend/internal/domain/user"
	"protrack-backend/pkg/id"
)

var ErrInvalidInput = errors.New("email, role and password are required")

type Usecase struct {
	users    user.Repository
	trail    audit.Reader
	recorder audit.Recorder
}

func NewUsecase(users user.Repository, trail audit.Reader, recorder audit.Recorder) *Usecase {
	return &Usecase{users: users, trail: trail, recorder: recorder}
}

type CreateUserInput struct {
	Name     string
	Email    string
	Role     user.Role
	Password string
}

type UpdateUserInput struct {
	Name string
	Role user.Role
}

func (u *Usecase) ListUsers(ctx context.Context, p *user.Principal) ([]user.User, error) {
	if err := user.Authorize(p, user.RoleAdmin); err != nil {
		return nil, err
	}
	return u.users.List(ctx)
}

func (u *Usecase) CreateUser(ctx context.Context, p *user.Principal, in CreateUserInput) (*user.User, error) {
	if err := user.Authorize(p, user.RoleAdmin); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return nil, ErrInvalidInput
	}
	if !in.Role.Valid() {
		return nil, user.ErrInvalidRole
	}

	if _, err := u.users.GetByEmail(ctx, in.Email); err == nil {
		return nil, user.ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	account := &user.User{
		UserID:       id.NewID32(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         in.Role,
	}
	if err := u.users.Create(ctx, account); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, user.ErrEmailTaken
		}
		return nil, err
	}

	u.recorder.Record(ctx, audit.Entry{
		ActorID:   p.UserID,
		ActorRole: p.Role,
		Action:    "CREATE_USER",
		Entity:    "USER",
		EntityID:  account.UserID,
		Meta:      audit.Meta(map[string]any{"email": account.Email, "role": account.Role}),
	})
	return account, nil
}

func (u *Usecase) UpdateUser(ctx context.Context, p *user.Principal, userID string, in UpdateUserInput) (*user.User, error) {
	if err := user.Authorize(p, user.RoleAdmin); err != nil {
		return nil, err
	}
	if !in.Role.Valid() {
		return nil, user.ErrInvalidRole
	}

	account, err := u.users.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrNotFound
		}
		return nil, err
	}
	account.Name = in.Name
	account.Role = in.Role
	if err := u.users.Save(ctx, account); err != nil {
		return nil, err
	}

	u.recorder.Record(ctx, audit.Entry{
		ActorID:   p.UserID,
		ActorRole: p.Role,
		Action:    "UPDATE_USER",
		Entity:    "USER",
		EntityID:  account.UserID,
		Meta:      audit.Meta(map[string]any{"role": account.Role}),
	})
	return account, nil
}

func (u *Usecase) AuditLogs(ctx context.Context, p *user.Principal, limit, offset int) ([]audit.Entry, error) {
	if err := user.Authorize(p, user.RoleAdmin); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return u.trail.List(ctx, limit, offset)
}
