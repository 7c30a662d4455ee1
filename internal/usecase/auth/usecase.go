package auth

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"protrack-backend/internal/domain/audit"
	"protrack-backend/internal/domain/user"
)

type Usecase struct {
	users    user.Repository
	recorder audit.Recorder
	secret   string
	expiry   time.Duration
}

func NewUsecase(users user.Repository, recorder audit.Recorder, secret string, expiry time.Duration) *Usecase {
	return &Usecase{users: users, recorder: recorder, secret: secret, expiry: expiry}
}

type SessionDTO struct {
	Token string    `json:"token"`
	User  user.User `json:"user"`
}

// Login checks credentials and issues a session token. Unknown email and
// wrong password are indistinguishable to the caller.
func (u *Usecase) Login(ctx context.Context, email, password string) (*SessionDTO, error) {
	if email == "" || password == "" {
		return nil, user.ErrBadCredentials
	}

	account, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrBadCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return nil, user.ErrBadCredentials
	}

	token, err := CreateAccessToken(account, u.secret, u.expiry)
	if err != nil {
		return nil, err
	}

	u.recorder.Record(ctx, audit.Entry{
		ActorID:   account.UserID,
		ActorRole: account.Role,
		Action:    "LOGIN_SUCCESS",
		Entity:    "AUTH",
		EntityID:  account.UserID,
		Meta:      audit.Meta(map[string]any{"email": account.Email}),
	})
	return &SessionDTO{Token: token, User: *account}, nil
}
