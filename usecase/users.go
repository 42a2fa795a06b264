package usecase

import (
	"context"
	"errors"
	"time"

	"main/model"
	"main/repository"
	"main/services"
	"main/utils"
)

type UserService struct {
	UsersRepo *repository.UsersRepo
}

func NewUserService(repo *repository.UsersRepo) *UserService {
	return &UserService{UsersRepo: repo}
}

// CreateUser registers a new account with a hashed password. Username and
// email must both be unused.
func (svc *UserService) CreateUser(ctx context.Context, user *model.User) error {
	existing, err := svc.UsersRepo.FindUserByUsername(ctx, user.Username)
	if err != nil {
		return err
	}
	if existing != nil {
		return errors.New("username already exists")
	}

	existing, err = svc.UsersRepo.FindUserByEmail(ctx, user.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		return errors.New("email already exists")
	}

	hashed, err := services.HashPassword(user.Password)
	if err != nil {
		return err
	}
	user.Password = hashed

	if user.UserID == "" {
		user.UserID = utils.GenerateUserID()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	return svc.UsersRepo.AddUser(ctx, user)
}

func (svc *UserService) FindUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return svc.UsersRepo.FindUserByUsername(ctx, username)
}

func (svc *UserService) FindUserByID(ctx context.Context, userID string) (*model.User, error) {
	return svc.UsersRepo.FindUserByID(ctx, userID)
}

// EnableTwoFactor generates a TOTP secret for the user. The secret is stored
// immediately but only marked enabled once the user verifies a code.
func (svc *UserService) EnableTwoFactor(ctx context.Context, userID string) (string, string, error) {
	user, err := svc.UsersRepo.FindUserByID(ctx, userID)
	if err != nil {
		return "", "", err
	}
	if user.TwoFactorEnabled {
		return "", "", errors.New("two-factor authentication already enabled")
	}

	secret, url, err := services.GenerateTOTPSecret(user.Username)
	if err != nil {
		return "", "", err
	}

	if err := svc.UsersRepo.UpdateTwoFactor(ctx, userID, secret, false); err != nil {
		return "", "", err
	}
	return secret, url, nil
}

// VerifyTwoFactor confirms the user's first TOTP code and switches the
// second factor on.
func (svc *UserService) VerifyTwoFactor(ctx context.Context, userID, code string) error {
	user, err := svc.UsersRepo.FindUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := services.ValidateTOTPCode(user.TwoFactorSecret, code); err != nil {
		utils.TrackAuthAttempt("failure", "2fa")
		return err
	}

	utils.TrackAuthAttempt("success", "2fa")
	return svc.UsersRepo.UpdateTwoFactor(ctx, userID, user.TwoFactorSecret, true)
}
