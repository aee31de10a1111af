package domain

import (
	"errors"
)

var (
	MessageSuccessRegister = "user registered successfully"
	MessageSuccessLogin    = "login success"
	MessageSuccessGetMe    = "user profile retrieved successfully"

	MessageFailedRegister = "failed to register user"
	MessageFailedLogin    = "failed to login"
	MessageFailedGetMe    = "failed to retrieve user profile"

	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrCredentialsInvalid = errors.New("invalid email or password")
)

type (
	RegisterRequest struct {
		Name          string `json:"name" validate:"required,min=2,max=100"`
		Email         string `json:"email" validate:"required,email"`
		Password      string `json:"password" validate:"required,min=8"`
		WalletAddress string `json:"wallet_address" validate:"omitempty,max=128"`
	}

	RegisterResponse struct {
		ID           string `json:"id"`
		Name         string `json:"name"`
		Email        string `json:"email"`
		ReferralCode string `json:"referral_code"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string `json:"token"`
		Role  string `json:"role"`
	}

	UserResponse struct {
		ID            string `json:"id"`
		Name          string `json:"name"`
		Email         string `json:"email"`
		WalletAddress string `json:"wallet_address,omitempty"`
		ReferralCode  string `json:"referral_code"`
		Role          string `json:"role"`
	}
)
