package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"github.com/presyo/backend/internal/model"
	"github.com/presyo/backend/internal/repository"
)

func TestAuthService_Login(t *testing.T) {
	t.Parallel()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	assert.NoError(t, err)

	admin := &model.AdminUser{
		ID:           uuid.New(),
		Email:        "admin@presyo.ph",
		PasswordHash: string(hash),
	}

	tests := []struct {
		name      string
		input     LoginInput
		setupMock func(*MockAdminRepo)
		wantErr   error
	}{
		{
			name:  "valid credentials",
			input: LoginInput{Email: "admin@presyo.ph", Password: "correct-password"},
			setupMock: func(repo *MockAdminRepo) {
				repo.On("GetByEmail", mock.Anything, "admin@presyo.ph").Return(admin, nil)
			},
		},
		{
			name:  "wrong password",
			input: LoginInput{Email: "admin@presyo.ph", Password: "wrong"},
			setupMock: func(repo *MockAdminRepo) {
				repo.On("GetByEmail", mock.Anything, "admin@presyo.ph").Return(admin, nil)
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:  "unknown admin",
			input: LoginInput{Email: "nobody@presyo.ph", Password: "whatever"},
			setupMock: func(repo *MockAdminRepo) {
				repo.On("GetByEmail", mock.Anything, "nobody@presyo.ph").
					Return(nil, repository.ErrAdminNotFound)
			},
			wantErr: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			adminRepo := new(MockAdminRepo)
			tt.setupMock(adminRepo)
			svc := NewAuthService(adminRepo)

			resp, err := svc.Login(context.Background(), tt.input)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			assert.NoError(t, err)
			assert.NotEmpty(t, resp.Token)
			assert.Equal(t, admin.Email, resp.Admin.Email)
		})
	}
}

func TestAuthService_CreateAdmin(t *testing.T) {
	t.Parallel()

	adminRepo := new(MockAdminRepo)
	adminRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.AdminUser")).Return(nil)
	svc := NewAuthService(adminRepo)

	admin, err := svc.CreateAdmin(context.Background(), "admin@presyo.ph", "s3cret")

	assert.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, admin.ID)
	assert.NotEqual(t, "s3cret", admin.PasswordHash, "password must be stored hashed")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("s3cret")))
}

func TestValidateToken(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		adminID := uuid.New()
		token, err := generateToken(adminID)
		assert.NoError(t, err)

		got, err := ValidateToken(token)
		assert.NoError(t, err)
		assert.Equal(t, adminID, got)
	})

	t.Run("garbage token", func(t *testing.T) {
		t.Parallel()

		_, err := ValidateToken("not.a.token")
		assert.Error(t, err)
	})

	t.Run("tampered token", func(t *testing.T) {
		t.Parallel()

		token, err := generateToken(uuid.New())
		assert.NoError(t, err)

		_, err = ValidateToken(token + "x")
		assert.Error(t, err)
	})
}
