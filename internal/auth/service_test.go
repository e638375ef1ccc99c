package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"cinebook/internal/shared/config"
	"cinebook/internal/users"
)

type fakeRepository struct {
	byEmail map[string]*users.User
	byID    map[string]*users.User
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		byEmail: make(map[string]*users.User),
		byID:    make(map[string]*users.User),
	}
}

func (f *fakeRepository) CreateUser(ctx context.Context, user *users.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	f.byEmail[user.Email] = user
	f.byID[user.ID.String()] = user
	return nil
}

func (f *fakeRepository) GetUserByEmail(ctx context.Context, email string) (*users.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (f *fakeRepository) GetUserByID(ctx context.Context, id string) (*users.User, error) {
	user, ok := f.byID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (f *fakeRepository) UpdateUserPassword(ctx context.Context, userID string, hashedPassword string) error {
	if user, ok := f.byID[userID]; ok {
		user.Password = hashedPassword
	}
	return nil
}

func (f *fakeRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	_, ok := f.byEmail[email]
	return ok, nil
}

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:           "test-secret",
			JWTExpiresIn:     15 * time.Minute,
			RefreshExpiresIn: 24 * time.Hour,
		},
	}
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	service := NewService(repo, testConfig())

	resp, err := service.Register(ctx, &RegisterRequest{
		Name:     "Asha Rao",
		Email:    "asha@example.com",
		Password: "qwerty123",
	})
	require.NoError(t, err)
	assert.Equal(t, string(users.RoleUser), resp.User.Role)
	assert.NotEmpty(t, resp.AccessToken)

	// Duplicate email is rejected
	_, err = service.Register(ctx, &RegisterRequest{
		Name:     "Asha Again",
		Email:    "asha@example.com",
		Password: "qwerty123",
	})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)

	// Login with the right and wrong passwords
	loginResp, err := service.Login(ctx, &LoginRequest{Email: "asha@example.com", Password: "qwerty123"})
	require.NoError(t, err)
	assert.NotEmpty(t, loginResp.AccessToken)

	_, err = service.Login(ctx, &LoginRequest{Email: "asha@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = service.Login(ctx, &LoginRequest{Email: "nobody@example.com", Password: "qwerty123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestTokenRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	service := NewService(repo, testConfig())

	resp, err := service.Register(ctx, &RegisterRequest{
		Name:     "Dev Patel",
		Email:    "dev@example.com",
		Password: "qwerty123",
	})
	require.NoError(t, err)

	claims, err := service.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, "dev@example.com", claims.Email)
	assert.Equal(t, "access", claims.Type)

	// Refresh produces a fresh pair
	pair, err := service.RefreshToken(ctx, resp.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)

	// An access token is not accepted as a refresh token
	_, err = service.RefreshToken(ctx, resp.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// Garbage is rejected
	_, err = service.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	service := NewService(repo, testConfig())

	resp, err := service.Register(ctx, &RegisterRequest{
		Name:     "Asha Rao",
		Email:    "asha@example.com",
		Password: "oldpass123",
	})
	require.NoError(t, err)

	err = service.ChangePassword(ctx, resp.User.ID, &ChangePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "newpass123",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	err = service.ChangePassword(ctx, resp.User.ID, &ChangePasswordRequest{
		CurrentPassword: "oldpass123",
		NewPassword:     "newpass123",
	})
	require.NoError(t, err)

	user := repo.byID[resp.User.ID]
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("newpass123")))
}
