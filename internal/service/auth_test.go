package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/equicrm/equicrm/internal/domain"
	"github.com/equicrm/equicrm/internal/repository"
)

type fakeAuthRepo struct {
	byEmail map[string]domain.User
	byID    map[uint]domain.User
	nextID  uint
}

func newFakeAuthRepo() *fakeAuthRepo {
	return &fakeAuthRepo{
		byEmail: make(map[string]domain.User),
		byID:    make(map[uint]domain.User),
		nextID:  1,
	}
}

func (f *fakeAuthRepo) Create(_ context.Context, user domain.User) (domain.User, error) {
	if _, ok := f.byEmail[user.Email]; ok {
		return domain.User{}, repository.ErrUserEmailExists
	}

	user.ID = f.nextID
	f.nextID++
	f.byEmail[user.Email] = user
	f.byID[user.ID] = user

	return user, nil
}

func (f *fakeAuthRepo) FindByEmail(_ context.Context, email string) (domain.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}

	return user, nil
}

func (f *fakeAuthRepo) FindByID(_ context.Context, id uint) (domain.User, error) {
	user, ok := f.byID[id]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}

	return user, nil
}

func TestAuthService_Register(t *testing.T) {
	repo := newFakeAuthRepo()
	svc := NewAuthService(repo)

	created, err := svc.Register(context.Background(), domain.User{
		Email:     "rider@stable.com",
		Password:  "Passw0rd1",
		FirstName: "Anna",
		LastName:  "Kovacs",
		Role:      domain.RoleAdmin, // must be ignored
	})
	require.NoError(t, err)

	assert.Equal(t, domain.RoleMember, created.Role)
	assert.True(t, created.IsActive)
	assert.Equal(t, "none", created.MembershipType)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("Passw0rd1")))
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := newFakeAuthRepo()
	svc := NewAuthService(repo)

	_, err := svc.Register(context.Background(), domain.User{Email: "rider@stable.com", Password: "Passw0rd1"})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), domain.User{Email: "rider@stable.com", Password: "Passw0rd1"})
	assert.ErrorIs(t, err, ErrUserEmailExists)
}

func TestAuthService_Login(t *testing.T) {
	repo := newFakeAuthRepo()
	svc := NewAuthService(repo)

	created, err := svc.Register(context.Background(), domain.User{Email: "rider@stable.com", Password: "Passw0rd1"})
	require.NoError(t, err)

	t.Run("correct password", func(t *testing.T) {
		user, err := svc.Login(context.Background(), "rider@stable.com", "Passw0rd1")
		require.NoError(t, err)
		assert.Equal(t, created.ID, user.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "rider@stable.com", "nope12345")
		assert.ErrorIs(t, err, ErrWrongPassword)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "ghost@stable.com", "Passw0rd1")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("archived account", func(t *testing.T) {
		archived := repo.byEmail["rider@stable.com"]
		archived.IsActive = false
		repo.byEmail["rider@stable.com"] = archived

		_, err := svc.Login(context.Background(), "rider@stable.com", "Passw0rd1")
		assert.ErrorIs(t, err, ErrUserInactive)
	})
}

func TestAuthService_ResolveToken(t *testing.T) {
	repo := newFakeAuthRepo()
	svc := NewAuthService(repo)

	created, err := svc.Register(context.Background(), domain.User{Email: "rider@stable.com", Password: "Passw0rd1"})
	require.NoError(t, err)

	user, err := svc.ResolveToken(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Email, user.Email)

	_, err = svc.ResolveToken(context.Background(), 999)
	assert.ErrorIs(t, err, ErrUserNotFound)

	archived := repo.byID[created.ID]
	archived.IsActive = false
	repo.byID[created.ID] = archived

	_, err = svc.ResolveToken(context.Background(), created.ID)
	assert.ErrorIs(t, err, ErrUserInactive)
}
