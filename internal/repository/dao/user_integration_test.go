package dao_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/equicrm/equicrm/internal/repository/dao"
	"github.com/equicrm/equicrm/internal/testhelper"
)

func insertUser(t *testing.T, d *dao.UserDAO, email, role string) dao.User {
	t.Helper()

	user, err := d.Insert(context.Background(), dao.User{
		Email:     email,
		Password:  "hash",
		FirstName: "Test",
		LastName:  "User",
		Role:      role,
		IsActive:  true,
	})
	require.NoError(t, err)

	return user
}

func TestUserDAO_DuplicateEmail(t *testing.T) {
	if testing.Short() {
		t.Skip("requires docker")
	}

	db := testhelper.StartPostgres(t)
	d := dao.NewUserDAO(db)

	insertUser(t, d, "rider@stable.com", "member")

	_, err := d.Insert(context.Background(), dao.User{
		Email:     "rider@stable.com",
		Password:  "hash",
		FirstName: "Other",
		LastName:  "Rider",
		Role:      "member",
		IsActive:  true,
	})
	assert.ErrorIs(t, err, dao.ErrUserEmailExists)
}

func TestUserDAO_LastActiveAdminGuard(t *testing.T) {
	if testing.Short() {
		t.Skip("requires docker")
	}

	db := testhelper.StartPostgres(t)
	d := dao.NewUserDAO(db)
	ctx := context.Background()

	admin := insertUser(t, d, "admin@stable.com", "admin")
	insertUser(t, d, "member@stable.com", "member")

	// Sole admin: neither archive nor delete may succeed.
	assert.ErrorIs(t, d.SetActive(ctx, admin.ID, false), dao.ErrLastActiveAdmin)
	assert.ErrorIs(t, d.Delete(ctx, admin.ID), dao.ErrLastActiveAdmin)

	second := insertUser(t, d, "admin2@stable.com", "admin")

	// With a second active admin the first can go.
	require.NoError(t, d.SetActive(ctx, admin.ID, false))

	// Which in turn makes the second one untouchable.
	assert.ErrorIs(t, d.SetActive(ctx, second.ID, false), dao.ErrLastActiveAdmin)
	assert.ErrorIs(t, d.Delete(ctx, second.ID), dao.ErrLastActiveAdmin)

	// Restoring the first admin lifts the guard again.
	require.NoError(t, d.SetActive(ctx, admin.ID, true))
	require.NoError(t, d.Delete(ctx, second.ID))
}

func TestUserDAO_DemotingLastAdminRejected(t *testing.T) {
	if testing.Short() {
		t.Skip("requires docker")
	}

	db := testhelper.StartPostgres(t)
	d := dao.NewUserDAO(db)
	ctx := context.Background()

	admin := insertUser(t, d, "admin@stable.com", "admin")

	demoted := admin
	demoted.Role = "member"
	_, err := d.Update(ctx, demoted)
	assert.ErrorIs(t, err, dao.ErrLastActiveAdmin)

	insertUser(t, d, "admin2@stable.com", "admin")

	updated, err := d.Update(ctx, demoted)
	require.NoError(t, err)
	assert.Equal(t, "member", updated.Role)
}

func TestUserDAO_ArchivingMemberIsUnrestricted(t *testing.T) {
	if testing.Short() {
		t.Skip("requires docker")
	}

	db := testhelper.StartPostgres(t)
	d := dao.NewUserDAO(db)
	ctx := context.Background()

	insertUser(t, d, "admin@stable.com", "admin")
	member := insertUser(t, d, "member@stable.com", "member")

	require.NoError(t, d.SetActive(ctx, member.ID, false))

	found, err := d.FindByID(ctx, member.ID)
	require.NoError(t, err)
	assert.False(t, found.IsActive)
}
