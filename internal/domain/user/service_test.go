package user

import (
	"context"
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mock implementations ---

type mockUserRepo struct {
	users   []User
	updated []Field
	deleted []string
	listErr error
}

func (m *mockUserRepo) List(_ context.Context) ([]User, error) {
	out := make([]User, len(m.users))
	copy(out, m.users)
	return out, m.listErr
}

func (m *mockUserRepo) Create(_ context.Context, u *User) error {
	m.users = append(m.users, *u)
	return nil
}

func (m *mockUserRepo) Update(_ context.Context, u *User, fields ...Field) error {
	for i := range m.users {
		if m.users[i].ID == u.ID {
			m.users[i] = *u
			m.updated = append(m.updated, fields...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *mockUserRepo) Delete(_ context.Context, ids []string) error {
	m.deleted = append(m.deleted, ids...)
	return nil
}

func newTestService(users ...User) (*Service, *mockUserRepo) {
	repo := &mockUserRepo{users: users}
	svc := NewService(repo)
	svc.newID = func() string { return "new-id" }
	return svc, repo
}

// --- Tests ---

func TestAuthenticate(t *testing.T) {
	svc, _ := newTestService(
		User{ID: "u1", Username: "admin", Password: "secret", IsAdmin: true},
		User{ID: "u2", Username: "clerk", Password: "pass"},
	)

	u, err := svc.Authenticate(context.Background(), "admin", "secret")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)
	assert.True(t, u.IsAdmin)

	_, err = svc.Authenticate(context.Background(), "admin", "pass")
	require.ErrorIs(t, err, ErrBadCredentials)

	_, err = svc.Authenticate(context.Background(), "Admin", "secret")
	require.ErrorIs(t, err, ErrBadCredentials)
}

func TestAuthenticate_ListError(t *testing.T) {
	svc, repo := newTestService()
	repo.listErr = errors.New("disk gone")

	_, err := svc.Authenticate(context.Background(), "admin", "secret")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list users")
}

func TestCreate(t *testing.T) {
	svc, repo := newTestService(User{ID: "u1", Username: "Benutzer", Password: "x"})

	_, err := svc.Create(context.Background(), "benutzer", "pw", false)
	require.ErrorIs(t, err, ErrUsernameTaken)

	_, err = svc.Create(context.Background(), "Benut..zer", "pw", false)
	require.ErrorIs(t, err, ErrInvalidUsername)

	_, err = svc.Create(context.Background(), "kassierer", "", false)
	require.Error(t, err)

	u, err := svc.Create(context.Background(), "kassierer", "pw", true)
	require.NoError(t, err)
	assert.Equal(t, "new-id", u.ID)
	assert.True(t, u.IsAdmin)
	assert.Len(t, repo.users, 2)
}

func TestRename(t *testing.T) {
	svc, repo := newTestService(
		User{ID: "u1", Username: "anna", Password: "x"},
		User{ID: "u2", Username: "berta", Password: "y"},
	)
	anna := repo.users[0]

	require.ErrorIs(t, svc.Rename(context.Background(), &anna, "BERTA"), ErrUsernameTaken)

	// Changing only the case of one's own name is allowed.
	require.NoError(t, svc.Rename(context.Background(), &anna, "Anna"))
	assert.Equal(t, "Anna", repo.users[0].Username)
	assert.Equal(t, []Field{FieldUsername}, repo.updated)
}

func TestSetAdminAndPassword(t *testing.T) {
	svc, repo := newTestService(User{ID: "u1", Username: "anna", Password: "x"})
	anna := repo.users[0]

	require.NoError(t, svc.SetAdmin(context.Background(), &anna, true))
	require.NoError(t, svc.SetPassword(context.Background(), &anna, "new"))
	require.Error(t, svc.SetPassword(context.Background(), &anna, ""))

	assert.True(t, repo.users[0].IsAdmin)
	assert.Equal(t, "new", repo.users[0].Password)
	assert.Equal(t, []Field{FieldIsAdmin, FieldPassword}, repo.updated)
}

func TestRequireAdmin(t *testing.T) {
	require.ErrorIs(t, RequireAdmin(nil), ErrForbidden)
	require.ErrorIs(t, RequireAdmin(&User{}), ErrForbidden)
	require.NoError(t, RequireAdmin(&User{IsAdmin: true}))
}
