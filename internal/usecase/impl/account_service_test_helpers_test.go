package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"passport/internal/domain/entity"
	"passport/internal/domain/repository"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubHasher is a transparent deterministic digest for tests.
type stubHasher struct{}

func (stubHasher) Hash(secret string) string {
	return "digest(" + secret + ")"
}

// fakeUserRepo is an in-memory UserRepository with per-operation fault
// injection.
type fakeUserRepo struct {
	mu     sync.Mutex
	users  map[string]*entity.User
	nextID int64

	findErr   error
	createErr error
	updateErr error
	deleteErr error

	// skipExistenceCheck makes FindOne miss on purpose, simulating the window
	// where a concurrent registration has not landed yet.
	skipExistenceCheck bool
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) match(user *entity.User, pred repository.Predicate) bool {
	if user.UserName != pred.UserName {
		return false
	}
	if pred.Password != nil && user.Password != *pred.Password {
		return false
	}

	return true
}

func (r *fakeUserRepo) FindOne(_ context.Context, pred repository.Predicate) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.findErr != nil {
		return nil, r.findErr
	}
	if r.skipExistenceCheck && pred.Password == nil {
		return nil, repository.ErrUserNotFound
	}

	user, ok := r.users[pred.UserName]
	if !ok || !r.match(user, pred) {
		return nil, repository.ErrUserNotFound
	}

	copied := *user

	return &copied, nil
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.createErr != nil {
		return r.createErr
	}
	if _, ok := r.users[user.UserName]; ok {
		return repository.ErrDuplicateUser
	}

	r.nextID++
	user.ID = r.nextID
	copied := *user
	r.users[user.UserName] = &copied

	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, changes repository.UserChanges, pred repository.Predicate) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.updateErr != nil {
		return false, r.updateErr
	}

	// The SQL implementation reports no change when every field is nil.
	if changes.NickName == nil && changes.City == nil && changes.Avatar == nil &&
		changes.Gender == nil && changes.Password == nil {
		return false, nil
	}

	user, ok := r.users[pred.UserName]
	if !ok || !r.match(user, pred) {
		return false, nil
	}

	if changes.NickName != nil {
		user.NickName = *changes.NickName
	}
	if changes.City != nil {
		user.City = *changes.City
	}
	if changes.Avatar != nil {
		user.Avatar = *changes.Avatar
	}
	if changes.Gender != nil {
		user.Gender = *changes.Gender
	}
	if changes.Password != nil {
		user.Password = *changes.Password
	}

	return true, nil
}

func (r *fakeUserRepo) Delete(_ context.Context, pred repository.Predicate) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.deleteErr != nil {
		return false, r.deleteErr
	}

	user, ok := r.users[pred.UserName]
	if !ok || !r.match(user, pred) {
		return false, nil
	}

	delete(r.users, pred.UserName)

	return true, nil
}

func (r *fakeUserRepo) stored(userName string) *entity.User {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[userName]
	if !ok {
		return nil
	}
	copied := *user

	return &copied
}
