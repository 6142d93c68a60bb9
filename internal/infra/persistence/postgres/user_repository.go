package postgres

import (
	"context"

	"passport/internal/domain/entity"
	"passport/internal/domain/repository"
	"passport/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// userRepository implements the repository.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a repository.UserRepository interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// FindOne retrieves the single record matching the predicate.
func (repo *userRepository) FindOne(ctx context.Context, pred repository.Predicate) (*entity.User, error) {
	var userM model.UserModel

	err := applyPredicate(repo.db.WithContext(ctx), pred).First(&userM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	return toUserDomain(&userM), nil
}

// Create persists a new user record. The unique index on user_name rejects a
// duplicate userName even when two registrations pass the service-level check
// concurrently.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return repository.ErrDuplicateUser
		}

		return errors.Wrap(err, "failed to create user")
	}

	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// Update applies the changes to the record matching the predicate in a single
// UPDATE statement and reports whether any row changed. The predicate rides in
// the WHERE clause, so a password change re-verifies the old credential
// atomically with the write.
func (repo *userRepository) Update(ctx context.Context, changes repository.UserChanges, pred repository.Predicate) (bool, error) {
	columns := map[string]any{}
	if changes.NickName != nil {
		columns["nick_name"] = *changes.NickName
	}
	if changes.City != nil {
		columns["city"] = *changes.City
	}
	if changes.Avatar != nil {
		columns["avatar"] = *changes.Avatar
	}
	if changes.Gender != nil {
		columns["gender"] = int16(*changes.Gender)
	}
	if changes.Password != nil {
		columns["password"] = *changes.Password
	}
	if len(columns) == 0 {
		return false, nil
	}

	result := applyPredicate(repo.db.WithContext(ctx).Model(&model.UserModel{}), pred).Updates(columns)
	if result.Error != nil {
		return false, errors.Wrap(result.Error, "failed to update user")
	}

	return result.RowsAffected > 0, nil
}

// Delete removes the record(s) matching the predicate.
func (repo *userRepository) Delete(ctx context.Context, pred repository.Predicate) (bool, error) {
	result := applyPredicate(repo.db.WithContext(ctx), pred).Delete(&model.UserModel{})
	if result.Error != nil {
		return false, errors.Wrap(result.Error, "failed to delete user")
	}

	return result.RowsAffected > 0, nil
}

// applyPredicate translates the domain predicate into a WHERE conjunction.
func applyPredicate(tx *gorm.DB, pred repository.Predicate) *gorm.DB {
	tx = tx.Where("user_name = ?", pred.UserName)
	if pred.Password != nil {
		tx = tx.Where("password = ?", *pred.Password)
	}

	return tx
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models.

func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	return &entity.User{
		ID:        data.ID,
		UserName:  data.UserName,
		Password:  data.Password,
		NickName:  data.NickName,
		Gender:    entity.Gender(data.Gender),
		City:      data.City,
		Avatar:    data.Avatar,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	return &model.UserModel{
		ID:       data.ID,
		UserName: data.UserName,
		Password: data.Password,
		NickName: data.NickName,
		Gender:   int16(data.Gender),
		City:     data.City,
		Avatar:   data.Avatar,
	}
}
