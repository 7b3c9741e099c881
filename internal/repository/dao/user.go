package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrUserEmailExists = errors.New("user already exists")
	ErrUserNotFound    = errors.New("user not found")
	ErrLastActiveAdmin = errors.New("cannot remove the last active admin")
)

type User struct {
	ID uint `gorm:"primaryKey"`

	Email    string `gorm:"unique;not null"`
	Password string `gorm:"not null"`

	FirstName string `gorm:"not null"`
	LastName  string `gorm:"not null"`
	Phone     string

	Role             string `gorm:"not null;index"` // "admin", "trainer", "member", or "guest"
	MembershipType   string `gorm:"not null;default:none"`
	EmergencyContact string

	IsActive bool `gorm:"not null;default:true;index"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type UserDAO struct {
	db *gorm.DB
}

func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{
		db: db,
	}
}

func (d *UserDAO) Insert(ctx context.Context, user User) (User, error) {
	result := d.db.WithContext(ctx).Create(&user)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) &&
			err.Code == pgerrcode.UniqueViolation &&
			strings.Contains(err.Message, `unique constraint "uni_users_email"`) {
			return User{}, ErrUserEmailExists
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindByID(ctx context.Context, id uint) (User, error) {
	var user User

	result := d.db.WithContext(ctx).First(&user, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindByEmail(ctx context.Context, email string) (User, error) {
	var user User

	result := d.db.WithContext(ctx).First(&user, "email = ?", email)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

type UserFilter struct {
	Role     string
	IsActive *bool
}

func (d *UserDAO) List(ctx context.Context, filter UserFilter, offset, limit int) ([]User, int64, error) {
	query := d.db.WithContext(ctx).Model(&User{})
	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []User
	err := query.Order("id").Offset(offset).Limit(limit).Find(&users).Error
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// Update rewrites the profile fields. Demoting an admin is checked
// against the active admin head count in the same transaction.
func (d *UserDAO) Update(ctx context.Context, user User) (User, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := lockUser(tx, user.ID)
		if err != nil {
			return err
		}

		if current.Role == "admin" && current.IsActive && user.Role != "admin" {
			count, err := countOtherActiveAdmins(tx, user.ID)
			if err != nil {
				return err
			}
			if count == 0 {
				return ErrLastActiveAdmin
			}
		}

		result := tx.Model(&User{ID: user.ID}).Updates(map[string]interface{}{
			"email":             user.Email,
			"first_name":        user.FirstName,
			"last_name":         user.LastName,
			"phone":             user.Phone,
			"role":              user.Role,
			"membership_type":   user.MembershipType,
			"emergency_contact": user.EmergencyContact,
		})
		if result.Error != nil {
			var pgErr *pgconn.PgError
			if errors.As(result.Error, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
				return ErrUserEmailExists
			}

			return result.Error
		}

		return nil
	})
	if err != nil {
		return User{}, err
	}

	return d.FindByID(ctx, user.ID)
}

func (d *UserDAO) UpdatePassword(ctx context.Context, id uint, hash string) error {
	result := d.db.WithContext(ctx).Model(&User{ID: id}).Update("password", hash)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// SetActive flips the archive flag. Deactivating a user runs inside a
// transaction with the admin head count so two concurrent archive
// requests cannot both remove an admin.
func (d *UserDAO) SetActive(ctx context.Context, id uint, active bool) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := lockUser(tx, id)
		if err != nil {
			return err
		}

		if !active && user.Role == "admin" && user.IsActive {
			count, err := countOtherActiveAdmins(tx, id)
			if err != nil {
				return err
			}
			if count == 0 {
				return ErrLastActiveAdmin
			}
		}

		return tx.Model(&User{ID: id}).Update("is_active", active).Error
	})
}

func (d *UserDAO) Delete(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := lockUser(tx, id)
		if err != nil {
			return err
		}

		if user.Role == "admin" && user.IsActive {
			count, err := countOtherActiveAdmins(tx, id)
			if err != nil {
				return err
			}
			if count == 0 {
				return ErrLastActiveAdmin
			}
		}

		return tx.Delete(&User{}, id).Error
	})
}

func lockUser(tx *gorm.DB, id uint) (User, error) {
	var user User
	err := tx.Raw("SELECT * FROM users WHERE id = ? FOR UPDATE", id).Scan(&user).Error
	if err != nil {
		return User{}, err
	}
	if user.ID == 0 {
		return User{}, ErrUserNotFound
	}

	return user, nil
}

func countOtherActiveAdmins(tx *gorm.DB, excludeID uint) (int64, error) {
	var count int64
	err := tx.Model(&User{}).
		Where("role = ? AND is_active = ? AND id <> ?", "admin", true, excludeID).
		Count(&count).Error

	return count, err
}
