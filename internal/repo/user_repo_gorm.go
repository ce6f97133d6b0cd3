package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"kunstcollectie/internal/domain"
)

type UserRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo { return &UserRepo{db: db} }

var _ domain.UserRepository = (*UserRepo)(nil)

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *UserRepo) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	if isNotFound(err) {
		return nil, nil
	}
	return &u, err
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).First(&u, "email = ?", email).Error
	if isNotFound(err) {
		return nil, nil
	}
	return &u, err
}

func (r *UserRepo) List(ctx context.Context, f domain.UserFilter, p domain.Page) ([]domain.User, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.User{})
	if f.Q != "" {
		like := containsLower(f.Q)
		q = q.Where("LOWER(email) LIKE ? ESCAPE '!' OR LOWER(name) LIKE ? ESCAPE '!'", like, like)
	}
	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	users := []domain.User{}
	if err := q.Order("name ASC").Order("id ASC").Offset(p.Offset()).Limit(p.Limit).Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// Update 若把管理员降级，事务内确认还有其他管理员
func (r *UserRepo) Update(ctx context.Context, u *domain.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cur domain.User
		if err := tx.First(&cur, "id = ?", u.ID).Error; err != nil {
			if isNotFound(err) {
				return domain.NotFoundf("gebruiker")
			}
			return err
		}
		if cur.Role == domain.RoleAdmin && u.Role != domain.RoleAdmin {
			if err := ensureOtherAdmin(tx, u.ID); err != nil {
				return err
			}
		}
		return tx.Save(u).Error
	})
}

func (r *UserRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cur domain.User
		if err := tx.First(&cur, "id = ?", id).Error; err != nil {
			if isNotFound(err) {
				return domain.NotFoundf("gebruiker")
			}
			return err
		}
		if cur.Role == domain.RoleAdmin {
			if err := ensureOtherAdmin(tx, id); err != nil {
				return err
			}
		}
		return tx.Delete(&domain.User{}, "id = ?", id).Error
	})
}

func ensureOtherAdmin(tx *gorm.DB, exceptID uint) error {
	var n int64
	if err := tx.Model(&domain.User{}).
		Where("role = ? AND id <> ?", domain.RoleAdmin, exceptID).
		Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrLastAdmin
	}
	return nil
}

func (r *UserRepo) TouchLogin(ctx context.Context, id uint, at time.Time) error {
	return r.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ?", id).
		UpdateColumn("last_login_at", at).Error
}

func (r *UserRepo) CountAdmins(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.User{}).Where("role = ?", domain.RoleAdmin).Count(&n).Error
	return n, err
}
