// Package adapters はadminフィーチャーのGORMリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"devfolio_backend/internal/feature/admin/usecase"
	"devfolio_backend/internal/feature/auth/domain/entity"
)

// userStoreGorm はモデレーション用のUserStore実装です。
type userStoreGorm struct {
	db *gorm.DB
}

var _ usecase.UserStore = (*userStoreGorm)(nil)

// NewUserStoreGorm はuserStoreGormの新しいインスタンスを生成します。
func NewUserStoreGorm(db *gorm.DB) *userStoreGorm {
	return &userStoreGorm{db: db}
}

// Stats はユーザー総数・BAN数・認証済み数を集計します。
func (r *userStoreGorm) Stats(ctx context.Context) (usecase.Stats, error) {
	var s usecase.Stats
	db := r.db.WithContext(ctx)
	if err := db.Model(&entity.User{}).Count(&s.Users).Error; err != nil {
		return s, err
	}
	if err := db.Model(&entity.User{}).Where("is_banned = ?", true).Count(&s.BannedUsers).Error; err != nil {
		return s, err
	}
	if err := db.Model(&entity.User{}).Where("is_verified = ?", true).Count(&s.VerifiedUsers).Error; err != nil {
		return s, err
	}
	return s, nil
}

// List は全ユーザーを作成日時の降順で返します。
func (r *userStoreGorm) List(ctx context.Context) ([]entity.User, error) {
	var users []entity.User
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&users).Error
	return users, err
}

// ToggleBan はBAN状態を反転します。BANする場合はリフレッシュトークンも同時に削除します。
func (r *userStoreGorm) ToggleBan(ctx context.Context, id string) (bool, error) {
	var banned bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		u, err := findUser(tx, id)
		if err != nil {
			return err
		}
		banned = !u.IsBanned
		updates := map[string]interface{}{"is_banned": banned}
		if banned {
			updates["refresh_token"] = nil
		}
		return tx.Model(&entity.User{}).Where("id = ?", id).Updates(updates).Error
	})
	return banned, err
}

// ToggleVerify は認証済みバッジを反転します。
func (r *userStoreGorm) ToggleVerify(ctx context.Context, id string) (bool, error) {
	var verified bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		u, err := findUser(tx, id)
		if err != nil {
			return err
		}
		verified = !u.IsVerified
		return tx.Model(&entity.User{}).Where("id = ?", id).Update("is_verified", verified).Error
	})
	return verified, err
}

// Delete はユーザーとそのフォローエッジを削除し、エッジの相手側ユーザーIDを返します。
func (r *userStoreGorm) Delete(ctx context.Context, id string) ([]string, error) {
	var neighbors []string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findUser(tx, id); err != nil {
			return err
		}

		var edges []entity.Follow
		if err := tx.Where("follower_id = ? OR following_id = ?", id, id).Find(&edges).Error; err != nil {
			return err
		}
		seen := make(map[string]struct{}, len(edges))
		for _, e := range edges {
			other := e.FollowerID
			if other == id {
				other = e.FollowingID
			}
			if _, ok := seen[other]; !ok {
				seen[other] = struct{}{}
				neighbors = append(neighbors, other)
			}
		}

		if err := tx.Where("follower_id = ? OR following_id = ?", id, id).Delete(&entity.Follow{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entity.User{}).Error
	})
	if err != nil {
		return nil, err
	}
	return neighbors, nil
}

func findUser(tx *gorm.DB, id string) (*entity.User, error) {
	var u entity.User
	if err := tx.Where("id = ?", id).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}
