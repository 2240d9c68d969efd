package adapters

import (
	"context"

	"gorm.io/gorm"

	"devfolio_backend/internal/feature/auth/domain/entity"
	"devfolio_backend/internal/feature/auth/usecase"
)

// followGorm はFollowRepositoryのGORM実装です。
// (follower_id, following_id) の複合主キーがエッジの一意性を保証します。
type followGorm struct {
	db *gorm.DB
}

var _ usecase.FollowRepository = (*followGorm)(nil)

// NewFollowGorm はfollowGormの新しいインスタンスを生成します。
func NewFollowGorm(db *gorm.DB) *followGorm {
	return &followGorm{db: db}
}

// Create はフォローエッジを追加します。既に存在する場合はusecase.ErrAlreadyFollowingを、
// どちらかのユーザーが存在しない場合はusecase.ErrUserNotFoundを返します。
func (r *followGorm) Create(ctx context.Context, followerID, followingID string) error {
	f := &entity.Follow{FollowerID: followerID, FollowingID: followingID}
	if err := r.db.WithContext(ctx).Create(f).Error; err != nil {
		switch {
		case isUniqueViolation(err):
			return usecase.ErrAlreadyFollowing
		case isForeignKeyViolation(err):
			return usecase.ErrUserNotFound
		}
		return err
	}
	return nil
}

// Delete はフォローエッジを削除します。存在しない場合はusecase.ErrNotFollowingを返します。
func (r *followGorm) Delete(ctx context.Context, followerID, followingID string) error {
	res := r.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&entity.Follow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrNotFollowing
	}
	return nil
}

// Exists はフォローエッジが存在するかどうかを返します。
func (r *followGorm) Exists(ctx context.Context, followerID, followingID string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&entity.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&n).Error
	return n > 0, err
}
