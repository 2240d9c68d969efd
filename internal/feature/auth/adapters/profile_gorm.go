package adapters

import (
	"context"

	"gorm.io/gorm"

	"devfolio_backend/internal/feature/auth/domain/entity"
	"devfolio_backend/internal/feature/auth/usecase"
)

// profileGorm はProfileReaderのGORM実装です。公開プロフィールを毎回DBから組み立てます。
type profileGorm struct {
	db    *gorm.DB
	users *userGorm
}

var _ usecase.ProfileReader = (*profileGorm)(nil)

// NewProfileGorm はprofileGormの新しいインスタンスを生成します。
func NewProfileGorm(db *gorm.DB) *profileGorm {
	return &profileGorm{db: db, users: NewUserGorm(db)}
}

// FindPublicProfile はユーザーの公開プロフィールとフォロー数を返します。
func (r *profileGorm) FindPublicProfile(ctx context.Context, id string) (*entity.PublicProfile, error) {
	u, err := r.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	p := entity.NewPublicProfile(u)
	if err := r.countFollows(ctx, "following_id = ?", id, &p.FollowerCount); err != nil {
		return nil, err
	}
	if err := r.countFollows(ctx, "follower_id = ?", id, &p.FollowingCount); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *profileGorm) countFollows(ctx context.Context, cond, id string, n *int64) error {
	return r.db.WithContext(ctx).Model(&entity.Follow{}).Where(cond, id).Count(n).Error
}

// InvalidateProfiles は何もしません。キャッシュはcache.CachingProfileReaderが担当します。
func (r *profileGorm) InvalidateProfiles(context.Context, ...string) {}
