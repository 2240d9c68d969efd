// Package seed populates the database with demo users and a follow mesh.
// It is intended for local development only.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	authadapters "devfolio_backend/internal/feature/auth/adapters"
	"devfolio_backend/internal/feature/auth/domain/entity"
	"devfolio_backend/internal/feature/auth/usecase"
)

// DemoPassword is the plaintext password of every seeded user.
const DemoPassword = "password123"

// Options controls the size of the generated data.
type Options struct {
	Users int
	// MaxFollows is the upper bound of outgoing follows per user.
	MaxFollows int
	// Seed makes the generated data reproducible when non-zero.
	Seed int64
	// HashCost is the bcrypt cost. Zero means bcrypt.DefaultCost.
	HashCost int
}

// Seeder creates demo data through the same stores the API uses.
type Seeder struct {
	db      *gorm.DB
	users   usecase.UserRepository
	follows usecase.FollowRepository
	faker   *gofakeit.Faker
	rng     *rand.Rand
	opts    Options
}

// NewSeeder creates a Seeder bound to db.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	if opts.MaxFollows <= 0 {
		opts.MaxFollows = 5
	}
	if opts.HashCost == 0 {
		opts.HashCost = bcrypt.DefaultCost
	}
	return &Seeder{
		db:      db,
		users:   authadapters.NewUserGorm(db),
		follows: authadapters.NewFollowGorm(db),
		faker:   gofakeit.New(opts.Seed),
		rng:     rand.New(rand.NewSource(opts.Seed)),
		opts:    opts,
	}
}

// ClearAll deletes every follow edge and user.
func (s *Seeder) ClearAll(ctx context.Context) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&entity.Follow{}).Error; err != nil {
			return fmt.Errorf("clear follows: %w", err)
		}
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&entity.User{}).Error; err != nil {
			return fmt.Errorf("clear users: %w", err)
		}
		return nil
	})
}

// Run creates opts.Users users and a random follow mesh between them.
func (s *Seeder) Run(ctx context.Context) ([]*entity.User, error) {
	users, err := s.SeedUsers(ctx, s.opts.Users)
	if err != nil {
		return nil, err
	}
	edges, err := s.SeedFollows(ctx, users)
	if err != nil {
		return nil, err
	}
	slog.Info("seed complete", "users", len(users), "follows", edges)
	return users, nil
}

// SeedUsers creates n users sharing DemoPassword.
func (s *Seeder) SeedUsers(ctx context.Context, n int) ([]*entity.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), s.opts.HashCost)
	if err != nil {
		return nil, fmt.Errorf("hash demo password: %w", err)
	}

	users := make([]*entity.User, 0, n)
	for i := 0; i < n; i++ {
		u := s.buildUser(i, string(hash))
		if err := s.users.Create(ctx, u); err != nil {
			if errors.Is(err, usecase.ErrEmailAlreadyExists) {
				slog.Warn("seed: skipping existing user", "email", u.Email)
				continue
			}
			return nil, fmt.Errorf("create user %s: %w", u.Email, err)
		}
		users = append(users, u)
	}
	return users, nil
}

// SeedFollows makes every user follow up to MaxFollows random other users.
// It returns the number of edges created.
func (s *Seeder) SeedFollows(ctx context.Context, users []*entity.User) (int, error) {
	if len(users) < 2 {
		return 0, nil
	}

	created := 0
	for _, u := range users {
		want := s.rng.Intn(min(s.opts.MaxFollows, len(users)-1) + 1)
		for _, idx := range s.rng.Perm(len(users)) {
			if want == 0 {
				break
			}
			target := users[idx]
			if target.ID == u.ID {
				continue
			}
			if err := s.follows.Create(ctx, u.ID, target.ID); err != nil {
				if errors.Is(err, usecase.ErrAlreadyFollowing) {
					continue
				}
				return created, fmt.Errorf("follow %s -> %s: %w", u.ID, target.ID, err)
			}
			created++
			want--
		}
	}
	return created, nil
}

func (s *Seeder) buildUser(i int, hash string) *entity.User {
	first, last := s.faker.FirstName(), s.faker.LastName()
	handle := strings.ToLower(first + last)

	u := &entity.User{
		Email:        fmt.Sprintf("%s.%d@devfolio.test", handle, i),
		Password:     hash,
		Name:         first + " " + last,
		Bio:          s.faker.JobTitle() + ". " + s.faker.Sentence(8),
		AvatarURL:    fmt.Sprintf("https://i.pravatar.cc/300?u=%s", s.faker.UUID()),
		BannerURL:    fmt.Sprintf("https://picsum.photos/seed/%s/1500/500", s.faker.UUID()),
		Location:     s.faker.City() + ", " + s.faker.Country(),
		PortfolioURL: "https://" + handle + ".dev",
		Socials: map[string]string{
			"github":   "https://github.com/" + handle,
			"linkedin": "https://linkedin.com/in/" + handle,
		},
		IsVerified: s.rng.Intn(5) == 0,
	}
	if s.rng.Intn(2) == 0 {
		u.ResumeURL = "https://" + handle + ".dev/resume.pdf"
	}
	return u
}
