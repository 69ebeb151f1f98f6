package auth

import (
	"context"

	"github.com/junaidrashid-git/biryani-house/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserStore persists the identities that can open a session.
type UserStore interface {
	UpsertUser(ctx context.Context, user *models.User) error
	CreateGuest(ctx context.Context, guest *models.GuestUser) error
}

type GormUserStore struct {
	db *gorm.DB
}

func NewGormUserStore(db *gorm.DB) *GormUserStore {
	return &GormUserStore{db: db}
}

// UpsertUser creates the user or refreshes the profile fields Google owns.
func (s *GormUserStore) UpsertUser(ctx context.Context, user *models.User) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"email", "name", "picture"}),
	}).Create(user).Error
}

func (s *GormUserStore) CreateGuest(ctx context.Context, guest *models.GuestUser) error {
	return s.db.WithContext(ctx).Create(guest).Error
}
