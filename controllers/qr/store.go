package qrcontroller

import (
	"context"
	"errors"

	"github.com/junaidrashid-git/biryani-house/models"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("qr file not found")

type Store interface {
	Save(ctx context.Context, fileName, fileURL string) (*models.QRFile, error)
	List(ctx context.Context) ([]models.QRFile, error)
	Latest(ctx context.Context) (*models.QRFile, error)
	Get(ctx context.Context, id string) (*models.QRFile, error)
	Delete(ctx context.Context, file *models.QRFile) error
}

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Save(ctx context.Context, fileName, fileURL string) (*models.QRFile, error) {
	return models.SaveQRFile(s.db.WithContext(ctx), fileName, fileURL)
}

func (s *GormStore) List(ctx context.Context) ([]models.QRFile, error) {
	return models.GetAllQRFiles(s.db.WithContext(ctx))
}

func (s *GormStore) Latest(ctx context.Context) (*models.QRFile, error) {
	file, err := models.LatestQRFile(s.db.WithContext(ctx))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return file, err
}

func (s *GormStore) Get(ctx context.Context, id string) (*models.QRFile, error) {
	var file models.QRFile
	err := s.db.WithContext(ctx).First(&file, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &file, nil
}

func (s *GormStore) Delete(ctx context.Context, file *models.QRFile) error {
	return s.db.WithContext(ctx).Delete(file).Error
}
