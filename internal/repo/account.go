package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/Skotchmaster/shop_api/internal/models"
)

// FindAccountByEmail returns nil without error when no account has the email.
func (r *GormRepo) FindAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	var accounts []models.Account
	if err := r.DB.WithContext(ctx).Where("email = ?", email).Limit(1).Find(&accounts).Error; err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		return nil, nil
	}
	return &accounts[0], nil
}

func (r *GormRepo) GetAccount(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	var account models.Account
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&account).Error; err != nil {
		return nil, translate(err)
	}
	return &account, nil
}

func (r *GormRepo) CreateAccount(ctx context.Context, account *models.Account) error {
	return translate(r.DB.WithContext(ctx).Create(account).Error)
}

func (r *GormRepo) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	return affected(r.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.Account{}))
}
