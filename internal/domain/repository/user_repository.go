package repository

import "github.com/mohan98521/gtm-variable-pay-sub001/internal/domain/entity"

// UserRepository define el puerto de persistencia para perfiles de login.
type UserRepository interface {
	Create(u *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	Update(u *entity.User) error
}
