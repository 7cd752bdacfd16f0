package auth

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mohan98521/gtm-variable-pay-sub001/internal/application/dto"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/domain"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/domain/entity"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/domain/repository"
	"github.com/mohan98521/gtm-variable-pay-sub001/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: login y alta de perfiles.
type AuthUseCase struct {
	userRepo repository.UserRepository
	empRepo  repository.EmployeeRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, empRepo repository.EmployeeRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, empRepo: empRepo, jwtCfg: jwtCfg}
}

// CreateUser crea un perfil de login: hashea password con bcrypt y persiste.
// Devuelve ErrEmailAlreadyExists si el email ya tiene perfil. Si llega
// employee_id debe corresponder a un empleado existente.
func (uc *AuthUseCase) CreateUser(in dto.CreateUserRequest) (*dto.UserResponse, error) {
	existing, _ := uc.userRepo.FindByEmail(in.Email)
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	if in.EmployeeID != nil {
		emp, err := uc.empRepo.GetByID(*in.EmployeeID)
		if err != nil {
			return nil, err
		}
		if emp == nil {
			return nil, domain.ErrNotFound // empleado no existe
		}
	}
	role := in.Role
	switch role {
	case "":
		role = entity.RoleViewer
	case entity.RoleAdmin, entity.RoleFinance, entity.RoleViewer:
	default:
		return nil, domain.ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	name := in.FullName
	if name == "" {
		name = in.Email
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		EmployeeID:   in.EmployeeID,
		Email:        in.Email,
		PasswordHash: string(hash),
		FullName:     name,
		Role:         role,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.FindByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != "active" {
		return nil, domain.ErrForbidden
	}
	employeeID := ""
	if user.EmployeeID != nil {
		employeeID = *user.EmployeeID
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, employeeID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		FullName:   u.FullName,
		Role:       u.Role,
		Status:     u.Status,
		EmployeeID: u.EmployeeID,
		CreatedAt:  u.CreatedAt,
	}
}
