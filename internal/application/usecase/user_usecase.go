package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/contable-pro/internal/application/dto"
	"github.com/tu-usuario/contable-pro/internal/domain"
	"github.com/tu-usuario/contable-pro/internal/domain/entity"
	"github.com/tu-usuario/contable-pro/internal/domain/repository"
	"golang.org/x/crypto/bcrypt"
)

// UserUseCase CRUD de usuarios dentro de un account.
type UserUseCase struct {
	userRepo repository.UserRepository
}

// NewUserUseCase construye el caso de uso de usuarios.
func NewUserUseCase(userRepo repository.UserRepository) *UserUseCase {
	return &UserUseCase{userRepo: userRepo}
}

// Create crea un usuario dentro del client dado.
func (uc *UserUseCase) Create(clientID string, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	existing, _ := uc.userRepo.GetByEmailAndClient(in.Email, clientID)
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		ClientID:     clientID,
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         in.Name,
		Role:         string(entity.NormalizeRole(in.Role)),
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// loadScoped carga un usuario verificando que pertenezca al account del
// solicitante. callerClientID vacío = sin restricción (master).
func (uc *UserUseCase) loadScoped(callerClientID, id string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if callerClientID != "" && user.ClientID != callerClientID {
		return nil, domain.ErrForbidden
	}
	return user, nil
}

// GetByID devuelve un usuario del account del solicitante o domain.ErrUserNotFound.
func (uc *UserUseCase) GetByID(callerClientID, id string) (*dto.UserResponse, error) {
	user, err := uc.loadScoped(callerClientID, id)
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Update aplica cambios parciales (solo los campos presentes).
func (uc *UserUseCase) Update(callerClientID, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.loadScoped(callerClientID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Role != nil {
		user.Role = string(entity.NormalizeRole(*in.Role))
	}
	if in.Status != nil {
		user.Status = *in.Status
	}
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// ListByClient lista paginada de usuarios del account.
func (uc *UserUseCase) ListByClient(clientID string, page dto.PageRequest) (*dto.UserListResponse, error) {
	page.DefaultPage()
	users, err := uc.userRepo.ListByClient(clientID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		items = append(items, *toUserResponse(u))
	}
	return &dto.UserListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: len(items)},
	}, nil
}

// Delete elimina un usuario del account del solicitante.
func (uc *UserUseCase) Delete(callerClientID, id string) error {
	if _, err := uc.loadScoped(callerClientID, id); err != nil {
		return err
	}
	return uc.userRepo.Delete(id)
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        u.ID,
		ClientID:  u.ClientID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
