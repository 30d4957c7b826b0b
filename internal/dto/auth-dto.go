package dto

import "event-rental/internal/entities"

type LoginDTO struct {
	Username string `json:"username" validate:"required,max=20,username"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenDTO struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type TokenPairDTO struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type MeDTO struct {
	ID          uint64        `json:"id"`
	Username    string        `json:"username"`
	FirstName   string        `json:"first_name"`
	FathersName string        `json:"fathers_name"`
	Email       string        `json:"email"`
	Role        entities.Role `json:"role"`
	IsStaff     bool          `json:"is_staff"`
	IsSuperuser bool          `json:"is_superuser"`
}

func NewMeDTO(e *entities.Employee) MeDTO {
	return MeDTO{
		ID:          e.ID,
		Username:    e.Username,
		FirstName:   e.FirstName,
		FathersName: e.FathersName,
		Email:       e.Email,
		Role:        e.Role,
		IsStaff:     e.IsStaff,
		IsSuperuser: e.IsSuperuser,
	}
}
