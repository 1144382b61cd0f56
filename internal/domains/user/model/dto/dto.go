package dto

import (
	"hotel/internal/domains/user/model"
	"hotel/shared"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"
	"strings"
	"time"

	"github.com/google/uuid"
)

type CreateUserRequest struct {
	Email    string     `json:"email"     validate:"required,email"`
	Password string     `json:"password"  validate:"required,min=8,max=72"`
	FullName string     `json:"full_name" validate:"required,min=2,max=100"`
	Role     model.Role `json:"role"      validate:"omitempty,enum"`
}

func (r *CreateUserRequest) ToModel(username string, hashedPassword string) model.User {
	role := r.Role
	if role == "" {
		role = model.RoleStaff
	}

	now := timezone.Now()

	return model.User{
		ID:       uuid.NewString(),
		Email:    strings.ToLower(strings.TrimSpace(r.Email)),
		Password: hashedPassword,
		FullName: r.FullName,
		Role:     role,
		Active:   true,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  username,
			ModifiedBy: username,
		},
	}
}

// UpdateUserRequest is a partial update; Password is hashed by the service before it is stored.
type UpdateUserRequest struct {
	FullName *string     `db:"full_name" json:"full_name,omitempty" validate:"omitempty,min=2,max=100"`
	Role     *model.Role `db:"role"      json:"role,omitempty"      validate:"omitempty,enum"`
	Active   *bool       `db:"active"    json:"active,omitempty"`
	Password *string     `db:"-"         json:"password,omitempty"  validate:"omitempty,min=8,max=72"`
}

type UserResponse struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	FullName  string     `json:"full_name"`
	Role      model.Role `json:"role"`
	Active    bool       `json:"active"`
	LastLogin *time.Time `json:"last_login"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(user model.User) {
	r.ID = user.ID
	r.Email = user.Email
	r.FullName = user.FullName
	r.Role = user.Role
	r.Active = user.Active
	r.LastLogin = user.LastLogin
	r.Metadata.FromModel(user.Metadata)
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(models))
	for i, user := range models {
		r.Users[i].FromModel(user)
	}
}
