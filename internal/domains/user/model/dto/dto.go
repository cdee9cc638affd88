package dto

import (
	"time"

	"voyage/internal/attachment"
	"voyage/internal/domains/user/model"
	"voyage/shared"
	"voyage/shared/constant"
	gDto "voyage/shared/dto"
	gModel "voyage/shared/model"
	"voyage/shared/timezone"

	"github.com/google/uuid"
)

type CreateUserRequest struct {
	Email    string `json:"email"     validate:"required,email"`
	Password string `json:"password"  validate:"required,min=8,max=72"`
	Role     string `json:"role"      validate:"omitempty,oneof=admin user"`
	FullName string `json:"full_name" validate:"required,min=2,max=100"`
	Phone    string `json:"phone"     validate:"omitempty,max=30"`
}

func (r *CreateUserRequest) ToModel(createdBy, hashedPassword string) model.User {
	role := r.Role
	if role == constant.Empty {
		role = constant.RoleUser
	}

	return model.User{
		ID:       uuid.NewString(),
		Email:    r.Email,
		Password: hashedPassword,
		Role:     role,
		FullName: r.FullName,
		Phone:    r.Phone,
		Active:   true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  createdBy,
			ModifiedBy: createdBy,
		},
	}
}

// UpdateUserRequest is the admin view of an account.
type UpdateUserRequest struct {
	Role     *string `db:"role"      json:"role"      validate:"omitempty,oneof=admin user"`
	FullName *string `db:"full_name" json:"full_name" validate:"omitempty,min=2,max=100"`
	Phone    *string `db:"phone"     json:"phone"     validate:"omitempty,max=30"`
	Active   *bool   `db:"active"    json:"active"`
}

// UpdateProfileRequest is what users may change about themselves.
type UpdateProfileRequest struct {
	FullName    *string            `db:"full_name" json:"full_name" validate:"omitempty,min=2,max=100"`
	Phone       *string            `db:"phone"     json:"phone"     validate:"omitempty,max=30"`
	Avatar      *attachment.Upload `json:"avatar"        swaggerignore:"true" validate:"omitempty,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=2"`
	ClearAvatar bool               `json:"clear_avatar"`
}

type UserResponse struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	FullName  string     `json:"full_name"`
	Phone     string     `json:"phone"`
	Avatar    string     `json:"avatar"`
	AvatarURL string     `json:"avatar_url"`
	Active    bool       `json:"active"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(mod model.User, urlFor func(string) string) {
	r.ID = mod.ID
	r.Email = mod.Email
	r.Role = mod.Role
	r.FullName = mod.FullName
	r.Phone = mod.Phone
	r.Avatar = mod.Avatar
	r.AvatarURL = urlFor(mod.Avatar)
	r.Active = mod.Active
	r.LastLogin = mod.LastLogin
	r.Metadata.FromModel(mod.Metadata)
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData, limit int, urlFor func(string) string) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		r.Users[i].FromModel(mod, urlFor)
	}
}
