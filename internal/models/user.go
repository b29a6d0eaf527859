package models

// Roles carried in the auth service token.
const (
	RoleAdmin = "ROLE_ADMIN"
	RoleUser  = "ROLE_USER"
)

// User is an operator account managed by the auth service.
type User struct {
	ID                   int64  `json:"id"`
	Username             string `json:"username"`
	Email                string `json:"email"`
	IdentificationNumber string `json:"identificationNumber"`
	Role                 string `json:"role,omitempty"`
}

// UserInput registers or updates a user. Password may be empty on update.
type UserInput struct {
	Username             string `json:"username" form:"username" validate:"required"`
	Email                string `json:"email" form:"email" validate:"required,email"`
	IdentificationNumber string `json:"identificationNumber" form:"identificationNumber" validate:"required"`
	Password             string `json:"password,omitempty" form:"password"`
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
	TotalPages int `json:"total_pages"`
}
