package request

// CreateUserRequest represents a create user request
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=2,max=255"`
	FullName string `json:"full_name" binding:"required,min=1,max=255"`
	Password string `json:"password" binding:"required,min=4"`
	Role     string `json:"role" binding:"required,oneof=admin cashier"`
}

// UpdateUserRequest represents an update user request
type UpdateUserRequest struct {
	FullName *string `json:"full_name" binding:"omitempty,min=1,max=255"`
	Password *string `json:"password" binding:"omitempty,min=4"`
	Role     *string `json:"role" binding:"omitempty,oneof=admin cashier"`
	Active   *bool   `json:"active"`
}
