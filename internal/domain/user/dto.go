package user

type RegisterInput struct {
	Name     string `json:"name" binding:"required,min=1,max=200" example:"Ali"`
	Email    string `json:"email" binding:"required,email" example:"ali@nb.com"`
	Password string `json:"password" binding:"required,min=6" example:"password123"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required" example:"ali@nb.com"`
	Password string `json:"password" binding:"required" example:"password123"`
}

type CreateUserInput struct {
	Name        string  `json:"name" binding:"required,min=1,max=200"`
	Email       string  `json:"email" binding:"required,email"`
	Password    string  `json:"password" binding:"required,min=6"`
	PhoneNumber string  `json:"phone_number"`
	Age         int     `json:"age" binding:"gte=0"`
	Role        *string `json:"role" binding:"omitempty,oneof=Admin Editor"`
}

type UpdateUserInput struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=200"`
	Email       *string `json:"email" binding:"omitempty,email"`
	PhoneNumber *string `json:"phone_number"`
	Age         *int    `json:"age" binding:"omitempty,gte=0"`
}

// Session is what login and register hand back to the client.
type Session struct {
	Token      string `json:"token"`
	UserID     uint   `json:"user_id"`
	Name       string `json:"name"`
	Role       Role   `json:"role"`
	TenantID   uint   `json:"tenant_id"`
	TenantName string `json:"tenant_name"`
}
