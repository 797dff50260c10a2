package tenant

type UpdateTenantDTO struct {
	Name *string `json:"name" binding:"omitempty,min=1,max=200"`
}
