package auth

// GoogleExchangeRequest completes the calendar OAuth handshake
type GoogleExchangeRequest struct {
	Code  string `json:"code" validate:"required"`
	State string `json:"state" validate:"required"`
}

// UpdateRoleRequest represents PATCH /admin/user/:id/role
type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user admin"`
}

// UpdateTierRequest represents PATCH /admin/user/:id/tier
type UpdateTierRequest struct {
	Tier string `json:"tier" validate:"required,oneof=free premium"`
}
