package presenter

import (
	authDTO "github.com/Samadhi-12/MinuteMe/internal/adapter/dto/auth"
	"github.com/Samadhi-12/MinuteMe/internal/domain/entities"
)

// ToUserResponse converts a User entity to UserResponse DTO
func ToUserResponse(u *entities.User) *authDTO.UserResponse {
	if u == nil {
		return nil
	}
	return &authDTO.UserResponse{
		ID:                u.ID,
		Email:             u.Email,
		Name:              u.Name,
		Role:              string(u.Role),
		Tier:              string(u.Tier),
		CalendarConnected: u.CalendarConnected(),
		CreatedAt:         u.CreatedAt,
		UpdatedAt:         u.UpdatedAt,
	}
}

// ToUserResponses converts a page of users
func ToUserResponses(users []*entities.User) []*authDTO.UserResponse {
	out := make([]*authDTO.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, ToUserResponse(u))
	}
	return out
}
