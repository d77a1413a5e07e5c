package user

type RegisterRequest struct {
	PhoneNumber string `json:"phone_number"`
	Name        string `json:"name"`
}

type LoginRequest struct {
	PhoneNumber string `json:"phone_number"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

type UpdateRequest struct {
	Name    *string `json:"name,omitempty"`
	Privacy *string `json:"privacy,omitempty"`
}

type AddFriendRequest struct {
	FriendID string `json:"friend_id"`
}

type LookupRequest struct {
	PhoneNumbers []string `json:"phone_numbers"`
}
