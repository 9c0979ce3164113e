package response

import "github.com/dstepanov/warehouse-api/internal/domain"

// User is the wire shape of an account. The password hash never leaves
// the service layer.
type User struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	IsSeller bool   `json:"is_seller"`
}

func NewUser(u domain.User) User {
	return User{
		ID:       u.ID,
		Username: u.Username,
		IsSeller: u.IsSeller(),
	}
}

func NewUsers(users []domain.User) []User {
	result := make([]User, len(users))
	for i, u := range users {
		result[i] = NewUser(u)
	}

	return result
}

type CurrentUser struct {
	Username string `json:"username"`
}
