package domain

import "time"

const (
	RoleSeller   = "seller"
	RoleCustomer = "customer"
)

type User struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u User) IsSeller() bool {
	return u.Role == RoleSeller
}
