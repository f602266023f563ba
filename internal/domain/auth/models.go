package auth

import "time"

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	EmployeeID   string    `json:"employeeId,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (u User) Context() UserContext {
	return UserContext{UserID: u.ID, Email: u.Email, Role: u.Role, EmployeeID: u.EmployeeID}
}
