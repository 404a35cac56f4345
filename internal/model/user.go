package model

import "time"

// User 使用者模型
type User struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Public    bool      `json:"public" db:"is_public"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// UpdateUserParams 部分更新參數
type UpdateUserParams struct {
	Name   *string
	Public *bool
}

// UserShortResponse 使用者簡短回應
type UserShortResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func NewUserShortResponse(u *User) UserShortResponse {
	return UserShortResponse{ID: u.ID, Name: u.Name}
}
