package model

import "time"

// Learner is the owner identity for roadmaps. Learners are provisioned out of
// band (cmd/create-learner); the API only signs them in and reads the profile.
type Learner struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// LoginRequest is the payload for learner sign-in.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}
