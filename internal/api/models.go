// Package api contains the HTTP handlers for the service, grouped by
// surface: authentication, course authoring, creator applications, admin
// review, and the learner endpoints.
package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/microcourses/api/internal/domain"
)

// RegisterRequest is the payload for user registration.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest is the payload for user login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse is the public view of a user. The password hash never
// leaves the server.
type UserResponse struct {
	ID        uuid.UUID   `json:"id"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
}

// AuthResponse is returned by register and login: the user plus a fresh
// bearer token.
type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// NewUserResponse converts a domain user to its public view.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}

// CourseRequest is the payload for creating a course.
type CourseRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
}

// CourseUpdateRequest is the payload for editing a course. Absent fields
// are left unchanged.
type CourseUpdateRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

// LessonRequest is the payload for adding a lesson to a course.
type LessonRequest struct {
	Title      string `json:"title" validate:"required,max=200"`
	Content    string `json:"content" validate:"required"`
	OrderIndex int    `json:"order_index" validate:"min=0"`
}

// EnrollRequest is the payload for enrolling in a published course.
type EnrollRequest struct {
	CourseID uuid.UUID `json:"course_id" validate:"required"`
}

// CompleteRequest is the payload for marking a lesson completed.
type CompleteRequest struct {
	LessonID uuid.UUID `json:"lesson_id" validate:"required"`
}

// CertificateRequest is the payload for issuing a certificate.
type CertificateRequest struct {
	CourseID uuid.UUID `json:"course_id" validate:"required"`
}

// CourseDetailResponse is a course together with its ordered lessons.
type CourseDetailResponse struct {
	Course  *domain.Course   `json:"course"`
	Lessons []*domain.Lesson `json:"lessons"`
}

// ApplyRequest is the payload for filing a creator application.
type ApplyRequest struct {
	Bio string `json:"bio" validate:"required,max=2000"`
}

// PageResponse is the uniform shape for paginated listings. NextOffset is
// null when the listing is exhausted.
type PageResponse struct {
	Items      any  `json:"items"`
	NextOffset *int `json:"next_offset"`
}

// NewPageResponse wraps a page of items. Callers fetch one row beyond the
// page size; that look-ahead row proves a further page exists and is
// trimmed from the response, so an exactly-full final page reports a null
// next_offset.
func NewPageResponse[T any](items []T, limit, offset int) PageResponse {
	var next *int
	if len(items) > limit {
		items = items[:limit]
		n := offset + limit
		next = &n
	}

	// Marshal an empty page as [], not null.
	boxed := make([]T, 0, len(items))
	boxed = append(boxed, items...)

	return PageResponse{Items: boxed, NextOffset: next}
}
