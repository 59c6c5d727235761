package dto

import "github.com/vibast-solutions/ms-go-bootcamps/app/entity"

type AuthResult struct {
	Token string
	User  *entity.User
}

type BootcampSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CourseDetail is a course with its bootcamp summary populated.
type CourseDetail struct {
	*entity.Course
	Bootcamp *BootcampSummary `json:"bootcamp,omitempty"`
}
