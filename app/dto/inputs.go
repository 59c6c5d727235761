package dto

import "github.com/vibast-solutions/ms-go-bootcamps/app/entity"

type CreateBootcampInput struct {
	Name          string
	Description   string
	Website       string
	Phone         string
	Email         string
	Address       string
	Careers       []string
	Housing       bool
	JobAssistance bool
}

// UpdateBootcampInput is a patch: nil fields are left untouched.
type UpdateBootcampInput struct {
	Name          *string
	Description   *string
	Website       *string
	Phone         *string
	Email         *string
	Address       *string
	Careers       *[]string
	Housing       *bool
	JobAssistance *bool
}

type CreateCourseInput struct {
	Title                string
	Description          string
	Weeks                int
	Tuition              int
	MinimumSkill         entity.SkillLevel
	ScholarshipAvailable bool
}

type UpdateCourseInput struct {
	Title                *string
	Description          *string
	Weeks                *int
	Tuition              *int
	MinimumSkill         *entity.SkillLevel
	ScholarshipAvailable *bool
}

type CreateReviewInput struct {
	Title  string
	Text   string
	Rating int
}

type UpdateReviewInput struct {
	Title  *string
	Text   *string
	Rating *int
}

type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     entity.Role
}

type UpdateUserInput struct {
	Name  *string
	Email *string
	Role  *entity.Role
}
