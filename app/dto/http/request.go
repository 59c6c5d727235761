package http

import (
	"errors"
	"strings"

	"github.com/vibast-solutions/ms-go-bootcamps/app/dto"
	"github.com/vibast-solutions/ms-go-bootcamps/app/entity"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (r *RegisterRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" || strings.TrimSpace(r.Email) == "" || r.Password == "" {
		return errors.New("name, email and password are required")
	}
	return nil
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" || r.Password == "" {
		return errors.New("email and password are required")
	}
	return nil
}

type UpdateDetailsRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (r *UpdateDetailsRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" && strings.TrimSpace(r.Email) == "" {
		return errors.New("name or email is required")
	}
	return nil
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (r *UpdatePasswordRequest) Validate() error {
	if r.CurrentPassword == "" || r.NewPassword == "" {
		return errors.New("current_password and new_password are required")
	}
	return nil
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

func (r *ForgotPasswordRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" {
		return errors.New("email is required")
	}
	return nil
}

type ResetPasswordRequest struct {
	Password string `json:"password"`
}

func (r *ResetPasswordRequest) Validate() error {
	if r.Password == "" {
		return errors.New("password is required")
	}
	return nil
}

type CreateBootcampRequest struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Website       string   `json:"website"`
	Phone         string   `json:"phone"`
	Email         string   `json:"email"`
	Address       string   `json:"address"`
	Careers       []string `json:"careers"`
	Housing       bool     `json:"housing"`
	JobAssistance bool     `json:"job_assistance"`
}

func (r *CreateBootcampRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" || strings.TrimSpace(r.Description) == "" || strings.TrimSpace(r.Address) == "" {
		return errors.New("name, description and address are required")
	}
	return nil
}

func (r *CreateBootcampRequest) ToInput() dto.CreateBootcampInput {
	return dto.CreateBootcampInput{
		Name:          r.Name,
		Description:   r.Description,
		Website:       r.Website,
		Phone:         r.Phone,
		Email:         r.Email,
		Address:       r.Address,
		Careers:       r.Careers,
		Housing:       r.Housing,
		JobAssistance: r.JobAssistance,
	}
}

type UpdateBootcampRequest struct {
	Name          *string   `json:"name"`
	Description   *string   `json:"description"`
	Website       *string   `json:"website"`
	Phone         *string   `json:"phone"`
	Email         *string   `json:"email"`
	Address       *string   `json:"address"`
	Careers       *[]string `json:"careers"`
	Housing       *bool     `json:"housing"`
	JobAssistance *bool     `json:"job_assistance"`
}

func (r *UpdateBootcampRequest) ToInput() dto.UpdateBootcampInput {
	return dto.UpdateBootcampInput{
		Name:          r.Name,
		Description:   r.Description,
		Website:       r.Website,
		Phone:         r.Phone,
		Email:         r.Email,
		Address:       r.Address,
		Careers:       r.Careers,
		Housing:       r.Housing,
		JobAssistance: r.JobAssistance,
	}
}

type CreateCourseRequest struct {
	Title                string `json:"title"`
	Description          string `json:"description"`
	Weeks                int    `json:"weeks"`
	Tuition              int    `json:"tuition"`
	MinimumSkill         string `json:"minimum_skill"`
	ScholarshipAvailable bool   `json:"scholarship_available"`
}

func (r *CreateCourseRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" || strings.TrimSpace(r.Description) == "" {
		return errors.New("title and description are required")
	}
	return nil
}

func (r *CreateCourseRequest) ToInput() dto.CreateCourseInput {
	return dto.CreateCourseInput{
		Title:                r.Title,
		Description:          r.Description,
		Weeks:                r.Weeks,
		Tuition:              r.Tuition,
		MinimumSkill:         entity.SkillLevel(r.MinimumSkill),
		ScholarshipAvailable: r.ScholarshipAvailable,
	}
}

type UpdateCourseRequest struct {
	Title                *string `json:"title"`
	Description          *string `json:"description"`
	Weeks                *int    `json:"weeks"`
	Tuition              *int    `json:"tuition"`
	MinimumSkill         *string `json:"minimum_skill"`
	ScholarshipAvailable *bool   `json:"scholarship_available"`
}

func (r *UpdateCourseRequest) ToInput() dto.UpdateCourseInput {
	in := dto.UpdateCourseInput{
		Title:                r.Title,
		Description:          r.Description,
		Weeks:                r.Weeks,
		Tuition:              r.Tuition,
		ScholarshipAvailable: r.ScholarshipAvailable,
	}
	if r.MinimumSkill != nil {
		skill := entity.SkillLevel(*r.MinimumSkill)
		in.MinimumSkill = &skill
	}
	return in
}

type CreateReviewRequest struct {
	Title  string `json:"title"`
	Text   string `json:"text"`
	Rating int    `json:"rating"`
}

func (r *CreateReviewRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" || strings.TrimSpace(r.Text) == "" {
		return errors.New("title and text are required")
	}
	return nil
}

func (r *CreateReviewRequest) ToInput() dto.CreateReviewInput {
	return dto.CreateReviewInput{Title: r.Title, Text: r.Text, Rating: r.Rating}
}

type UpdateReviewRequest struct {
	Title  *string `json:"title"`
	Text   *string `json:"text"`
	Rating *int    `json:"rating"`
}

func (r *UpdateReviewRequest) ToInput() dto.UpdateReviewInput {
	return dto.UpdateReviewInput{Title: r.Title, Text: r.Text, Rating: r.Rating}
}

type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (r *CreateUserRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" || strings.TrimSpace(r.Email) == "" || r.Password == "" {
		return errors.New("name, email and password are required")
	}
	return nil
}

func (r *CreateUserRequest) ToInput() dto.CreateUserInput {
	return dto.CreateUserInput{
		Name:     r.Name,
		Email:    r.Email,
		Password: r.Password,
		Role:     entity.Role(r.Role),
	}
}

type UpdateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Role  *string `json:"role"`
}

func (r *UpdateUserRequest) ToInput() dto.UpdateUserInput {
	in := dto.UpdateUserInput{Name: r.Name, Email: r.Email}
	if r.Role != nil {
		role := entity.Role(*r.Role)
		in.Role = &role
	}
	return in
}
