// Package validation implements input validators that return per-field error
// messages. A validator gates the handler before any service call; services
// trust that their inputs already passed.
package validation

import (
	"net/mail"
	"strings"
	"unicode/utf8"
)

// PostInput is the payload accepted by the post creation endpoint.
type PostInput struct {
	Text string `json:"text"`
	Name string `json:"name"`
}

// ValidatePostInput checks post creation input and returns field errors.
// ok is true only when errors is empty.
func ValidatePostInput(in PostInput) (errors map[string]string, ok bool) {
	errors = map[string]string{}

	text := strings.TrimSpace(in.Text)
	if text == "" {
		errors["text"] = "Text field is required"
	} else if n := utf8.RuneCountInString(text); n < 10 || n > 300 {
		errors["text"] = "Post must be between 10 and 300 characters"
	}

	return errors, len(errors) == 0
}

// RegisterInput is the payload accepted by the registration endpoint.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ValidateRegisterInput checks registration input and returns field errors.
func ValidateRegisterInput(in RegisterInput) (errors map[string]string, ok bool) {
	errors = map[string]string{}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		errors["name"] = "Name field is required"
	} else if n := utf8.RuneCountInString(name); n < 2 || n > 30 {
		errors["name"] = "Name must be between 2 and 30 characters"
	}

	if strings.TrimSpace(in.Email) == "" {
		errors["email"] = "Email field is required"
	} else if _, err := mail.ParseAddress(in.Email); err != nil {
		errors["email"] = "Email is invalid"
	}

	if in.Password == "" {
		errors["password"] = "Password field is required"
	} else if n := len(in.Password); n < 6 || n > 72 {
		errors["password"] = "Password must be between 6 and 72 characters"
	}

	return errors, len(errors) == 0
}

// LoginInput is the payload accepted by the login endpoint.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ValidateLoginInput checks login input and returns field errors.
func ValidateLoginInput(in LoginInput) (errors map[string]string, ok bool) {
	errors = map[string]string{}

	if strings.TrimSpace(in.Email) == "" {
		errors["email"] = "Email field is required"
	}
	if in.Password == "" {
		errors["password"] = "Password field is required"
	}

	return errors, len(errors) == 0
}

// ProfileInput is the payload accepted by the profile upsert endpoint.
type ProfileInput struct {
	Handle         string   `json:"handle"`
	Bio            string   `json:"bio"`
	Skills         []string `json:"skills"`
	Company        string   `json:"company"`
	Website        string   `json:"website"`
	Location       string   `json:"location"`
	GithubUsername string   `json:"github_username"`
}

// ValidateProfileInput checks profile upsert input and returns field errors.
func ValidateProfileInput(in ProfileInput) (errors map[string]string, ok bool) {
	errors = map[string]string{}

	handle := strings.TrimSpace(in.Handle)
	if handle == "" {
		errors["handle"] = "Profile handle is required"
	} else if n := utf8.RuneCountInString(handle); n < 2 || n > 40 {
		errors["handle"] = "Handle must be between 2 and 40 characters"
	}

	hasSkill := false
	for _, s := range in.Skills {
		if strings.TrimSpace(s) != "" {
			hasSkill = true
			break
		}
	}
	if !hasSkill {
		errors["skills"] = "Skills field is required"
	}

	return errors, len(errors) == 0
}
