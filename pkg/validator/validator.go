package validator

import (
	"net/mail"
	"regexp"
	"strings"
)

type ValidationErrors map[string]string

func (v ValidationErrors) HasErrors() bool {
	return len(v) > 0
}

func (v ValidationErrors) Add(field, message string) {
	v[field] = message
}

var handleRegex = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)

func ValidateRegister(firstName, lastName, email, password string) ValidationErrors {
	errs := make(ValidationErrors)

	firstName = strings.TrimSpace(firstName)
	if firstName == "" {
		errs.Add("first_name", "First name is required")
	} else if len(firstName) > 100 {
		errs.Add("first_name", "First name is too long")
	}

	lastName = strings.TrimSpace(lastName)
	if lastName == "" {
		errs.Add("last_name", "Last name is required")
	} else if len(lastName) > 100 {
		errs.Add("last_name", "Last name is too long")
	}

	validateEmail(email, errs)

	if len(password) < 8 {
		errs.Add("password", "Password must be at least 8 characters")
	} else if len(password) > 72 {
		// bcrypt input limit
		errs.Add("password", "Password is too long")
	}

	return errs
}

func ValidateLogin(email, password string) ValidationErrors {
	errs := make(ValidationErrors)

	validateEmail(email, errs)

	if password == "" {
		errs.Add("password", "Password is required")
	}

	return errs
}

func ValidateProfileUpdate(displayName, handle *string) ValidationErrors {
	errs := make(ValidationErrors)

	if displayName != nil {
		name := strings.TrimSpace(*displayName)
		if name == "" {
			errs.Add("display_name", "Display name cannot be empty")
		} else if len(name) > 100 {
			errs.Add("display_name", "Display name is too long")
		}
	}

	if handle != nil {
		h := strings.TrimSpace(*handle)
		if h == "" {
			errs.Add("handle", "Handle cannot be empty")
		} else if len(h) < 3 {
			errs.Add("handle", "Handle must be at least 3 characters")
		} else if len(h) > 50 {
			errs.Add("handle", "Handle is too long")
		} else if !handleRegex.MatchString(h) {
			errs.Add("handle", "Handle can only contain letters, numbers, _ . and -")
		}
	}

	return errs
}

func ValidateSubscribe(channelID, channelTitle, channelThumbnail string) ValidationErrors {
	errs := make(ValidationErrors)

	if strings.TrimSpace(channelID) == "" {
		errs.Add("channel_id", "Channel ID is required")
	}
	if strings.TrimSpace(channelTitle) == "" {
		errs.Add("channel_title", "Channel title is required")
	}
	if strings.TrimSpace(channelThumbnail) == "" {
		errs.Add("channel_thumbnail", "Channel thumbnail is required")
	}

	return errs
}

func validateEmail(email string, errs ValidationErrors) {
	email = strings.TrimSpace(email)
	if email == "" {
		errs.Add("email", "Email is required")
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs.Add("email", "Invalid email address")
	}
}
