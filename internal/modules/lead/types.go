package lead

import (
	"strings"

	"github.com/enovcorp/academy-core/internal/models"
)

// RegistrationInput is the public registration form payload.
type RegistrationInput struct {
	TrainingSlug string `json:"trainingSlug"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	City         string `json:"city"`
	Profile      string `json:"profile"`
	Message      string `json:"message"`
}

// NotificationInput is the "tell me when it opens" form payload.
type NotificationInput struct {
	TrainingSlug string `json:"trainingSlug"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
}

func (in RegistrationInput) normalized() RegistrationInput {
	return RegistrationInput{
		TrainingSlug: strings.TrimSpace(in.TrainingSlug),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Email:        strings.TrimSpace(in.Email),
		Phone:        strings.TrimSpace(in.Phone),
		City:         strings.TrimSpace(in.City),
		Profile:      strings.TrimSpace(in.Profile),
		Message:      strings.TrimSpace(in.Message),
	}
}

func (in RegistrationInput) valid() bool {
	return in.TrainingSlug != "" && in.FirstName != "" && in.LastName != "" && in.Email != ""
}

func (in RegistrationInput) toModel() models.RegistrationModel {
	return models.RegistrationModel{
		TrainingSlug: in.TrainingSlug,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		Phone:        in.Phone,
		City:         in.City,
		Profile:      in.Profile,
		Message:      in.Message,
	}
}

func (in NotificationInput) normalized() NotificationInput {
	return NotificationInput{
		TrainingSlug: strings.TrimSpace(in.TrainingSlug),
		Name:         strings.TrimSpace(in.Name),
		Email:        strings.TrimSpace(in.Email),
		Phone:        strings.TrimSpace(in.Phone),
	}
}

func (in NotificationInput) valid() bool {
	return in.TrainingSlug != "" && in.Name != "" && in.Email != ""
}

func (in NotificationInput) toModel() models.NotificationModel {
	return models.NotificationModel{
		TrainingSlug: in.TrainingSlug,
		Name:         in.Name,
		Email:        in.Email,
		Phone:        in.Phone,
	}
}
