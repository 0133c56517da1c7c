package models

// RegistrationModel is a lead captured by the public registration form.
type RegistrationModel struct {
	Base
	TrainingSlug string `json:"training_slug" gorm:"index;size:191;not null"`
	FirstName    string `json:"first_name"    gorm:"not null"`
	LastName     string `json:"last_name"     gorm:"not null"`
	Email        string `json:"email"         gorm:"not null"`
	Phone        string `json:"phone,omitempty"`
	City         string `json:"city,omitempty"`
	Profile      string `json:"profile,omitempty"`
	Message      string `json:"message,omitempty" gorm:"type:text"`
}

func (RegistrationModel) TableName() string { return "academy_registrations" }

// NotificationModel is a notify-me lead for a training that is not open yet.
type NotificationModel struct {
	Base
	TrainingSlug string `json:"training_slug" gorm:"index;size:191;not null"`
	Name         string `json:"name"          gorm:"not null"`
	Email        string `json:"email"         gorm:"not null"`
	Phone        string `json:"phone,omitempty"`
}

func (NotificationModel) TableName() string { return "academy_notifications" }
