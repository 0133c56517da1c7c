package models

// TrainingStatus is the publication state of a training shown on the site.
type TrainingStatus string

const (
	TrainingAvailable TrainingStatus = "available"
	TrainingSoon      TrainingStatus = "soon"
	TrainingClosed    TrainingStatus = "closed"
)

// IsValid reports whether s is one of the three known statuses.
func (s TrainingStatus) IsValid() bool {
	switch s {
	case TrainingAvailable, TrainingSoon, TrainingClosed:
		return true
	}
	return false
}

// TrainingDetails always carries all six keys, empty string when unset.
type TrainingDetails struct {
	Duration    string `json:"duration"`
	Level       string `json:"level"`
	Format      string `json:"format"`
	NextSession string `json:"nextSession"`
	Price       string `json:"price"`
	Location    string `json:"location"`
}

// TrainingModel is a catalog entry. Slug is the business key and the upsert
// conflict key; the row id exists only for storage bookkeeping.
type TrainingModel struct {
	Base
	Slug            string          `json:"slug"          gorm:"uniqueIndex;size:191;not null"`
	Title           string          `json:"title"         gorm:"not null"`
	Category        string          `json:"category"      gorm:"not null"`
	Status          TrainingStatus  `json:"status"        gorm:"size:16;default:soon"`
	Summary         string          `json:"summary"       gorm:"type:text"`
	Description     string          `json:"description"   gorm:"type:longtext"`
	Outcomes        []string        `json:"outcomes"      gorm:"type:longtext;serializer:json"`
	Prerequisites   []string        `json:"prerequisites" gorm:"type:longtext;serializer:json"`
	Details         TrainingDetails `json:"details"       gorm:"type:longtext;serializer:json"`
	CoverImage      *string         `json:"coverImage,omitempty"`
	YoutubeEmbed    *string         `json:"youtubeEmbed,omitempty"`
	PdfProgram      *string         `json:"pdfProgram,omitempty"`
	RegistrationURL *string         `json:"registrationUrl,omitempty" gorm:"column:registration_url"`
}

func (TrainingModel) TableName() string { return "academy_trainings" }
