package dto

// OptionCreateDTO is one multiple-choice alternative.
type OptionCreateDTO struct {
	Label string `json:"label" binding:"required"`
	Text  string `json:"text" binding:"required"`
}

// QuestionCreateDTO is used within SectionCreateDTO for admin test creation.
type QuestionCreateDTO struct {
	Text           string            `json:"text" binding:"required"`
	Kind           string            `json:"kind" binding:"required,oneof=multiple_choice fill_in_blank essay speaking_prompt"`
	OrderInSection int               `json:"order_in_section" binding:"required,min=1"`
	Options        []OptionCreateDTO `json:"options,omitempty" binding:"omitempty,dive"`
	CorrectAnswer  *string           `json:"correct_answer,omitempty"`
	MinWords       int               `json:"min_words,omitempty"`
	MaxScore       float64           `json:"max_score" binding:"required,gt=0"`
}

// SectionCreateDTO describes one ordered section of a test.
type SectionCreateDTO struct {
	Title           string              `json:"title" binding:"required"`
	Type            string              `json:"type" binding:"required,oneof=listening reading writing speaking"`
	OrderInTest     int                 `json:"order_in_test" binding:"required,min=1"`
	DurationSeconds int                 `json:"duration_seconds" binding:"required,gt=0"`
	AudioURL        *string             `json:"audio_url,omitempty"`
	Questions       []QuestionCreateDTO `json:"questions" binding:"required,min=1,dive"`
}

// TestCreateDTO is for admin to create a new mock test with all its sections.
type TestCreateDTO struct {
	Title       string             `json:"title" binding:"required"`
	Description string             `json:"description,omitempty"`
	Sections    []SectionCreateDTO `json:"sections" binding:"required,min=1,dive"`
}
