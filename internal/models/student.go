package models

import "time"

// Student represents a learner registered with the assistant. Subject scores
// are nullable in the store; a missing score means "not yet recorded" and is
// distinct from an explicit value only in storage — views substitute 0.
type Student struct {
	RollNo    int64     `db:"roll_no" json:"roll_no"`
	Name      string    `db:"name" json:"name"`
	Grade     int       `db:"grade" json:"grade"`
	Language  string    `db:"language" json:"language"`
	Language1 *int      `db:"language1" json:"-"`
	Language2 *int      `db:"language2" json:"-"`
	Language3 *int      `db:"language3" json:"-"`
	Maths     *int      `db:"maths" json:"-"`
	Science   *int      `db:"science" json:"-"`
	Social    *int      `db:"social" json:"-"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Scores returns the six subject scores with 0 substituted for unset values.
func (s *Student) Scores() map[string]int {
	deref := func(v *int) int {
		if v == nil {
			return 0
		}
		return *v
	}
	return map[string]int{
		SubjectLanguage1: deref(s.Language1),
		SubjectLanguage2: deref(s.Language2),
		SubjectLanguage3: deref(s.Language3),
		SubjectMaths:     deref(s.Maths),
		SubjectScience:   deref(s.Science),
		SubjectSocial:    deref(s.Social),
	}
}

// StudentProfile is the API view of a student with scores flattened to a map.
type StudentProfile struct {
	RollNo    int64          `json:"roll_no"`
	Name      string         `json:"name"`
	Grade     int            `json:"grade"`
	Language  string         `json:"language"`
	Scores    map[string]int `json:"scores"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// Profile converts the stored record into its API view.
func (s *Student) Profile() StudentProfile {
	return StudentProfile{
		RollNo:    s.RollNo,
		Name:      s.Name,
		Grade:     s.Grade,
		Language:  s.Language,
		Scores:    s.Scores(),
		UpdatedAt: s.UpdatedAt,
	}
}
