package models

// The six subjects tracked for every student. Score columns, weak-subject
// detection and class reports all key off these names.
const (
	SubjectLanguage1 = "Language1"
	SubjectLanguage2 = "Language2"
	SubjectLanguage3 = "Language3"
	SubjectMaths     = "Maths"
	SubjectScience   = "Science"
	SubjectSocial    = "Social"
)

// Subjects lists the fixed enumerants in canonical order.
var Subjects = []string{
	SubjectLanguage1,
	SubjectLanguage2,
	SubjectLanguage3,
	SubjectMaths,
	SubjectScience,
	SubjectSocial,
}

// subjectColumns maps subject names to their students-table columns. Only
// names present here may ever be interpolated into SQL.
var subjectColumns = map[string]string{
	SubjectLanguage1: "language1",
	SubjectLanguage2: "language2",
	SubjectLanguage3: "language3",
	SubjectMaths:     "maths",
	SubjectScience:   "science",
	SubjectSocial:    "social",
}

// SubjectColumn returns the score column for a subject name and whether the
// subject is one of the known enumerants.
func SubjectColumn(subject string) (string, bool) {
	col, ok := subjectColumns[subject]
	return col, ok
}

// ValidSubject reports whether the name is one of the six enumerants.
func ValidSubject(subject string) bool {
	_, ok := subjectColumns[subject]
	return ok
}
