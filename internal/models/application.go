package models

// Application links a candidate to a job. At most one non-withdrawn
// application may exist per (JobID, CandidateID) pair; withdrawal is a
// soft delete, not a status transition, so withdrawn applications stay
// visible to both parties in the deleted view.
type Application struct {
	BaseModelWithDeleted
	JobID       string `gorm:"type:uuid;not null;index" json:"jobId"`
	CandidateID string `gorm:"type:uuid;not null;index" json:"candidateId"`

	// ResumePath references the uploaded resume in file storage.
	ResumePath string `gorm:"not null" json:"resume"`

	// CoverLetter holds either the letter text or a file-storage
	// reference when the candidate uploaded a document instead.
	CoverLetter string            `gorm:"type:text" json:"coverLetter"`
	Status      ApplicationStatus `gorm:"type:varchar(20);default:'received'" json:"status"`
	Notes       string            `gorm:"type:text" json:"notes"`

	Job       *Job  `gorm:"foreignKey:JobID" json:"job,omitempty"`
	Candidate *User `gorm:"foreignKey:CandidateID" json:"candidate,omitempty"`
}
