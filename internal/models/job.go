package models

import (
	"gorm.io/datatypes"
)

// Job is a posting owned by exactly one employer. Deleting a job is a
// soft delete: the row keeps its history and stays readable by the
// owning employer through the deleted-jobs view.
type Job struct {
	BaseModelWithDeleted
	EmployerID  string `gorm:"type:uuid;not null;index" json:"employerId"`
	Title       string `gorm:"not null" json:"title"`
	CompanyName string `gorm:"not null" json:"companyName"`
	Description string `gorm:"type:text" json:"description"`

	// Requirements is a JSON list of free-form requirement lines.
	Requirements datatypes.JSON `gorm:"type:jsonb" json:"requirements"`

	// Salary keeps the source encoding: either a single number ("85000")
	// or a range ("50000-70000"). Parsing happens in the listing engine.
	Salary   string `json:"salary"`
	Location string `json:"location"`
	JobType  string `gorm:"type:varchar(20)" json:"jobType"`

	Applications []Application `gorm:"foreignKey:JobID" json:"applications,omitempty"`
}
