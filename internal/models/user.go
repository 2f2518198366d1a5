package models

type User struct {
	BaseModel
	FirstName    string     `gorm:"not null" json:"firstName"`
	LastName     string     `gorm:"not null" json:"lastName"`
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"not null" json:"-"`
	Role         UserRole   `gorm:"type:varchar(20);not null" json:"role"`
	Status       UserStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`

	// Relations
	Jobs         []Job         `gorm:"foreignKey:EmployerID" json:"-"`
	Applications []Application `gorm:"foreignKey:CandidateID" json:"-"`
}
