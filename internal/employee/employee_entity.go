package employee

import (
	"time"

	"github.com/google/uuid"
)

type Employee struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FullName           string     `gorm:"column:full_name;type:varchar(255);not null"`
	Email              string     `gorm:"type:varchar(255);uniqueIndex:uq_employee_email;not null"`
	Password           string     `gorm:"type:varchar(255);not null"`
	Role               string     `gorm:"type:varchar(20);not null;default:'employee'"`
	Company            *string    `gorm:"type:varchar(255)"`
	Department         *string    `gorm:"type:varchar(255)"`
	JoiningDate        *time.Time `gorm:"type:date"`
	PayrollStructureID *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt          time.Time
	UpdatedAt          time.Time

	PayrollStructure *PayrollStructureRef `gorm:"foreignKey:PayrollStructureID;references:ID"`
}

func (Employee) TableName() string {
	return "employees"
}

type PayrollStructureRef struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"column:name"`
}

func (PayrollStructureRef) TableName() string {
	return "payroll_structures"
}
