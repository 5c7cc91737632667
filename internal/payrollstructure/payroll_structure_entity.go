package payrollstructure

import (
	"time"

	"github.com/google/uuid"
)

const (
	HeadTypeAllowance = "allowance"
	HeadTypeDeduction = "deduction"
)

type PayrollStructure struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"type:varchar(120);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Heads []Head `gorm:"foreignKey:StructureID;constraint:OnDelete:CASCADE"`
}

func (PayrollStructure) TableName() string {
	return "payroll_structures"
}

// Head is a single allowance or deduction line. Exactly one of
// Percentage and FixedAmount is set, enforced at the write boundary.
type Head struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StructureID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"type:varchar(120);not null"`
	Type        string    `gorm:"type:varchar(20);not null"`
	Percentage  *float64  `gorm:"type:numeric(5,2)"`
	FixedAmount *float64  `gorm:"type:numeric(14,2)"`
	Position    int       `gorm:"type:int;not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Head) TableName() string {
	return "payroll_structure_heads"
}
