package employee

type CreateEmployeeRequest struct {
	FullName    string  `json:"full_name" binding:"required"`
	Email       string  `json:"email" binding:"required,email"`
	Password    string  `json:"password" binding:"required,min=6"`
	Role        string  `json:"role" binding:"required,oneof=employee admin"`
	Company     *string `json:"company"`
	Department  *string `json:"department"`
	JoiningDate string  `json:"joining_date"`
}

type UpdateProfileRequest struct {
	FullName   string  `json:"full_name" binding:"required"`
	Company    *string `json:"company"`
	Department *string `json:"department"`
}

type EmployeeResponse struct {
	ID                 string                `json:"id"`
	FullName           string                `json:"full_name"`
	Email              string                `json:"email"`
	Role               string                `json:"role"`
	Company            *string               `json:"company,omitempty"`
	Department         *string               `json:"department,omitempty"`
	JoiningDate        *string               `json:"joining_date,omitempty"`
	PayrollStructureID *string               `json:"payroll_structure_id,omitempty"`
	PayrollStructure   *StructureRefResponse `json:"payroll_structure,omitempty"`
}

type StructureRefResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type EmployeeOptionResponse struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
}
