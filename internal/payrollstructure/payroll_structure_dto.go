package payrollstructure

type HeadRequest struct {
	Name        string   `json:"name" binding:"required"`
	Type        string   `json:"type" binding:"required,oneof=allowance deduction"`
	Percentage  *float64 `json:"percentage"`
	FixedAmount *float64 `json:"fixed_amount"`
}

type CreateStructureRequest struct {
	Name  string        `json:"name" binding:"required"`
	Heads []HeadRequest `json:"heads" binding:"required,min=1,dive"`
}

type UpdateStructureRequest struct {
	Name  string        `json:"name" binding:"required"`
	Heads []HeadRequest `json:"heads" binding:"required,min=1,dive"`
}

type AssignStructureRequest struct {
	EmployeeID  string `json:"employee_id" binding:"required"`
	StructureID string `json:"payroll_structure_id" binding:"required"`
}

type HeadResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Percentage  *float64 `json:"percentage,omitempty"`
	FixedAmount *float64 `json:"fixed_amount,omitempty"`
}

type StructureResponse struct {
	ID    string         `json:"id"`
	Name  string         `json:"name"`
	Heads []HeadResponse `json:"heads"`
}

type AssignResponse struct {
	EmployeeID       string            `json:"employee_id"`
	FullName         string            `json:"full_name"`
	Email            string            `json:"email"`
	Role             string            `json:"role"`
	PayrollStructure StructureResponse `json:"payroll_structure"`
}
