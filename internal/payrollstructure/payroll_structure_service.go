package payrollstructure

import (
	"context"
	"database/sql"
	"errors"

	"go-empms/internal/employee"
	employeeerrors "go-empms/internal/employee/errors"
	structureerrors "go-empms/internal/payrollstructure/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, req CreateStructureRequest) (StructureResponse, error)
	GetAll(ctx context.Context) ([]StructureResponse, error)
	GetByID(ctx context.Context, id string) (StructureResponse, error)
	Update(ctx context.Context, id string, req UpdateStructureRequest) (StructureResponse, error)
	Delete(ctx context.Context, id string) error
	Assign(ctx context.Context, req AssignStructureRequest) (AssignResponse, error)
}

type service struct {
	db           *sql.DB
	repo         Repository
	employeeRepo employee.Repository
}

func NewService(db *sql.DB, repo Repository, employeeRepo employee.Repository) Service {
	return &service{db: db, repo: repo, employeeRepo: employeeRepo}
}

func (s *service) Create(
	ctx context.Context,
	req CreateStructureRequest,
) (StructureResponse, error) {
	heads, err := validateHeads(req.Name, req.Heads)
	if err != nil {
		return StructureResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return StructureResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	structure := &PayrollStructure{
		ID:    uuid.New(),
		Name:  req.Name,
		Heads: heads,
	}
	for i := range structure.Heads {
		structure.Heads[i].StructureID = structure.ID
	}

	if err := qtx.Create(ctx, structure); err != nil {
		return StructureResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return StructureResponse{}, err
	}

	return MapToResponse(*structure), nil
}

func (s *service) GetAll(ctx context.Context) ([]StructureResponse, error) {
	structures, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]StructureResponse, len(structures))
	for i, structure := range structures {
		res[i] = MapToResponse(structure)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id string) (StructureResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return StructureResponse{}, structureerrors.ErrInvalidStructureID
	}

	structure, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return StructureResponse{}, structureerrors.ErrStructureNotFound
		}
		return StructureResponse{}, err
	}

	return MapToResponse(*structure), nil
}

func (s *service) Update(
	ctx context.Context,
	id string,
	req UpdateStructureRequest,
) (StructureResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return StructureResponse{}, structureerrors.ErrInvalidStructureID
	}

	heads, err := validateHeads(req.Name, req.Heads)
	if err != nil {
		return StructureResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return StructureResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	structure, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return StructureResponse{}, structureerrors.ErrStructureNotFound
		}
		return StructureResponse{}, err
	}

	// Heads are replaced wholesale; partial head edits are not supported
	if err := qtx.DeleteHeads(ctx, id); err != nil {
		return StructureResponse{}, err
	}

	structure.Name = req.Name
	structure.Heads = heads
	for i := range structure.Heads {
		structure.Heads[i].StructureID = structure.ID
	}

	if err := qtx.Update(ctx, structure); err != nil {
		return StructureResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return StructureResponse{}, err
	}

	return MapToResponse(*structure), nil
}

// Delete removes the structure and its heads. Employees still pointing
// at the deleted structure keep their reference; payroll reads resolve
// the dangling reference to a not-found error.
func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return structureerrors.ErrInvalidStructureID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return structureerrors.ErrStructureNotFound
		}
		return err
	}

	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *service) Assign(
	ctx context.Context,
	req AssignStructureRequest,
) (AssignResponse, error) {
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return AssignResponse{}, employeeerrors.ErrInvalidEmployeeID
	}
	structureID, err := uuid.Parse(req.StructureID)
	if err != nil {
		return AssignResponse{}, structureerrors.ErrInvalidStructureID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AssignResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	eqtx := s.employeeRepo.WithTx(tx)

	// Both referenced entities must exist before the assignment mutates
	emp, err := eqtx.FindByID(ctx, employeeID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AssignResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return AssignResponse{}, err
	}

	structure, err := qtx.FindByID(ctx, structureID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AssignResponse{}, structureerrors.ErrStructureNotFound
		}
		return AssignResponse{}, err
	}

	emp.PayrollStructureID = &structureID
	if err := eqtx.Update(ctx, emp); err != nil {
		return AssignResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return AssignResponse{}, err
	}

	return AssignResponse{
		EmployeeID:       emp.ID.String(),
		FullName:         emp.FullName,
		Email:            emp.Email,
		Role:             emp.Role,
		PayrollStructure: MapToResponse(*structure),
	}, nil
}

func validateHeads(name string, reqs []HeadRequest) ([]Head, error) {
	if name == "" {
		return nil, structureerrors.ErrNameRequired
	}
	if len(reqs) == 0 {
		return nil, structureerrors.ErrHeadsRequired
	}

	heads := make([]Head, len(reqs))
	for i, req := range reqs {
		hasPercentage := req.Percentage != nil
		hasFixedAmount := req.FixedAmount != nil
		if hasPercentage == hasFixedAmount {
			return nil, structureerrors.ErrHeadAmountChoice
		}
		if hasPercentage && (*req.Percentage < 0 || *req.Percentage > 100) {
			return nil, structureerrors.ErrPercentageOutOfRange
		}
		if hasFixedAmount && *req.FixedAmount < 0 {
			return nil, structureerrors.ErrNegativeFixedAmount
		}

		heads[i] = Head{
			ID:          uuid.New(),
			Name:        req.Name,
			Type:        req.Type,
			Percentage:  req.Percentage,
			FixedAmount: req.FixedAmount,
			Position:    i,
		}
	}

	return heads, nil
}

func MapToResponse(structure PayrollStructure) StructureResponse {
	heads := make([]HeadResponse, len(structure.Heads))
	for i, head := range structure.Heads {
		heads[i] = HeadResponse{
			ID:          head.ID.String(),
			Name:        head.Name,
			Type:        head.Type,
			Percentage:  head.Percentage,
			FixedAmount: head.FixedAmount,
		}
	}

	return StructureResponse{
		ID:    structure.ID.String(),
		Name:  structure.Name,
		Heads: heads,
	}
}
