package payrollstructure

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, s *PayrollStructure) error
	FindAll(ctx context.Context) ([]PayrollStructure, error)
	FindByID(ctx context.Context, id string) (*PayrollStructure, error)
	Update(ctx context.Context, s *PayrollStructure) error
	DeleteHeads(ctx context.Context, structureID string) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

// conn returns a session bound to the open transaction when one is set,
// so reads and writes share the caller's tx instead of the pool.
func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *repository) Create(ctx context.Context, s *PayrollStructure) error {
	return r.conn(ctx).Create(s).Error
}

func (r *repository) FindAll(ctx context.Context) ([]PayrollStructure, error) {
	var structures []PayrollStructure
	err := r.conn(ctx).
		Preload("Heads", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("name ASC").
		Find(&structures).Error
	return structures, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*PayrollStructure, error) {
	var s PayrollStructure
	err := r.conn(ctx).
		Preload("Heads", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&s, "id = ?", id).Error
	return &s, err
}

func (r *repository) Update(ctx context.Context, s *PayrollStructure) error {
	return r.conn(ctx).Save(s).Error
}

func (r *repository) DeleteHeads(ctx context.Context, structureID string) error {
	return r.conn(ctx).
		Delete(&Head{}, "structure_id = ?", structureID).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.conn(ctx).
		Delete(&PayrollStructure{}, "id = ?", id).Error
}
