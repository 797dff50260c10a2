package repository

import (
	"github.com/linskybing/formflow/internal/domain/tenant"
	"gorm.io/gorm"
)

//go:generate mockgen -source=tenant.go -destination=mock/tenant.go -package=mock

type TenantRepo interface {
	List() ([]tenant.Tenant, error)
	GetByID(id uint) (tenant.Tenant, error)
	Create(t *tenant.Tenant) error
	Save(t *tenant.Tenant) error
	WithTx(tx *gorm.DB) TenantRepo
}

type DBTenantRepo struct {
	db *gorm.DB
}

func NewTenantRepo(db *gorm.DB) *DBTenantRepo {
	return &DBTenantRepo{
		db: db,
	}
}

func (r *DBTenantRepo) List() ([]tenant.Tenant, error) {
	var tenants []tenant.Tenant
	err := r.db.Order("id ASC").Find(&tenants).Error
	return tenants, err
}

func (r *DBTenantRepo) GetByID(id uint) (tenant.Tenant, error) {
	var t tenant.Tenant
	err := r.db.First(&t, id).Error
	return t, err
}

func (r *DBTenantRepo) Create(t *tenant.Tenant) error {
	return r.db.Create(t).Error
}

func (r *DBTenantRepo) Save(t *tenant.Tenant) error {
	return r.db.Save(t).Error
}

func (r *DBTenantRepo) WithTx(tx *gorm.DB) TenantRepo {
	if tx == nil {
		return r
	}
	return &DBTenantRepo{
		db: tx,
	}
}
