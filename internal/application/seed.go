package application

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/linskybing/formflow/internal/domain/form"
	"github.com/linskybing/formflow/internal/domain/tenant"
	"github.com/linskybing/formflow/internal/domain/user"
	"github.com/linskybing/formflow/internal/repository"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"
)

//go:embed seeddata/demo.yaml
var demoSeed []byte

type seedFile struct {
	Tenants []seedTenant `yaml:"tenants"`
}

type seedTenant struct {
	Name  string `yaml:"name"`
	Admin struct {
		Name     string `yaml:"name"`
		Email    string `yaml:"email"`
		Password string `yaml:"password"`
	} `yaml:"admin"`
	Forms []seedForm `yaml:"forms"`
}

type seedForm struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	IsPublished bool   `yaml:"is_published"`
	IsPublic    bool   `yaml:"is_public"`
	Questions   []struct {
		Label      string   `yaml:"label"`
		Type       string   `yaml:"type"`
		IsRequired bool     `yaml:"is_required"`
		Options    []string `yaml:"options"`
	} `yaml:"questions"`
}

// Seeder loads demo tenants, their administrators and sample forms into an
// empty database.
type Seeder struct {
	Repos  *repository.Repos
	Forms  *FormService
	Logger *zap.Logger
}

func NewSeeder(repos *repository.Repos, forms *FormService, logger *zap.Logger) *Seeder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Seeder{Repos: repos, Forms: forms, Logger: logger}
}

// Seed is a no-op when any tenant already exists. It reports whether data
// was written.
func (s *Seeder) Seed(ctx context.Context) (bool, error) {
	return s.SeedFrom(ctx, demoSeed)
}

func (s *Seeder) SeedFrom(ctx context.Context, raw []byte) (bool, error) {
	existing, err := s.Repos.WithContext(ctx).Tenant.List()
	if err != nil {
		return false, err
	}
	if len(existing) > 0 {
		s.Logger.Info("seed skipped, database not empty", zap.Int("tenants", len(existing)))
		return false, nil
	}

	var file seedFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return false, fmt.Errorf("parse seed file: %w", err)
	}

	for _, st := range file.Tenants {
		admin, err := s.seedTenant(ctx, st)
		if err != nil {
			return false, fmt.Errorf("seed tenant %q: %w", st.Name, err)
		}
		v := form.Viewer{UserID: admin.ID, TenantID: admin.TenantID, Role: admin.Role}
		for _, sf := range st.Forms {
			if _, err := s.Forms.CreateLineage(ctx, v, sf.dto()); err != nil {
				return false, fmt.Errorf("seed form %q: %w", sf.Title, err)
			}
		}
		s.Logger.Info("seeded tenant", zap.String("tenant", st.Name), zap.Int("forms", len(st.Forms)))
	}
	return true, nil
}

func (s *Seeder) seedTenant(ctx context.Context, st seedTenant) (user.User, error) {
	hashed, err := hashPassword(st.Admin.Password)
	if err != nil {
		return user.User{}, err
	}
	admin := user.User{
		Name:     st.Admin.Name,
		Email:    user.NormalizeEmail(st.Admin.Email),
		Password: hashed,
		Role:     user.RoleAdmin,
	}
	err = s.Repos.ExecTx(ctx, func(tx *repository.Repos) error {
		t := tenant.Tenant{Name: st.Name}
		if err := tx.Tenant.Create(&t); err != nil {
			return err
		}
		admin.TenantID = t.ID
		return tx.User.CreateUser(&admin)
	})
	return admin, err
}

func (sf seedForm) dto() form.CreateFormDTO {
	public := sf.IsPublic
	in := form.FormInput{
		Title:       sf.Title,
		Description: sf.Description,
		IsPublished: sf.IsPublished,
		IsPublic:    &public,
	}
	for _, q := range sf.Questions {
		in.Questions = append(in.Questions, form.QuestionInput{
			Label:      q.Label,
			Type:       form.QuestionType(q.Type),
			IsRequired: q.IsRequired,
			Options:    q.Options,
		})
	}
	return form.CreateFormDTO{FormInput: in}
}
