package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/vistorias-api/internal/application/access"
	"github.com/jhoicas/vistorias-api/internal/application/audit"
	"github.com/jhoicas/vistorias-api/internal/application/dto"
	"github.com/jhoicas/vistorias-api/internal/application/ports"
	"github.com/jhoicas/vistorias-api/internal/domain"
	"github.com/jhoicas/vistorias-api/internal/domain/entity"
	"github.com/jhoicas/vistorias-api/internal/domain/repository"
)

// CompanyUseCase directorio de empresas: alta, membresías y empresa activa por usuario.
type CompanyUseCase struct {
	companies   repository.CompanyRepository
	memberships repository.MembershipRepository
	sessions    repository.SessionRepository
	users       repository.UserRepository
	tx          ports.TxRunner
	guard       *access.Guard
	recorder    *audit.Recorder
	log         zerolog.Logger
	now         func() time.Time
}

// CompanyDeps dependencias del directorio de empresas.
type CompanyDeps struct {
	Companies   repository.CompanyRepository
	Memberships repository.MembershipRepository
	Sessions    repository.SessionRepository
	Users       repository.UserRepository
	Tx          ports.TxRunner
	Guard       *access.Guard
	Recorder    *audit.Recorder
}

// NewCompanyUseCase construye el caso de uso.
func NewCompanyUseCase(d CompanyDeps, log zerolog.Logger) *CompanyUseCase {
	return &CompanyUseCase{
		companies:   d.Companies,
		memberships: d.Memberships,
		sessions:    d.Sessions,
		users:       d.Users,
		tx:          d.Tx,
		guard:       d.Guard,
		recorder:    d.Recorder,
		log:         log.With().Str("component", "companies").Logger(),
		now:         time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *CompanyUseCase) WithClock(now func() time.Time) *CompanyUseCase {
	uc.now = now
	return uc
}

// ListUserCompanies empresas con membresía activa del actor, con su rol.
// Las empresas inexistentes o inactivas se omiten.
func (uc *CompanyUseCase) ListUserCompanies(ctx context.Context, actorID string) ([]dto.CompanyWithRoleResponse, error) {
	if actorID == "" {
		return nil, domain.ErrUnauthenticated
	}
	list, err := uc.memberships.ListActiveByUser(ctx, actorID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CompanyWithRoleResponse, 0, len(list))
	for _, m := range list {
		c, err := uc.companies.GetByID(ctx, m.CompanyID)
		if err != nil {
			return nil, err
		}
		if c == nil || !c.IsActive {
			continue
		}
		out = append(out, dto.CompanyWithRoleResponse{CompanyResponse: dto.CompanyFromEntity(c), Role: m.Role})
	}
	return out, nil
}

// GetActiveCompany empresa activa del actor, o nil si no eligió ninguna.
func (uc *CompanyUseCase) GetActiveCompany(ctx context.Context, actorID string) (*dto.CompanyWithRoleResponse, error) {
	if actorID == "" {
		return nil, domain.ErrUnauthenticated
	}
	s, err := uc.sessions.Get(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if s == nil || s.ActiveCompanyID == "" {
		return nil, nil
	}
	// La membresía pudo revocarse o la empresa desactivarse después de elegirla.
	acc, err := uc.guard.Resolve(ctx, actorID, s.ActiveCompanyID)
	if err != nil {
		if k := domain.KindOf(err); k == domain.KindAccessDenied || k == domain.KindNotFound {
			return nil, nil
		}
		return nil, err
	}
	c, err := uc.companies.GetByID(ctx, s.ActiveCompanyID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, nil
	}
	return &dto.CompanyWithRoleResponse{CompanyResponse: dto.CompanyFromEntity(c), Role: acc.Role}, nil
}

// SetActiveCompany fija la empresa activa del actor; exige membresía activa.
func (uc *CompanyUseCase) SetActiveCompany(ctx context.Context, actorID, companyID string) error {
	if _, err := uc.guard.Resolve(ctx, actorID, companyID); err != nil {
		return err
	}
	now := uc.now()
	return uc.tx.Run(ctx, func(r ports.Repos) error {
		prev, err := r.Sessions.Get(ctx, actorID)
		if err != nil {
			return err
		}
		var old any
		if prev != nil {
			old = audit.SessionValues{ActiveCompanyID: prev.ActiveCompanyID}
		}
		if err := r.Sessions.Upsert(ctx, &entity.UserSession{
			UserID:          actorID,
			ActiveCompanyID: companyID,
			LastActivity:    now,
		}); err != nil {
			return err
		}
		return uc.recorder.Record(ctx, r.AuditLog, audit.Entry{
			CompanyID:  companyID,
			ActorID:    actorID,
			Action:     entity.ActionSetActiveCompany,
			EntityType: entity.EntityUserSessions,
			EntityID:   actorID,
			Old:        old,
			New:        audit.SessionValues{ActiveCompanyID: companyID},
		}, now)
	})
}

// CreateCompany crea la empresa con configuración por defecto, hace admin al creador y
// la deja como su empresa activa. Todo o nada, junto con la entrada de auditoría.
func (uc *CompanyUseCase) CreateCompany(ctx context.Context, actorID string, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	if actorID == "" {
		return nil, domain.ErrUnauthenticated
	}
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, domain.New(domain.KindInvalidInput, "el nombre de la empresa es obligatorio")
	}
	now := uc.now()
	company := &entity.Company{
		ID:        uuid.New().String(),
		Name:      in.Name,
		CNPJ:      in.CNPJ,
		Address:   in.Address,
		Phone:     in.Phone,
		Email:     in.Email,
		Settings:  entity.DefaultCompanySettings(),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		if err := r.Companies.Create(ctx, company); err != nil {
			return err
		}
		if err := r.Memberships.Create(ctx, &entity.Membership{
			ID:        uuid.New().String(),
			UserID:    actorID,
			CompanyID: company.ID,
			Role:      entity.RoleAdmin,
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		}); err != nil {
			return err
		}
		if err := r.Sessions.Upsert(ctx, &entity.UserSession{
			UserID:          actorID,
			ActiveCompanyID: company.ID,
			LastActivity:    now,
		}); err != nil {
			return err
		}
		return uc.recorder.Record(ctx, r.AuditLog, audit.Entry{
			CompanyID:  company.ID,
			ActorID:    actorID,
			Action:     entity.ActionCreateCompany,
			EntityType: entity.EntityCompanies,
			EntityID:   company.ID,
			New: audit.CompanyValues{
				Name: company.Name, CNPJ: company.CNPJ, Address: company.Address,
				Phone: company.Phone, Email: company.Email,
			},
		}, now)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("company_id", company.ID).Str("actor_id", actorID).Msg("empresa creada")
	out := dto.CompanyFromEntity(company)
	return &out, nil
}

// UpdateCompany aplica los campos permitidos (admin/gestor). Auditoría con old/new de lo cambiado.
// Es la única operación admitida sobre una empresa desactivada, para poder reactivarla.
func (uc *CompanyUseCase) UpdateCompany(ctx context.Context, actorID, companyID string, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	if _, err := uc.guard.ResolveIncludingInactive(ctx, actorID, companyID, entity.AdminRoles...); err != nil {
		return nil, err
	}
	if in.Name != nil {
		trimmed := strings.TrimSpace(*in.Name)
		if trimmed == "" {
			return nil, domain.New(domain.KindInvalidInput, "el nombre de la empresa no puede quedar vacío")
		}
		in.Name = &trimmed
	}
	if err := validateSettingsPatch(in.Settings); err != nil {
		return nil, err
	}
	now := uc.now()
	var updated *entity.Company
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		c, err := r.Companies.GetByID(ctx, companyID)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.ErrCompanyNotFound
		}
		oldVals, newVals := applyCompanyPatch(c, in)
		if len(newVals) == 0 {
			return domain.New(domain.KindInvalidInput, "no hay campos para actualizar")
		}
		c.UpdatedAt = now
		if err := r.Companies.Update(ctx, c); err != nil {
			return err
		}
		updated = c
		return uc.recorder.Record(ctx, r.AuditLog, audit.Entry{
			CompanyID:  companyID,
			ActorID:    actorID,
			Action:     entity.ActionUpdateCompany,
			EntityType: entity.EntityCompanies,
			EntityID:   companyID,
			Old:        oldVals,
			New:        newVals,
		}, now)
	})
	if err != nil {
		return nil, err
	}
	out := dto.CompanyFromEntity(updated)
	return &out, nil
}

// UpsertMembership otorga o cambia el rol de una cuenta existente en la empresa (solo admin).
// El rol client se gestiona exclusivamente desde el registro de clientes.
func (uc *CompanyUseCase) UpsertMembership(ctx context.Context, actorID, companyID string, in dto.UpsertMembershipRequest) (*dto.MembershipResponse, error) {
	if _, err := uc.guard.Resolve(ctx, actorID, companyID, entity.RoleAdmin); err != nil {
		return nil, err
	}
	if !in.Role.Valid() || in.Role == entity.RoleClient {
		return nil, domain.New(domain.KindInvalidInput, fmt.Sprintf("rol inválido: %q", in.Role))
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" {
		return nil, domain.New(domain.KindInvalidInput, "el email es obligatorio")
	}
	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if user.ID == actorID {
		return nil, domain.New(domain.KindConflict, "no puede modificar su propia membresía")
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	now := uc.now()
	var result *entity.Membership
	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		m, err := r.Memberships.GetByUserAndCompany(ctx, user.ID, companyID)
		if err != nil {
			return err
		}
		var old any
		if m == nil {
			m = &entity.Membership{
				ID:        uuid.New().String(),
				UserID:    user.ID,
				CompanyID: companyID,
				Role:      in.Role,
				IsActive:  active,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := r.Memberships.Create(ctx, m); err != nil {
				return err
			}
		} else {
			if m.Role == entity.RoleClient && m.IsActive {
				return domain.New(domain.KindConflict, "la cuenta es cliente en esta empresa")
			}
			old = audit.MembershipValues{UserID: m.UserID, Role: m.Role, IsActive: m.IsActive}
			m.Role = in.Role
			m.IsActive = active
			m.UpdatedAt = now
			if err := r.Memberships.Update(ctx, m); err != nil {
				return err
			}
		}
		result = m
		return uc.recorder.Record(ctx, r.AuditLog, audit.Entry{
			CompanyID:  companyID,
			ActorID:    actorID,
			Action:     entity.ActionUpsertMembership,
			EntityType: entity.EntityMemberships,
			EntityID:   m.ID,
			Old:        old,
			New:        audit.MembershipValues{UserID: m.UserID, Role: m.Role, IsActive: m.IsActive},
		}, now)
	})
	if err != nil {
		return nil, err
	}
	return &dto.MembershipResponse{
		ID:        result.ID,
		UserID:    result.UserID,
		CompanyID: result.CompanyID,
		Role:      result.Role,
		IsActive:  result.IsActive,
	}, nil
}

func validateSettingsPatch(p *dto.CompanySettingsPatch) error {
	if p == nil {
		return nil
	}
	if p.SLAHours != nil && *p.SLAHours <= 0 {
		return domain.New(domain.KindInvalidInput, "slaHours debe ser mayor que cero")
	}
	if p.RequirePhotos != nil && *p.RequirePhotos < 0 {
		return domain.New(domain.KindInvalidInput, "requirePhotos no puede ser negativo")
	}
	if p.RequireVideos != nil && *p.RequireVideos < 0 {
		return domain.New(domain.KindInvalidInput, "requireVideos no puede ser negativo")
	}
	return nil
}

// applyCompanyPatch muta c y devuelve los valores previos y nuevos de lo que cambió.
func applyCompanyPatch(c *entity.Company, in dto.UpdateCompanyRequest) (audit.Patch, audit.Patch) {
	oldVals, newVals := audit.Patch{}, audit.Patch{}
	setString := func(key string, dst *string, v *string) {
		if v == nil || *v == *dst {
			return
		}
		oldVals[key], newVals[key] = *dst, *v
		*dst = *v
	}
	setString("name", &c.Name, in.Name)
	setString("cnpj", &c.CNPJ, in.CNPJ)
	setString("address", &c.Address, in.Address)
	setString("phone", &c.Phone, in.Phone)
	setString("email", &c.Email, in.Email)
	if in.IsActive != nil && *in.IsActive != c.IsActive {
		oldVals["isActive"], newVals["isActive"] = c.IsActive, *in.IsActive
		c.IsActive = *in.IsActive
	}
	if in.Settings != nil {
		next := c.Settings
		if in.Settings.SLAHours != nil {
			next.SLAHours = *in.Settings.SLAHours
		}
		if in.Settings.AutoDispatch != nil {
			next.AutoDispatch = *in.Settings.AutoDispatch
		}
		if in.Settings.RequirePhotos != nil {
			next.RequirePhotos = *in.Settings.RequirePhotos
		}
		if in.Settings.RequireVideos != nil {
			next.RequireVideos = *in.Settings.RequireVideos
		}
		if next != c.Settings {
			oldVals["settings"], newVals["settings"] = c.Settings, next
			c.Settings = next
		}
	}
	return oldVals, newVals
}
