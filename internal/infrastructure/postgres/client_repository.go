package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/vistorias-api/internal/domain"
	"github.com/jhoicas/vistorias-api/internal/domain/entity"
	"github.com/jhoicas/vistorias-api/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo implementación de ClientRepository (usable con pool o tx).
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

const clientColumns = `id, company_id, user_id, name, email, phone, cpf_cnpj, address, is_active, created_by, created_at, updated_at`

func scanClient(row pgx.Row) (*entity.Client, error) {
	var c entity.Client
	err := row.Scan(
		&c.ID, &c.CompanyID, &c.UserID, &c.Name, &c.Email, &c.Phone, &c.CPFCNPJ, &c.Address,
		&c.IsActive, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste un nuevo cliente. El índice parcial garantiza un único activo por (empresa, cuenta).
func (r *ClientRepo) Create(ctx context.Context, c *entity.Client) error {
	query := `INSERT INTO clients (` + clientColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.CompanyID, c.UserID, c.Name, c.Email, c.Phone, c.CPFCNPJ, c.Address,
		c.IsActive, c.CreatedBy, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, "clients_active_company_user_key") {
			return domain.ErrClientAlreadyExists
		}
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *ClientRepo) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	c, err := scanClient(r.q.QueryRow(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return c, nil
}

// GetActiveByCompanyAndUser cliente activo de la cuenta en la empresa.
func (r *ClientRepo) GetActiveByCompanyAndUser(ctx context.Context, companyID, userID string) (*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE company_id = $1 AND user_id = $2 AND is_active`
	c, err := scanClient(r.q.QueryRow(ctx, query, companyID, userID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client by user: %w", err)
	}
	return c, nil
}

// ListActiveByCompany lista clientes activos de la empresa por nombre.
func (r *ClientRepo) ListActiveByCompany(ctx context.Context, companyID string) ([]*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE company_id = $1 AND is_active ORDER BY name`
	rows, err := r.q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	var list []*entity.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Update persiste los campos editables de un cliente.
func (r *ClientRepo) Update(ctx context.Context, c *entity.Client) error {
	query := `
		UPDATE clients
		   SET name = $2, phone = $3, cpf_cnpj = $4, address = $5, is_active = $6, updated_at = $7
		 WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, c.ID, c.Name, c.Phone, c.CPFCNPJ, c.Address, c.IsActive, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "clients_active_company_user_key") {
			return domain.ErrClientAlreadyExists
		}
		return fmt.Errorf("update client: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}
