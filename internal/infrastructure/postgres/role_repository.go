package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mohan98521/gtm-variable-pay-sub001/internal/domain"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/domain/entity"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/domain/repository"
)

var _ repository.RoleRepository = (*RoleRepo)(nil)

const roleColumns = `id, name, label, description, color_tag, is_system, created_at, updated_at`

// RoleRepo implementación del puerto RoleRepository sobre PostgreSQL.
type RoleRepo struct {
	q Querier
}

func NewRoleRepository(q Querier) *RoleRepo {
	return &RoleRepo{q: q}
}

// Create persiste una definición de rol.
func (r *RoleRepo) Create(role *entity.RoleDefinition) error {
	query := `
		INSERT INTO role_definitions (` + roleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		role.ID, role.Name, role.Label, role.Description, role.ColorTag,
		role.IsSystem, role.CreatedAt, role.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert role: %w", err)
	}
	return nil
}

// GetByID obtiene un rol por ID.
func (r *RoleRepo) GetByID(id string) (*entity.RoleDefinition, error) {
	return r.getBy("id", id)
}

// GetByName obtiene un rol por su slug.
func (r *RoleRepo) GetByName(name string) (*entity.RoleDefinition, error) {
	return r.getBy("name", name)
}

func (r *RoleRepo) getBy(column, value string) (*entity.RoleDefinition, error) {
	query := `SELECT ` + roleColumns + ` FROM role_definitions WHERE ` + column + ` = $1`
	var role entity.RoleDefinition
	err := r.q.QueryRow(context.Background(), query, value).Scan(
		&role.ID, &role.Name, &role.Label, &role.Description, &role.ColorTag,
		&role.IsSystem, &role.CreatedAt, &role.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get role: %w", err)
	}
	return &role, nil
}

// List lista todos los roles ordenados por nombre.
func (r *RoleRepo) List() ([]*entity.RoleDefinition, error) {
	query := `SELECT ` + roleColumns + ` FROM role_definitions ORDER BY name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()

	var out []*entity.RoleDefinition
	for rows.Next() {
		var role entity.RoleDefinition
		if err := rows.Scan(&role.ID, &role.Name, &role.Label, &role.Description, &role.ColorTag,
			&role.IsSystem, &role.CreatedAt, &role.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		out = append(out, &role)
	}
	return out, rows.Err()
}

// Update actualiza los campos mutables del rol. Name es inmutable.
func (r *RoleRepo) Update(role *entity.RoleDefinition) error {
	query := `
		UPDATE role_definitions
		SET label = $2, description = $3, color_tag = $4, updated_at = $5
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		role.ID, role.Label, role.Description, role.ColorTag, role.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update role: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el rol. Las asignaciones en user_roles caen por FK ON DELETE CASCADE.
func (r *RoleRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM role_definitions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete role: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
