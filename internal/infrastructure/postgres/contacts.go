package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-contacts-api/internal/domain"
)

const contactColumns = "id, owner_id, first_name, last_name, email, phone, birthday, additional_info, created_at, updated_at"

// ContactRepo provides typed PostgreSQL operations for the contacts table.
// Every query is scoped by owner_id; a contact belonging to another user is
// indistinguishable from a missing one.
type ContactRepo struct {
	db *sql.DB
}

func NewContactRepo(db *sql.DB) *ContactRepo {
	return &ContactRepo{db: db}
}

func (r *ContactRepo) Create(ctx context.Context, c *domain.Contact) (*domain.Contact, error) {
	query := `INSERT INTO contacts (owner_id, first_name, last_name, email, phone, birthday, additional_info)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING ` + contactColumns

	row := r.db.QueryRowContext(ctx, query,
		c.OwnerID, c.FirstName, c.LastName, c.Email, c.Phone, c.Birthday, c.AdditionalInfo)
	created, err := scanContact(row)
	if err != nil {
		return nil, fmt.Errorf("insert contact: %w", err)
	}
	return created, nil
}

func (r *ContactRepo) Get(ctx context.Context, contactID, ownerID int64) (*domain.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE id = $1 AND owner_id = $2`

	c, err := scanContact(r.db.QueryRowContext(ctx, query, contactID, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("contact %d: %w", contactID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("select contact: %w", err)
	}
	return c, nil
}

// ListByOwner returns one page of the owner's contacts ordered by id, plus the
// total row count for pagination.
func (r *ContactRepo) ListByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]domain.Contact, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM contacts WHERE owner_id = $1`, ownerID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count contacts: %w", err)
	}

	query := `SELECT ` + contactColumns + ` FROM contacts
	          WHERE owner_id = $1 ORDER BY id LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("select contacts: %w", err)
	}
	defer rows.Close()

	var contacts []domain.Contact
	for rows.Next() {
		var c domain.Contact
		if err := rows.Scan(&c.ID, &c.OwnerID, &c.FirstName, &c.LastName, &c.Email,
			&c.Phone, &c.Birthday, &c.AdditionalInfo, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan contact: %w", err)
		}
		contacts = append(contacts, c)
	}
	return contacts, total, rows.Err()
}

// Update applies a partial update and returns the new row. Fields absent from
// updates are left unchanged.
func (r *ContactRepo) Update(ctx context.Context, contactID, ownerID int64, updates map[string]interface{}) (*domain.Contact, error) {
	set, args, err := buildSetClause(updates, 3)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(
		`UPDATE contacts SET %s, updated_at = now() WHERE id = $1 AND owner_id = $2 RETURNING %s`,
		set, contactColumns)

	args = append([]interface{}{contactID, ownerID}, args...)
	c, err := scanContact(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("contact %d: %w", contactID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("update contact: %w", err)
	}
	return c, nil
}

func (r *ContactRepo) Delete(ctx context.Context, contactID, ownerID int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM contacts WHERE id = $1 AND owner_id = $2`, contactID, ownerID)
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("contact %d: %w", contactID, domain.ErrNotFound)
	}
	return nil
}

func scanContact(row *sql.Row) (*domain.Contact, error) {
	c := &domain.Contact{}
	err := row.Scan(&c.ID, &c.OwnerID, &c.FirstName, &c.LastName, &c.Email,
		&c.Phone, &c.Birthday, &c.AdditionalInfo, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}
