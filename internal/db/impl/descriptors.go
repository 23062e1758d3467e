package impl

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sidereusnuntius/gofinger/internal/db"
	"github.com/sidereusnuntius/gofinger/internal/webfinger"
)

// Subjects take precedence over aliases.
const getDescriptor = `
SELECT document, 0 AS priority FROM descriptors WHERE subject = ?
UNION ALL
SELECT d.document, 1 AS priority FROM descriptors d JOIN aliases a ON a.descriptor_id = d.id WHERE a.alias = ?
ORDER BY priority
LIMIT 1`

func (d *dbImpl) GetDescriptor(ctx context.Context, resource string) (webfinger.Response, error) {
	var (
		document string
		priority int
	)
	err := d.db.QueryRowContext(ctx, getDescriptor, resource, resource).Scan(&document, &priority)
	if err != nil {
		return webfinger.Response{}, d.HandleError(err)
	}

	descriptor, err := webfinger.ParseResponse([]byte(document))
	if err != nil {
		return webfinger.Response{}, d.HandleError(fmt.Errorf("stored descriptor for %s: %w", resource, err))
	}
	return descriptor, nil
}

func (d *dbImpl) PutDescriptor(ctx context.Context, descriptor webfinger.Response) error {
	document, err := json.Marshal(descriptor)
	if err != nil {
		return err
	}

	return d.WithTx(func(tx *sql.Tx) error {
		for _, alias := range descriptor.Aliases {
			var owner string
			err := tx.QueryRowContext(ctx, `SELECT d.subject FROM aliases a JOIN descriptors d ON a.descriptor_id = d.id
				WHERE a.alias = ? AND d.subject != ?`, alias, descriptor.Subject).Scan(&owner)
			switch {
			case err == nil:
				return fmt.Errorf("%w: alias %s belongs to %s", db.ErrConflict, alias, owner)
			case !errors.Is(err, sql.ErrNoRows):
				return d.HandleError(err)
			}
		}

		_, err := tx.ExecContext(ctx, `INSERT INTO descriptors(subject, document) VALUES (?, ?)
			ON CONFLICT(subject) DO UPDATE SET document = excluded.document, updated = strftime('%s', 'now')`,
			descriptor.Subject, string(document))
		if err != nil {
			return d.HandleError(err)
		}

		var id int64
		if err = tx.QueryRowContext(ctx, "SELECT id FROM descriptors WHERE subject = ?", descriptor.Subject).Scan(&id); err != nil {
			return d.HandleError(err)
		}

		if _, err = tx.ExecContext(ctx, "DELETE FROM aliases WHERE descriptor_id = ?", id); err != nil {
			return d.HandleError(err)
		}
		for _, alias := range descriptor.Aliases {
			_, err = tx.ExecContext(ctx, "INSERT OR IGNORE INTO aliases(descriptor_id, alias) VALUES (?, ?)", id, alias)
			if err != nil {
				return d.HandleError(err)
			}
		}
		return nil
	})
}

func (d *dbImpl) DeleteDescriptor(ctx context.Context, subject string) error {
	return d.WithTx(func(tx *sql.Tx) error {
		var id int64
		if err := tx.QueryRowContext(ctx, "SELECT id FROM descriptors WHERE subject = ?", subject).Scan(&id); err != nil {
			return d.HandleError(err)
		}

		if _, err := tx.ExecContext(ctx, "DELETE FROM aliases WHERE descriptor_id = ?", id); err != nil {
			return d.HandleError(err)
		}
		_, err := tx.ExecContext(ctx, "DELETE FROM descriptors WHERE id = ?", id)
		return d.HandleError(err)
	})
}

func (d *dbImpl) ListSubjects(ctx context.Context) ([]string, error) {
	rows, err := d.db.QueryContext(ctx, "SELECT subject FROM descriptors ORDER BY subject")
	if err != nil {
		return nil, d.HandleError(err)
	}
	defer rows.Close()

	subjects := []string{}
	for rows.Next() {
		var subject string
		if err = rows.Scan(&subject); err != nil {
			return nil, d.HandleError(err)
		}
		subjects = append(subjects, subject)
	}
	return subjects, d.HandleError(rows.Err())
}
