package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/imanage/imanage-api/internal/database"
	"github.com/imanage/imanage-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Model is satisfied by every record embedding domain.BaseModel
type Model interface {
	PrimaryKey() uuid.UUID
}

// RequiredField is a string field that must not be blank
type RequiredField[T any] struct {
	Field string
	Label string
	Value func(*T) string
}

// UniqueField is checked with a SELECT before every insert and update
type UniqueField[T any] struct {
	Column          string
	Label           string
	Value           func(*T) string
	CaseInsensitive bool
}

// ForeignKey is a reference that must point at an existing row
type ForeignKey[T any] struct {
	Field    string
	Table    string
	Label    string
	Required bool
	Value    func(*T) *uuid.UUID
}

// Dependent is a query returning the numbers of rows that reference the
// record being deleted. The only bind parameter is the record id.
type Dependent struct {
	Type  string
	Query string
}

// Check is an entity-specific validation run inside the write transaction.
// excludeID is the id of the record being updated, nil on create.
type Check[T any] func(ctx context.Context, tx *gorm.DB, entity *T, excludeID *uuid.UUID) error

// Spec declares everything the generic repository needs to know about an entity
type Spec[T any] struct {
	// Entity is the lower-case name used in messages, e.g. "purchase order"
	Entity        string
	Table         string
	Order         string
	SearchColumns []string
	// Scope adds preloads to reads
	Scope      func(*gorm.DB) *gorm.DB
	Required   []RequiredField[T]
	Unique     []UniqueField[T]
	Foreign    []ForeignKey[T]
	Checks     []Check[T]
	Dependents []Dependent
}

// Repository implements CRUD, write validation and the reference guard once
// for every entity
type Repository[T Model] struct {
	db   *gorm.DB
	spec Spec[T]
}

// New creates a repository for T described by spec
func New[T Model](db *gorm.DB, spec Spec[T]) *Repository[T] {
	return &Repository[T]{db: db, spec: spec}
}

// conn returns a context-bound handle or ErrDatabaseUnavailable
func (r *Repository[T]) conn(ctx context.Context) (*gorm.DB, error) {
	return Conn(ctx, r.db)
}

// Conn returns db bound to ctx, or ErrDatabaseUnavailable for a nil handle
func Conn(ctx context.Context, db *gorm.DB) (*gorm.DB, error) {
	if db == nil {
		return nil, domain.ErrDatabaseUnavailable
	}
	return db.WithContext(ctx), nil
}

func (r *Repository[T]) read(db *gorm.DB) *gorm.DB {
	if r.spec.Scope != nil {
		return r.spec.Scope(db)
	}
	return db
}

// wrap converts low-level errors into domain errors, leaving domain errors untouched
func (r *Repository[T]) wrap(op string, err error) error {
	return wrapError(op, r.spec.Entity, err)
}

func wrapError(op, entity string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := domain.AsError(err); ok {
		return err
	}
	if database.IsUnavailable(err) {
		return domain.NewUnavailableError(err)
	}
	return fmt.Errorf("failed to %s %s: %w", op, entity, err)
}

// ListOptions filters List results
type ListOptions struct {
	Search string
}

// List returns all rows in the configured order, narrowed by opts.Search
func (r *Repository[T]) List(ctx context.Context, opts ListOptions) ([]T, error) {
	db, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}

	query := r.read(db.Model(new(T)))
	if search := strings.TrimSpace(opts.Search); search != "" && len(r.spec.SearchColumns) > 0 {
		pattern := "%" + strings.ToLower(search) + "%"
		conds := make([]string, len(r.spec.SearchColumns))
		args := make([]interface{}, len(r.spec.SearchColumns))
		for i, col := range r.spec.SearchColumns {
			conds[i] = "LOWER(" + col + ") LIKE ?"
			args[i] = pattern
		}
		query = query.Where(strings.Join(conds, " OR "), args...)
	}
	if r.spec.Order != "" {
		query = query.Order(r.spec.Order)
	}

	var rows []T
	if err := query.Find(&rows).Error; err != nil {
		return nil, r.wrap("list", err)
	}
	return rows, nil
}

// GetByID returns the row or nil when it does not exist
func (r *Repository[T]) GetByID(ctx context.Context, id uuid.UUID) (*T, error) {
	db, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	return r.getByID(db, id)
}

func (r *Repository[T]) getByID(db *gorm.DB, id uuid.UUID) (*T, error) {
	var entity T
	err := r.read(db).First(&entity, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, r.wrap("get", err)
	}
	return &entity, nil
}

// Exists reports whether a row with id exists in table
func Exists(db *gorm.DB, table string, id uuid.UUID) (bool, error) {
	var count int64
	if err := db.Table(table).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Validate runs the required, unique, foreign key and custom checks
func (r *Repository[T]) Validate(ctx context.Context, tx *gorm.DB, entity *T, excludeID *uuid.UUID) error {
	for _, f := range r.spec.Required {
		if strings.TrimSpace(f.Value(entity)) == "" {
			return domain.NewValidationError(f.Field, fmt.Sprintf("%s is required", f.Label))
		}
	}

	for _, u := range r.spec.Unique {
		value := strings.TrimSpace(u.Value(entity))
		if value == "" {
			continue
		}
		query := tx.Table(r.spec.Table)
		if u.CaseInsensitive {
			query = query.Where("LOWER("+u.Column+") = LOWER(?)", value)
		} else {
			query = query.Where(u.Column+" = ?", value)
		}
		if excludeID != nil {
			query = query.Where("id <> ?", *excludeID)
		}
		var count int64
		if err := query.Count(&count).Error; err != nil {
			return r.wrap("check uniqueness of", err)
		}
		if count > 0 {
			return domain.NewValidationError(u.Column, fmt.Sprintf("%s %q already exists", u.Label, value))
		}
	}

	for _, fk := range r.spec.Foreign {
		id := fk.Value(entity)
		if id == nil || *id == uuid.Nil {
			if fk.Required {
				return domain.NewValidationError(fk.Field, fmt.Sprintf("%s is required", fk.Field))
			}
			continue
		}
		ok, err := Exists(tx, fk.Table, *id)
		if err != nil {
			return r.wrap("check reference of", err)
		}
		if !ok {
			return domain.NewValidationError(fk.Field, fmt.Sprintf("%s %s does not exist", fk.Label, id.String()))
		}
	}

	for _, check := range r.spec.Checks {
		if err := check(ctx, tx, entity, excludeID); err != nil {
			return err
		}
	}
	return nil
}

// Create validates and inserts entity, then runs after in the same transaction
func (r *Repository[T]) Create(ctx context.Context, entity *T, after func(tx *gorm.DB) error) error {
	db, err := r.conn(ctx)
	if err != nil {
		return err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := r.Validate(ctx, tx, entity, nil); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(entity).Error; err != nil {
			return r.translateWriteError(err)
		}
		if after != nil {
			return after(tx)
		}
		return nil
	})
	return r.wrap("create", err)
}

// Update validates and replaces every column of entity except id and
// created_at, then runs after in the same transaction
func (r *Repository[T]) Update(ctx context.Context, entity *T, after func(tx *gorm.DB) error) error {
	db, err := r.conn(ctx)
	if err != nil {
		return err
	}
	id := (*entity).PrimaryKey()

	err = db.Transaction(func(tx *gorm.DB) error {
		ok, err := Exists(tx, r.spec.Table, id)
		if err != nil {
			return err
		}
		if !ok {
			return domain.NewNotFoundError(r.spec.Entity)
		}
		if err := r.Validate(ctx, tx, entity, &id); err != nil {
			return err
		}

		err = tx.Model(entity).
			Select("*").
			Omit("id", "created_at", clause.Associations).
			Updates(entity).Error
		if err != nil {
			return r.translateWriteError(err)
		}
		if err := Touch(tx, r.spec.Table, id); err != nil {
			return err
		}
		if after != nil {
			return after(tx)
		}
		return nil
	})
	return r.wrap("update", err)
}

// translateWriteError maps constraint failures that slipped past Validate.
// Foreign key failures are conflicts with the current database state.
func (r *Repository[T]) translateWriteError(err error) error {
	switch {
	case database.IsUniqueViolation(err):
		return &domain.Error{Kind: domain.KindValidation, Message: fmt.Sprintf("A %s with these values already exists", r.spec.Entity), Err: err}
	case database.IsForeignKeyViolation(err):
		return &domain.Error{Kind: domain.KindConflict, Message: fmt.Sprintf("The %s references a record that does not exist", r.spec.Entity), Err: err}
	}
	return err
}

// FindReferences runs every dependent query and collects the referencing documents
func (r *Repository[T]) FindReferences(ctx context.Context, db *gorm.DB, id uuid.UUID) ([]domain.Reference, error) {
	var refs []domain.Reference
	for _, dep := range r.spec.Dependents {
		var numbers []string
		if err := db.WithContext(ctx).Raw(dep.Query, id).Scan(&numbers).Error; err != nil {
			return nil, r.wrap("check references of", err)
		}
		for _, n := range numbers {
			refs = append(refs, domain.Reference{Type: dep.Type, Number: n})
		}
	}
	return refs, nil
}

// Delete removes the row after the reference guard passes. A foreign key
// failure on the delete itself is re-diagnosed into the same structured error.
func (r *Repository[T]) Delete(ctx context.Context, id uuid.UUID) error {
	db, err := r.conn(ctx)
	if err != nil {
		return err
	}

	ok, err := Exists(db, r.spec.Table, id)
	if err != nil {
		return r.wrap("delete", err)
	}
	if !ok {
		return domain.NewNotFoundError(r.spec.Entity)
	}

	refs, err := r.FindReferences(ctx, db, id)
	if err != nil {
		return err
	}
	if len(refs) > 0 {
		return domain.NewReferenceError(r.spec.Entity, refs)
	}

	err = db.Delete(new(T), "id = ?", id).Error
	if err == nil {
		return nil
	}
	if database.IsForeignKeyViolation(err) {
		refs, rerr := r.FindReferences(ctx, db, id)
		if rerr != nil {
			refs = nil
		}
		refErr := domain.NewReferenceError(r.spec.Entity, refs)
		refErr.Err = err
		return refErr
	}
	return r.wrap("delete", err)
}

// Touch stamps updated_at on a row, used after child collections change
func Touch(tx *gorm.DB, table string, id uuid.UUID) error {
	return tx.Table(table).Where("id = ?", id).Update("updated_at", time.Now().UTC()).Error
}

// ReplaceChildren deletes every child of parentID and bulk-inserts children.
// Callers run it inside the parent's write transaction.
func ReplaceChildren[C any](tx *gorm.DB, fkColumn string, parentID uuid.UUID, children []C) error {
	if err := tx.Where(fkColumn+" = ?", parentID).Delete(new(C)).Error; err != nil {
		return fmt.Errorf("failed to delete items: %w", err)
	}
	if len(children) == 0 {
		return nil
	}
	if err := tx.Create(&children).Error; err != nil {
		if database.IsForeignKeyViolation(err) {
			return &domain.Error{Kind: domain.KindConflict, Message: "An item references a record that does not exist", Err: err}
		}
		return fmt.Errorf("failed to insert items: %w", err)
	}
	return nil
}

// Transaction runs fn in a transaction on db
func Transaction(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	conn, err := Conn(ctx, db)
	if err != nil {
		return err
	}
	return conn.Transaction(fn)
}
