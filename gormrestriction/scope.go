// Package gormrestriction applies restrictions to gorm queries.
package gormrestriction

import (
	"cmp"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/theplant/restriction"
	"github.com/theplant/restriction/dialect"
)

type ColumnInput struct {
	DB        *gorm.DB
	FieldName string
}

// ColumnFunc resolves the SQL reference of a model field.
type ColumnFunc func(input *ColumnInput) (string, error)

type Options struct {
	// Field is the model field whose column is restricted. It overrides Env.Column.
	Field       string
	ColumnHooks []func(next ColumnFunc) ColumnFunc
}

type Option func(*Options)

// WithField restricts the column of the named model field (Go name or column name).
func WithField(name string) Option {
	return func(o *Options) {
		o.Field = name
	}
}

// WithColumnHook wraps the resolution of the field column, e.g. to point a
// field at a computed expression. The first hook is the outermost.
func WithColumnHook(hooks ...func(next ColumnFunc) ColumnFunc) Option {
	return func(o *Options) {
		o.ColumnHooks = append(o.ColumnHooks, hooks...)
	}
}

func (o *Options) columnFunc() ColumnFunc {
	f := ColumnFunc(schemaColumn)
	for i := len(o.ColumnHooks) - 1; i >= 0; i-- {
		f = o.ColumnHooks[i](f)
	}
	return f
}

// Scope adds the SQL of r to the where clause. Restrictions without value
// add nothing. When env has no encoder, the dialect follows db's dialector.
func Scope(r *restriction.Restriction, env restriction.Env, opts ...Option) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if db == nil {
			return nil
		}
		rdb, err := addRestriction(db, r, env, opts...)
		if err != nil {
			db.AddError(err)
			return db
		}
		return rdb
	}
}

// Expression renders r as a gorm expression, nil when it would not filter anything.
func Expression(r *restriction.Restriction, env restriction.Env) clause.Expression {
	texts := r.Texts(env)
	if texts.SQL == restriction.Tautology {
		return nil
	}
	return Condition{SQL: texts.SQL}
}

func addRestriction(db *gorm.DB, r *restriction.Restriction, env restriction.Env, opts ...Option) (*gorm.DB, error) {
	if r == nil {
		return db, nil
	}

	o := &Options{}
	for _, opt := range opts {
		opt(o)
	}

	if env.Encoder == nil {
		env.Encoder = dialect.New(DialectOf(db))
	}
	if o.Field != "" {
		column, err := o.columnFunc()(&ColumnInput{DB: db, FieldName: o.Field})
		if err != nil {
			return nil, err
		}
		env.Column = column
	}
	if env.Column == "" {
		return nil, errors.Errorf("missing column for restriction %s", r.ID)
	}

	if expr := Expression(r, env); expr != nil {
		db = db.Where(expr)
	}
	return db, nil
}

func schemaColumn(input *ColumnInput) (string, error) {
	db, fieldName := input.DB, input.FieldName
	model := cmp.Or(db.Statement.Model, db.Statement.Dest)
	if model == nil {
		return "", errors.New("model is nil")
	}
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(model); err != nil {
		return "", errors.Wrap(err, "parse schema with db")
	}

	field, ok := stmt.Schema.FieldsByName[fieldName]
	if !ok {
		field, ok = stmt.Schema.FieldsByDBName[fieldName]
	}
	if !ok {
		return "", errors.Errorf("missing field %q in schema", fieldName)
	}
	return stmt.Quote(clause.Column{Table: stmt.Table, Name: field.DBName}), nil
}

// DialectOf maps the name of db's dialector to a restriction dialect.
func DialectOf(db *gorm.DB) dialect.Dialect {
	if db == nil || db.Dialector == nil {
		return dialect.Default
	}
	d, err := dialect.Parse(db.Dialector.Name())
	if err != nil {
		return dialect.Default
	}
	return d
}
