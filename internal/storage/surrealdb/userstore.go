package surrealdb

import (
	"context"
	"fmt"

	"github.com/foliolab/folio/internal/common"
	"github.com/foliolab/folio/internal/interfaces"
	"github.com/foliolab/folio/internal/models"
	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

type UserStore struct {
	db     *surrealdb.DB
	seq    *sequence
	logger *common.Logger
}

func NewUserStore(db *surrealdb.DB, seq *sequence, logger *common.Logger) *UserStore {
	return &UserStore{db: db, seq: seq, logger: logger}
}

func (s *UserStore) Create(ctx context.Context, user *models.User) (*models.User, error) {
	id, err := s.seq.Next(ctx, "user")
	if err != nil {
		return nil, err
	}

	cp := *user
	cp.ID = id

	sql := "UPSERT type::record('user', $id) CONTENT $user"
	vars := map[string]any{"id": id, "user": &cp}
	if _, err := surrealdb.Query[[]models.User](ctx, s.db, sql, vars); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &cp, nil
}

func (s *UserStore) Get(ctx context.Context, id int64) (*models.User, error) {
	user, err := surrealdb.Select[models.User](ctx, s.db, surrealmodels.NewRecordID("user", id))
	if err != nil {
		if isNotFoundError(err) {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to select user: %w", err)
	}
	if user == nil || user.ID == 0 {
		return nil, interfaces.ErrNotFound
	}
	return user, nil
}

func (s *UserStore) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByField(ctx, "username", username)
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByField(ctx, "email", email)
}

func (s *UserStore) getByField(ctx context.Context, field, value string) (*models.User, error) {
	sql := fmt.Sprintf("SELECT * FROM user WHERE %s = $value LIMIT 1", field)
	vars := map[string]any{"value": value}

	results, err := surrealdb.Query[[]models.User](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to query user by %s: %w", field, err)
	}
	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return nil, interfaces.ErrNotFound
	}
	return &(*results)[0].Result[0], nil
}

func (s *UserStore) Update(ctx context.Context, user *models.User) (*models.User, error) {
	if _, err := s.Get(ctx, user.ID); err != nil {
		return nil, err
	}

	sql := "UPSERT type::record('user', $id) CONTENT $user"
	vars := map[string]any{"id": user.ID, "user": user}
	if _, err := surrealdb.Query[[]models.User](ctx, s.db, sql, vars); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	cp := *user
	return &cp, nil
}

func (s *UserStore) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if _, err := surrealdb.Delete[models.User](ctx, s.db, surrealmodels.NewRecordID("user", id)); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
