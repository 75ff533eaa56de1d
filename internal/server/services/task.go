package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/server/config"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/repomanager"
)

const (
	MinDescriptionLength = 3
	MaxDescriptionLength = 200
)

// TaskService manages tasks on behalf of their owner. Every single-task
// operation checks ownership and reports a foreign task as not found.
type TaskService struct {
	repomanager  repomanager.RepositoryManager
	queryTimeout time.Duration
}

func NewTaskService(m repomanager.RepositoryManager, cfg *config.Config) *TaskService {
	return &TaskService{repomanager: m, queryTimeout: cfg.QueryTimeout}
}

// Create validates input and stores a new, not completed task for ownerID.
// An empty priority defaults to baixa.
func (s *TaskService) Create(ctx context.Context, ownerID int64, description string, priority models.Priority) (*models.Task, error) {
	desc, err := normalizeDescription(description)
	if err != nil {
		return nil, err
	}
	if priority == "" {
		priority = models.DefaultPriority
	}
	if !priority.Valid() {
		return nil, fmt.Errorf("%w: prioridade inválida %q", common.ErrorValidation, priority)
	}

	ctx, cancel := withQueryTimeout(ctx, s.queryTimeout)
	defer cancel()

	task := &models.Task{
		UserID:      ownerID,
		Description: desc,
		Completed:   false,
		Priority:    priority,
	}

	t, err := s.repomanager.Tasks(s.repomanager.Conn()).Create(ctx, task)
	if err != nil {
		// the owner was deleted after authenticating
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("%w: usuário não encontrado", common.ErrorUnauthorized)
		}
		return nil, storageError(err)
	}
	return t, nil
}

// List returns ownerID's tasks in creation order.
func (s *TaskService) List(ctx context.Context, ownerID int64) ([]models.Task, error) {
	ctx, cancel := withQueryTimeout(ctx, s.queryTimeout)
	defer cancel()

	list, err := s.repomanager.Tasks(s.repomanager.Conn()).ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, storageError(err)
	}
	return list, nil
}

// Get returns task id if ownerID owns it.
func (s *TaskService) Get(ctx context.Context, ownerID, id int64) (*models.Task, error) {
	ctx, cancel := withQueryTimeout(ctx, s.queryTimeout)
	defer cancel()

	t, err := s.getOwned(ctx, s.repomanager.Conn(), ownerID, id)
	if err != nil {
		return nil, taskError(err)
	}
	return t, nil
}

// Update applies the present fields of patch to task id. The patch is
// validated before the transaction starts.
func (s *TaskService) Update(ctx context.Context, ownerID, id int64, patch models.TaskPatch) (*models.Task, error) {
	if patch.Description != nil {
		desc, err := normalizeDescription(*patch.Description)
		if err != nil {
			return nil, err
		}
		patch.Description = &desc
	}
	if patch.Priority != nil && !patch.Priority.Valid() {
		return nil, fmt.Errorf("%w: prioridade inválida %q", common.ErrorValidation, *patch.Priority)
	}

	ctx, cancel := withQueryTimeout(ctx, s.queryTimeout)
	defer cancel()

	var result *models.Task
	err := s.repomanager.RunInTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		t, err := s.getOwned(ctx, tx, ownerID, id)
		if err != nil {
			return err
		}
		if patch.Empty() {
			result = t
			return nil
		}
		patch.Apply(t)
		result, err = s.repomanager.Tasks(tx).Update(ctx, t)
		return err
	})
	if err != nil {
		return nil, taskError(err)
	}
	return result, nil
}

// Delete removes task id if ownerID owns it.
func (s *TaskService) Delete(ctx context.Context, ownerID, id int64) error {
	ctx, cancel := withQueryTimeout(ctx, s.queryTimeout)
	defer cancel()

	err := s.repomanager.RunInTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.getOwned(ctx, tx, ownerID, id); err != nil {
			return err
		}
		return s.repomanager.Tasks(tx).Delete(ctx, id)
	})
	if err != nil {
		return taskError(err)
	}
	return nil
}

// --- helpers below ---

func (s *TaskService) getOwned(ctx context.Context, db dbx.DBTX, ownerID, id int64) (*models.Task, error) {
	t, err := s.repomanager.Tasks(db).Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.UserID != ownerID {
		return nil, common.ErrorNotFound
	}
	return t, nil
}

func taskError(err error) error {
	if errors.Is(err, common.ErrorNotFound) {
		return common.ErrorNotFound
	}
	return storageError(err)
}

func normalizeDescription(s string) (string, error) {
	s = strings.TrimSpace(s)
	n := utf8.RuneCountInString(s)
	if n < MinDescriptionLength {
		return "", fmt.Errorf("%w: descricao deve ter pelo menos %d caracteres", common.ErrorValidation, MinDescriptionLength)
	}
	if n > MaxDescriptionLength {
		return "", fmt.Errorf("%w: descricao deve ter no máximo %d caracteres", common.ErrorValidation, MaxDescriptionLength)
	}
	return s, nil
}
