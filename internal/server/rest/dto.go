package rest

import (
	"fmt"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

// credentialsRequest accepts "password" or the legacy "senha" key.
type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Senha    string `json:"senha"`
}

func (c credentialsRequest) password() string {
	if c.Password != "" {
		return c.Password
	}
	return c.Senha
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

type meResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// taskRequest accepts the Portuguese keys and their English aliases.
// The Portuguese key wins when both are sent.
type taskRequest struct {
	Descricao   *string `json:"descricao"`
	Description *string `json:"description"`
	Prioridade  *string `json:"prioridade"`
	Priority    *string `json:"priority"`
	Concluida   *bool   `json:"concluida"`
	Completed   *bool   `json:"completed"`
}

func firstNonNil[T any](vals ...*T) *T {
	for _, v := range vals {
		if v != nil {
			return v
		}
	}
	return nil
}

// toPatch converts the request into a partial update. Only keys present in
// the body end up in the patch.
func (t taskRequest) toPatch() (models.TaskPatch, error) {
	patch := models.TaskPatch{
		Description: firstNonNil(t.Descricao, t.Description),
		Completed:   firstNonNil(t.Concluida, t.Completed),
	}
	if p := firstNonNil(t.Prioridade, t.Priority); p != nil {
		prio, err := models.ParsePriority(*p)
		if err != nil {
			return models.TaskPatch{}, err
		}
		patch.Priority = &prio
	}
	return patch, nil
}

// createArgs extracts the fields needed to create a task. A missing
// priority is left empty for the service default.
func (t taskRequest) createArgs() (string, models.Priority, error) {
	patch, err := t.toPatch()
	if err != nil {
		return "", "", err
	}
	if patch.Description == nil {
		return "", "", fmt.Errorf("%w: descricao é obrigatória", common.ErrorValidation)
	}
	var prio models.Priority
	if patch.Priority != nil {
		prio = *patch.Priority
	}
	return *patch.Description, prio, nil
}

type taskResponse struct {
	ID         int64  `json:"id"`
	Descricao  string `json:"descricao"`
	Concluida  bool   `json:"concluida"`
	Prioridade string `json:"prioridade"`
}

func toTaskResponse(t *models.Task) taskResponse {
	return taskResponse{
		ID:         t.ID,
		Descricao:  t.Description,
		Concluida:  t.Completed,
		Prioridade: string(t.Priority),
	}
}
