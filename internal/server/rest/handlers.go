package rest

import (
	"errors"
	"io"
	"net/http"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

func (s *Server) observeAuth(event, outcome string) {
	if s.metrics != nil {
		s.metrics.ObserveAuth(event, outcome)
	}
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req credentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "Corpo JSON inválido")
		return
	}

	user, err := s.users.Register(ctx, req.Email, req.password())
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorAlreadyExists):
			s.observeAuth("register", "conflict")
			writeErrorMessage(w, http.StatusConflict, "Este email já está em uso")
		case errors.Is(err, common.ErrorValidation):
			s.observeAuth("register", "invalid")
			s.writeServiceError(w, r, err)
		default:
			s.observeAuth("register", "error")
			s.writeServiceError(w, r, err)
		}
		return
	}

	s.observeAuth("register", "success")
	s.logger.Info(ctx, "Registered", "user_id", user.ID)
	writeJSON(w, http.StatusCreated, messageBody{Mensagem: "Usuário criado com sucesso!"})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "Corpo JSON inválido")
		return
	}

	token, err := s.users.Login(r.Context(), req.Email, req.password())
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			s.observeAuth("login", "invalid")
			writeErrorMessage(w, http.StatusUnauthorized, "Credenciais inválidas")
			return
		}
		s.observeAuth("login", "error")
		s.writeServiceError(w, r, err)
		return
	}

	s.observeAuth("login", "success")
	writeJSON(w, http.StatusOK, loginResponse{AccessToken: token})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		s.writeServiceError(w, r, common.ErrorUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, meResponse{ID: user.ID, Email: user.Email})
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		s.writeServiceError(w, r, common.ErrorUnauthorized)
		return
	}

	list, err := s.tasks.List(r.Context(), user.ID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	resp := make([]taskResponse, 0, len(list))
	for i := range list {
		resp = append(resp, toTaskResponse(&list[i]))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		s.writeServiceError(w, r, common.ErrorUnauthorized)
		return
	}

	var req taskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "Corpo JSON inválido")
		return
	}

	description, priority, err := req.createArgs()
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	task, err := s.tasks.Create(r.Context(), user.ID, description, priority)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.logger.Debug(r.Context(), "task created", "task_id", task.ID, "user_id", user.ID)
	writeJSON(w, http.StatusCreated, toTaskResponse(task))
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		s.writeServiceError(w, r, common.ErrorUnauthorized)
		return
	}

	id, err := pathID(r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	task, err := s.tasks.Get(r.Context(), user.ID, id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTaskResponse(task))
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		s.writeServiceError(w, r, common.ErrorUnauthorized)
		return
	}

	id, err := pathID(r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	var req taskRequest
	if err := decodeJSON(w, r, &req); err != nil && !errors.Is(err, io.EOF) {
		writeErrorMessage(w, http.StatusBadRequest, "Corpo JSON inválido")
		return
	}

	var patch models.TaskPatch
	if patch, err = req.toPatch(); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	task, err := s.tasks.Update(r.Context(), user.ID, id, patch)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTaskResponse(task))
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		s.writeServiceError(w, r, common.ErrorUnauthorized)
		return
	}

	id, err := pathID(r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	if err := s.tasks.Delete(r.Context(), user.ID, id); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
