package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"chatrelay/internal/chatlog"
	"chatrelay/internal/users"
)

type signupRequest struct {
	UserID   string `json:"userId"`
	Password string `json:"password"`
	AuthCode string `json:"authCode"`
}

func (s *Server) handleSignup(w http.ResponseWriter, body []byte) {
	req := decodeLoose[signupRequest](body)

	if req.AuthCode == "" || req.AuthCode != s.cfg.SignupAuthCode {
		writeError(w, http.StatusBadRequest, "invalid auth code")
		return
	}
	if req.UserID == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "userId and password are required")
		return
	}

	err := s.users.Create(users.User{UserID: req.UserID, Password: req.Password, Role: users.RoleRegular})
	if errors.Is(err, users.ErrDuplicate) {
		writeError(w, http.StatusConflict, "account already exists")
		return
	}
	if err != nil {
		s.logger.Error("create user failed", zap.Error(err), zap.String("userId", req.UserID))
		writeError(w, http.StatusInternalServerError, "could not create account")
		return
	}
	writeOK(w, envelope{"msg": "account created"})
}

type loginRequest struct {
	UserID   string `json:"userId"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (s *Server) handleLogin(w http.ResponseWriter, body []byte) {
	req := decodeLoose[loginRequest](body)

	// Guests get a fresh identifier with no credential check and no
	// directory record.
	if req.Role == "guest" {
		writeOK(w, envelope{"userId": guestID(), "role": "guest"})
		return
	}

	if req.UserID == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "userId and password are required")
		return
	}

	u, ok, err := s.users.FindByID(req.UserID)
	if err != nil {
		s.logger.Error("lookup user failed", zap.Error(err), zap.String("userId", req.UserID))
		writeError(w, http.StatusInternalServerError, "could not verify credentials")
		return
	}
	if !ok || u.Password != req.Password {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	writeOK(w, envelope{"userId": u.UserID, "role": u.Role})
}

func guestID() string {
	return fmt.Sprintf("guest_%d", time.Now().UnixNano())
}

type chatRequest struct {
	UserID   string `json:"userId"`
	Role     string `json:"role"`
	Question string `json:"question"`
}

func (s *Server) handleChat(ctx context.Context, w http.ResponseWriter, body []byte) {
	req := decodeLoose[chatRequest](body)

	if req.Question == "" {
		writeError(w, http.StatusBadRequest, "question is required")
		return
	}

	msgs, err := s.assembler.Build(req.UserID, req.Question)
	if err != nil {
		s.logger.Error("context assembly failed", zap.Error(err), zap.String("userId", req.UserID))
		writeError(w, http.StatusInternalServerError, "could not assemble context")
		return
	}

	answer, err := s.llm.Complete(ctx, msgs)
	if err != nil {
		s.logger.Error("completion failed", zap.Error(err), zap.String("userId", req.UserID))
		msg := "upstream completion failed"
		if s.cfg.Debug || s.cfg.MockLLM {
			msg = fmt.Sprintf("upstream completion failed: %v", err)
		}
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	turn := chatlog.Turn{
		UserID:    req.UserID,
		Role:      req.Role,
		Question:  req.Question,
		Answer:    answer,
		Timestamp: time.Now().UnixMilli(),
	}
	if err := s.turns.Append(turn); err != nil {
		s.logger.Error("append turn failed", zap.Error(err), zap.String("userId", req.UserID))
		writeError(w, http.StatusInternalServerError, "could not record conversation")
		return
	}

	writeOK(w, envelope{"answer": answer})
}
