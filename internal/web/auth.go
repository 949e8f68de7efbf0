package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"Storefront/internal/store"
	"Storefront/pkg/kit"
)

const minPasswordLen = 6

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

type registerReq struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func (a *App) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := decodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)

	if req.Email == "" || !strings.Contains(req.Email, "@") {
		kit.WriteError(w, r, http.StatusBadRequest, "valid email required", nil)
		return
	}
	if len(req.Password) < minPasswordLen {
		kit.WriteError(w, r, http.StatusBadRequest, "password too short", map[string]any{"min_len": minPasswordLen})
		return
	}
	if req.FirstName == "" || req.LastName == "" {
		kit.WriteError(w, r, http.StatusBadRequest, "first and last name required", nil)
		return
	}

	// Email uniqueness is a lookup-then-insert; good enough for a single
	// process, a real deployment wants a unique index instead.
	if _, exists, err := a.Store.GetUserByEmail(r.Context(), req.Email); err != nil {
		a.serverError(w, r, "get user by email", err)
		return
	} else if exists {
		kit.WriteError(w, r, http.StatusBadRequest, "User already exists", nil)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		a.serverError(w, r, "hash password", err)
		return
	}

	u, err := a.Store.CreateUser(r.Context(), store.NewUser{
		Email:     req.Email,
		Password:  string(hash),
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		a.serverError(w, r, "create user", err)
		return
	}

	a.Sessions.Start(w, u.ID)
	kit.WriteJSON(w, http.StatusOK, u)
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (a *App) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := decodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}

	req.Email = strings.TrimSpace(req.Email)

	u, ok, err := a.Store.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		a.serverError(w, r, "get user by email", err)
		return
	}
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "Invalid credentials", nil)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)); err != nil {
		kit.WriteError(w, r, http.StatusUnauthorized, "Invalid credentials", nil)
		return
	}

	a.Sessions.Start(w, u.ID)
	kit.WriteJSON(w, http.StatusOK, u)
}

func (a *App) handleLogout(w http.ResponseWriter, r *http.Request) {
	a.Sessions.Destroy(w, r)
	kit.WriteJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

func (a *App) handleMe(w http.ResponseWriter, r *http.Request) {
	uid, _ := userFromContext(r.Context())

	u, ok, err := a.Store.GetUserByID(r.Context(), uid)
	if err != nil {
		a.serverError(w, r, "get user", err)
		return
	}
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "User not found", nil)
		return
	}
	kit.WriteJSON(w, http.StatusOK, u)
}

type profileReq struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Address   *string `json:"address"`
	City      *string `json:"city"`
	ZipCode   *string `json:"zipCode"`
}

func (a *App) handleProfile(w http.ResponseWriter, r *http.Request) {
	uid, _ := userFromContext(r.Context())

	var req profileReq
	if err := decodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}

	u, err := a.Store.UpdateUser(r.Context(), uid, store.UserUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Address:   req.Address,
		City:      req.City,
		ZipCode:   req.ZipCode,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			kit.WriteError(w, r, http.StatusNotFound, "User not found", nil)
			return
		}
		a.serverError(w, r, "update user", err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, u)
}

func (a *App) serverError(w http.ResponseWriter, r *http.Request, op string, err error) {
	if a.Log != nil {
		a.Log.Error(op+" failed", zap.Error(err))
	}
	kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
}
