package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/aydmirov/call-logging/internal/metrics"
	"github.com/aydmirov/call-logging/internal/service"
	"github.com/aydmirov/call-logging/internal/store"
)

func setupRouter(users *service.UserService, orders *store.OrderStore, collector *metrics.Collector) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /users", createUser(users))
	mux.HandleFunc("GET /users", listUsers(users))
	mux.HandleFunc("GET /users/{id}", getUser(users))
	mux.HandleFunc("DELETE /users/{id}", deleteUser(users))
	mux.HandleFunc("POST /users/{id}/orders", createOrder(orders))
	mux.HandleFunc("GET /users/{id}/orders", listOrders(orders))
	mux.HandleFunc("/metrics", collector.Handler())

	return mux
}

type userRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type orderRequest struct {
	Total float64 `json:"total"`
}

func createUser(users *service.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req userRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		user, err := users.Register(r.Context(), req.Name, req.Email)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, user)
	}
}

func listUsers(users *service.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

		got, err := users.List(r.Context(), limit)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, got)
	}
}

func getUser(users *service.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
		if err != nil {
			http.Error(w, "invalid user id", http.StatusBadRequest)
			return
		}

		user, err := users.FindByID(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, user)
	}
}

func deleteUser(users *service.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
		if err != nil {
			http.Error(w, "invalid user id", http.StatusBadRequest)
			return
		}

		if err := users.Remove(r.Context(), id); err != nil {
			writeError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func createOrder(orders *store.OrderStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
		if err != nil {
			http.Error(w, "invalid user id", http.StatusBadRequest)
			return
		}

		var req orderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		order := &store.Order{UserID: userID, Total: req.Total}
		if err := orders.Save(r.Context(), order); err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, order)
	}
}

func listOrders(orders *store.OrderStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
		if err != nil {
			http.Error(w, "invalid user id", http.StatusBadRequest)
			return
		}

		got, err := orders.FindByUser(r.Context(), userID)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, got)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case isValidationError(err):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func isValidationError(err error) bool {
	var errs validation.Errors
	if errors.As(err, &errs) {
		return true
	}
	var obj validation.ErrorObject
	return errors.As(err, &obj)
}
