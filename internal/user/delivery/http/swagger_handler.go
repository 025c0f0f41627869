package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterSwaggerDocs registers Swagger documentation routes
// @Summary Swagger documentation
// @Description Swagger API documentation for User Service
// @Tags Swagger
// @Success 200 {string} string "Swagger UI"
// @Router /swagger/ [get]
func RegisterSwaggerDocs(router *mux.Router, swaggerHandler http.Handler) {
	// Swagger UI
	router.PathPrefix("/swagger/").Handler(swaggerHandler)
}

// CreateUser godoc
// @Summary Create a new user
// @Description Create a user record; username and email must be unique
// @Tags Users
// @Accept json
// @Produce json
// @Param request body object{username=string,email=string} true "User data"
// @Success 200 {object} object{id=int,username=string,email=string,created_at=string,updated_at=string}
// @Failure 500 "Internal server error"
// @Router /api/users [post]
func (h *UserHandler) CreateUserDoc() {}

// ListUsers godoc
// @Summary List all users
// @Description Get every user record, in storage order
// @Tags Users
// @Produce json
// @Success 200 {array} object{id=int,username=string,email=string,created_at=string,updated_at=string}
// @Failure 500 "Internal server error"
// @Router /api/users [get]
func (h *UserHandler) ListUsersDoc() {}

// GetUser godoc
// @Summary Get user by ID
// @Description Get a single user record
// @Tags Users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} object{id=int,username=string,email=string,created_at=string,updated_at=string}
// @Failure 404 "User not found"
// @Failure 500 "Internal server error"
// @Router /api/users/{id} [get]
func (h *UserHandler) GetUserDoc() {}

// UpdateUser godoc
// @Summary Update a user
// @Description Partially update a user; omitted fields keep their stored value
// @Tags Users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body object{username=string,email=string} true "Fields to update"
// @Success 200 {object} object{id=int,username=string,email=string,created_at=string,updated_at=string}
// @Failure 404 "User not found"
// @Failure 500 "Internal server error"
// @Router /api/users/{id} [put]
func (h *UserHandler) UpdateUserDoc() {}

// DeleteUser godoc
// @Summary Delete a user
// @Description Hard-delete a user record
// @Tags Users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} object{message=string}
// @Failure 404 "User not found"
// @Failure 500 "Internal server error"
// @Router /api/users/{id} [delete]
func (h *UserHandler) DeleteUserDoc() {}

// HealthCheck godoc
// @Summary Health check
// @Description Check service health and database connectivity
// @Tags Health
// @Produce json
// @Success 200 {object} object{status=string}
// @Failure 503 {object} object{status=string,error=string}
// @Router /health [get]
func (h *UserHandler) HealthCheckDoc() {}
