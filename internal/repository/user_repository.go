package repository

import (
	"context"
	"net/http"
	"strconv"

	"github.com/noah-isme/cemetery-console/internal/models"
	"github.com/noah-isme/cemetery-console/pkg/httpclient"
)

// UserRepository wraps the auth service.
type UserRepository struct {
	client *httpclient.Client
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(client *httpclient.Client) *UserRepository {
	return &UserRepository{client: client}
}

// Login exchanges credentials for a bearer token.
func (r *UserRepository) Login(ctx context.Context, req models.LoginRequest) (string, error) {
	var resp models.LoginResponse
	if err := r.client.JSON(ctx, http.MethodPost, "/auth/login", nil, req, &resp); err != nil {
		return "", httpclient.Normalize(err, "Error al iniciar sesión")
	}
	return resp.Token, nil
}

// Register creates a user account.
func (r *UserRepository) Register(ctx context.Context, in models.UserInput) error {
	if err := r.client.JSON(ctx, http.MethodPost, "/auth/register", nil, in, nil); err != nil {
		return httpclient.Normalize(err, "Error al registrar el usuario")
	}
	return nil
}

// List returns every account.
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.client.JSON(ctx, http.MethodGet, "/auth/allUsers", nil, nil, &users); err != nil {
		return nil, httpclient.Normalize(err, "Error al obtener usuarios")
	}
	return users, nil
}

// Update modifies an account. An empty password leaves it unchanged.
func (r *UserRepository) Update(ctx context.Context, id int64, in models.UserInput) error {
	if err := r.client.JSON(ctx, http.MethodPut, "/auth/"+strconv.FormatInt(id, 10), nil, in, nil); err != nil {
		return httpclient.Normalize(err, "Error al actualizar usuario")
	}
	return nil
}

// Delete removes an account.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	if err := r.client.JSON(ctx, http.MethodDelete, "/auth/"+strconv.FormatInt(id, 10), nil, nil, nil); err != nil {
		return httpclient.Normalize(err, "Error al eliminar usuario")
	}
	return nil
}
