package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Workspace struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

type WorkspaceMember struct {
	WorkspaceID string `db:"workspace_id" json:"workspaceId"`
	UserID      string `db:"user_id" json:"userId"`
	Role        Role   `db:"role" json:"role"`
}

// Claims são as claims do token de acesso. Subject carrega o id do usuário.
type Claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}
