package utils

import (
	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateID gera um identificador curto para execuções manuais e seeds.
func GenerateID() (string, error) {
	return gonanoid.Generate(characters, 12)
}

// NewUUID gera o identificador de planos e previsões persistidos.
func NewUUID() string {
	return uuid.NewString()
}
