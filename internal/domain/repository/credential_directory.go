package repository

import "github.com/jhoicas/commodities-cms/internal/domain/entity"

// CredentialDirectory define el puerto de consulta del directorio de credenciales (DIP).
type CredentialDirectory interface {
	// Authenticate busca por email exacto y verifica el password.
	// Devuelve false si no existe o el password no coincide.
	Authenticate(email, password string) (*entity.Credential, bool)
}
