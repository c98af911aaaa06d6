package directory

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/commodities-cms/internal/domain/entity"
)

// User entrada del directorio con password en claro; se hashea al construir.
type User struct {
	ID       int64
	Email    string
	Password string
	Role     entity.Role
	Name     string
}

// DemoUsers directorio compilado de la aplicación.
var DemoUsers = []User{
	{ID: 1, Email: "manager@demo.com", Password: "manager123", Role: entity.RoleManager, Name: "John Store Manager"},
	{ID: 2, Email: "storekeeper@demo.com", Password: "store123", Role: entity.RoleStoreKeeper, Name: "Jane Store Keeper"},
}

// StaticDirectory implementa repository.CredentialDirectory sobre una lista fija.
// Solo guarda hashes bcrypt; el email se compara exacto (sin normalizar).
type StaticDirectory struct {
	byEmail map[string]entity.Credential
}

// NewStaticDirectory hashea los passwords con el costo indicado (bcrypt.DefaultCost si es 0).
func NewStaticDirectory(cost int, users ...User) (*StaticDirectory, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	d := &StaticDirectory{byEmail: make(map[string]entity.Credential, len(users))}
	for _, u := range users {
		if !u.Role.Valid() {
			return nil, fmt.Errorf("directorio: rol inválido %q para %s", u.Role, u.Email)
		}
		if _, dup := d.byEmail[u.Email]; dup {
			return nil, fmt.Errorf("directorio: email duplicado %s", u.Email)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), cost)
		if err != nil {
			return nil, fmt.Errorf("directorio: hash de %s: %w", u.Email, err)
		}
		d.byEmail[u.Email] = entity.Credential{
			ID: u.ID, Email: u.Email, PasswordHash: string(hash), Role: u.Role, Name: u.Name,
		}
	}
	return d, nil
}

// NewDemoDirectory directorio con DemoUsers.
func NewDemoDirectory() (*StaticDirectory, error) {
	return NewStaticDirectory(0, DemoUsers...)
}

// Authenticate busca por email exacto y compara el password con el hash.
func (d *StaticDirectory) Authenticate(email, password string) (*entity.Credential, bool) {
	c, ok := d.byEmail[email]
	if !ok {
		return nil, false
	}
	if err := bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)); err != nil {
		return nil, false
	}
	return &c, true
}
