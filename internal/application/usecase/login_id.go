package usecase

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/jhoicas/paytrack-api/internal/domain/entity"
)

// LoginIDGenerator genera un código de acceso para un usuario nuevo.
type LoginIDGenerator func(role entity.Role) (string, error)

var rolePrefix = map[entity.Role]string{
	entity.RoleAdmin:    "ADM",
	entity.RoleManager:  "MGR",
	entity.RoleEmployee: "EMP",
}

var sixDigits = big.NewInt(1_000_000)

// RandomLoginID genera códigos del tipo EMP042917: prefijo de rol y seis dígitos aleatorios.
func RandomLoginID(role entity.Role) (string, error) {
	n, err := rand.Int(rand.Reader, sixDigits)
	if err != nil {
		return "", fmt.Errorf("generar login id: %w", err)
	}
	prefix, ok := rolePrefix[role]
	if !ok {
		prefix = "USR"
	}
	return fmt.Sprintf("%s%06d", prefix, n.Int64()), nil
}
