package auth

import "golang.org/x/crypto/bcrypt"

// MinPasswordLength longitud mínima aceptada al crear o cambiar una contraseña.
const MinPasswordLength = 6

// dummyHash se compara cuando el login id no existe, para que la respuesta tarde
// lo mismo exista o no el usuario.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("paytrack-dummy-password"), bcrypt.DefaultCost)

// HashPassword genera el hash bcrypt de la contraseña.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword compara una contraseña con su hash.
func VerifyPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
