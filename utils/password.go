package utils

import "golang.org/x/crypto/bcrypt"

// HashAdminPassword hashes a plaintext password for storage. Never store plaintext.
func HashAdminPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckAdminPassword returns nil if plain matches the stored bcrypt hash.
func CheckAdminPassword(plain, hashed string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}
