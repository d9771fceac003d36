package firebasetest

import (
	"crypto/rand"
	"crypto/subtle"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/argon2"
)

// Argon2id parameters, sized for tests.
const (
	saltSize    = 16
	keySize     = 32
	memory      = 8 * 1024
	iterations  = 1
	parallelism = 1
)

func hashPassword(password string) []byte {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		panic(err)
	}
	return append(salt, deriveKey(password, salt)...)
}

func deriveKey(password string, salt []byte) []byte {
	return argon2.IDKey([]byte(password), salt, iterations, memory, parallelism, keySize)
}

func checkPassword(hash []byte, password string) bool {
	if len(hash) != saltSize+keySize {
		return false
	}
	key := deriveKey(password, hash[:saltSize])
	return subtle.ConstantTimeCompare(key, hash[saltSize:]) == 1
}

// signingKey is the database secret, or a per-server key when the server
// was started without one.
func (s *Server) signingKey() []byte {
	if s.secret != "" {
		return []byte(s.secret)
	}
	return s.fallbackKey
}

// IssueToken returns an auth token for uid signed the way the password login
// endpoint signs them. The data endpoints accept it in place of the secret.
func (s *Server) IssueToken(uid, provider string) (string, error) {
	claims := jwt.MapClaims{
		"v":   0,
		"iat": time.Now().Unix(),
		"d": map[string]any{
			"uid":      uid,
			"provider": provider,
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey())
}

// verifyToken reports whether token was issued by this server.
func (s *Server) verifyToken(token string) bool {
	parsed, err := jwt.Parse(token, func(*jwt.Token) (any, error) {
		return s.signingKey(), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return false
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return false
	}
	d, ok := claims["d"].(map[string]any)
	if !ok {
		return false
	}
	uid, _ := d["uid"].(string)
	return uid != ""
}
