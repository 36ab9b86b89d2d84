package crm

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"

	"github.com/guarani-living/leads-api/internal/application/settings"
	"github.com/guarani-living/leads-api/internal/domain"
	"github.com/guarani-living/leads-api/pkg/config"
	"github.com/guarani-living/leads-api/pkg/jwt"
)

const sessionIssuer = "guarani-crm"

// Session capa de sesión del tablero: una contraseña compartida y un token
// firmado con vencimiento a 24 horas persistido en el store local. Verifica
// con bcrypt si hay hash configurado; si no, compara la contraseña plana en
// tiempo constante.
type Session struct {
	cfg   config.CRMConfig
	store *settings.Store
}

// NewSession construye la capa de sesión.
func NewSession(cfg config.CRMConfig, store *settings.Store) *Session {
	if cfg.SessionHours <= 0 {
		cfg.SessionHours = 24
	}
	return &Session{cfg: cfg, store: store}
}

// Login verifica la contraseña compartida y, si coincide, persiste un token
// de sesión nuevo. Devuelve ErrUnauthorized si no coincide o si no hay
// contraseña configurada.
func (s *Session) Login(password string) error {
	if !s.passwordOK(password) {
		return domain.ErrUnauthorized
	}
	token, err := jwt.Generate(s.cfg.JWTSecret, sessionIssuer, s.cfg.SessionHours)
	if err != nil {
		return err
	}
	return s.store.SetSessionToken(token)
}

// Valid indica si hay una sesión persistida vigente.
func (s *Session) Valid() bool {
	token := s.store.SessionToken()
	if token == "" {
		return false
	}
	return jwt.Validate(s.cfg.JWTSecret, token) == nil
}

// Logout descarta la sesión persistida.
func (s *Session) Logout() error {
	return s.store.ClearSession()
}

func (s *Session) passwordOK(password string) bool {
	if s.cfg.PasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(s.cfg.PasswordHash), []byte(password)) == nil
	}
	if s.cfg.Password == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(s.cfg.Password), []byte(password)) == 1
}
