package settings

import (
	"fmt"
	"os"
	"sync"

	"github.com/spf13/viper"
)

// Claves del archivo local de overrides.
const (
	keyEndpointURL  = "endpoint_url"
	keySessionToken = "session_token"
)

// Store es el dueño de la configuración local persistida del lado cliente:
// el override de la URL del backend y el token de sesión del CRM. Reemplaza
// las lecturas ambientales de localStorage del sitio original por un único
// servicio con operaciones leer-modificar-persistir.
type Store struct {
	mu   sync.Mutex
	v    *viper.Viper
	path string
}

// NewStore crea el store sobre un archivo JSON local. Si el archivo no
// existe todavía, el store arranca vacío y lo crea en la primera escritura.
func NewStore(path string) (*Store, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		// Archivo presente pero ilegible: mejor fallar acá que pisarlo en la
		// próxima escritura. Si directamente no existe, el store arranca vacío.
		if _, statErr := os.Stat(path); statErr == nil {
			return nil, fmt.Errorf("leer settings %s: %w", path, err)
		}
	}
	return &Store{v: v, path: path}, nil
}

// EndpointURL devuelve el override local de la URL del backend ("" si no hay).
func (s *Store) EndpointURL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v.GetString(keyEndpointURL)
}

// SetEndpointURL persiste el override local de la URL del backend.
func (s *Store) SetEndpointURL(url string) error {
	return s.write(keyEndpointURL, url)
}

// SessionToken devuelve el token de sesión persistido ("" si no hay sesión).
func (s *Store) SessionToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v.GetString(keySessionToken)
}

// SetSessionToken persiste el token de sesión del CRM.
func (s *Store) SetSessionToken(token string) error {
	return s.write(keySessionToken, token)
}

// ClearSession borra el token de sesión persistido.
func (s *Store) ClearSession() error {
	return s.write(keySessionToken, "")
}

func (s *Store) write(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.v.Set(key, value)
	if err := s.v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("persistir settings %s: %w", s.path, err)
	}
	return nil
}
