package auth

import (
	"crypto/subtle"

	"github.com/jhoicas/mini-estoque/internal/application/dto"
	"github.com/jhoicas/mini-estoque/internal/domain"
	"github.com/jhoicas/mini-estoque/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// Credentials usuario y contraseña únicos de la aplicación.
type Credentials struct {
	User     string
	Password string
}

// AuthUseCase login del usuario único. No hay cuentas: se compara contra la configuración.
type AuthUseCase struct {
	creds  Credentials
	jwtCfg JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(creds Credentials, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{creds: creds, jwtCfg: jwtCfg}
}

// Login compara las credenciales y, si coinciden, emite un token de sesión.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	userOK := subtle.ConstantTimeCompare([]byte(in.Username), []byte(uc.creds.User)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(in.Password), []byte(uc.creds.Password)) == 1
	if !userOK || !passOK {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, in.Username, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, ExpiresIn: uc.jwtCfg.ExpMinutes * 60}, nil
}
