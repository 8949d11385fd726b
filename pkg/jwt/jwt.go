// Package jwt implementa el codec de tokens de acceso: emisión y verificación
// de JWT HS256 firmados con el secreto del servidor.
//
// El codec no toma decisiones de confianza más allá de la firma, la expiración
// y la presencia de claims obligatorios; rol y estado de la cuenta se validan
// en capas superiores.
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Errores tipados de verificación. El middleware los colapsa hacia afuera en
// una sola señal 401; internamente permiten loguear la causa concreta.
var (
	ErrExpired          = errors.New("jwt: token expirado")
	ErrInvalidSignature = errors.New("jwt: firma inválida o token malformado")
	ErrMalformedClaims  = errors.New("jwt: faltan claims obligatorios")
)

// Claims incluye los claims estándar JWT más los campos propios de la
// aplicación. Subject lleva el email; UserID el id interno; Role permite al
// middleware RBAC decidir sin consultar la DB.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Role   string `json:"role"` // "associate" | "manager"
}

// Codec emite y verifica tokens. Se construye una vez en el arranque con la
// configuración del proceso y es de solo lectura después.
type Codec struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewCodec construye el codec. El TTL por defecto de la aplicación es 24h
// (configurable vía JWT_EXPIRATION_MINUTES).
func NewCodec(secret, issuer string, ttl time.Duration) (*Codec, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	return &Codec{secret: []byte(secret), issuer: issuer, ttl: ttl}, nil
}

// Issue genera un token firmado con los claims {sub: email, user_id, role} y
// expiración now + TTL.
func (c *Codec) Issue(email, userID, role string) (string, error) {
	return c.IssueWithTTL(email, userID, role, c.ttl)
}

// IssueWithTTL genera un token con un TTL explícito. Un TTL negativo produce
// un token ya expirado (útil en tests).
func (c *Codec) IssueWithTTL(email, userID, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.issuer,
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: userID,
		Role:   role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("jwt: firmar token: %w", err)
	}
	return signed, nil
}

// Verify valida firma y expiración y devuelve los claims. La firma se
// comprueba antes de confiar en cualquier claim; solo se acepta HS256 para
// evitar ataques de confusión de algoritmo.
func (c *Codec) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return c.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, ErrInvalidSignature
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidSignature
	}
	if claims.Subject == "" || claims.UserID == "" {
		return nil, ErrMalformedClaims
	}
	return claims, nil
}
