// Package password implementa el hashing de credenciales y su verificación.
//
// Conviven tres formatos de secreto porque la base de usuarios fue migrada dos
// veces sin rehashear registros existentes: sha256 con salt fijo (el esquema
// original), bcrypt (primera migración) y argon2id (esquema actual para hashes
// nuevos). Verify despacha según el formato reconocido del secreto almacenado.
package password

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// legacySalt salt fijo del esquema sha256 original. No se usa para hashes
// nuevos; solo para verificar registros anteriores a la primera migración.
const legacySalt = "shelfmind_salt"

// Parámetros argon2id para hashes nuevos (RFC 9106, perfil de memoria baja).
const (
	argonTime    = 1
	argonMemory  = 64 * 1024 // KiB
	argonThreads = 4
	argonKeyLen  = 32
	argonSaltLen = 16
)

// Scheme identifica el formato de un secreto almacenado.
type Scheme int

const (
	SchemeUnknown Scheme = iota
	SchemeArgon2id
	SchemeBcrypt
	SchemeLegacySHA256
)

// Hasher genera y verifica secretos de credencial.
type Hasher struct {
	time    uint32
	memory  uint32
	threads uint8
}

// New construye un Hasher con los parámetros argon2id por defecto.
func New() *Hasher {
	return &Hasher{time: argonTime, memory: argonMemory, threads: argonThreads}
}

// Hash deriva un secreto argon2id en formato PHC a partir del password en
// texto plano. El salt es aleatorio por registro.
func (h *Hasher) Hash(plaintext string) (string, error) {
	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generar salt: %w", err)
	}
	key := argon2.IDKey([]byte(plaintext), salt, h.time, h.memory, h.threads, argonKeyLen)
	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, h.memory, h.time, h.threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)
	return encoded, nil
}

// Verify comprueba el password contra el secreto almacenado, despachando por
// esquema. Nunca devuelve error: un secreto malformado o de formato
// desconocido simplemente no verifica.
func (h *Hasher) Verify(plaintext, secret string) bool {
	switch ClassifySecret(secret) {
	case SchemeArgon2id:
		return verifyArgon2id(plaintext, secret)
	case SchemeBcrypt:
		return bcrypt.CompareHashAndPassword([]byte(secret), []byte(plaintext)) == nil
	case SchemeLegacySHA256:
		return verifyLegacy(plaintext, secret)
	default:
		return false
	}
}

// NeedsRehash indica si el secreto usa un esquema distinto al actual
// (argon2id). Pensado para una futura política de rehash perezoso en login;
// hoy ambos esquemas antiguos siguen siendo verificables indefinidamente.
func NeedsRehash(secret string) bool {
	return ClassifySecret(secret) != SchemeArgon2id
}

// ClassifySecret reconoce el esquema de un secreto almacenado por su marcador
// estructural. El despacho vive aquí y no esparcido por los call sites.
func ClassifySecret(secret string) Scheme {
	switch {
	case strings.HasPrefix(secret, "$argon2id$"):
		return SchemeArgon2id
	case strings.HasPrefix(secret, "$2a$"),
		strings.HasPrefix(secret, "$2b$"),
		strings.HasPrefix(secret, "$2y$"):
		return SchemeBcrypt
	case isHexDigest(secret):
		return SchemeLegacySHA256
	default:
		return SchemeUnknown
	}
}

func verifyArgon2id(plaintext, secret string) bool {
	// Formato PHC: $argon2id$v=19$m=65536,t=1,p=4$<salt>$<key>
	parts := strings.Split(secret, "$")
	if len(parts) != 6 {
		return false
	}
	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return false
	}
	var memory, time uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return false
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return false
	}
	derived := argon2.IDKey([]byte(plaintext), salt, time, memory, threads, uint32(len(key)))
	return subtle.ConstantTimeCompare(derived, key) == 1
}

func verifyLegacy(plaintext, secret string) bool {
	sum := sha256.Sum256([]byte(plaintext + legacySalt))
	digest := hex.EncodeToString(sum[:])
	return subtle.ConstantTimeCompare([]byte(digest), []byte(strings.ToLower(secret))) == 1
}

// LegacyHash calcula el digest sha256 del esquema original. Existe para
// seeds y tests de compatibilidad; nunca debe usarse para hashes nuevos.
func LegacyHash(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext + legacySalt))
	return hex.EncodeToString(sum[:])
}

func isHexDigest(s string) bool {
	if len(s) != sha256.Size*2 {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}
