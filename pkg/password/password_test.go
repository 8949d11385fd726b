package password_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/shelfmind/shelfmind-api/pkg/password"
)

// ──────────────────────────────────────────────────────────────────────────────
// Esquema actual: argon2id
// ──────────────────────────────────────────────────────────────────────────────

func TestHash_GeneraArgon2idVerificable(t *testing.T) {
	h := password.New()

	secret, err := h.Hash("abc123")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(secret, "$argon2id$"),
		"los hashes nuevos deben ser argon2id en formato PHC")

	assert.True(t, h.Verify("abc123", secret), "el password original debe verificar")
	assert.False(t, h.Verify("abc124", secret), "un password distinto no debe verificar")
}

func TestHash_SaltAleatorioPorRegistro(t *testing.T) {
	h := password.New()

	s1, err := h.Hash("mismo-password1")
	require.NoError(t, err)
	s2, err := h.Hash("mismo-password1")
	require.NoError(t, err)

	assert.NotEqual(t, s1, s2,
		"dos hashes del mismo password no deben ser comparables por ciphertext")
	assert.True(t, h.Verify("mismo-password1", s1))
	assert.True(t, h.Verify("mismo-password1", s2))
}

// ──────────────────────────────────────────────────────────────────────────────
// Esquemas migrados: bcrypt y sha256 legacy
// ──────────────────────────────────────────────────────────────────────────────

func TestVerify_SecretBcryptPreMigracion(t *testing.T) {
	h := password.New()
	legacy, err := bcrypt.GenerateFromPassword([]byte("abc123"), bcrypt.MinCost)
	require.NoError(t, err)

	assert.True(t, h.Verify("abc123", string(legacy)),
		"los registros bcrypt anteriores a la migración deben seguir verificando")
	assert.False(t, h.Verify("wrong", string(legacy)))
}

func TestVerify_SecretSHA256Legacy(t *testing.T) {
	h := password.New()
	legacy := password.LegacyHash("abc123")

	assert.True(t, h.Verify("abc123", legacy),
		"los registros sha256 del esquema original deben seguir verificando")
	assert.False(t, h.Verify("abc124", legacy))
}

// ──────────────────────────────────────────────────────────────────────────────
// Secretos malformados: Verify nunca falla, solo devuelve false
// ──────────────────────────────────────────────────────────────────────────────

func TestVerify_SecretosMalformadosNoVerifican(t *testing.T) {
	h := password.New()

	cases := []string{
		"",
		"plaintext-guardado-por-error",
		"$argon2id$",
		"$argon2id$v=19$m=65536,t=1,p=4$salt-no-base64!!$key",
		"$argon2id$v=18$m=65536,t=1,p=4$c2FsdA$a2V5", // versión no soportada
		"$2z$10$noesbcryptreal",
		"deadbeef", // hex pero no es un digest sha256 completo
		strings.Repeat("zz", 32), // longitud de digest pero no hex
	}
	for _, secret := range cases {
		assert.False(t, h.Verify("abc123", secret),
			"secreto %q no debe verificar ni provocar pánico", secret)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Clasificación y rehash
// ──────────────────────────────────────────────────────────────────────────────

func TestClassifySecret(t *testing.T) {
	h := password.New()
	argon, err := h.Hash("abc123")
	require.NoError(t, err)
	bc, err := bcrypt.GenerateFromPassword([]byte("abc123"), bcrypt.MinCost)
	require.NoError(t, err)

	assert.Equal(t, password.SchemeArgon2id, password.ClassifySecret(argon))
	assert.Equal(t, password.SchemeBcrypt, password.ClassifySecret(string(bc)))
	assert.Equal(t, password.SchemeLegacySHA256, password.ClassifySecret(password.LegacyHash("abc123")))
	assert.Equal(t, password.SchemeUnknown, password.ClassifySecret("???"))
}

func TestNeedsRehash(t *testing.T) {
	h := password.New()
	argon, err := h.Hash("abc123")
	require.NoError(t, err)

	assert.False(t, password.NeedsRehash(argon), "argon2id es el esquema actual")
	assert.True(t, password.NeedsRehash(password.LegacyHash("abc123")))

	bc, err := bcrypt.GenerateFromPassword([]byte("abc123"), bcrypt.MinCost)
	require.NoError(t, err)
	assert.True(t, password.NeedsRehash(string(bc)))
}
