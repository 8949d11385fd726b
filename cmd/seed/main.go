// seed crea las cuentas demo (un associate y un manager de la tienda STORE001)
// pasando por el caso de uso de registro, con el mismo hashing y formato de id
// que la API. Es idempotente: las cuentas que ya existen se omiten.
//
// Uso: go run ./cmd/seed
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/shelfmind/shelfmind-api/internal/application/auth"
	"github.com/shelfmind/shelfmind-api/internal/application/dto"
	"github.com/shelfmind/shelfmind-api/internal/domain"
	"github.com/shelfmind/shelfmind-api/internal/infrastructure/postgres"
	"github.com/shelfmind/shelfmind-api/pkg/config"
	pkgjwt "github.com/shelfmind/shelfmind-api/pkg/jwt"
	"github.com/shelfmind/shelfmind-api/pkg/logger"
	"github.com/shelfmind/shelfmind-api/pkg/password"
)

var demoUsers = []dto.RegisterRequest{
	{
		Email:     "associate@demo.com",
		Password:  "demo123",
		Name:      "Alex Johnson",
		Role:      "associate",
		StoreID:   "STORE001",
		StoreName: "Downtown ShelfMind Store",
	},
	{
		Email:     "manager@demo.com",
		Password:  "demo456",
		Name:      "Sarah Williams",
		Role:      "manager",
		StoreID:   "STORE001",
		StoreName: "Downtown ShelfMind Store",
	},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	secret := cfg.JWT.Secret
	if secret == "" {
		// El seed no emite tokens que alguien vaya a usar; un secreto
		// de relleno basta cuando JWT_SECRET no está configurado.
		secret = "seed-only-secret"
	}
	codec, err := pkgjwt.NewCodec(secret, cfg.JWT.Issuer, time.Duration(cfg.JWT.Expiration)*time.Minute)
	if err != nil {
		log.Fatal().Err(err).Msg("codec JWT")
	}

	ctx := context.Background()

	if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migraciones de base de datos")
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	authUC := auth.NewAuthUseCase(postgres.NewUserRepository(pool), password.New(), codec)

	created, skipped := 0, 0
	for _, in := range demoUsers {
		out, err := authUC.Register(ctx, in)
		switch {
		case err == nil:
			created++
			log.Info().
				Str("email", in.Email).
				Str("role", in.Role).
				Str("user_id", out.User.ID).
				Msg("cuenta demo creada")
		case errors.Is(err, domain.ErrEmailAlreadyExists):
			skipped++
			log.Info().Str("email", in.Email).Msg("cuenta demo ya existe, omitida")
		default:
			log.Fatal().Err(err).Str("email", in.Email).Msg("crear cuenta demo")
		}
	}

	log.Info().Int("creadas", created).Int("omitidas", skipped).Msg("seed finalizado")

	fmt.Println("Credenciales demo:")
	for _, u := range demoUsers {
		fmt.Printf("  %-9s %s / %s\n", u.Role, u.Email, u.Password)
	}
}
