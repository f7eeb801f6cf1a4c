// init_admin crea el administrador inicial sin pasar por HTTP.
//
// Uso: go run ./cmd/init_admin [-login admin] [-name "System Administrator"]
// Si stdin es una terminal pide la contraseña sin eco; si no, usa BOOTSTRAP_ADMIN_PASSWORD.
// Termina con código 2 si ya existe un administrador.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/jhoicas/paytrack-api/internal/application/auth"
	"github.com/jhoicas/paytrack-api/internal/domain"
	"github.com/jhoicas/paytrack-api/internal/infrastructure/store"
	"github.com/jhoicas/paytrack-api/pkg/config"
	"github.com/jhoicas/paytrack-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}

	loginID := flag.String("login", cfg.Bootstrap.LoginID, "login id del administrador")
	name := flag.String("name", cfg.Bootstrap.Name, "nombre visible")
	flag.Parse()

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "init_admin"})

	password := cfg.Bootstrap.Password
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err = promptPassword()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Leer contraseña: %v\n", err)
			os.Exit(1)
		}
	}
	if len(password) < auth.MinPasswordLength {
		fmt.Fprintf(os.Stderr, "La contraseña debe tener al menos %d caracteres\n", auth.MinPasswordLength)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	st, err := store.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacén")
	}
	defer st.Close()

	uc := auth.NewAuthUseCase(st.Users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, auth.WithBootstrap(auth.BootstrapConfig{
		LoginID:  strings.TrimSpace(*loginID),
		Password: password,
		Name:     strings.TrimSpace(*name),
	}))

	out, err := uc.BootstrapAdmin(ctx)
	if errors.Is(err, domain.ErrAdminExists) {
		fmt.Fprintln(os.Stderr, "Ya existe un administrador; no se creó otro.")
		st.Close()
		os.Exit(2)
	}
	if err != nil {
		log.Error().Err(err).Msg("crear administrador")
		st.Close()
		os.Exit(1)
	}
	fmt.Printf("Administrador creado: %s\n", out.LoginID)
}

func promptPassword() (string, error) {
	fd := int(os.Stdin.Fd())
	fmt.Fprint(os.Stderr, "Contraseña: ")
	first, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	fmt.Fprint(os.Stderr, "Repetir contraseña: ")
	second, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	if string(first) != string(second) {
		return "", errors.New("las contraseñas no coinciden")
	}
	return string(first), nil
}
