// Команда adduser регистрирует пользователя напрямую в настроенном хранилище.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	"expensetracker/internal/adapters/services"
	"expensetracker/internal/app"
	"expensetracker/internal/config"
	"expensetracker/internal/db"
	"expensetracker/pkg/logger"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger    = "failed to initialize logger"
	ErrParseFlags    = "failed to parse flags"
	ErrLoadConfig    = "failed to load configuration"
	ErrInitDatabase  = "failed to initialize database"
	ErrReadPassword  = "failed to read password"
	ErrRegisterUser  = "failed to register user"
	ErrEmptyPassword = "password is empty"
)

const (
	passwordPrompt = "Password: "
	msgRegistered  = "user registered: id=%s email=%s\n"
)

// passwordSource читает пароль с терминала без эха или первой строкой из потока.
type passwordSource struct {
	in         io.Reader
	prompt     io.Writer
	fd         int
	isTerminal func(fd int) bool
	readSecret func(fd int) ([]byte, error)
}

func stdinPasswordSource() passwordSource {
	return passwordSource{
		in:         os.Stdin,
		prompt:     os.Stderr,
		fd:         int(os.Stdin.Fd()), //nolint:gosec
		isTerminal: term.IsTerminal,
		readSecret: term.ReadPassword,
	}
}

func (s passwordSource) read() (string, error) {
	if s.isTerminal(s.fd) {
		if _, err := fmt.Fprint(s.prompt, passwordPrompt); err != nil {
			return "", fmt.Errorf("%s: %w", ErrReadPassword, err)
		}
		secret, err := s.readSecret(s.fd)
		_, _ = fmt.Fprintln(s.prompt)
		if err != nil {
			return "", fmt.Errorf("%s: %w", ErrReadPassword, err)
		}
		return string(secret), nil
	}

	raw, err := io.ReadAll(io.LimitReader(s.in, 4096))
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrReadPassword, err)
	}
	line, _, _ := strings.Cut(string(raw), "\n")
	return strings.TrimRight(line, "\r"), nil
}

func run(ctx context.Context, args []string, passwords passwordSource, stdout io.Writer) error {
	fs := flag.NewFlagSet("adduser", flag.ContinueOnError)
	name := fs.String("name", "", "user name")
	email := fs.String("email", "", "user email")
	password := fs.String("password", "", "user password (prompted when omitted)")
	envFile := fs.String("env", config.DefaultEnvFile, "optional .env file")
	fs.Usage = func() {
		_, _ = fmt.Fprintf(fs.Output(), "Usage: adduser -name NAME -email EMAIL [-password PASSWORD]\n\n")
		fs.PrintDefaults()
		_, _ = fmt.Fprintf(fs.Output(), "\n%s", config.Usage())
	}
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%s: %w", ErrParseFlags, err)
	}

	if *password == "" {
		secret, err := passwords.read()
		if err != nil {
			return err
		}
		if secret == "" {
			return errors.New(ErrEmptyPassword)
		}
		*password = secret
	}

	cfg, err := config.Load(ctx, *envFile)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrLoadConfig, err)
	}

	store, err := db.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrInitDatabase, err)
	}
	defer func() { _ = store.Close(ctx) }()

	factory := services.NewServiceFactory(cfg.JWT.SecretKey, cfg.JWT.AccessTokenTTL, cfg.JWT.BCryptCost)
	authUseCase := app.NewAuthUseCase(store.Users(), factory.PasswordService(), factory.TokenService())

	user, err := authUseCase.Register(ctx, *name, *email, *password)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrRegisterUser, err)
	}

	if _, err := fmt.Fprintf(stdout, msgRegistered, user.ID, user.Email); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

func main() {
	log, err := logger.NewLogger(logger.Development, "warn")
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}
	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	if err := run(ctx, os.Args[1:], stdinPasswordSource(), os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Error(ctx, ErrRegisterUser, zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
	_ = log.Sync()
}
