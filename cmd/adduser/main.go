// adduser creates an account directly in the database, for seeding
// environments without going through the signup endpoint.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/expense-report/backend/internal/config"
	"github.com/expense-report/backend/internal/db"
	"github.com/expense-report/backend/internal/model"
	"github.com/expense-report/backend/internal/service"
	"github.com/gin-gonic/gin/binding"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"golang.org/x/term"
)

type options struct {
	username     string
	email        string
	password     string
	profileImage string
}

type userCreator interface {
	Create(ctx context.Context, username, email, rawPassword, profileImage string) (*model.User, error)
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	opts, err := parseArgs(args, os.Stderr)
	if err != nil {
		return err
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	cfg := config.Load()

	ctx := context.Background()
	pool, err := db.NewPostgresPool(ctx, cfg.Postgres)
	if err != nil {
		return err
	}
	defer pool.Close()

	repo := db.NewPostgres(pool)
	if err := repo.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}

	// No tokens are issued here, so the user service runs without a token service.
	users := service.NewUserService(repo, nil)
	return createUser(ctx, users, opts, os.Stdin, os.Stdout)
}

func parseArgs(args []string, stderr io.Writer) (options, error) {
	var opts options

	fs := pflag.NewFlagSet("adduser", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVarP(&opts.username, "username", "u", "", "display name (3-50 characters)")
	fs.StringVarP(&opts.email, "email", "e", "", "login email, must be unique")
	fs.StringVarP(&opts.password, "password", "p", "", "password (prompted when omitted)")
	fs.StringVar(&opts.profileImage, "profile-image", "", "optional profile image reference")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	var missing []string
	if strings.TrimSpace(opts.username) == "" {
		missing = append(missing, "username")
	}
	if strings.TrimSpace(opts.email) == "" {
		missing = append(missing, "email")
	}
	if len(missing) > 0 {
		fmt.Fprintln(stderr, "Usage: adduser --username <name> --email <email> [--password <password>] [--profile-image <ref>]")
		fs.PrintDefaults()
		return opts, fmt.Errorf("missing required flags: %s", strings.Join(missing, ", "))
	}
	return opts, nil
}

func createUser(ctx context.Context, users userCreator, opts options, stdin io.Reader, stdout io.Writer) error {
	password := opts.password
	if password == "" {
		fmt.Fprint(stdout, "Password: ")
		var err error
		password, err = readPassword(stdin)
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		fmt.Fprintln(stdout)
	}

	req := model.SignupRequest{
		Username:     strings.TrimSpace(opts.username),
		Email:        strings.TrimSpace(opts.email),
		Password:     password,
		ProfileImage: opts.profileImage,
	}
	// signup 엔드포인트와 같은 binding 규칙 적용
	if err := binding.Validator.ValidateStruct(&req); err != nil {
		return fmt.Errorf("invalid account details: %w", err)
	}

	user, err := users.Create(ctx, req.Username, req.Email, req.Password, req.ProfileImage)
	if err != nil {
		if errors.Is(err, service.ErrConflict) {
			return fmt.Errorf("user with email %s already exists", opts.email)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	fmt.Fprintf(stdout, "User %s created with ID %s\n", user.Username, user.ID)
	return nil
}

func readPassword(stdin io.Reader) (string, error) {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	// 파이프/테스트 입력
	scanner := bufio.NewScanner(stdin)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
