package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/roommates/core/internal/adapters/randomuser"
	"github.com/roommates/core/internal/adapters/repository"
	"github.com/roommates/core/internal/application/services"
	"github.com/roommates/core/internal/infrastructure/config"
	"github.com/roommates/core/internal/infrastructure/logger"
	"github.com/roommates/core/internal/infrastructure/server"
)

// Version is set at build time with -ldflags
var Version = "1.0.0"

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the Roommates web server",
		Long:  "Start the Roommates web server with the home page and roommate API",
		Run: func(cmd *cobra.Command, args []string) {
			runServer()
		},
	}
}

// NewRoommateCommand creates the roommate command with subcommands
func NewRoommateCommand() *cobra.Command {
	roommateCmd := &cobra.Command{
		Use:   "roommate",
		Short: "Roommate commands",
		Long:  "Create and list roommates directly against the backing file",
	}

	roommateCmd.AddCommand(&cobra.Command{
		Use:   "create",
		Short: "Generate a roommate and append it to the backing file",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeFn, err := newRoommateService()
			if err != nil {
				return err
			}
			defer closeFn()

			roommate, err := svc.CreateRoommate(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), roommate)
		},
	})

	roommateCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Print every stored roommate as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeFn, err := newRoommateService()
			if err != nil {
				return err
			}
			defer closeFn()

			roommates, err := svc.ListRoommates(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), roommates)
		},
	})

	return roommateCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print Roommates version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "Roommates v%s\n", Version)
		},
	}
}

// NewRoommateServiceFromConfig wires the file store and the randomuser client
func NewRoommateServiceFromConfig(cfg *config.Config, fs afero.Fs, appLogger *logger.Logger) *services.RoommateService {
	repo := repository.NewFileRoommateRepository(
		fs,
		cfg.Store.Path,
		repository.WithSerializedWrites(cfg.Store.SerializeWrites),
	)
	generator := randomuser.NewClient(cfg.Upstream.URL, randomuser.WithTimeout(cfg.Upstream.Timeout))

	return services.NewRoommateService(
		repository.NewLoggingRoommateRepository(repo, repo.Path(), appLogger),
		generator,
		appLogger,
	)
}

func newRoommateService() (*services.RoommateService, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	svc := NewRoommateServiceFromConfig(cfg, afero.NewOsFs(), appLogger)
	return svc, func() { _ = appLogger.Close() }, nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func runServer() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Close()

	roommateService := NewRoommateServiceFromConfig(cfg, afero.NewOsFs(), appLogger)

	srv, err := server.New(cfg, roommateService, appLogger)
	if err != nil {
		appLogger.Fatalw("Failed to initialize server", "error", err)
	}

	if cfg.Store.SerializeWrites {
		appLogger.Infow("Store writes are serialized", "path", cfg.Store.Path)
	}

	appLogger.Infow("Starting Roommates server",
		"address", cfg.Server.Address(),
		"store_path", cfg.Store.Path,
		"environment", cfg.App.Environment,
	)

	go func() {
		if err := srv.Start(cfg.Server.Address()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatalw("Server failed to start", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Errorw("Server shutdown failed", "error", err)
	}
}
