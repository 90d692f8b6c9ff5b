package cmd

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"syscall"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"github.com/templui/homerender/internal/config"
	"github.com/templui/homerender/internal/db"
)

// Rendered images and uploaded plans land under static/ while the server
// runs; rebuilding on them would restart it mid-request.
var devExcludeDirs = []string{"bin", "node_modules", "tmp", "data", "static/renderings", "static/plans"}

func DevCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dev",
		Short: "Migrate the database, then run the server under air with hot reload",
		Long: "Applies pending migrations, builds bin/manage and hands over to air. " +
			"air proxies PORT and runs the server on PORT+10, rebuilding the stylesheet on every change.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDev(cmd.Context())
		},
	}
}

func runDev(ctx context.Context) error {
	airPath, err := exec.LookPath("air")
	if err != nil {
		return fmt.Errorf("air not found, install it with: go install github.com/air-verse/air@latest")
	}

	var port int
	err = withDB(func(cfg *config.Config, database *sqlx.DB) error {
		p, convErr := strconv.Atoi(cfg.Port)
		if convErr != nil {
			return fmt.Errorf("PORT must be numeric for the dev proxy: %w", convErr)
		}
		port = p
		return db.RunMigrations(ctx, database.DB, cfg.DBDriver)
	})
	if err != nil {
		return err
	}

	fmt.Println("Building bin/manage...")
	build := exec.CommandContext(ctx, "go", "build", "-o", "bin/manage", "./cmd/manage")
	build.Stdout = os.Stdout
	build.Stderr = os.Stderr
	if err := build.Run(); err != nil {
		return fmt.Errorf("failed to build manage: %w", err)
	}

	appPort := strconv.Itoa(port + 10)
	airArgs := []string{
		"air",
		"-c", "/dev/null",
		"-root", ".",
		"-build.cmd", "./bin/manage css && go build -o ./tmp/server ./cmd/server",
		"-build.bin", "./tmp/server",
		"-build.delay", "100",
		"-build.exclude_dir", strings.Join(devExcludeDirs, ","),
		"-build.exclude_regex", "_test.go$|app\\.css$",
		"-build.include_ext", "go,css,sql",
		"-build.kill_delay", "500ms",
		"-build.send_interrupt", "true",
		"-proxy.enabled", "true",
		"-proxy.proxy_port", strconv.Itoa(port),
		"-proxy.app_port", appPort,
	}

	fmt.Printf("Serving on http://localhost:%d (server on %s)\n", port, appPort)
	return syscall.Exec(airPath, airArgs, append(os.Environ(), "PORT="+appPort))
}
