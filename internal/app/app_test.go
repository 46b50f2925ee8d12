package app

import (
	"net"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mirrorlab/internal/config"
	"mirrorlab/internal/domain"
	"mirrorlab/internal/infra/logging"
)

func TestResolveVariant(t *testing.T) {
	cfg := config.Default()

	v, err := resolveVariant(cfg, domain.ServerA)
	require.NoError(t, err)
	assert.Equal(t, domain.ServerA, v)

	cfg.Server.Variant = "server-b"
	v, err = resolveVariant(cfg, domain.ServerA)
	require.NoError(t, err)
	assert.Equal(t, domain.ServerB, v)

	cfg.Server.Variant = "mirror-c"
	_, err = resolveVariant(cfg, domain.ServerA)
	assert.ErrorIs(t, err, domain.ErrUnknownVariant)

	cfg.Server.Variant = ""
	_, err = resolveVariant(cfg, domain.Variant{Status: 204, Body: "x"})
	assert.ErrorIs(t, err, domain.ErrBodyNotAllowed)
}

func TestEnsureLogDir(t *testing.T) {
	if err := ensureLogDir(""); err != nil {
		t.Fatalf("empty path should be noop: %v", err)
	}
	if err := ensureLogDir("app.log"); err != nil {
		t.Fatalf("relative file in current dir should be noop: %v", err)
	}

	dir := filepath.Join(t.TempDir(), "nested", "logs")
	if err := ensureLogDir(filepath.Join(dir, "echo.log")); err != nil {
		t.Fatalf("ensureLogDir failed: %v", err)
	}
	if st, err := os.Stat(dir); err != nil || !st.IsDir() {
		t.Fatalf("expected directory to be created, err=%v", err)
	}
}

func TestStartServer_GracefulShutdownOnSignal(t *testing.T) {
	logging.SetLoggerForTest(zerolog.Nop())

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	cfg := config.Default()
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = ":0"

	idleConnsClosed := make(chan struct{})
	go startServer(app, cfg, idleConnsClosed)

	time.Sleep(100 * time.Millisecond)
	if err := syscall.Kill(syscall.Getpid(), syscall.SIGTERM); err != nil {
		t.Fatalf("failed to send SIGTERM: %v", err)
	}

	select {
	case <-idleConnsClosed:
	case <-time.After(3 * time.Second):
		t.Fatalf("timed out waiting for graceful shutdown")
	}
}

func TestRun_UsesConfigAndShutsDown(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "cfg.yaml")
	err := os.WriteFile(cfgPath, []byte(`
server:
  host: "127.0.0.1"
  port: ":0"
  variant: "b"
  shutdown_timeout: 1s
logger:
  file: "`+filepath.Join(t.TempDir(), "logs", "echo.log")+`"
  level: "info"
  max_size_mb: 1
  max_backups: 1
  max_age_days: 1
`), 0o644)
	if err != nil {
		t.Fatalf("write cfg: %v", err)
	}
	t.Setenv("CONFIG_PATH", cfgPath)

	done := make(chan struct{})
	var runErr error
	go func() {
		runErr = Run(domain.ServerA)
		close(done)
	}()

	time.Sleep(200 * time.Millisecond)
	if err := syscall.Kill(syscall.Getpid(), syscall.SIGTERM); err != nil {
		t.Fatalf("signal run: %v", err)
	}

	select {
	case <-done:
		assert.NoError(t, runErr)
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for Run to exit")
	}
}

func busyPort(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })
	_, port, err := net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)
	return ":" + port
}

func TestStartServer_ReturnsListenError(t *testing.T) {
	logging.SetLoggerForTest(zerolog.Nop())

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	cfg := config.Default()
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = busyPort(t)

	idleConnsClosed := make(chan struct{})
	errc := make(chan error, 1)
	go func() { errc <- startServer(app, cfg, idleConnsClosed) }()

	select {
	case err := <-errc:
		require.Error(t, err)
		assert.Contains(t, err.Error(), cfg.Server.Port)
	case <-time.After(2 * time.Second):
		t.Fatalf("startServer kept running after listen failed")
	}

	select {
	case <-idleConnsClosed:
	default:
		t.Fatalf("expected idleConnsClosed to be closed")
	}
}

func TestRun_ReturnsErrorOnBusyPort(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "cfg.yaml")
	err := os.WriteFile(cfgPath, []byte("server:\n  host: \"127.0.0.1\"\n  port: \""+busyPort(t)+"\"\n"), 0o644)
	require.NoError(t, err)
	t.Setenv("CONFIG_PATH", cfgPath)

	errc := make(chan error, 1)
	go func() { errc <- Run(domain.ServerB) }()

	select {
	case err := <-errc:
		assert.Error(t, err)
	case <-time.After(3 * time.Second):
		t.Fatalf("Run kept running after listen failed")
	}
}
