package app_test

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/Gunvolt24/xmlorders/config"
	"github.com/Gunvolt24/xmlorders/internal/app"
	"github.com/Gunvolt24/xmlorders/internal/usecase"
)

// логгер-заглушка
type nopLogger struct{}

func (nopLogger) Infof(context.Context, string, ...any)  {}
func (nopLogger) Warnf(context.Context, string, ...any)  {}
func (nopLogger) Errorf(context.Context, string, ...any) {}

func TestAppRun_GracefulShutdown(t *testing.T) {
	// HTTP-сервер на случайном свободном порту
	srv := &http.Server{
		Addr:    "127.0.0.1:0",
		Handler: http.NewServeMux(),
	}

	a := &app.App{
		Logger:     nopLogger{},
		HTTPServer: srv,
	}

	// Запуск и быстрая остановка
	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	if err := a.Run(ctx); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
}

func TestAppRun_ListenError(t *testing.T) {
	// занимаем порт заранее — сервер не сможет стартовать
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	a := &app.App{
		Logger:     nopLogger{},
		HTTPServer: &http.Server{Addr: ln.Addr().String(), Handler: http.NewServeMux()},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := a.Run(ctx); err == nil {
		t.Fatal("expected listen error")
	}
}

func TestNewApp_ServerSettings(t *testing.T) {
	cfg, err := config.LoadWithPrefix("XMLORDERS_TEST_NEWAPP")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	cfg.HTTP.Addr = ":18080"
	cfg.HTTP.GinMode = "test"

	c := &app.Components{
		Logger: nopLogger{},
		Reader: usecase.NewOrderReadService(nil, nil, nopLogger{}),
	}
	a := app.NewApp(context.Background(), &cfg, c)

	if a.HTTPServer.Addr != ":18080" {
		t.Fatalf("addr=%q", a.HTTPServer.Addr)
	}
	if a.HTTPServer.ReadHeaderTimeout != cfg.HTTP.ReadHeaderTimeout {
		t.Fatalf("read header timeout not applied")
	}
	if a.HTTPServer.Handler == nil {
		t.Fatal("router must be set")
	}
}
