package bootstrap

import (
	"context"
	"errors"
	"testing"

	userstore "github.com/dalemusser/stratahr/internal/app/store/users"
	"github.com/dalemusser/stratahr/internal/testutil"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

func TestConnectDB_Unconfigured(t *testing.T) {
	deps, err := ConnectDB(context.Background(), &config.CoreConfig{}, AppConfig{DirectoryBackend: "supabase"}, zap.NewNop())
	if err != nil {
		t.Fatalf("ConnectDB() error = %v", err)
	}
	if deps.Directory != nil {
		t.Errorf("Directory = %T, want nil", deps.Directory)
	}
}

func TestConnectDB_Supabase(t *testing.T) {
	deps, err := ConnectDB(context.Background(), &config.CoreConfig{}, validAppConfig(), zap.NewNop())
	if err != nil {
		t.Fatalf("ConnectDB() error = %v", err)
	}
	if _, ok := deps.Directory.(*userstore.SupabaseStore); !ok {
		t.Errorf("Directory = %T, want *userstore.SupabaseStore", deps.Directory)
	}
}

func TestConnectDB_Postgres(t *testing.T) {
	cfg := validAppConfig()
	cfg.DirectoryBackend = "postgres"
	cfg.DirectoryURL = "postgres://hr@localhost:5432/hr?sslmode=disable"

	deps, err := ConnectDB(context.Background(), &config.CoreConfig{}, cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("ConnectDB() error = %v", err)
	}
	if _, ok := deps.Directory.(*userstore.PostgresStore); !ok {
		t.Errorf("Directory = %T, want *userstore.PostgresStore", deps.Directory)
	}
	if deps.SQLDB == nil {
		t.Fatal("SQLDB is nil")
	}
	if err := Shutdown(context.Background(), &config.CoreConfig{}, cfg, deps, zap.NewNop()); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}

func TestStartup_ToleratesUnreachableDirectory(t *testing.T) {
	deps := DBDeps{Directory: testutil.NewStubDirectory().FailPing(errors.New("down"))}
	if err := Startup(context.Background(), &config.CoreConfig{}, validAppConfig(), deps, zap.NewNop()); err != nil {
		t.Errorf("Startup() error = %v, want nil", err)
	}
	if err := Startup(context.Background(), &config.CoreConfig{}, validAppConfig(), DBDeps{}, zap.NewNop()); err != nil {
		t.Errorf("Startup() without directory error = %v, want nil", err)
	}
}

func TestShutdown_Empty(t *testing.T) {
	if err := Shutdown(context.Background(), &config.CoreConfig{}, AppConfig{}, DBDeps{}, zap.NewNop()); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}
