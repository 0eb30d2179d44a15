package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/ledger/internal/api"
	"github.com/wonny/ledger/internal/overlay"
	"github.com/wonny/ledger/internal/scheduler"
	"github.com/wonny/ledger/internal/scheduler/jobs"
	"github.com/wonny/ledger/pkg/logger"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "API 서버 시작",
	Long: `대시보드와 REST API 서버를 시작합니다.

이 명령어는:
- 회사 문서 로드 (파일 또는 URL, Redis 캐시)
- HTTP API 및 대시보드 제공
- 오버레이 웹소켓 제공
- 주기적 문서 갱신 (RELOAD_SCHEDULE)

Endpoints:
  GET  /                                - Dashboard
  GET  /health                          - Health check
  GET  /metrics                         - Prometheus metrics
  GET  /api/companies                   - 필터/정렬된 회사 목록
  GET  /api/companies/{ticker}          - 회사 레코드
  GET  /api/companies/{ticker}/card     - 스코어카드
  POST /api/sort/toggle                 - 정렬 상태 전이
  POST /api/reload                      - 문서 재로딩
  GET  /ws/overlay                      - 오버레이 웹소켓

Example:
  go run ./cmd/ledger serve
  go run ./cmd/ledger serve --port 8080`,
	RunE: runServe,
}

var (
	servePort string
)

func init() {
	rootCmd.AddCommand(serveCmd)

	// Flags
	serveCmd.Flags().StringVar(&servePort, "port", "", "API 서버 포트 (기본 PORT)")
}

func runServe(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Ledger API Server ===")

	// 1. Load config
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Override port if flag is set
	if servePort != "" {
		cfg.Port = servePort
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	log.WithFields(map[string]interface{}{
		"port":   cfg.Port,
		"env":    cfg.Env,
		"source": cfg.Data.Source,
	}).Info("Initializing API server")

	// 3. Load document (redis cache, http client, source, store)
	rt, err := bootstrap(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}
	defer rt.Close()

	log.WithField("companies", rt.store.Len()).Info("Document loaded")

	// 4. Overlay hub, refreshed on every reload
	hub := overlay.NewHub(rt.store, log)
	rt.refresher.OnReload(hub.Broadcast)

	// 5. Scheduler
	sched := scheduler.New(log)
	if cfg.Data.ReloadSchedule != "" {
		job := jobs.NewDatasetReloadJob(rt.refresher, cfg.Data.ReloadSchedule, log)
		if err := sched.AddJob(job); err != nil {
			return fmt.Errorf("schedule reload: %w", err)
		}
		sched.Start()
		defer sched.Stop()
	} else {
		log.Info("Scheduled reload disabled")
	}

	// 6. Create router and server
	router := api.NewRouter(cfg, api.Deps{
		Store:     rt.store,
		Refresher: rt.refresher,
		Overlay:   hub,
	}, log)
	server := api.New(cfg, log, router)

	// 7. Start server with graceful shutdown
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	log.Info("API server started successfully")
	fmt.Printf("\n✅ Server running on http://localhost:%s\n", cfg.Port)
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case <-quit:
	case err := <-errCh:
		return err
	}

	log.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
