package app

import (
	"context"
	"errors"

	"github.com/jewelbridge/internal/config"
	"github.com/jewelbridge/internal/provider"
	"github.com/jewelbridge/internal/router"
	"github.com/jewelbridge/internal/worker"
)

// BuildRunner 构建服务运行器
func BuildRunner(cfg *config.Config, mode string) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	container := provider.NewContainer(cfg)
	services, err := buildServices(cfg, mode, container)
	if err != nil {
		return nil, err
	}
	return NewRunner(services...), nil
}

func buildServices(cfg *config.Config, mode string, container *provider.Container) ([]Service, error) {
	var services []Service

	// 初始化 HTTP 服务，会话只存在于 API 进程内存中
	if mode == ModeAll || mode == ModeAPI {
		engine := router.SetupRouter(cfg, container)
		services = append(services, NewHTTPService(cfg.Server, engine))
		services = append(services, NewBackgroundService("session_janitor", container.SessionService.RunJanitor))
	}

	// 初始化 Worker 服务；队列关闭时仅运行预留过期扫描
	if mode == ModeAll || mode == ModeWorker {
		if cfg.Queue.Enabled {
			consumer := worker.NewConsumer(container)
			workerService, err := worker.NewService(&cfg.Queue, consumer)
			if err != nil {
				return nil, err
			}
			services = append(services, workerService)
		} else {
			visits := container.VisitRequestService
			services = append(services, NewBackgroundService("hold_sweeper", func(ctx context.Context) {
				worker.RunHoldSweep(ctx, visits, 0)
			}))
		}
	}

	// 事件发布
	if container.KafkaPublisher != nil && len(services) > 0 {
		services = append(services, container.KafkaPublisher)
	}

	if len(services) == 0 {
		return nil, errors.New("no services initialized (check mode and config)")
	}
	return services, nil
}

// Run 应用启动入口
func Run(opts Options) error {
	opts = normalizeOptions(opts)
	if opts.Config == nil {
		return errors.New("config is nil")
	}

	runner, err := BuildRunner(opts.Config, opts.Mode)
	if err != nil {
		return err
	}

	addr := opts.Config.Server.Host + ":" + opts.Config.Server.Port
	opts.Logger.Infow("app_start", "addr", addr, "mode", opts.Mode, "auth_provider", opts.Config.Auth.Provider)
	return RunWithOptions(runner, opts)
}
