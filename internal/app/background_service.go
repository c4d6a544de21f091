package app

import (
	"context"
	"errors"
)

// BackgroundService 以 ctx 控制生命周期的后台循环
type BackgroundService struct {
	name string
	run  func(ctx context.Context)
}

// NewBackgroundService 创建后台循环服务
func NewBackgroundService(name string, run func(ctx context.Context)) *BackgroundService {
	return &BackgroundService{name: name, run: run}
}

// Name 服务名称
func (s *BackgroundService) Name() string {
	if s == nil || s.name == "" {
		return "background"
	}
	return s.name
}

// Start 运行循环直至 ctx 结束
func (s *BackgroundService) Start(ctx context.Context) error {
	if s == nil || s.run == nil {
		return errors.New("background service not initialized")
	}
	s.run(ctx)
	<-ctx.Done()
	return nil
}

// Stop 循环随 ctx 退出，无需额外处理
func (s *BackgroundService) Stop(ctx context.Context) error {
	return nil
}
