package provider

import (
	"github.com/jewelbridge/internal/authz"
	"github.com/jewelbridge/internal/cache"
	"github.com/jewelbridge/internal/config"
	"github.com/jewelbridge/internal/events"
	"github.com/jewelbridge/internal/logger"
	"github.com/jewelbridge/internal/models"
	"github.com/jewelbridge/internal/queue"
	"github.com/jewelbridge/internal/repository"
	"github.com/jewelbridge/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config         *config.Config
	QueueClient    *queue.Client
	KafkaPublisher *events.KafkaPublisher

	// Repositories
	CatalogRepo      repository.CatalogRepository
	VisitRequestRepo repository.VisitRequestRepository
	AccountRepo      repository.AccountRepository
	DashboardRepo    repository.DashboardRepository

	// Services
	AuthzService        *authz.Service
	CatalogService      *service.CatalogService
	AuthProvider        service.AuthProvider
	SessionService      *service.SessionService
	VisitRequestService *service.VisitRequestService
	DashboardService    *service.DashboardService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	// 初始化事件发布
	var kafkaPublisher *events.KafkaPublisher
	if cfg.Kafka.Enabled {
		kp, err := events.NewKafkaPublisher(&cfg.Kafka)
		if err != nil {
			logger.Errorw("provider_init_kafka_publisher_failed", "error", err)
		} else {
			kafkaPublisher = kp
		}
	}

	c := &Container{
		Config:         cfg,
		QueueClient:    queueClient,
		KafkaPublisher: kafkaPublisher,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.CatalogRepo = repository.NewCatalogRepository(db)
	c.VisitRequestRepo = repository.NewVisitRequestRepository(db)
	c.AccountRepo = repository.NewAccountRepository(db)
	c.DashboardRepo = repository.NewDashboardRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.CatalogService = service.NewCatalogService(c.CatalogRepo, c.Config.Catalog)
	if err := c.CatalogService.Reload(); err != nil {
		logger.Errorw("provider_load_catalog_failed", "error", err)
		panic(err)
	}

	c.AuthProvider = service.NewAuthProvider(c.Config.Auth, c.AccountRepo)
	c.SessionService = service.NewSessionService(c.Config.SessionJWT, c.Config.Session, c.AuthProvider)
	c.VisitRequestService = service.NewVisitRequestService(c.VisitRequestRepo, c.Config.VisitRequest, c.holdScheduler(), c.publisher())
	c.DashboardService = service.NewDashboardService(c.DashboardRepo, c.CatalogService)
}

func (c *Container) holdScheduler() service.HoldScheduler {
	if c.QueueClient == nil {
		return nil
	}
	return c.QueueClient
}

func (c *Container) publisher() events.Publisher {
	if c.KafkaPublisher == nil {
		return events.NoopPublisher{}
	}
	return c.KafkaPublisher
}
