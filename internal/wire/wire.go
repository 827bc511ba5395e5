package wire

import (
	"Amoria/internal/api"
	"Amoria/internal/api/config"
	"Amoria/internal/api/handler"
	"Amoria/internal/job"
	"Amoria/internal/pkg/cache"
	"Amoria/internal/pkg/cron"
	"Amoria/internal/pkg/kafka"
	pkgmongo "Amoria/internal/pkg/mongo"
	"Amoria/internal/pkg/push"
	"Amoria/internal/repository"
	"Amoria/internal/service"

	"github.com/gin-gonic/gin"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router        *gin.Engine
	DB            *gorm.DB
	KafkaManager  *kafka.ConsumerManager
	EventProducer kafka.EventProducer
	CronManager   *cron.Manager
}

func BuildApplication(db *gorm.DB, mongoDB *mongodriver.Database, cfg *config.Config) (*ApplicationContainer, error) {
	userRepo := repository.NewUserRepo(db)
	profileRepo := repository.NewProfileRepo(db)
	photoRepo := repository.NewPhotoRepo(db)
	convRepo := repository.NewConversationRepo(db)
	msgRepo := repository.NewMessageRepo(db)
	limitRepo := repository.NewMessageLimitRepo(db)
	reportRepo := repository.NewReportRepo(db)
	eventRepo := pkgmongo.NewModerationEventRepo(mongoDB)

	store := cache.NewRedisStore()
	notifier := push.NewRedisNotifier()

	producer, err := kafka.NewEventProducer(cfg)
	if err != nil {
		return nil, err
	}

	smsService := service.NewSmsService(store)
	userService := service.NewUserService(userRepo, smsService)
	profileService := service.NewProfileService(profileRepo, store)
	photoService := service.NewPhotoService(photoRepo, profileRepo, store)
	messageService := service.NewMessageService(convRepo, msgRepo, limitRepo, userRepo, profileRepo, store, producer, notifier)
	reportService := service.NewReportService(reportRepo, userRepo, producer)

	handlers := &api.HandlersGroup{
		UserHandler:    handler.NewUserHandler(userService, smsService),
		ProfileHandler: handler.NewProfileHandler(profileService),
		PhotoHandler:   handler.NewPhotoHandler(photoService),
		MessageHandler: handler.NewMessageHandler(messageService, profileService),
		ReportHandler:  handler.NewReportHandler(reportService),
		WSHandler:      handler.NewWsHandler(),
	}

	router := api.SetupRouter(handlers)

	kafkaMgr, err := kafka.NewConsumerManager(cfg, eventRepo)
	if err != nil {
		return nil, err
	}

	cronMgr := cron.NewCronManager(
		job.NewProfileStatsJob(profileService),
		job.NewMessageLimitCleanJob(limitRepo),
		job.NewModerationDigestJob(eventRepo),
	)

	return &ApplicationContainer{
		Router:        router,
		DB:            db,
		KafkaManager:  kafkaMgr,
		EventProducer: producer,
		CronManager:   cronMgr,
	}, nil
}
