package bootstrap

import (
	"log"

	"medicab-be/internal/config"
	"medicab-be/internal/controller"
	"medicab-be/internal/pkg/logger"
	"medicab-be/internal/pkg/mailer"
	"medicab-be/internal/repository/memory"
	"medicab-be/internal/repository/unitofwork"
	"medicab-be/internal/service"
	pktNats "medicab-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController          controller.IAuthController
	SubscriptionController  controller.ISubscriptionController
	PlanController          controller.IPlanController
	PatientController       controller.IPatientController
	AppointmentController   controller.IAppointmentController
	TreatmentController     controller.ITreatmentController
	MedicalRecordController controller.IMedicalRecordController
	TariffController        controller.ITariffController

	// Background services, run by main
	ConsumerService service.IConsumerService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderEmail,
	)

	// Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// NATS is optional: the app degrades to mail-only notifications when
	// the broker is unreachable.
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	planCache := memory.NewPlanCache()

	publisherService := service.NewPublisherService(cfg.App.EventTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.App.EventTopic,
		emailService,
		natsPub,
		sysLogger,
	)

	subscriptionService := service.NewSubscriptionService(uowFactory, planCache, publisherService, sysLogger)
	authService := service.NewAuthService(uowFactory, subscriptionService, publisherService, sysLogger)
	planService := service.NewPlanService(uowFactory, planCache)
	patientService := service.NewPatientService(uowFactory, subscriptionService)
	appointmentService := service.NewAppointmentService(uowFactory, publisherService, sysLogger)
	treatmentService := service.NewTreatmentService(uowFactory)
	medicalRecordService := service.NewMedicalRecordService(uowFactory)
	tariffService := service.NewTariffService(uowFactory)

	return &Container{
		AuthController:          controller.NewAuthController(authService),
		SubscriptionController:  controller.NewSubscriptionController(subscriptionService),
		PlanController:          controller.NewPlanController(planService),
		PatientController:       controller.NewPatientController(patientService),
		AppointmentController:   controller.NewAppointmentController(appointmentService),
		TreatmentController:     controller.NewTreatmentController(treatmentService),
		MedicalRecordController: controller.NewMedicalRecordController(medicalRecordService),
		TariffController:        controller.NewTariffController(tariffService),

		ConsumerService: consumerService,
	}
}
