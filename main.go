package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/evently/marketplace-app/activity"
	"github.com/evently/marketplace-app/config"
	"github.com/evently/marketplace-app/controllers"
	"github.com/evently/marketplace-app/cron"
	"github.com/evently/marketplace-app/db"
	"github.com/evently/marketplace-app/identity"
	"github.com/evently/marketplace-app/notify"
	"github.com/evently/marketplace-app/redis"
	"github.com/evently/marketplace-app/repository"
	"github.com/evently/marketplace-app/routes"
	"github.com/evently/marketplace-app/workflow"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	db.Init(cfg.DatabaseURL)
	db.Migrate()
	redis.InitRedis(cfg.RedisAddr)

	accounts := repository.NewAccountRepo(db.DB)
	profiles := repository.NewProfileRepo(db.DB)
	events := repository.NewEventRepo(db.DB)
	services := repository.NewServiceRepo(db.DB)
	proposals := repository.NewProposalRepo(db.DB)
	bookings := repository.NewBookingRepo(db.DB)
	activities := repository.NewActivityRepo(db.DB)

	recorder := activity.NewRecorder(activities)
	resolver := identity.NewResolver(profiles)
	store := identity.NewStore(accounts, resolver, recorder)

	var emitter notify.Emitter = notify.LogEmitter{}
	if cfg.MailConfigured() {
		emitter = notify.NewMailer(accounts)
	}

	proposalWorkflow := workflow.NewProposalWorkflow(proposals, events, profiles, recorder, emitter)
	bookingWorkflow := workflow.NewBookingWorkflow(bookings, events, services, profiles, recorder, emitter)

	controllers.Setup(controllers.Deps{
		Store:      store,
		Resolver:   resolver,
		Proposals:  proposalWorkflow,
		Bookings:   bookingWorkflow,
		Recorder:   recorder,
		Accounts:   accounts,
		Events:     events,
		Services:   services,
		BookingsDB: bookings,
		Activities: activities,
	})

	cron.StartCronJobs(bookingWorkflow)

	app := fiber.New()
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Hello, World!")
	})
	routes.SetupAuthRoutes(app)
	routes.SetupEventRoutes(app)
	routes.SetupBookingRoutes(app)
	routes.SetupServiceRoutes(app)
	routes.SetupAdminRoutes(app)

	log.Fatal(app.Listen(cfg.HTTPAddr))
}
