package main

import (
	"log"

	"github.com/BOVAGE/QuizBank/config"
	"github.com/BOVAGE/QuizBank/controllers"
	"github.com/BOVAGE/QuizBank/mailer"
	"github.com/BOVAGE/QuizBank/middlewares"
	"github.com/BOVAGE/QuizBank/routers"
	"github.com/BOVAGE/QuizBank/util"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading configuration: ", err)
	}
	controllers.Cfg = cfg

	if _, err := util.InitLogger(cfg.Env); err != nil {
		log.Fatal("Error initializing logger: ", err)
	}
	defer util.Log.Sync()

	if err := util.DBConnectAndPopulateDBVar(cfg.DB); err != nil {
		util.Log.Fatalw("couldn't connect to database", "error", err)
	}
	if err := util.CreateTableIfNotExists(); err != nil {
		util.Log.Fatalw("couldn't create tables", "error", err)
	}
	if _, err := util.EnsureSentinelCategory(); err != nil {
		util.Log.Fatalw("couldn't ensure sentinel category", "error", err)
	}
	util.InitJWT(cfg.JWT)

	smtpClient := mailer.NewSMTPClient(cfg.SMTP)
	var queue *mailer.QueueClient
	if cfg.RabbitMQ.URL != "" {
		queue, err = mailer.NewQueueClient(cfg.RabbitMQ.URL)
		if err != nil {
			util.Log.Warnw("couldn't connect to broker, sending mail directly", "error", err)
			queue = nil
		} else {
			defer queue.Close()
		}
	}
	mailer.Default = mailer.NewService(smtpClient, queue, util.Log)
	if queue != nil {
		go mailer.Default.RunWorker(util.Log)
	}

	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	routers.SetupRoutes(app)
	app.Use(middlewares.NotFound)

	util.Log.Infow("server starting", "port", cfg.Server.Port)
	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		util.Log.Fatalw("server stopped", "error", err)
	}
}
