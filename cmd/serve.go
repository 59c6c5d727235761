package cmd

import (
	"context"
	"net"
	"time"

	"github.com/vibast-solutions/ms-go-bootcamps/app/controller"
	"github.com/vibast-solutions/ms-go-bootcamps/app/entity"
	"github.com/vibast-solutions/ms-go-bootcamps/app/geocode"
	"github.com/vibast-solutions/ms-go-bootcamps/app/mailer"
	"github.com/vibast-solutions/ms-go-bootcamps/app/middleware"
	"github.com/vibast-solutions/ms-go-bootcamps/app/objstore"
	"github.com/vibast-solutions/ms-go-bootcamps/app/repository"
	"github.com/vibast-solutions/ms-go-bootcamps/app/service"
	"github.com/vibast-solutions/ms-go-bootcamps/config"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Start the HTTP (Echo) server for the bootcamp directory API.`,
	Run:   runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	if err := configureLogging(cfg); err != nil {
		logrus.WithError(err).Fatal("Failed to configure logging")
	}

	db, closeDB, err := repository.Connect(cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}
	defer func() {
		if err := closeDB(); err != nil {
			logrus.WithError(err).Warn("Failed to disconnect from database")
		}
	}()

	media, err := objstore.NewClient(cfg.MinIO)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create object store client")
	}
	bucketCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := media.EnsureBucket(bucketCtx); err != nil {
		logrus.WithError(err).Fatal("Failed to prepare photo bucket")
	}

	userRepo := repository.NewUserRepository(db)
	bootcampRepo := repository.NewBootcampRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	tokenService := service.NewTokenService(cfg)
	smtpMailer := mailer.NewSMTPMailer(cfg.SMTP)
	geocoder := geocode.NewClient(cfg.Geocoder)

	authService := service.NewAuthService(userRepo, tokenService, smtpMailer, cfg)
	bootcampService := service.NewBootcampService(bootcampRepo, courseRepo, reviewRepo, geocoder, media, cfg)
	courseService := service.NewCourseService(courseRepo, bootcampRepo)
	reviewService := service.NewReviewService(reviewRepo, bootcampRepo)
	userService := service.NewUserService(userRepo, cfg)

	startHTTPServer(cfg, tokenService, authService, bootcampService, courseService, reviewService, userService)
}

func startHTTPServer(
	cfg *config.Config,
	tokenService *service.TokenService,
	authService *service.AuthService,
	bootcampService *service.BootcampService,
	courseService *service.CourseService,
	reviewService *service.ReviewService,
	userService *service.UserService,
) {
	e := echo.New()
	defer e.Close()
	e.HideBanner = true

	e.Use(echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogRemoteIP:  true,
		LogLatency:   true,
		LogUserAgent: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			fields := logrus.Fields{
				"remote_ip":  v.RemoteIP,
				"host":       v.Host,
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency":    v.Latency.String(),
				"latency_ns": v.Latency.Nanoseconds(),
				"user_agent": v.UserAgent,
			}
			entry := logrus.WithFields(fields)
			if v.Error != nil {
				entry = entry.WithError(v.Error)
			}
			entry.Info("http_request")
			return nil
		},
	}))
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())

	authController := controller.NewAuthController(authService, cfg)
	bootcampController := controller.NewBootcampController(bootcampService)
	courseController := controller.NewCourseController(courseService)
	reviewController := controller.NewReviewController(reviewService)
	userController := controller.NewUserController(userService)
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	api := e.Group("/api/v1")

	auth := api.Group("/auth")
	auth.POST("/register", authController.Register)
	auth.POST("/login", authController.Login)
	auth.GET("/logout", authController.Logout)
	auth.POST("/forgotpassword", authController.ForgotPassword)
	auth.PUT("/resetpassword/:resettoken", authController.ResetPassword)

	authProtected := auth.Group("")
	authProtected.Use(authMiddleware.RequireAuth)
	authProtected.GET("/me", authController.Me)
	authProtected.PUT("/updatedetails", authController.UpdateDetails)
	authProtected.PUT("/updatepassword", authController.UpdatePassword)

	users := auth.Group("/users")
	users.Use(authMiddleware.RequireAuth)
	users.Use(authMiddleware.RequireRoles(entity.RoleAdmin))
	users.GET("", userController.List)
	users.POST("", userController.Create)
	users.GET("/:id", userController.Get)
	users.PUT("/:id", userController.Update)
	users.DELETE("/:id", userController.Delete)

	bootcamps := api.Group("/bootcamps")
	bootcamps.GET("", bootcampController.List)
	bootcamps.GET("/radius/:zipcode/:distance", bootcampController.InRadius)
	bootcamps.GET("/:id", bootcampController.Get)
	bootcamps.GET("/:bootcampId/courses", courseController.ListByBootcamp)
	bootcamps.GET("/:bootcampId/reviews", reviewController.ListByBootcamp)

	publish := bootcamps.Group("")
	publish.Use(authMiddleware.RequireAuth)
	publish.Use(authMiddleware.RequireRoles(entity.RolePublisher, entity.RoleAdmin))
	publish.POST("", bootcampController.Create)
	publish.PUT("/:id", bootcampController.Update)
	publish.DELETE("/:id", bootcampController.Delete)
	publish.PUT("/:id/photo", bootcampController.UploadPhoto)
	publish.POST("/:bootcampId/courses", courseController.Create)

	review := bootcamps.Group("")
	review.Use(authMiddleware.RequireAuth)
	review.Use(authMiddleware.RequireRoles(entity.RoleUser, entity.RoleAdmin))
	review.POST("/:bootcampId/reviews", reviewController.Create)

	courses := api.Group("/courses")
	courses.GET("", courseController.List)
	courses.GET("/:id", courseController.Get)

	coursesProtected := courses.Group("")
	coursesProtected.Use(authMiddleware.RequireAuth)
	coursesProtected.Use(authMiddleware.RequireRoles(entity.RolePublisher, entity.RoleAdmin))
	coursesProtected.PUT("/:id", courseController.Update)
	coursesProtected.DELETE("/:id", courseController.Delete)

	reviews := api.Group("/reviews")
	reviews.GET("", reviewController.List)
	reviews.GET("/:id", reviewController.Get)

	reviewsProtected := reviews.Group("")
	reviewsProtected.Use(authMiddleware.RequireAuth)
	reviewsProtected.Use(authMiddleware.RequireRoles(entity.RoleUser, entity.RoleAdmin))
	reviewsProtected.PUT("/:id", reviewController.Update)
	reviewsProtected.DELETE("/:id", reviewController.Delete)

	httpAddr := net.JoinHostPort(cfg.HTTPHost, cfg.HTTPPort)
	logrus.WithField("addr", httpAddr).Info("Starting HTTP server")
	if err := e.Start(httpAddr); err != nil {
		logrus.WithError(err).Fatal("Failed to start HTTP server")
	}
}
