package main

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/tims-dev/tims-admin-bff/api/swagger"
	"github.com/tims-dev/tims-admin-bff/internal/backend"
	"github.com/tims-dev/tims-admin-bff/internal/form"
	"github.com/tims-dev/tims-admin-bff/internal/handler"
	"github.com/tims-dev/tims-admin-bff/internal/middleware"
	"github.com/tims-dev/tims-admin-bff/internal/models"
	"github.com/tims-dev/tims-admin-bff/internal/repository"
	"github.com/tims-dev/tims-admin-bff/internal/service"
	"github.com/tims-dev/tims-admin-bff/pkg/cache"
	"github.com/tims-dev/tims-admin-bff/pkg/config"
	"github.com/tims-dev/tims-admin-bff/pkg/database"
	"github.com/tims-dev/tims-admin-bff/pkg/export"
	"github.com/tims-dev/tims-admin-bff/pkg/logger"
	corsmiddleware "github.com/tims-dev/tims-admin-bff/pkg/middleware/cors"
	reqidmiddleware "github.com/tims-dev/tims-admin-bff/pkg/middleware/requestid"
	"github.com/tims-dev/tims-admin-bff/pkg/storage"
)

const version = "0.3.0"

// @title TIMS Admin BFF
// @version 0.3.0
// @description Admin gateway for the training-institute management backend
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	metrics := service.NewMetricsService()

	tokens := backend.NewTokenStore(cfg.Backend.TokenFile)
	client := backend.NewClient(cfg.Backend, tokens, logr).WithObserver(metrics)
	api := backend.NewAPI(client)

	var optionCache service.OptionCache
	if cfg.Options.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, option cache disabled", "error", err)
		} else {
			defer redisClient.Close() //nolint:errcheck
			optionCache = repository.NewCacheRepository(redisClient)
		}
	}
	options := service.NewOptionsService(api, optionCache, metrics, cfg.Options.CacheTTL, logr, optionCache != nil)

	var auditRepo *repository.AuditRepository
	if cfg.Audit.Enabled {
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			logr.Sugar().Fatalw("failed to connect audit database", "error", err)
		}
		defer db.Close() //nolint:errcheck
		auditRepo = repository.NewAuditRepository(db)
	}

	validate := form.NewValidator()

	departments := service.NewScreen(api.Departments, func(d models.Department) []string {
		return []string{d.Name, d.Code}
	}, logr)
	designations := service.NewScreen(api.Designations, func(d models.Designation) []string {
		return []string{d.Name}
	}, logr)
	courses := service.NewScreen(api.Courses, func(c models.Course) []string {
		return []string{c.Name, c.Code}
	}, logr)
	classrooms := service.NewScreen(api.Classrooms, func(c models.Classroom) []string {
		return []string{c.Name}
	}, logr)
	instructors := service.NewScreen(api.Instructors, func(i models.Instructor) []string {
		return []string{i.Name, i.Email, i.Phone}
	}, logr)
	employees := service.NewScreen(api.Employees, func(e models.Employee) []string {
		return []string{e.Name, e.Email, e.Phone}
	}, logr)
	visitors := service.NewScreen(api.Visitors, func(v models.Visitor) []string {
		return []string{v.Name, v.Phone, v.Purpose}
	}, logr)
	admissions := service.NewScreen(api.Admissions, func(a models.Admission) []string {
		return []string{strconv.FormatInt(a.RegistrationID, 10), strconv.FormatInt(a.BatchID, 10)}
	}, logr)
	offers := service.NewScreen(api.Offers, func(o models.Offer) []string {
		return []string{o.Name}
	}, logr)
	slots := service.NewScreen(api.Slots, func(s models.Slot) []string {
		return []string{s.Name, s.StartTime, s.EndTime}
	}, logr)
	schedules := service.NewScreen(api.Schedules, func(s models.Schedule) []string {
		return []string{s.Day}
	}, logr)
	dailySales := service.NewScreen(api.DailySales, func(d models.DailySales) []string {
		return []string{d.Date.String(), d.Remarks}
	}, logr)
	batches := service.NewScreen(api.Batches.Resource, func(b models.Batch) []string {
		return []string{b.Name}
	}, logr)
	combos := service.NewScreen(api.Combos.Resource, func(c models.CourseCombo) []string {
		return []string{c.Name, c.CourseNames}
	}, logr)
	registrations := service.NewScreen(api.Registrations.Resource, func(r models.Registration) []string {
		return []string{r.Name, r.Email, r.Phone}
	}, logr)

	var exports *service.ExportService
	if cfg.Exports.Enabled {
		store, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
		if err != nil {
			logr.Sugar().Fatalw("failed to prepare exports storage", "error", err)
		}
		signer := storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL)
		exports = service.NewExportService(store, signer, logr, cfg.Exports)
		exports.Start(context.Background())
		defer exports.Stop()

		exports.RegisterSource("departments", departmentDataset(departments))
		exports.RegisterSource("dailysales", dailySalesDataset(dailySales))
		exports.RegisterSource("registrations", registrationDataset(registrations))
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	health := handler.NewHealthHandler(client, metrics, version)
	health.Register(r.Group(""))
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	root := r.Group(cfg.APIPrefix)

	mount := func(path, resource string, register func(*gin.RouterGroup)) {
		group := root.Group(path)
		if auditRepo != nil {
			group.Use(middleware.Audit(auditRepo, resource))
		}
		register(group)
	}

	mount("/departments", "Department", handler.NewResourceHandler(departments).Register)
	mount("/designations", "Designation", handler.NewResourceHandler(designations).Register)
	mount("/classrooms", "Classroom", handler.NewResourceHandler(classrooms).Register)
	mount("/instructors", "Instructor", handler.NewResourceHandler(instructors).Register)
	mount("/employees", "Employee", handler.NewResourceHandler(employees).Register)
	mount("/visitors", "Visitor", handler.NewResourceHandler(visitors).Register)
	mount("/admissions", "Admission", handler.NewResourceHandler(admissions).Register)
	mount("/slots", "Slot", handler.NewResourceHandler(slots).Register)
	mount("/schedules", "Schedule", handler.NewResourceHandler(schedules).Register)
	mount("/daily-sales", "DailySales", handler.NewResourceHandler(dailySales).Register)

	mount("/courses", "Course", handler.NewCourseHandler(api.Courses, options, courses, validate).Register)
	mount("/batches", "Batch", handler.NewBatchHandler(api.Batches, options, batches, validate).Register)
	mount("/course-combos", "CourseCombo", handler.NewComboHandler(api.Combos, options, combos, validate).Register)
	mount("/offers", "Offer", handler.NewOfferHandler(api.Offers, offers, validate).Register)
	mount("/registrations", "Registration", handler.NewRegistrationHandler(api.Registrations, registrations, cfg.Uploads, validate).Register)

	if exports != nil {
		handler.NewExportHandler(exports).Register(root.Group("/exports"))
	}
	if auditRepo != nil {
		handler.NewAuditHandler(auditRepo).Register(root.Group("/audit-logs"))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("gateway starting", "addr", addr, "env", cfg.Env, "backend", client.BaseURL())
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("gateway failed", "error", err)
	}
}

func departmentDataset(screen *service.Screen[models.Department]) service.DatasetSource {
	return func(ctx context.Context) (export.Dataset, string, error) {
		items, _, err := screen.List(ctx, "", 1, 10000)
		if err != nil {
			return export.Dataset{}, "", err
		}
		dataset := export.Dataset{Headers: []string{"ID", "Name", "Code", "Active"}}
		for _, d := range items {
			dataset.Rows = append(dataset.Rows, map[string]string{
				"ID":     strconv.FormatInt(d.ID, 10),
				"Name":   d.Name,
				"Code":   d.Code,
				"Active": strconv.FormatBool(d.IsActive),
			})
		}
		return dataset, "Departments", nil
	}
}

func dailySalesDataset(screen *service.Screen[models.DailySales]) service.DatasetSource {
	return func(ctx context.Context) (export.Dataset, string, error) {
		items, _, err := screen.List(ctx, "", 1, 10000)
		if err != nil {
			return export.Dataset{}, "", err
		}
		dataset := export.Dataset{Headers: []string{"Date", "Visitors", "Registrations", "Admissions", "Collection"}}
		for _, d := range items {
			dataset.Rows = append(dataset.Rows, map[string]string{
				"Date":          d.Date.String(),
				"Visitors":      strconv.Itoa(d.Visitors),
				"Registrations": strconv.Itoa(d.Registrations),
				"Admissions":    strconv.Itoa(d.Admissions),
				"Collection":    strconv.FormatFloat(d.Collection, 'f', 2, 64),
			})
		}
		return dataset, "Daily Sales", nil
	}
}

func registrationDataset(screen *service.Screen[models.Registration]) service.DatasetSource {
	return func(ctx context.Context) (export.Dataset, string, error) {
		items, _, err := screen.List(ctx, "", 1, 10000)
		if err != nil {
			return export.Dataset{}, "", err
		}
		dataset := export.Dataset{Headers: []string{"ID", "Name", "Email", "Phone", "Registered On"}}
		for _, r := range items {
			dataset.Rows = append(dataset.Rows, map[string]string{
				"ID":            strconv.FormatInt(r.ID, 10),
				"Name":          r.Name,
				"Email":         r.Email,
				"Phone":         r.Phone,
				"Registered On": r.RegisteredOn.String(),
			})
		}
		return dataset, "Registrations", nil
	}
}
