package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	"github.com/jobgate-vn/jobgate/pkg/fsx"
	"github.com/jobgate-vn/jobgate/pkg/fsx/fsxs3"
	"github.com/jobgate-vn/jobgate/pkg/iam/auth"
	"github.com/jobgate-vn/jobgate/pkg/logx"
	"github.com/jobgate-vn/jobgate/recruitment/application"
	"github.com/jobgate-vn/jobgate/recruitment/application/applicationapi"
	"github.com/jobgate-vn/jobgate/recruitment/application/applicationinfra"
	"github.com/jobgate-vn/jobgate/recruitment/application/applicationsrv"
	"github.com/jobgate-vn/jobgate/recruitment/candidate"
	"github.com/jobgate-vn/jobgate/recruitment/candidate/candidateapi"
	"github.com/jobgate-vn/jobgate/recruitment/candidate/candidateinfra"
	"github.com/jobgate-vn/jobgate/recruitment/candidate/candidatesrv"
	"github.com/jobgate-vn/jobgate/recruitment/employer"
	"github.com/jobgate-vn/jobgate/recruitment/employer/employerapi"
	"github.com/jobgate-vn/jobgate/recruitment/employer/employerinfra"
	"github.com/jobgate-vn/jobgate/recruitment/employer/employersrv"
	"github.com/jobgate-vn/jobgate/recruitment/job"
	"github.com/jobgate-vn/jobgate/recruitment/job/jobapi"
	"github.com/jobgate-vn/jobgate/recruitment/job/jobinfra"
	"github.com/jobgate-vn/jobgate/recruitment/job/jobsrv"
	"github.com/jobgate-vn/jobgate/recruitment/ownership"
	"github.com/jobgate-vn/jobgate/recruitment/ownership/ownershipinfra"
	"github.com/jobgate-vn/jobgate/recruitment/workflow"
	"github.com/jobgate-vn/jobgate/recruitment/workflow/workflowinfra"
	"github.com/jobgate-vn/jobgate/recruitment/workflow/workflowsrv"
	_ "github.com/lib/pq"
)

// Container holds all application dependencies
type Container struct {
	// Infrastructure
	DB         *sqlx.DB
	Redis      *redis.Client
	FileSystem fsx.FileSystem
	S3Client   *s3.Client

	// Core Services
	TokenService auth.TokenService
	Coordinator  *workflowsrv.Coordinator

	// Domain Services
	EmployerService    *employersrv.EmployerService
	JobService         *jobsrv.JobService
	CandidateService   *candidatesrv.CandidateService
	ApplicationService *applicationsrv.ApplicationService

	// API Handlers
	EmployerHandlers    *employerapi.Handlers
	JobHandlers         *jobapi.Handlers
	CandidateHandlers   *candidateapi.Handlers
	ApplicationHandlers *applicationapi.Handlers
}

// NewContainer initializes the dependency injection container
func NewContainer() *Container {
	c := &Container{}
	c.initInfrastructure()
	c.initServices()
	return c
}

func (c *Container) initInfrastructure() {
	// 1. Database Connection
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPass := os.Getenv("DB_PASS")
	dbName := os.Getenv("DB_NAME")
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		dbHost, dbPort, dbUser, dbPass, dbName)

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		logx.Fatalf("Failed to connect to database: %v", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	c.DB = db

	// 2. Redis Connection
	redisAddr := os.Getenv("REDIS_ADDR")
	redisPass := os.Getenv("REDIS_PASS")
	if redisAddr != "" {
		c.Redis = redis.NewClient(&redis.Options{
			Addr:     redisAddr,
			Password: redisPass,
			DB:       0,
		})
		if _, err := c.Redis.Ping(context.Background()).Result(); err != nil {
			logx.Warnf("Failed to connect to Redis: %v", err)
		}
	}

	// 3. AWS S3 Configuration
	awsRegion := os.Getenv("AWS_REGION")
	awsBucket := os.Getenv("AWS_BUCKET")
	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(awsRegion))
	if err != nil {
		logx.Fatalf("unable to load SDK config, %v", err)
	}
	c.S3Client = s3.NewFromConfig(cfg)
	c.FileSystem = fsxs3.NewS3FileSystem(c.S3Client, awsBucket, "uploads")

	// 4. Token Service
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logx.Warn("JWT_SECRET is not set, using default (unsafe for production)")
		jwtSecret = "super-secret-key-please-change-me-in-production"
	}
	c.TokenService = auth.NewJWTService(jwtSecret, 24*time.Hour, "jobgate")
}

func (c *Container) initServices() {
	// --- Repositories ---
	employerRepo := employerinfra.NewPostgresEmployerRepository(c.DB)
	jobRepo := jobinfra.NewPostgresJobRepository(c.DB)
	candidateRepo := candidateinfra.NewPostgresCandidateRepository(c.DB)
	cvRepo := candidateinfra.NewPostgresCVRepository(c.DB)
	applicationRepo := applicationinfra.NewPostgresApplicationRepository(c.DB)

	// --- Ownership Verifiers ---
	// One verifier per resource kind, each backed by a generic store
	// compiling the ownership predicate into a single query.
	employerVerifier := ownership.NewVerifierFor[employer.Profile](ownershipinfra.NewPostgresStore[employer.Profile](c.DB))
	jobVerifier := ownership.NewVerifierFor[job.Post](ownershipinfra.NewPostgresStore[job.Post](c.DB))
	cvVerifier := ownership.NewVerifierFor[candidate.CV](ownershipinfra.NewPostgresStore[candidate.CV](c.DB))

	// Employer-side application access runs two joins away from the
	// owning user, so it gets its own descriptor.
	applicationEmployerVerifier := ownership.NewVerifier[application.Application](
		ownershipinfra.NewPostgresStore[application.Application](c.DB),
		application.EmployerOwnershipDescriptor(),
	)

	// --- Workflow ---
	statusStore := workflowinfra.NewPostgresStatusStore(c.DB)
	machine := workflowsrv.NewStateMachine(statusStore)

	var notifier workflow.Notifier
	if c.Redis != nil {
		notifier = workflowinfra.NewRedisNotifier(c.Redis, "workflow:transitions")
	} else {
		logx.Warn("REDIS_ADDR is not set, transition events go to the log only")
		notifier = workflowinfra.NewLogNotifier()
	}

	c.Coordinator = workflowsrv.NewCoordinator(machine, notifier, map[workflow.ResourceKind]ownership.Guard{
		workflow.KindEmployerProfile:  employerVerifier,
		workflow.KindJobPost:          jobVerifier,
		workflow.KindCandidateProfile: cvVerifier,
		workflow.KindApplication:      applicationEmployerVerifier,
	})

	// --- Domain Services ---
	passwordSvc := auth.NewBcryptPasswordService()

	c.EmployerService = employersrv.NewEmployerService(
		employerRepo,
		employerVerifier,
		c.Coordinator,
		passwordSvc,
		c.TokenService,
		c.FileSystem,
	)

	c.JobService = jobsrv.NewJobService(
		jobRepo,
		employerRepo,
		jobVerifier,
		c.Coordinator,
	)

	c.CandidateService = candidatesrv.NewCandidateService(
		candidateRepo,
		cvRepo,
		cvVerifier,
		c.Coordinator,
		passwordSvc,
		c.TokenService,
		c.FileSystem,
	)

	c.ApplicationService = applicationsrv.NewApplicationService(
		applicationRepo,
		jobRepo,
		cvVerifier,
		jobVerifier,
		applicationEmployerVerifier,
		c.Coordinator,
	)

	// --- Handlers ---
	c.EmployerHandlers = employerapi.NewHandlers(c.EmployerService)
	c.JobHandlers = jobapi.NewHandlers(c.JobService)
	c.CandidateHandlers = candidateapi.NewHandlers(c.CandidateService)
	c.ApplicationHandlers = applicationapi.NewHandlers(c.ApplicationService)
}
