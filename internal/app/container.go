// Package app provides the dependency injection container for the application.
package app

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/taskdesk/taskdesk/internal/domain"
	"github.com/taskdesk/taskdesk/internal/infra/api"
	"github.com/taskdesk/taskdesk/internal/infra/auth"
	"github.com/taskdesk/taskdesk/internal/infra/cache"
	"github.com/taskdesk/taskdesk/internal/infra/config"
	"github.com/taskdesk/taskdesk/internal/infra/localstore"
	"github.com/taskdesk/taskdesk/internal/infra/logging"
	"github.com/taskdesk/taskdesk/internal/usecase"
)

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for
// use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	Tasks     domain.TaskService
	Directory domain.Directory
	Sessions  domain.SessionStore
	Clock     domain.Clock
	Logger    domain.Logger

	// Concrete infrastructure that exposes more than its port
	Cache *cache.Store
	Local *localstore.Store

	// Session is nil when not logged in.
	Session *domain.Session

	Config *domain.Config
}

// New creates a new Container for the given working directory.
// A missing session is not an error here; commands that need one check
// Session themselves.
func New(dir string) (*Container, error) {
	localDir := domain.LocalDir(dir)
	cfg, err := config.NewLoader(localDir).Load()
	if err != nil {
		return nil, err
	}

	stateDir := localstore.DefaultDir()
	logger := logging.New(stateDir, logging.ParseLevel(cfg.Log.Level), cfg.Log.MaxSizeMB, cfg.Log.MaxBackups)

	local := localstore.New(stateDir)
	session, err := local.Load()
	if err != nil && !errors.Is(err, domain.ErrNotLoggedIn) {
		return nil, err
	}
	session = applySessionEnv(session)

	clock := domain.RealClock{}
	if session != nil && session.Token != "" {
		if err := auth.CheckExpiry(session.Token, clock.Now()); errors.Is(err, domain.ErrTokenExpired) {
			cfg.Warnings = append(cfg.Warnings, "stored token has expired, run taskdesk login")
		}
	}

	var token string
	var userID int
	if session != nil {
		token = session.Token
		userID = session.User.ID
	}
	client := api.NewClient(api.Options{
		Logger:  logger,
		BaseURL: cfg.API.BaseURL,
		Token:   token,
		UserID:  userID,
		Timeout: time.Duration(cfg.API.TimeoutSeconds) * time.Second,
	})

	store := cache.New(client, clock, logger)

	return &Container{
		Tasks:     store,
		Directory: client,
		Sessions:  local,
		Clock:     clock,
		Logger:    logger,
		Cache:     store,
		Local:     local,
		Session:   session,
		Config:    cfg,
	}, nil
}

// NewWithDeps creates a Container with custom dependencies for testing.
func NewWithDeps(cfg *domain.Config, tasks domain.TaskService, directory domain.Directory, sessions domain.SessionStore, clock domain.Clock, logger domain.Logger) *Container {
	return &Container{
		Tasks:     tasks,
		Directory: directory,
		Sessions:  sessions,
		Clock:     clock,
		Logger:    logger,
		Config:    cfg,
	}
}

// applySessionEnv overlays TASKDESK_TOKEN and TASKDESK_USER_ID on the
// stored session, creating one when none is stored. A user id embedded
// in the token's claims fills in when TASKDESK_USER_ID is absent.
func applySessionEnv(session *domain.Session) *domain.Session {
	envToken := os.Getenv("TASKDESK_TOKEN")
	envUser := os.Getenv("TASKDESK_USER_ID")
	if envToken == "" && envUser == "" {
		return session
	}

	if session == nil {
		session = &domain.Session{}
	} else {
		clone := *session
		session = &clone
	}
	if envToken != "" {
		session.Token = envToken
		if claims, err := auth.Inspect(envToken); err == nil && claims.UserID > 0 {
			session.User.ID = claims.UserID
		}
	}
	if envUser != "" {
		if id, err := strconv.Atoi(envUser); err == nil && id > 0 {
			session.User.ID = id
		}
	}
	return session
}

// User returns the acting user, or nil when not logged in.
func (c *Container) User() *domain.User {
	if c.Session == nil {
		return nil
	}
	return &c.Session.User
}

// UseCase factory methods

// ListTasksUseCase returns a new ListTasks use case.
func (c *Container) ListTasksUseCase() *usecase.ListTasks {
	return usecase.NewListTasks(c.Tasks, c.Clock)
}

// ShowTaskUseCase returns a new ShowTask use case.
func (c *Container) ShowTaskUseCase() *usecase.ShowTask {
	return usecase.NewShowTask(c.Tasks, c.Clock)
}

// NewTaskUseCase returns a new NewTask use case.
func (c *Container) NewTaskUseCase() *usecase.NewTask {
	return usecase.NewNewTask(c.Tasks, c.Logger, c.Clock)
}

// CreateTasksFromFileUseCase returns a new CreateTasksFromFile use case.
func (c *Container) CreateTasksFromFileUseCase() *usecase.CreateTasksFromFile {
	return usecase.NewCreateTasksFromFile(c.Tasks, c.Logger, c.Clock)
}

// EditTaskUseCase returns a new EditTask use case.
func (c *Container) EditTaskUseCase() *usecase.EditTask {
	return usecase.NewEditTask(c.Tasks, c.Logger)
}

// ChangeStatusUseCase returns a new ChangeStatus use case.
func (c *Container) ChangeStatusUseCase() *usecase.ChangeStatus {
	return usecase.NewChangeStatus(c.Tasks, c.Logger)
}

// CompleteTaskUseCase returns a new CompleteTask use case.
func (c *Container) CompleteTaskUseCase() *usecase.CompleteTask {
	return usecase.NewCompleteTask(c.Tasks, c.Logger)
}

// AddCommentUseCase returns a new AddComment use case.
func (c *Container) AddCommentUseCase() *usecase.AddComment {
	return usecase.NewAddComment(c.Tasks, c.Logger)
}

// EditCommentUseCase returns a new EditComment use case.
func (c *Container) EditCommentUseCase() *usecase.EditComment {
	return usecase.NewEditComment(c.Tasks, c.Logger)
}

// DeleteCommentUseCase returns a new DeleteComment use case.
func (c *Container) DeleteCommentUseCase() *usecase.DeleteComment {
	return usecase.NewDeleteComment(c.Tasks, c.Logger)
}

// ChecklistUseCase returns a new Checklist use case.
func (c *Container) ChecklistUseCase() *usecase.Checklist {
	return usecase.NewChecklist(c.Tasks, c.Logger, c.Clock)
}

// DeleteTaskUseCase returns a new DeleteTask use case.
func (c *Container) DeleteTaskUseCase() *usecase.DeleteTask {
	return usecase.NewDeleteTask(c.Tasks, c.Logger)
}

// RestoreTaskUseCase returns a new RestoreTask use case.
func (c *Container) RestoreTaskUseCase() *usecase.RestoreTask {
	return usecase.NewRestoreTask(c.Tasks, c.Logger)
}

// PurgeTaskUseCase returns a new PurgeTask use case.
func (c *Container) PurgeTaskUseCase() *usecase.PurgeTask {
	return usecase.NewPurgeTask(c.Tasks, c.Logger)
}

// LoginUseCase returns a new Login use case.
func (c *Container) LoginUseCase() *usecase.Login {
	return usecase.NewLogin(c.Directory, c.Sessions, c.Logger)
}

// PollNotificationsUseCase returns a new PollNotifications use case.
func (c *Container) PollNotificationsUseCase() *usecase.PollNotifications {
	return usecase.NewPollNotifications(c.Directory, c.Logger)
}
