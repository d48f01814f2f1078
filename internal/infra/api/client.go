// Package api implements the remote task service client.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"github.com/taskdesk/taskdesk/internal/domain"
)

// Client talks to the task service REST API. Every request carries the
// acting user id in the x-user-id header and, when set, a bearer token.
// Mutations are never retried; a failure is returned once to the caller.
// Fields are ordered to minimize memory padding.
type Client struct {
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
	logger  domain.Logger
	baseURL string
	token   string
	userID  int
}

// Options configures a Client.
type Options struct {
	Logger  domain.Logger
	BaseURL string
	Token   string
	UserID  int
	Timeout time.Duration
}

// NewClient creates a new API client. The circuit breaker trips after
// several consecutive failures so a dead server does not stall every
// subsequent call for the full timeout.
func NewClient(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	logger := opts.Logger
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "task-api",
		MaxRequests: 1,
		Timeout:     5 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			if logger != nil {
				logger.Warn(0, "api", fmt.Sprintf("circuit breaker %s: %s -> %s", name, from, to))
			}
		},
	})

	return &Client{
		http:    &http.Client{Timeout: timeout},
		breaker: breaker,
		logger:  logger,
		baseURL: opts.BaseURL,
		token:   opts.Token,
		userID:  opts.UserID,
	}
}

// StatusError is returned when the server responds with a non-2xx code.
type StatusError struct {
	Body   string
	Code   int
	Method string
	Path   string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Code, e.Body)
	}
	return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.Code)
}

// do performs one request through the circuit breaker and decodes the
// response into out (if non-nil).
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var payload io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		payload = bytes.NewReader(buf)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, payload)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("x-user-id", strconv.Itoa(c.userID))
	req.Header.Set("x-request-id", uuid.NewString())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	result, err := c.breaker.Execute(func() (any, error) {
		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer func() {
			_, _ = io.Copy(io.Discard, resp.Body)
			_ = resp.Body.Close()
		}()

		if resp.StatusCode == http.StatusNotFound {
			return nil, domain.ErrTaskNotFound
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			return nil, &StatusError{
				Method: method,
				Path:   path,
				Code:   resp.StatusCode,
				Body:   string(bytes.TrimSpace(data)),
			}
		}
		if out == nil {
			return nil, nil
		}
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("read response: %w", err)
		}
		return data, nil
	})
	if err != nil {
		if c.logger != nil {
			c.logger.Error(0, "api", fmt.Sprintf("%s %s: %v", method, path, err))
		}
		return err
	}
	if out == nil {
		return nil
	}

	data, _ := result.([]byte)
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// ListTasks retrieves tasks matching the filter.
func (c *Client) ListTasks(ctx context.Context, filter domain.TaskFilter) ([]*domain.Task, error) {
	q := url.Values{}
	if filter.Status != "" {
		q.Set("status", string(filter.Status))
	}
	if filter.AssigneeID != 0 {
		q.Set("assignee", strconv.Itoa(filter.AssigneeID))
	}
	if filter.CreatorID != 0 {
		q.Set("creator", strconv.Itoa(filter.CreatorID))
	}
	if filter.ProcessID != 0 {
		q.Set("process", strconv.Itoa(filter.ProcessID))
	}
	if filter.OverdueOnly {
		q.Set("overdue", "true")
	}
	if filter.IncludeDeleted {
		q.Set("includeDeleted", "true")
	}
	if filter.DeletedOnly {
		q.Set("deletedOnly", "true")
	}
	if filter.Page > 0 {
		q.Set("page", strconv.Itoa(filter.Page))
	}
	if filter.PageSize > 0 {
		q.Set("pageSize", strconv.Itoa(filter.PageSize))
	}

	var tasks []*domain.Task
	if err := c.do(ctx, http.MethodGet, "/tasks", q, nil, &tasks); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// GetTask retrieves a single task with nested comments, checklist and history.
func (c *Client) GetTask(ctx context.Context, id int) (*domain.Task, error) {
	var task domain.Task
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/tasks/%d", id), nil, nil, &task); err != nil {
		return nil, fmt.Errorf("get task %d: %w", id, err)
	}
	return &task, nil
}

// CreateTask creates a new task.
func (c *Client) CreateTask(ctx context.Context, draft domain.TaskDraft) (*domain.Task, error) {
	var task domain.Task
	if err := c.do(ctx, http.MethodPost, "/tasks", nil, draft, &task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return &task, nil
}

// UpdateTask applies a field-level update.
func (c *Client) UpdateTask(ctx context.Context, id int, patch domain.TaskPatch) (*domain.Task, error) {
	var task domain.Task
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/tasks/%d", id), nil, patch, &task); err != nil {
		return nil, fmt.Errorf("update task %d: %w", id, err)
	}
	return &task, nil
}

// ChangeStatus applies a status transition.
func (c *Client) ChangeStatus(ctx context.Context, id int, change domain.StatusChange) (*domain.Task, error) {
	var task domain.Task
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/tasks/%d/status", id), nil, change, &task); err != nil {
		return nil, fmt.Errorf("change status of task %d: %w", id, err)
	}
	return &task, nil
}

// DeleteTask soft-deletes a task.
func (c *Client) DeleteTask(ctx context.Context, id int) error {
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/tasks/%d/delete", id), nil, nil, nil); err != nil {
		return fmt.Errorf("delete task %d: %w", id, err)
	}
	return nil
}

// RestoreTask restores a soft-deleted task.
func (c *Client) RestoreTask(ctx context.Context, id int) error {
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/tasks/%d/delete", id), nil, nil, nil); err != nil {
		return fmt.Errorf("restore task %d: %w", id, err)
	}
	return nil
}

// PurgeTask permanently deletes a task.
func (c *Client) PurgeTask(ctx context.Context, id int) error {
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/tasks/%d/delete", id), nil, nil, nil); err != nil {
		return fmt.Errorf("purge task %d: %w", id, err)
	}
	return nil
}

// AddComment creates a comment on a task.
func (c *Client) AddComment(ctx context.Context, taskID int, draft domain.CommentDraft) (*domain.Comment, error) {
	var comment domain.Comment
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/tasks/%d/comments", taskID), nil, draft, &comment); err != nil {
		return nil, fmt.Errorf("add comment to task %d: %w", taskID, err)
	}
	return &comment, nil
}

// UpdateComment edits an existing comment.
func (c *Client) UpdateComment(ctx context.Context, taskID, commentID int, text string) (*domain.Comment, error) {
	body := map[string]string{"text": text}
	var comment domain.Comment
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/tasks/%d/comments/%d", taskID, commentID), nil, body, &comment); err != nil {
		return nil, fmt.Errorf("update comment %d: %w", commentID, err)
	}
	return &comment, nil
}

// DeleteComment removes a comment.
func (c *Client) DeleteComment(ctx context.Context, taskID, commentID int) error {
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/tasks/%d/comments/%d", taskID, commentID), nil, nil, nil); err != nil {
		return fmt.Errorf("delete comment %d: %w", commentID, err)
	}
	return nil
}

// AddChecklistItem appends a checklist item.
func (c *Client) AddChecklistItem(ctx context.Context, taskID int, text string) (*domain.ChecklistItem, error) {
	body := map[string]string{"text": text}
	var item domain.ChecklistItem
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/tasks/%d/checklist", taskID), nil, body, &item); err != nil {
		return nil, fmt.Errorf("add checklist item to task %d: %w", taskID, err)
	}
	return &item, nil
}

// UpdateChecklistItem updates a checklist item in place.
func (c *Client) UpdateChecklistItem(ctx context.Context, taskID int, item domain.ChecklistItem) (*domain.ChecklistItem, error) {
	var out domain.ChecklistItem
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/tasks/%d/checklist/%d", taskID, item.ID), nil, item, &out); err != nil {
		return nil, fmt.Errorf("update checklist item %d: %w", item.ID, err)
	}
	return &out, nil
}

// DeleteChecklistItem removes a checklist item.
func (c *Client) DeleteChecklistItem(ctx context.Context, taskID, itemID int) error {
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/tasks/%d/checklist/%d", taskID, itemID), nil, nil, nil); err != nil {
		return fmt.Errorf("delete checklist item %d: %w", itemID, err)
	}
	return nil
}

// RestructureChecklist applies a structural operation (indent, outdent,
// move) to one item and returns the re-leveled list.
func (c *Client) RestructureChecklist(ctx context.Context, taskID, itemID int, op domain.ChecklistOp) ([]domain.ChecklistItem, error) {
	var items []domain.ChecklistItem
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/tasks/%d/checklist/%d", taskID, itemID), nil, op, &items); err != nil {
		return nil, fmt.Errorf("restructure checklist item %d: %w", itemID, err)
	}
	return items, nil
}

// ListUsers retrieves all users.
func (c *Client) ListUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := c.do(ctx, http.MethodGet, "/users", nil, nil, &users); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// ListProcesses retrieves all business processes.
func (c *Client) ListProcesses(ctx context.Context) ([]domain.Process, error) {
	var processes []domain.Process
	if err := c.do(ctx, http.MethodGet, "/business-processes", nil, nil, &processes); err != nil {
		return nil, fmt.Errorf("list processes: %w", err)
	}
	return processes, nil
}

// ListTags retrieves the known tags.
func (c *Client) ListTags(ctx context.Context) ([]string, error) {
	var tags []string
	if err := c.do(ctx, http.MethodGet, "/tags", nil, nil, &tags); err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return tags, nil
}

// ListNotifications retrieves a user's notifications.
func (c *Client) ListNotifications(ctx context.Context, userID int) ([]domain.Notification, error) {
	var notifications []domain.Notification
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/users/%d/notifications", userID), nil, nil, &notifications); err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return notifications, nil
}

// MarkNotificationRead marks one notification as read.
func (c *Client) MarkNotificationRead(ctx context.Context, userID, notificationID int) error {
	body := map[string]any{"id": notificationID, "isRead": true}
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/users/%d/notifications", userID), nil, body, nil); err != nil {
		return fmt.Errorf("mark notification %d read: %w", notificationID, err)
	}
	return nil
}

// Ensure Client implements the service ports.
var (
	_ domain.TaskService = (*Client)(nil)
	_ domain.Directory   = (*Client)(nil)
)
