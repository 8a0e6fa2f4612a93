// Package client talks to the employee directory REST API on behalf of one
// user and keeps that user's session.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"employee-directory/internal/model"

	"github.com/gofiber/fiber/v2"
)

const defaultTimeout = 15 * time.Second

var (
	// ErrUnauthorized is returned when the server rejected the token. The
	// session has already been cleared.
	ErrUnauthorized = errors.New("session expired")
	ErrNotLoggedIn  = errors.New("not logged in")
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

type Client struct {
	baseURL string
	timeout time.Duration
	storage Storage

	mu      sync.Mutex
	session Session
}

// New restores the stored session, if any.
func New(baseURL string, storage Storage) (*Client, error) {
	session, err := storage.Load()
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: defaultTimeout,
		storage: storage,
		session: session,
	}, nil
}

func (c *Client) Session() Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

func (c *Client) setSession(s Session) error {
	c.mu.Lock()
	c.session = s
	c.mu.Unlock()
	return c.storage.Save(s)
}

// Logout drops the session locally. Tokens are stateless, so the server is
// not involved.
func (c *Client) Logout() error {
	c.mu.Lock()
	c.session = Session{}
	c.mu.Unlock()
	return c.storage.Clear()
}

type authResponse struct {
	Msg   string `json:"msg"`
	Token string `json:"token"`
}

func (c *Client) Signup(ctx context.Context, username, email, password string) error {
	var resp authResponse
	a := fiber.Post(c.url("/api/auth/signup")).JSON(fiber.Map{
		"username": username,
		"email":    email,
		"password": password,
	})
	if err := c.send(ctx, a, false, &resp); err != nil {
		return err
	}
	return c.setSession(Session{Token: resp.Token, Username: username})
}

// Login resolves the username for the issued token and only then stores the
// session; a failure leaves the client anonymous.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var resp authResponse
	a := fiber.Post(c.url("/api/auth/login")).JSON(fiber.Map{
		"email":    email,
		"password": password,
	})
	if err := c.send(ctx, a, false, &resp); err != nil {
		return err
	}

	var profile model.UserProfile
	me := fiber.Get(c.url("/api/user")).Set(fiber.HeaderAuthorization, "Bearer "+resp.Token)
	if err := c.send(ctx, me, false, &profile); err != nil {
		return err
	}
	return c.setSession(Session{Token: resp.Token, Username: profile.Username})
}

func (c *Client) Me(ctx context.Context) (*model.UserProfile, error) {
	var profile model.UserProfile
	if err := c.send(ctx, fiber.Get(c.url("/api/user")), true, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *Client) ListEmployees(ctx context.Context) ([]model.Employee, error) {
	var employees []model.Employee
	if err := c.send(ctx, fiber.Get(c.url("/api/employees")), true, &employees); err != nil {
		return nil, err
	}
	return employees, nil
}

func (c *Client) RecentEmployees(ctx context.Context) ([]model.Employee, error) {
	var employees []model.Employee
	if err := c.send(ctx, fiber.Get(c.url("/api/employees/recent")), true, &employees); err != nil {
		return nil, err
	}
	return employees, nil
}

func (c *Client) GetEmployee(ctx context.Context, id string) (*model.Employee, error) {
	var employee model.Employee
	if err := c.send(ctx, fiber.Get(c.url("/api/employees/"+id)), true, &employee); err != nil {
		return nil, err
	}
	return &employee, nil
}

// CreateEmployee uploads a new record. imageName is the file name sent with
// the image part.
func (c *Client) CreateEmployee(ctx context.Context, in model.EmployeeInput, imageName string) (*model.Employee, error) {
	args := fiber.AcquireArgs()
	defer fiber.ReleaseArgs(args)
	args.Set("name", in.Name)
	args.Set("email", in.Email)
	args.Set("mobile", in.Mobile)
	args.Set("designation", in.Designation)
	args.Set("gender", in.Gender)
	args.Set("course", in.Course)
	args.Set("createdDate", in.CreatedDate)

	a := fiber.Post(c.url("/api/employees"))
	if len(in.Image) > 0 {
		a.FileData(&fiber.FormFile{Fieldname: "image", Name: imageName, Content: in.Image})
	}
	a.MultipartForm(args)

	return c.sendRaw(ctx, a)
}

// UpdateEmployee sends only the fields set in upd.
func (c *Client) UpdateEmployee(ctx context.Context, id string, upd model.EmployeeUpdate, imageName string) (*model.Employee, error) {
	args := fiber.AcquireArgs()
	defer fiber.ReleaseArgs(args)
	for key, v := range map[string]*string{
		"name":        upd.Name,
		"email":       upd.Email,
		"mobile":      upd.Mobile,
		"designation": upd.Designation,
		"gender":      upd.Gender,
		"course":      upd.Course,
		"createdDate": upd.CreatedDate,
	} {
		if v != nil {
			args.Set(key, *v)
		}
	}

	a := fiber.Put(c.url("/api/employees/" + id))
	if len(upd.Image) > 0 {
		a.FileData(&fiber.FormFile{Fieldname: "image", Name: imageName, Content: upd.Image})
	}
	a.MultipartForm(args)

	return c.sendRaw(ctx, a)
}

func (c *Client) DeleteEmployee(ctx context.Context, id string) error {
	return c.send(ctx, fiber.Delete(c.url("/api/employees/"+id)), true, nil)
}

func (c *Client) url(path string) string {
	return c.baseURL + path
}

// sendRaw decodes a write response, whose image comes back in Buffer form.
func (c *Client) sendRaw(ctx context.Context, a *fiber.Agent) (*model.Employee, error) {
	var raw model.EmployeeRaw
	if err := c.send(ctx, a, true, &raw); err != nil {
		return nil, err
	}
	employee := raw.Employee
	if employee == nil {
		employee = &model.Employee{}
	}
	employee.Image = []byte(raw.Image)
	return employee, nil
}

// send performs the request and decodes a 2xx body into out. A 401 on an
// authenticated request clears the session and yields ErrUnauthorized.
func (c *Client) send(ctx context.Context, a *fiber.Agent, authed bool, out any) error {
	if err := ctx.Err(); err != nil {
		fiber.ReleaseAgent(a)
		return err
	}

	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}
	a.Timeout(timeout)

	if authed {
		token := c.Session().Token
		if token == "" {
			fiber.ReleaseAgent(a)
			return ErrNotLoggedIn
		}
		a.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	code, body, errs := a.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("request failed: %w", errors.Join(errs...))
	}

	if code == fiber.StatusUnauthorized && authed {
		if err := c.Logout(); err != nil {
			return errors.Join(ErrUnauthorized, err)
		}
		return ErrUnauthorized
	}
	if code >= fiber.StatusBadRequest {
		return apiError(code, body)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func apiError(code int, body []byte) *APIError {
	var payload struct {
		Msg   string `json:"msg"`
		Error string `json:"error"`
	}
	_ = json.Unmarshal(body, &payload)

	msg := payload.Error
	if msg == "" {
		msg = payload.Msg
	}
	if msg == "" {
		msg = strings.TrimSpace(string(body))
	}
	return &APIError{Status: code, Message: msg}
}
