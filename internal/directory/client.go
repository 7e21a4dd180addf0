// internal/directory/client.go
package directory

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"pizza-dashboard/internal/common/errors"
	commonhttp "pizza-dashboard/internal/common/http"
	"pizza-dashboard/internal/common/logger"
	"pizza-dashboard/internal/common/metrics"
	"pizza-dashboard/internal/common/observability"
	"pizza-dashboard/internal/common/validation"
	"pizza-dashboard/internal/models"

	"go.opentelemetry.io/otel/attribute"
)

// Operation names used for metrics, spans and logs.
const (
	OpLogin           = "login"
	OpRegister        = "register"
	OpLogout          = "logout"
	OpGetMe           = "get_me"
	OpListUsers       = "list_users"
	OpDeleteUser      = "delete_user"
	OpListFranchises  = "list_franchises"
	OpCreateFranchise = "create_franchise"
	OpCloseFranchise  = "close_franchise"
	OpCloseStore      = "close_store"
	OpCreateStore     = "create_store"
)

// Client talks to the JWT Pizza service. A Client is bound to at most one
// bearer token; use WithToken to derive a client for a given principal.
type Client struct {
	http           *commonhttp.Client
	logger         logger.Logger
	obs            *observability.Observability
	validateSchema bool
	token          string
}

type Options struct {
	BaseURL        string
	Timeout        time.Duration
	ValidateSchema bool
	Logger         logger.Logger
	Observability  *observability.Observability
}

func NewClient(opts Options) *Client {
	log := opts.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Client{
		http:           commonhttp.NewClient(opts.BaseURL, opts.Timeout),
		logger:         log,
		obs:            opts.Observability,
		validateSchema: opts.ValidateSchema,
	}
}

// WithToken returns a copy of c that authenticates as token.
func (c *Client) WithToken(token string) *Client {
	clone := *c
	clone.token = token
	return &clone
}

func (c *Client) Token() string {
	return c.token
}

// Login exchanges credentials for a token (PUT /api/auth).
func (c *Client) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	err := c.call(ctx, OpLogin, commonhttp.Request{
		Method: http.MethodPut,
		Path:   "/api/auth",
		Body:   map[string]string{"email": email, "password": password},
	}, validation.SchemaAuthResponse, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates a diner account (POST /api/auth).
func (c *Client) Register(ctx context.Context, name, email, password string) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	err := c.call(ctx, OpRegister, commonhttp.Request{
		Method: http.MethodPost,
		Path:   "/api/auth",
		Body:   map[string]string{"name": name, "email": email, "password": password},
	}, validation.SchemaAuthResponse, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.call(ctx, OpLogout, commonhttp.Request{Method: http.MethodDelete, Path: "/api/auth"}, "", nil)
}

func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.call(ctx, OpGetMe, commonhttp.Request{Method: http.MethodGet, Path: "/api/user/me"}, validation.SchemaUser, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsers fetches the complete user list in one call.
func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	var list models.UserList
	if err := c.call(ctx, OpListUsers, commonhttp.Request{Method: http.MethodGet, Path: "/api/user"}, validation.SchemaUserList, &list); err != nil {
		return nil, err
	}
	if list.Users == nil {
		list.Users = []models.User{}
	}
	return list.Users, nil
}

func (c *Client) DeleteUser(ctx context.Context, id models.ID) error {
	return c.call(ctx, OpDeleteUser, commonhttp.Request{
		Method: http.MethodDelete,
		Path:   "/api/user/" + url.PathEscape(id.String()),
	}, "", nil)
}

// ListFranchises requests one page. pattern is passed through verbatim as the
// name filter; "*" acts as a wildcard on the service side.
func (c *Client) ListFranchises(ctx context.Context, page, limit int, pattern string) (models.FranchiseList, error) {
	var list models.FranchiseList
	err := c.call(ctx, OpListFranchises, commonhttp.Request{
		Method: http.MethodGet,
		Path:   "/api/franchise",
		Query: url.Values{
			"page":  {strconv.Itoa(page)},
			"limit": {strconv.Itoa(limit)},
			"name":  {pattern},
		},
	}, validation.SchemaFranchiseList, &list)
	if err != nil {
		return models.FranchiseList{}, err
	}
	if list.Franchises == nil {
		list.Franchises = []models.Franchise{}
	}
	return list, nil
}

func (c *Client) CreateFranchise(ctx context.Context, name string, adminEmails []string) (*models.Franchise, error) {
	req := models.CreateFranchiseRequest{Name: name, Admins: make([]models.AdminEmail, 0, len(adminEmails))}
	for _, e := range adminEmails {
		req.Admins = append(req.Admins, models.AdminEmail{Email: e})
	}

	var franchise models.Franchise
	err := c.call(ctx, OpCreateFranchise, commonhttp.Request{
		Method: http.MethodPost,
		Path:   "/api/franchise",
		Body:   req,
	}, "", &franchise)
	if err != nil {
		return nil, err
	}
	return &franchise, nil
}

func (c *Client) CloseFranchise(ctx context.Context, id models.ID) error {
	return c.call(ctx, OpCloseFranchise, commonhttp.Request{
		Method: http.MethodDelete,
		Path:   "/api/franchise/" + url.PathEscape(id.String()),
	}, "", nil)
}

func (c *Client) CloseStore(ctx context.Context, franchiseID, storeID models.ID) error {
	return c.call(ctx, OpCloseStore, commonhttp.Request{
		Method: http.MethodDelete,
		Path:   "/api/franchise/" + url.PathEscape(franchiseID.String()) + "/store/" + url.PathEscape(storeID.String()),
	}, "", nil)
}

func (c *Client) CreateStore(ctx context.Context, franchiseID models.ID, name string) (*models.Store, error) {
	var store models.Store
	err := c.call(ctx, OpCreateStore, commonhttp.Request{
		Method: http.MethodPost,
		Path:   "/api/franchise/" + url.PathEscape(franchiseID.String()) + "/store",
		Body:   models.CreateStoreRequest{Name: name},
	}, "", &store)
	if err != nil {
		return nil, err
	}
	return &store, nil
}

func (c *Client) call(ctx context.Context, operation string, req commonhttp.Request, schema string, out interface{}) error {
	ctx, span := c.obs.StartSpan(ctx, "directory."+operation,
		attribute.String("http.method", req.Method),
		attribute.String("http.route", req.Path),
	)
	start := time.Now()

	req.Token = c.token
	data, err := c.http.Do(ctx, req)
	if err == nil && out != nil {
		err = c.decode(schema, data, out)
	}

	duration := time.Since(start)
	outcome := "success"
	if err != nil {
		outcome = strings.ToLower(string(errors.CodeOf(err)))
	}
	metrics.DirectoryRequests.WithLabelValues(operation, outcome).Inc()
	metrics.DirectoryRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
	c.obs.RecordCall(ctx, operation, outcome, duration)
	observability.EndSpan(span, err)

	fields := map[string]interface{}{
		"operation":  operation,
		"method":     req.Method,
		"path":       req.Path,
		"durationMs": duration.Milliseconds(),
	}
	if err != nil {
		fields["errorCode"] = string(errors.CodeOf(err))
		c.logger.Warn("directory call failed", fields)
		return err
	}
	c.logger.Debug("directory call completed", fields)
	return nil
}

func (c *Client) decode(schema string, data []byte, out interface{}) error {
	if len(data) == 0 {
		return errors.NewInvalidResponseError("empty response body")
	}
	if c.validateSchema && schema != "" {
		result, err := validation.ValidateResponse(schema, data)
		if err != nil {
			return errors.NewInvalidResponseError(err.Error())
		}
		if !result.Valid {
			return errors.NewInvalidResponseError(strings.Join(result.GetErrorMessages(), "; "))
		}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errors.NewInvalidResponseError(err.Error())
	}
	return nil
}
