package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/avelichko/fabplan/internal/board"
	"github.com/avelichko/fabplan/internal/contract"
	"github.com/avelichko/fabplan/internal/domain"
)

// TokenSource supplies the bearer token for each request. An empty token
// with a nil error means "not logged in" and fails the call before any
// network traffic.
type TokenSource interface {
	Token() (string, error)
}

// StaticToken is a TokenSource wrapping a fixed token string.
type StaticToken string

func (t StaticToken) Token() (string, error) { return string(t), nil }

// Client is the full surface of the project-tracking backend the program
// consumes. It includes the board.DataAccess slice used by the reorder
// coordinator.
type Client interface {
	board.DataAccess

	UpdateProject(ctx context.Context, projectID string, upd contract.ProjectUpdate) error
	UpdateProduct(ctx context.Context, projectID, productID string, upd contract.ProductUpdate) error

	CreateProject(ctx context.Context, p *domain.Project) (*domain.Project, error)
	CreateProduct(ctx context.Context, projectID string, p *domain.Product) (*domain.Product, error)
	CreateStage(ctx context.Context, productID string, s *domain.Stage) (*domain.Stage, error)
	DeleteStage(ctx context.Context, productID, stageID string) error

	ListNomenclature(ctx context.Context, search string, page, limit int) ([]*domain.NomenclatureItem, int, error)
	CreateNomenclature(ctx context.Context, item *domain.NomenclatureItem) (*domain.NomenclatureItem, error)

	GetSpecification(ctx context.Context, productID string) ([]*domain.SpecificationLine, error)
	AddSpecificationLine(ctx context.Context, productID string, line *domain.SpecificationLine) (*domain.SpecificationLine, error)
	RemoveSpecificationLine(ctx context.Context, productID, lineID string) error
}

// restClient implements Client over the authenticated HTTP API.
type restClient struct {
	cfg    Config
	tokens TokenSource
	http   *http.Client
	log    *zap.Logger
}

// NewClient creates a Client for the configured backend. A nil logger
// disables logging.
func NewClient(cfg Config, tokens TokenSource, log *zap.Logger) Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &restClient{
		cfg:    cfg,
		tokens: tokens,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		log: log,
	}
}

func (c *restClient) FetchBoard(ctx context.Context) ([]*domain.Stage, error) {
	var rows []ganttRow
	if err := c.get(ctx, "/projects/gantt", &rows); err != nil {
		return nil, err
	}
	now := time.Now()
	stages := make([]*domain.Stage, len(rows))
	for i, r := range rows {
		stages[i] = r.toDomain(now)
	}
	return stages, nil
}

func (c *restClient) ReorderStages(ctx context.Context, productID string, orders []contract.StageOrder) error {
	path := "/projects/products/" + url.PathEscape(productID) + "/work-stages/order"
	return c.do(ctx, http.MethodPut, path, stageOrderBody{Stages: orders}, nil)
}

func (c *restClient) ReorderProducts(ctx context.Context, orders []contract.ProductOrder) error {
	return c.do(ctx, http.MethodPut, "/projects/products/reorder", productOrderBody{ProductOrders: orders}, nil)
}

func (c *restClient) ReorderProjects(ctx context.Context, orders []contract.ProjectOrder) error {
	return c.do(ctx, http.MethodPut, "/projects/reorder", projectOrderBody{ProjectOrders: orders}, nil)
}

func (c *restClient) UpdateProject(ctx context.Context, projectID string, upd contract.ProjectUpdate) error {
	return c.do(ctx, http.MethodPut, "/projects/"+url.PathEscape(projectID), upd, nil)
}

func (c *restClient) UpdateProduct(ctx context.Context, projectID, productID string, upd contract.ProductUpdate) error {
	path := "/projects/" + url.PathEscape(projectID) + "/products/" + url.PathEscape(productID)
	return c.do(ctx, http.MethodPut, path, upd, nil)
}

func (c *restClient) CreateProject(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	body := projectBody{
		Name:      p.Name,
		Status:    string(p.Status),
		StartDate: p.StartDate.Format("2006-01-02"),
		Manager:   p.Manager,
	}
	if p.TargetDate != nil {
		body.TargetDate = p.TargetDate.Format("2006-01-02")
	}
	var resp projectBody
	if err := c.do(ctx, http.MethodPost, "/projects", body, &resp); err != nil {
		return nil, err
	}
	created := *p
	created.ID = resp.ID
	created.OrderIndex = resp.OrderIndex
	return &created, nil
}

func (c *restClient) CreateProduct(ctx context.Context, projectID string, p *domain.Product) (*domain.Product, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	body := productBody{Name: p.Name, Status: string(p.Status)}
	var resp productBody
	path := "/projects/" + url.PathEscape(projectID) + "/products"
	if err := c.do(ctx, http.MethodPost, path, body, &resp); err != nil {
		return nil, err
	}
	created := *p
	created.ID = resp.ID
	created.ProjectID = projectID
	created.Version = resp.Version
	created.OrderIndex = resp.OrderIndex
	return &created, nil
}

func (c *restClient) CreateStage(ctx context.Context, productID string, s *domain.Stage) (*domain.Stage, error) {
	if s.Name == "" {
		return nil, fmt.Errorf("stage name is required")
	}
	body := stageBody{
		Name:      s.Name,
		StartDate: s.StartDate.Format("2006-01-02"),
		EndDate:   s.EndDate.Format("2006-01-02"),
		Order:     s.OrderIndex,
	}
	var resp stageBody
	path := "/projects/products/" + url.PathEscape(productID) + "/work-stages"
	if err := c.do(ctx, http.MethodPost, path, body, &resp); err != nil {
		return nil, err
	}
	created := *s
	created.ID = resp.ID
	created.ProductID = productID
	return &created, nil
}

func (c *restClient) DeleteStage(ctx context.Context, productID, stageID string) error {
	path := "/projects/products/" + url.PathEscape(productID) + "/work-stages/" + url.PathEscape(stageID)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *restClient) ListNomenclature(ctx context.Context, search string, page, limit int) ([]*domain.NomenclatureItem, int, error) {
	q := url.Values{}
	if search != "" {
		q.Set("search", search)
	}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	path := "/nomenclature"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var resp nomenclaturePage
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, 0, err
	}
	items := make([]*domain.NomenclatureItem, len(resp.Items))
	for i, b := range resp.Items {
		items[i] = b.toDomain()
	}
	return items, resp.Total, nil
}

func (c *restClient) CreateNomenclature(ctx context.Context, item *domain.NomenclatureItem) (*domain.NomenclatureItem, error) {
	if err := item.Validate(); err != nil {
		return nil, err
	}
	body := nomenclatureBody{
		Designation: item.Designation,
		Name:        item.Name,
		Article:     item.Article,
		Unit:        item.Unit,
	}
	var resp nomenclatureBody
	if err := c.do(ctx, http.MethodPost, "/nomenclature", body, &resp); err != nil {
		return nil, err
	}
	created := *item
	created.ID = resp.ID
	return &created, nil
}

func (c *restClient) GetSpecification(ctx context.Context, productID string) ([]*domain.SpecificationLine, error) {
	var rows []specLineBody
	path := "/products/" + url.PathEscape(productID) + "/specification"
	if err := c.get(ctx, path, &rows); err != nil {
		return nil, err
	}
	lines := make([]*domain.SpecificationLine, len(rows))
	for i, b := range rows {
		lines[i] = b.toDomain(productID)
	}
	return lines, nil
}

func (c *restClient) AddSpecificationLine(ctx context.Context, productID string, line *domain.SpecificationLine) (*domain.SpecificationLine, error) {
	if err := line.Validate(); err != nil {
		return nil, err
	}
	body := specLineBody{
		NomenclatureID: line.NomenclatureID,
		Quantity:       line.Quantity,
	}
	var resp specLineBody
	path := "/products/" + url.PathEscape(productID) + "/specification"
	if err := c.do(ctx, http.MethodPost, path, body, &resp); err != nil {
		return nil, err
	}
	return resp.toDomain(productID), nil
}

func (c *restClient) RemoveSpecificationLine(ctx context.Context, productID, lineID string) error {
	path := "/products/" + url.PathEscape(productID) + "/specification/" + url.PathEscape(lineID)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// get performs an idempotent GET with the configured retry budget.
func (c *restClient) get(ctx context.Context, path string, out any) error {
	var lastErr error
	attempts := 1 + c.cfg.MaxRetries
	for i := 0; i < attempts; i++ {
		lastErr = c.do(ctx, http.MethodGet, path, nil, out)
		if lastErr == nil {
			return nil
		}
		// Retrying is pointless once the context is gone or the server
		// answered with a definite status.
		if ctx.Err() != nil || !errors.Is(lastErr, ErrUnavailable) {
			return lastErr
		}
	}
	return lastErr
}

// do performs one authenticated request and decodes the response into out
// when out is non-nil. Status mapping: 401 → ErrUnauthorized, 409 →
// ErrConflict, other non-2xx → wrapped status error.
func (c *restClient) do(ctx context.Context, method, path string, body, out any) error {
	token, err := c.tokens.Token()
	if err != nil {
		return fmt.Errorf("loading token: %w", err)
	}
	if token == "" {
		return ErrNoToken
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.TimeoutMs)*time.Millisecond)
	defer cancel()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		var netErr *net.OpError
		if errors.As(err, &netErr) {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	c.log.Debug("request complete",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Int64("latency_ms", time.Since(start).Milliseconds()))

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case resp.StatusCode == http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrConflict, string(respBody))
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("backend returned status %d: %s", resp.StatusCode, string(respBody))
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}
