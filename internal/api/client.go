// Package api is the typed client for the Promtec REST backend. Every method
// performs exactly one HTTP call and either returns the decoded body, narrowed
// to the domain model, or a tagged error.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/CiobanuAlexandruAndrei/GestionePromtec/internal/model"
)

// TokenSource supplies the bearer token for outgoing requests. It is read
// fresh on every call, never captured at construction time.
type TokenSource interface {
	Token() string
}

const (
	defaultBackendURL = "http://localhost:5000"
	defaultTimeout    = 30 * time.Second
)

// ResolveBaseURL turns the configured backend URL into the API base. A value
// that already denotes the API mount path is used verbatim; anything else gets
// the mount path appended.
func ResolveBaseURL(backendURL string) string {
	if backendURL == "" {
		backendURL = defaultBackendURL
	}
	if backendURL == "/api" {
		return "/api"
	}
	return strings.TrimSuffix(backendURL, "/") + "/api"
}

type Client struct {
	base     string
	httpc    *http.Client
	tokens   TokenSource
	validate *validator.Validate
}

func New(backendURL string, tokens TokenSource, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		base:     ResolveBaseURL(backendURL),
		httpc:    &http.Client{Timeout: timeout},
		tokens:   tokens,
		validate: validator.New(),
	}
}

// WithTokens returns a copy of the client bound to a different token source.
// The underlying HTTP client is shared.
func (c *Client) WithTokens(tokens TokenSource) *Client {
	cp := *c
	cp.tokens = tokens
	return &cp
}

func (c *Client) BaseURL() string { return c.base }

func (c *Client) endpoint(path string, query url.Values) string {
	target := c.base + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	return target
}

func (c *Client) authorize(req *http.Request) {
	if c.tokens == nil {
		return
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// send performs one request and decodes the response into out. Failures are
// logged here once so every endpoint wrapper inherits the policy.
func (c *Client) send(ctx context.Context, method, path string, query url.Values, contentType string, body io.Reader, out any) error {
	op := method + " " + path

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), body)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", contentType)
	c.authorize(req)

	resp, err := c.httpc.Do(req)
	if err != nil {
		log.Printf("api: %s failed: %v", op, err)
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("api: %s read failed: %v", op, err)
		return &TransportError{Op: op, Err: err}
	}
	if resp.StatusCode >= 400 {
		apiErr := backendError(resp.StatusCode, data)
		log.Printf("api: %s failed: %v", op, apiErr)
		return apiErr
	}
	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			log.Printf("api: %s decode failed: %v", op, err)
			return &TransportError{Op: op, Err: err}
		}
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return &TransportError{Op: method + " " + path, Err: err}
		}
		reader = bytes.NewReader(raw)
	}
	return c.send(ctx, method, path, query, "application/json", reader, out)
}

func backendError(status int, body []byte) *APIError {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	_ = json.Unmarshal(body, &payload)
	message := payload.Error
	if message == "" {
		message = payload.Message
	}
	code := ""
	if looksLikeCode(payload.Error) {
		code = payload.Error
	}
	return &APIError{Status: status, Code: code, Message: message}
}

// looksLikeCode reports whether an error payload carries a stable machine
// code (GENDER_NOT_ALLOWED) rather than prose.
func looksLikeCode(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if (r < 'A' || r > 'Z') && r != '_' {
			return false
		}
	}
	return true
}

func (c *Client) checkPayload(payload any) error {
	if err := c.validate.Struct(payload); err != nil {
		return &ValidationError{Code: CodeInvalidInput, Message: err.Error()}
	}
	return nil
}

// ListOptions hold the shared pagination, sorting and search parameters.
type ListOptions struct {
	Page      int
	PerPage   int
	SortBy    string
	SortOrder string
	Search    string
}

func (o ListOptions) query() url.Values {
	page := o.Page
	if page < 1 {
		page = 1
	}
	perPage := o.PerPage
	if perPage < 1 {
		perPage = 10
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(perPage))
	if o.SortBy != "" {
		q.Set("sort_by", o.SortBy)
	}
	if o.SortOrder != "" {
		q.Set("sort_order", o.SortOrder)
	}
	if o.Search != "" {
		q.Set("search", o.Search)
	}
	return q
}

// Security endpoints

type LoginResult struct {
	Token string            `json:"token"`
	User  model.UserProfile `json:"user"`
}

// Login exchanges credentials for a bearer token. The backend expects this
// single endpoint form-encoded; every other endpoint speaks JSON.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	var result LoginResult
	err := c.send(ctx, http.MethodPost, "/security/login", nil,
		"application/x-www-form-urlencoded", strings.NewReader(form.Encode()), &result)
	return result, err
}

// Logout invalidates every token the backend holds for the current user.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/security/logout", nil, nil, nil)
}

func (c *Client) Signup(ctx context.Context, req model.CreateUserRequest) (string, error) {
	if err := c.checkPayload(req); err != nil {
		return "", err
	}
	var out struct {
		Message string `json:"message"`
	}
	if err := c.do(ctx, http.MethodPost, "/security/create_user", nil, req, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

func (c *Client) ForgotPassword(ctx context.Context, email string) (string, error) {
	body := map[string]string{"email": email}
	var out struct {
		Message string `json:"message"`
	}
	if err := c.do(ctx, http.MethodPost, "/security/forgot-password", nil, body, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// VerifyResetToken never fails: an invalid or expired token is an expected
// outcome, so backend errors are folded into the returned value.
func (c *Client) VerifyResetToken(ctx context.Context, token string) model.ResetTokenCheck {
	op := "GET /security/verify-reset-token"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.endpoint("/security/verify-reset-token/"+url.PathEscape(token), nil), nil)
	if err != nil {
		return model.ResetTokenCheck{Valid: false, Error: "Errore di verifica del token"}
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.httpc.Do(req)
	if err != nil {
		log.Printf("api: %s failed: %v", op, err)
		return model.ResetTokenCheck{Valid: false, Error: "Errore di verifica del token"}
	}
	defer resp.Body.Close()

	var check model.ResetTokenCheck
	if err := json.NewDecoder(resp.Body).Decode(&check); err != nil {
		log.Printf("api: %s decode failed: %v", op, err)
		return model.ResetTokenCheck{Valid: false, Error: "Errore di verifica del token"}
	}
	if resp.StatusCode >= 400 {
		check.Valid = false
		if check.Error == "" {
			check.Error = "Errore di verifica del token"
		}
	}
	return check
}

func (c *Client) ResetPassword(ctx context.Context, token, password string) (string, error) {
	body := map[string]string{
		"password":         password,
		"confirm_password": password,
	}
	var out struct {
		Message string `json:"message"`
	}
	err := c.do(ctx, http.MethodPost, "/security/reset-password/"+url.PathEscape(token), nil, body, &out)
	if err != nil {
		return "", err
	}
	return out.Message, nil
}

// User management endpoints (admin only on the backend side)

func (c *Client) AllUsers(ctx context.Context) ([]model.User, error) {
	var out struct {
		Users []model.User `json:"users"`
	}
	if err := c.do(ctx, http.MethodGet, "/user-management/users", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Users, nil
}

func (c *Client) ApprovedUsers(ctx context.Context, opts ListOptions, filters model.UserFilters) (model.PaginatedUsers, error) {
	q := opts.query()
	if filters.SchoolName != "" {
		q.Set("school_name", filters.SchoolName)
	}
	if filters.IsAdmin != nil {
		q.Set("is_admin", strconv.FormatBool(*filters.IsAdmin))
	}
	if filters.IsActive != nil {
		q.Set("is_active", strconv.FormatBool(*filters.IsActive))
	}
	var out model.PaginatedUsers
	err := c.do(ctx, http.MethodGet, "/user-management/users/approved", q, nil, &out)
	return out, err
}

func (c *Client) PendingUsers(ctx context.Context, opts ListOptions, schoolName string) (model.PaginatedUsers, error) {
	q := opts.query()
	if schoolName != "" {
		q.Set("school_name", schoolName)
	}
	var out model.PaginatedUsers
	err := c.do(ctx, http.MethodGet, "/user-management/users/pending", q, nil, &out)
	return out, err
}

func (c *Client) User(ctx context.Context, userID int) (model.User, error) {
	var out model.User
	err := c.do(ctx, http.MethodGet, "/user-management/users/"+strconv.Itoa(userID), nil, nil, &out)
	return out, err
}

func (c *Client) UpdateUser(ctx context.Context, userID int, req model.UpdateUserRequest) error {
	if err := c.checkPayload(req); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPut, "/user-management/users/"+strconv.Itoa(userID), nil, req, nil)
}

func (c *Client) DeleteUser(ctx context.Context, userID int) error {
	return c.do(ctx, http.MethodDelete, "/user-management/users/"+strconv.Itoa(userID), nil, nil, nil)
}

func (c *Client) ApproveUser(ctx context.Context, userID int, approved bool) (model.ApprovalResponse, error) {
	body := map[string]bool{"is_approved": approved}
	var out model.ApprovalResponse
	err := c.do(ctx, http.MethodPost, "/user-management/users/approve/"+strconv.Itoa(userID), nil, body, &out)
	return out, err
}

// Slot endpoints

func (c *Client) Slots(ctx context.Context, opts ListOptions, filters model.SlotFilters) (model.PaginatedSlots, error) {
	q := opts.query()
	if filters.Date != "" {
		q.Set("date", filters.Date)
	}
	if filters.TimePeriod != "" {
		q.Set("time_period", filters.TimePeriod)
	}
	if filters.Department != "" {
		q.Set("department", filters.Department)
	}
	if filters.GenderCategory != "" {
		q.Set("gender_category", filters.GenderCategory)
	}
	if filters.IsLocked != nil {
		q.Set("is_locked", strconv.FormatBool(*filters.IsLocked))
	}
	var out model.PaginatedSlots
	err := c.do(ctx, http.MethodGet, "/slots/", q, nil, &out)
	return out, err
}

// Slot fetches one slot and derives the occupancy figures the backend does
// not send: registered count and remaining spots.
func (c *Client) Slot(ctx context.Context, slotID int) (model.SlotDetails, error) {
	var out model.SlotDetails
	if err := c.do(ctx, http.MethodGet, "/slots/"+strconv.Itoa(slotID), nil, nil, &out); err != nil {
		return model.SlotDetails{}, err
	}
	if out.Registrations == nil {
		out.Registrations = []model.Student{}
	}
	if out.WaitingList == nil {
		out.WaitingList = []model.Student{}
	}
	if out.SchoolsInfo == nil {
		out.SchoolsInfo = []model.SchoolCount{}
	}
	out.RegisteredCount = len(out.Registrations)
	out.AvailableSpots = out.TotalSpots - len(out.Registrations)
	return out, nil
}

func (c *Client) CreateSlot(ctx context.Context, req model.CreateSlotRequest) (model.Slot, error) {
	if err := c.checkPayload(req); err != nil {
		return model.Slot{}, err
	}
	var out struct {
		Slot model.Slot `json:"slot"`
	}
	if err := c.do(ctx, http.MethodPost, "/slots/", nil, req, &out); err != nil {
		return model.Slot{}, err
	}
	return out.Slot, nil
}

func (c *Client) UpdateSlot(ctx context.Context, slotID int, req model.UpdateSlotRequest) (model.Slot, error) {
	var out struct {
		Slot model.Slot `json:"slot"`
	}
	if err := c.do(ctx, http.MethodPut, "/slots/"+strconv.Itoa(slotID), nil, req, &out); err != nil {
		return model.Slot{}, err
	}
	return out.Slot, nil
}

func (c *Client) DeleteSlot(ctx context.Context, slotID int) error {
	return c.do(ctx, http.MethodDelete, "/slots/"+strconv.Itoa(slotID), nil, nil, nil)
}

// GenerateLetters downloads the confirmation letters document for a slot.
// The response is an opaque binary blob passed through with its content type.
func (c *Client) GenerateLetters(ctx context.Context, slotID int) ([]byte, string, error) {
	op := "GET /slots/{id}/generate-letters"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.endpoint("/slots/"+strconv.Itoa(slotID)+"/generate-letters", nil), nil)
	if err != nil {
		return nil, "", &TransportError{Op: op, Err: err}
	}
	c.authorize(req)

	resp, err := c.httpc.Do(req)
	if err != nil {
		log.Printf("api: %s failed: %v", op, err)
		return nil, "", &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", &TransportError{Op: op, Err: err}
	}
	if resp.StatusCode >= 400 {
		apiErr := backendError(resp.StatusCode, data)
		log.Printf("api: %s failed: %v", op, apiErr)
		return nil, "", apiErr
	}
	return data, resp.Header.Get("Content-Type"), nil
}

// ConfirmSlot marks a slot confirmed; the backend sends the notification
// emails as a side effect.
func (c *Client) ConfirmSlot(ctx context.Context, slotID int) (model.Slot, error) {
	var out struct {
		Message string     `json:"message"`
		Slot    model.Slot `json:"slot"`
	}
	if err := c.do(ctx, http.MethodPost, "/slots/"+strconv.Itoa(slotID)+"/confirm", nil, nil, &out); err != nil {
		return model.Slot{}, err
	}
	return out.Slot, nil
}

func (c *Client) SlotEnums(ctx context.Context) (model.SlotEnums, error) {
	var out model.SlotEnums
	err := c.do(ctx, http.MethodGet, "/slots/enum-values", nil, nil, &out)
	return out, err
}

func (c *Client) AvailableDates(ctx context.Context) ([]string, error) {
	var out struct {
		AvailableDates []string `json:"available_dates"`
	}
	if err := c.do(ctx, http.MethodGet, "/slots/available-dates", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.AvailableDates, nil
}

func (c *Client) OrganizationInfo(ctx context.Context) (model.OrganizationInfo, error) {
	var out model.OrganizationInfo
	if err := c.do(ctx, http.MethodGet, "/slots/organization-info", nil, nil, &out); err != nil {
		return model.OrganizationInfo{}, err
	}
	if out.FullName == "" {
		out.FullName = strings.TrimSpace(out.FirstName + " " + out.LastName)
	}
	return out, nil
}

// Enrollment and student endpoints

// CreateEnrollment registers a student against a slot. The backend signals a
// gender-eligibility rejection either through a failing status or through an
// error field on an otherwise successful response; both surface here as the
// same ValidationError so callers handle one shape.
func (c *Client) CreateEnrollment(ctx context.Context, slotID int, req model.CreateEnrollmentRequest) (model.Enrollment, error) {
	if err := c.checkPayload(req); err != nil {
		return model.Enrollment{}, err
	}
	var out struct {
		Error      string           `json:"error"`
		Enrollment model.Enrollment `json:"enrollment"`
	}
	err := c.do(ctx, http.MethodPost, "/slots/"+strconv.Itoa(slotID)+"/enrollments", nil, req, &out)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Code == CodeGenderNotAllowed {
			return model.Enrollment{}, &ValidationError{Code: CodeGenderNotAllowed, Message: genderNotAllowedMessage}
		}
		return model.Enrollment{}, err
	}
	if out.Error == CodeGenderNotAllowed {
		return model.Enrollment{}, &ValidationError{Code: CodeGenderNotAllowed, Message: genderNotAllowedMessage}
	}
	return out.Enrollment, nil
}

func (c *Client) DeleteEnrollment(ctx context.Context, enrollmentID int) error {
	return c.do(ctx, http.MethodDelete, "/slots/enrollments/"+strconv.Itoa(enrollmentID), nil, nil, nil)
}

func (c *Client) SetEnrollmentWaitingList(ctx context.Context, enrollmentID int, inWaitingList bool) (model.Enrollment, error) {
	body := map[string]bool{"is_in_waiting_list": inWaitingList}
	var out struct {
		Enrollment model.Enrollment `json:"enrollment"`
	}
	path := "/slots/enrollments/" + strconv.Itoa(enrollmentID) + "/waiting-list"
	if err := c.do(ctx, http.MethodPut, path, nil, body, &out); err != nil {
		return model.Enrollment{}, err
	}
	return out.Enrollment, nil
}

func (c *Client) SlotEnrollments(ctx context.Context, slotID int, waitingList *bool) ([]model.Enrollment, error) {
	var q url.Values
	if waitingList != nil {
		q = url.Values{}
		q.Set("is_waiting_list", strconv.FormatBool(*waitingList))
	}
	var out struct {
		Enrollments []model.Enrollment `json:"enrollments"`
	}
	if err := c.do(ctx, http.MethodGet, "/slots/"+strconv.Itoa(slotID)+"/enrollments", q, nil, &out); err != nil {
		return nil, err
	}
	return out.Enrollments, nil
}

func (c *Client) UpdateStudent(ctx context.Context, studentID int, req model.UpdateStudentRequest) (model.Student, error) {
	var out struct {
		Student model.Student `json:"student"`
	}
	if err := c.do(ctx, http.MethodPut, "/slots/students/"+strconv.Itoa(studentID), nil, req, &out); err != nil {
		return model.Student{}, err
	}
	return out.Student, nil
}

// School endpoints

func (c *Client) Schools(ctx context.Context) ([]string, error) {
	var out struct {
		Schools []string `json:"schools"`
	}
	if err := c.do(ctx, http.MethodGet, "/schools/", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Schools, nil
}

func (c *Client) CreateSchool(ctx context.Context, name string) error {
	if name == "" {
		return &ValidationError{Code: CodeInvalidInput, Message: "school name is required"}
	}
	body := map[string]string{"name": name}
	return c.do(ctx, http.MethodPost, "/schools/", nil, body, nil)
}
