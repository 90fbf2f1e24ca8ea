package app

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"jobtracker/internal/model"
	"jobtracker/internal/repository"
)

var (
	ErrValidation          = errors.New("validation failed")
	ErrEmptyUpdate         = errors.New("no fields provided for update")
	ErrApplicationNotFound = errors.New("application not found")
)

var currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)

const (
	defaultCurrency = "USD"
	maxListLimit    = 100
)

type ApplicationService struct {
	appRepo *repository.ApplicationRepository
}

func NewApplicationService(appRepo *repository.ApplicationRepository) *ApplicationService {
	return &ApplicationService{appRepo: appRepo}
}

type CreateApplicationInput struct {
	CompanyName     string
	JobTitle        string
	JobURL          string
	JobDescription  string
	Location        string
	SalaryMin       *int
	SalaryMax       *int
	Currency        string
	JobType         string
	RemoteType      string
	ApplicationDate *model.Date
	Deadline        *model.Date
	Status          string
	Priority        string
	Notes           string
	ReferralName    string
	ContactEmail    string
	ContactPerson   string
}

// UpdateApplicationInput carries a partial update: nil fields are left
// untouched, supplied fields are validated with the same rules as create.
type UpdateApplicationInput struct {
	CompanyName     *string
	JobTitle        *string
	JobURL          *string
	JobDescription  *string
	Location        *string
	SalaryMin       *int
	SalaryMax       *int
	Currency        *string
	JobType         *string
	RemoteType      *string
	ApplicationDate *model.Date
	Deadline        *model.Date
	Status          *string
	Priority        *string
	Notes           *string
	ReferralName    *string
	ContactEmail    *string
	ContactPerson   *string
}

type ListApplicationsInput struct {
	Page        int
	Limit       int
	Status      string
	CompanyName string
	OwnerID     *uint
}

type ApplicationStats struct {
	Total    int64
	ByStatus map[model.ApplicationStatus]int64
}

func (s *ApplicationService) Create(input CreateApplicationInput, ownerID *uint) (*model.Application, error) {
	company, err := requiredText("company_name", input.CompanyName, 200)
	if err != nil {
		return nil, err
	}
	title, err := requiredText("job_title", input.JobTitle, 200)
	if err != nil {
		return nil, err
	}
	currency, err := normalizeCurrency(input.Currency)
	if err != nil {
		return nil, err
	}
	if err := validateSalaryRange(input.SalaryMin, input.SalaryMax); err != nil {
		return nil, err
	}

	status := model.ApplicationStatus(input.Status)
	if status == "" {
		status = model.StatusApplied
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, input.Status)
	}

	priority := model.Priority(input.Priority)
	if priority == "" {
		priority = model.PriorityMedium
	}
	if !priority.Valid() {
		return nil, fmt.Errorf("%w: unknown priority %q", ErrValidation, input.Priority)
	}

	jobType := model.JobType(input.JobType)
	if jobType != "" && !jobType.Valid() {
		return nil, fmt.Errorf("%w: unknown job_type %q", ErrValidation, input.JobType)
	}
	remoteType := model.RemoteType(input.RemoteType)
	if remoteType != "" && !remoteType.Valid() {
		return nil, fmt.Errorf("%w: unknown remote_type %q", ErrValidation, input.RemoteType)
	}

	app := &model.Application{
		UserID:          ownerID,
		CompanyName:     company,
		JobTitle:        title,
		JobURL:          strings.TrimSpace(input.JobURL),
		JobDescription:  input.JobDescription,
		Location:        strings.TrimSpace(input.Location),
		SalaryMin:       input.SalaryMin,
		SalaryMax:       input.SalaryMax,
		Currency:        currency,
		JobType:         jobType,
		RemoteType:      remoteType,
		ApplicationDate: input.ApplicationDate,
		Deadline:        input.Deadline,
		Status:          status,
		Priority:        priority,
		Notes:           input.Notes,
		ReferralName:    strings.TrimSpace(input.ReferralName),
		ContactEmail:    strings.TrimSpace(input.ContactEmail),
		ContactPerson:   strings.TrimSpace(input.ContactPerson),
	}
	if err := s.appRepo.Create(app); err != nil {
		return nil, err
	}
	return app, nil
}

func (s *ApplicationService) Get(id uint, ownerID *uint) (*model.Application, error) {
	app, err := s.appRepo.GetByID(id, ownerID)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, ErrApplicationNotFound
	}
	return app, nil
}

// List returns one pagination window plus the total matching count. Pages
// are 1-indexed; the offset is (page-1)*limit.
func (s *ApplicationService) List(input ListApplicationsInput) ([]model.Application, int64, error) {
	if input.Page < 1 {
		return nil, 0, fmt.Errorf("%w: page must be >= 1", ErrValidation)
	}
	if input.Limit < 1 || input.Limit > maxListLimit {
		return nil, 0, fmt.Errorf("%w: limit must be between 1 and %d", ErrValidation, maxListLimit)
	}

	status := model.ApplicationStatus(input.Status)
	if status != "" && !status.Valid() {
		return nil, 0, fmt.Errorf("%w: unknown status %q", ErrValidation, input.Status)
	}

	filter := repository.ApplicationFilter{
		OwnerID:     input.OwnerID,
		Status:      status,
		CompanyName: strings.TrimSpace(input.CompanyName),
	}

	total, err := s.appRepo.Count(filter)
	if err != nil {
		return nil, 0, err
	}

	offset := (input.Page - 1) * input.Limit
	apps, err := s.appRepo.List(filter, offset, input.Limit)
	if err != nil {
		return nil, 0, err
	}
	return apps, total, nil
}

func (s *ApplicationService) Update(id uint, input UpdateApplicationInput, ownerID *uint) (*model.Application, error) {
	if !input.hasFields() {
		return nil, ErrEmptyUpdate
	}

	app, err := s.appRepo.GetByID(id, ownerID)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, ErrApplicationNotFound
	}

	if input.CompanyName != nil {
		company, err := requiredText("company_name", *input.CompanyName, 200)
		if err != nil {
			return nil, err
		}
		app.CompanyName = company
	}
	if input.JobTitle != nil {
		title, err := requiredText("job_title", *input.JobTitle, 200)
		if err != nil {
			return nil, err
		}
		app.JobTitle = title
	}
	if input.JobURL != nil {
		app.JobURL = strings.TrimSpace(*input.JobURL)
	}
	if input.JobDescription != nil {
		app.JobDescription = *input.JobDescription
	}
	if input.Location != nil {
		app.Location = strings.TrimSpace(*input.Location)
	}
	if err := validateSalaryRange(input.SalaryMin, input.SalaryMax); err != nil {
		return nil, err
	}
	if input.SalaryMin != nil {
		app.SalaryMin = input.SalaryMin
	}
	if input.SalaryMax != nil {
		app.SalaryMax = input.SalaryMax
	}
	if input.Currency != nil {
		currency, err := normalizeCurrency(*input.Currency)
		if err != nil {
			return nil, err
		}
		app.Currency = currency
	}
	if input.JobType != nil {
		jobType := model.JobType(*input.JobType)
		if !jobType.Valid() {
			return nil, fmt.Errorf("%w: unknown job_type %q", ErrValidation, *input.JobType)
		}
		app.JobType = jobType
	}
	if input.RemoteType != nil {
		remoteType := model.RemoteType(*input.RemoteType)
		if !remoteType.Valid() {
			return nil, fmt.Errorf("%w: unknown remote_type %q", ErrValidation, *input.RemoteType)
		}
		app.RemoteType = remoteType
	}
	if input.ApplicationDate != nil {
		app.ApplicationDate = input.ApplicationDate
	}
	if input.Deadline != nil {
		app.Deadline = input.Deadline
	}
	if input.Status != nil {
		status := model.ApplicationStatus(*input.Status)
		if !status.Valid() {
			return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, *input.Status)
		}
		app.Status = status
	}
	if input.Priority != nil {
		priority := model.Priority(*input.Priority)
		if !priority.Valid() {
			return nil, fmt.Errorf("%w: unknown priority %q", ErrValidation, *input.Priority)
		}
		app.Priority = priority
	}
	if input.Notes != nil {
		app.Notes = *input.Notes
	}
	if input.ReferralName != nil {
		app.ReferralName = strings.TrimSpace(*input.ReferralName)
	}
	if input.ContactEmail != nil {
		app.ContactEmail = strings.TrimSpace(*input.ContactEmail)
	}
	if input.ContactPerson != nil {
		app.ContactPerson = strings.TrimSpace(*input.ContactPerson)
	}

	if err := s.appRepo.Save(app); err != nil {
		return nil, err
	}
	return app, nil
}

func (s *ApplicationService) Delete(id uint, ownerID *uint) error {
	deleted, err := s.appRepo.Delete(id, ownerID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrApplicationNotFound
	}
	return nil
}

// Stats issues one filtered count per status value plus an overall total.
func (s *ApplicationService) Stats(ownerID *uint) (*ApplicationStats, error) {
	total, err := s.appRepo.Count(repository.ApplicationFilter{OwnerID: ownerID})
	if err != nil {
		return nil, err
	}

	byStatus := make(map[model.ApplicationStatus]int64, len(model.AllStatuses))
	for _, status := range model.AllStatuses {
		count, err := s.appRepo.Count(repository.ApplicationFilter{OwnerID: ownerID, Status: status})
		if err != nil {
			return nil, err
		}
		byStatus[status] = count
	}

	return &ApplicationStats{Total: total, ByStatus: byStatus}, nil
}

func (in UpdateApplicationInput) hasFields() bool {
	return in.CompanyName != nil ||
		in.JobTitle != nil ||
		in.JobURL != nil ||
		in.JobDescription != nil ||
		in.Location != nil ||
		in.SalaryMin != nil ||
		in.SalaryMax != nil ||
		in.Currency != nil ||
		in.JobType != nil ||
		in.RemoteType != nil ||
		in.ApplicationDate != nil ||
		in.Deadline != nil ||
		in.Status != nil ||
		in.Priority != nil ||
		in.Notes != nil ||
		in.ReferralName != nil ||
		in.ContactEmail != nil ||
		in.ContactPerson != nil
}

func requiredText(field, value string, maxLen int) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", fmt.Errorf("%w: %s cannot be empty or just whitespace", ErrValidation, field)
	}
	if len(trimmed) > maxLen {
		return "", fmt.Errorf("%w: %s must be at most %d characters", ErrValidation, field, maxLen)
	}
	return trimmed, nil
}

func normalizeCurrency(raw string) (string, error) {
	currency := strings.ToUpper(strings.TrimSpace(raw))
	if currency == "" {
		return defaultCurrency, nil
	}
	if !currencyPattern.MatchString(currency) {
		return "", fmt.Errorf("%w: currency must be a 3-letter code (e.g. USD, EUR)", ErrValidation)
	}
	return currency, nil
}

func validateSalaryRange(salaryMin, salaryMax *int) error {
	if salaryMin != nil && *salaryMin < 0 {
		return fmt.Errorf("%w: salary_min must be non-negative", ErrValidation)
	}
	if salaryMax != nil && *salaryMax < 0 {
		return fmt.Errorf("%w: salary_max must be non-negative", ErrValidation)
	}
	if salaryMin != nil && salaryMax != nil && *salaryMax <= *salaryMin {
		return fmt.Errorf("%w: maximum salary must be greater than minimum salary", ErrValidation)
	}
	return nil
}
