package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/researchcollab/research-collab-api/internal/credit"
	"github.com/researchcollab/research-collab-api/internal/models"
	"github.com/researchcollab/research-collab-api/internal/notify"
	"github.com/researchcollab/research-collab-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrApplicationRolesRequired  = errors.New("at least one CRediT role is required")
	ErrMotivationRequired        = errors.New("motivation is required")
	ErrCallNotFoundOrClosed      = errors.New("research call not found or closed")
	ErrOwnCallApplication        = errors.New("lead authors cannot apply to their own call")
	ErrAlreadyApplied            = errors.New("you have already applied for this research call")
	ErrApplicationNotFound       = errors.New("application not found")
	ErrInvalidApplicationStatus  = errors.New("status must be accepted or rejected")
	ErrApplicationAlreadyDecided = errors.New("application has already been decided")
	ErrNotCallLeadAuthor         = errors.New("only the call's lead author can decide applications")
	ErrApplicationFilterRequired = errors.New("either callId or userId is required")
)

// ApplicationService enforces the co-author application lifecycle:
// pending -> accepted | rejected, both terminal.
type ApplicationService struct {
	appRepo    repository.ApplicationRepository
	callRepo   repository.CallRepository
	userRepo   repository.UserRepository
	dispatcher *notify.Dispatcher
}

// NewApplicationService creates a new ApplicationService.
func NewApplicationService(
	appRepo repository.ApplicationRepository,
	callRepo repository.CallRepository,
	userRepo repository.UserRepository,
	dispatcher *notify.Dispatcher,
) *ApplicationService {
	return &ApplicationService{
		appRepo:    appRepo,
		callRepo:   callRepo,
		userRepo:   userRepo,
		dispatcher: dispatcher,
	}
}

// SubmitApplicationInput represents input for submitting an application.
type SubmitApplicationInput struct {
	CallID     uint64
	UserID     uint64
	Roles      []string
	Motivation string
	OrcidID    string
}

// SubmitApplication validates the submission, inserts it as pending and
// notifies the lead author. A concurrent duplicate for the same
// (call, user) pair is rejected by the store's unique index.
func (s *ApplicationService) SubmitApplication(input SubmitApplicationInput) (*models.CoAuthorApplication, error) {
	if len(input.Roles) == 0 {
		return nil, ErrApplicationRolesRequired
	}
	if invalid := credit.InvalidIDs(input.Roles); len(invalid) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCreditRole, strings.Join(invalid, ", "))
	}
	if strings.TrimSpace(input.Motivation) == "" {
		return nil, ErrMotivationRequired
	}

	// A call in any non-open status is indistinguishable from a missing one.
	call, err := s.callRepo.FindOpenByID(input.CallID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCallNotFoundOrClosed
		}
		return nil, fmt.Errorf("failed to find research call: %w", err)
	}

	if call.LeadAuthorID == input.UserID {
		return nil, ErrOwnCallApplication
	}

	if _, err := s.appRepo.FindByCallAndUser(input.CallID, input.UserID); err == nil {
		return nil, ErrAlreadyApplied
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing application: %w", err)
	}

	application := &models.CoAuthorApplication{
		CallID:     input.CallID,
		UserID:     input.UserID,
		Roles:      models.StringList(input.Roles),
		Motivation: input.Motivation,
		OrcidID:    input.OrcidID,
		Status:     models.ApplicationStatusPending,
	}

	if err := s.appRepo.Create(application); err != nil {
		// Two submissions raced past the check above; the unique index on
		// (call_id, user_id) caught the second one.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyApplied
		}
		return nil, fmt.Errorf("failed to submit application: %w", err)
	}

	s.notifyLeadAuthor(call, application)

	return application, nil
}

func (s *ApplicationService) notifyLeadAuthor(call *models.ResearchCall, application *models.CoAuthorApplication) {
	if call.LeadAuthor.Email == "" {
		return
	}

	applicant, err := s.userRepo.FindByID(application.UserID)
	if err != nil {
		// The application is already persisted; skip the notification.
		return
	}

	roleNames := strings.Join(credit.DisplayNames(application.Roles), ", ")
	s.dispatcher.SendEmail(notify.Email{
		To:      call.LeadAuthor.Email,
		Subject: fmt.Sprintf("New Co-Author Application for %q", call.Title),
		HTML: fmt.Sprintf(`<h1>New Co-Author Application</h1>
<p>You have received a new application for your research call %q.</p>
<p><strong>Applicant:</strong> %s</p>
<p><strong>Email:</strong> %s</p>
<p><strong>Roles Applied For:</strong> %s</p>
<p><strong>Motivation:</strong></p>
<p>%s</p>
<p>Log in to your dashboard to review and respond to this application.</p>`,
			call.Title, applicant.Username, applicant.Email, roleNames, application.Motivation),
	})
}

// ListApplications returns applications matching the filters, newest first.
// At least one of CallID/UserID must be set.
func (s *ApplicationService) ListApplications(filter repository.ApplicationFilter) ([]models.CoAuthorApplication, error) {
	if filter.CallID == nil && filter.UserID == nil {
		return nil, ErrApplicationFilterRequired
	}

	applications, err := s.appRepo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return applications, nil
}

// SetStatus transitions a pending application to accepted or rejected. Both
// outcomes are terminal; a second transition fails. Only the call's lead
// author may decide, and the decision email goes to the applicant.
func (s *ApplicationService) SetStatus(applicationID uint64, status models.ApplicationStatus, actorID uint64) (*models.CoAuthorApplication, error) {
	if status != models.ApplicationStatusAccepted && status != models.ApplicationStatusRejected {
		return nil, ErrInvalidApplicationStatus
	}

	application, err := s.appRepo.FindByID(applicationID, "Call", "User")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to find application: %w", err)
	}

	if application.Call.LeadAuthorID != actorID {
		return nil, ErrNotCallLeadAuthor
	}

	if application.Status != models.ApplicationStatusPending {
		return nil, ErrApplicationAlreadyDecided
	}

	// Conditional write: if a concurrent decision landed after the check
	// above, zero rows are still pending and the losing transition fails
	// instead of overwriting the first decision.
	if err := s.appRepo.Decide(application.ID, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationAlreadyDecided
		}
		return nil, fmt.Errorf("failed to update application status: %w", err)
	}
	application.Status = status

	s.notifyApplicant(application)

	return application, nil
}

func (s *ApplicationService) notifyApplicant(application *models.CoAuthorApplication) {
	if application.User.Email == "" {
		return
	}

	var subject, html string
	if application.Status == models.ApplicationStatusAccepted {
		subject = fmt.Sprintf("Your Application for %q Has Been Accepted", application.Call.Title)
		html = fmt.Sprintf(`<h1>Application Accepted</h1>
<p>Congratulations! Your application to be a co-author for the research call %q has been accepted.</p>
<p>The lead author will be in touch soon with next steps.</p>`, application.Call.Title)
	} else {
		subject = fmt.Sprintf("Update on Your Application for %q", application.Call.Title)
		html = fmt.Sprintf(`<h1>Application Status Update</h1>
<p>Thank you for your interest in the research call %q.</p>
<p>After careful consideration, the lead author has decided to proceed with other candidates whose skills better match the current needs of the project.</p>
<p>We appreciate your interest and encourage you to apply for future research calls.</p>`, application.Call.Title)
	}

	s.dispatcher.SendEmail(notify.Email{
		To:      application.User.Email,
		Subject: subject,
		HTML:    html,
	})
}
