package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/routeai/admin-console/internal/core/domain"
	"github.com/routeai/admin-console/internal/core/ports"
)

const defaultBannerTTL = 5 * time.Second

// SubmitGuard abstracts the double-submit guard (Redis). Reserve returns
// false when an identical adjustment was committed moments ago.
type SubmitGuard interface {
	Reserve(ctx context.Context, operatorID, userID string, amountCents int64, reason string) (bool, error)
}

type pageBanner struct {
	kind      string
	message   string
	expiresAt time.Time
}

// Console is one operator's console instance: the roster plus at most one open
// workflow. Opening a workflow implicitly abandons any unsaved proposal in the
// other; no drafts are persisted. Each workflow issues at most one in-flight
// mutation, and the roster is only ever mutated by a verified success
// response.
type Console struct {
	mu      sync.Mutex
	session domain.Session
	gate    *AccessGate
	roster  *Roster
	role    *RoleChangeWorkflow
	credit  *CreditAdjustmentWorkflow

	directory ports.UserDirectory
	audit     ports.AuditRecorder
	guard     SubmitGuard
	log       zerolog.Logger

	now       func() time.Time
	bannerTTL time.Duration
	banner    *pageBanner
}

// NewConsole builds a console for the given operator session. The audit
// recorder and submit guard may be nil; both are best-effort collaborators.
func NewConsole(
	session domain.Session,
	directory ports.UserDirectory,
	audit ports.AuditRecorder,
	guard SubmitGuard,
	log zerolog.Logger,
) *Console {
	return &Console{
		session:   session,
		gate:      NewAccessGate(),
		roster:    NewRoster(directory, log),
		role:      NewRoleChangeWorkflow(session),
		credit:    NewCreditAdjustmentWorkflow(session),
		directory: directory,
		audit:     audit,
		guard:     guard,
		log:       log.With().Str("operator_id", session.OperatorID).Logger(),
		now:       time.Now,
		bannerTTL: defaultBannerTTL,
	}
}

// LoadRoster fetches the user list from the upstream service. Retrying a
// failed load is simply calling it again.
func (c *Console) LoadRoster(ctx context.Context) (ports.RosterView, error) {
	if err := c.gate.Admit(&c.session); err != nil {
		return ports.RosterView{}, err
	}
	if err := c.roster.Load(ctx); err != nil {
		return ports.RosterView{}, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rosterView(), nil
}

// Roster returns the current roster without reloading.
func (c *Console) Roster() ports.RosterView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rosterView()
}

func (c *Console) rosterView() ports.RosterView {
	v := ports.RosterView{
		Users:    c.roster.Users(),
		LoadedAt: c.roster.LoadedAt(),
	}
	if b := c.currentBanner(); b != nil {
		v.Banner = b
	}
	return v
}

// OpenRoleChange opens the role-change workflow for a roster row, abandoning
// any other open workflow.
func (c *Console) OpenRoleChange(userID string) (ports.WorkflowView, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	user, err := c.roster.Get(userID)
	if err != nil {
		return c.activeView(), err
	}
	c.credit.Cancel()
	if err := c.role.Open(user); err != nil {
		return c.activeView(), err
	}
	return c.role.View(), nil
}

// SubmitRoleChange validates and commits the proposal. On failure the
// workflow stays open with the error inline and the proposal retained; the
// roster is untouched.
func (c *Console) SubmitRoleChange(ctx context.Context, in ports.RoleChangeInput) (ports.WorkflowView, error) {
	c.mu.Lock()
	if c.role.UserID() != in.UserID {
		defer c.mu.Unlock()
		if c.role.State() == domain.WorkflowClosed {
			return c.activeView(), domain.ErrNoWorkflow
		}
		return c.activeView(), domain.ErrWorkflowUserMismatch
	}
	if c.role.State() == domain.WorkflowOpen {
		if err := c.role.Propose(domain.Role(in.Role), in.Summary); err != nil {
			defer c.mu.Unlock()
			return c.role.View(), err
		}
	}
	proposal, err := c.role.BeginSubmit()
	if err != nil {
		defer c.mu.Unlock()
		return c.role.View(), err
	}
	c.mu.Unlock()

	// Exactly one network mutation per submit; no implicit retries.
	remoteErr := c.directory.UpdateRole(ctx, proposal.UserID, proposal.Proposed, proposal.Summary)

	c.mu.Lock()
	defer c.mu.Unlock()

	if remoteErr != nil {
		c.role.FailSubmit(remoteMessage(remoteErr))
		c.log.Warn().Err(remoteErr).Str("user_id", proposal.UserID).Msg("role change rejected")
		return c.role.View(), remoteErr
	}

	if c.role.CompleteSubmit() {
		if err := c.roster.ApplyRoleUpdate(proposal.UserID, proposal.Proposed); err != nil {
			c.log.Warn().Err(err).Str("user_id", proposal.UserID).Msg("role update not applied to roster")
		}
		c.setBanner("success", "role updated")
		c.recordAudit(domain.AuditEntry{
			OperatorID: c.session.OperatorID,
			UserID:     proposal.UserID,
			Action:     domain.AuditRoleChange,
			Role:       proposal.Proposed,
			Reason:     proposal.Summary,
			At:         c.now().UTC(),
		})
		c.log.Info().Str("user_id", proposal.UserID).Str("role", string(proposal.Proposed)).Msg("role changed")
	}
	return c.role.View(), nil
}

// OpenCreditAdjustment opens the credit workflow for a roster row, abandoning
// any other open workflow.
func (c *Console) OpenCreditAdjustment(userID string) (ports.WorkflowView, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	user, err := c.roster.Get(userID)
	if err != nil {
		return c.activeView(), err
	}
	c.role.Cancel()
	if err := c.credit.Open(user); err != nil {
		return c.activeView(), err
	}
	return c.credit.View(), nil
}

// ProposeCreditAdjustment validates the draft and moves to the confirmation
// step. Validation failures never reach the network.
func (c *Console) ProposeCreditAdjustment(in ports.CreditAdjustmentInput) (ports.WorkflowView, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.credit.UserID() != in.UserID {
		if c.credit.State() == domain.WorkflowClosed {
			return c.activeView(), domain.ErrNoWorkflow
		}
		return c.activeView(), domain.ErrWorkflowUserMismatch
	}
	if err := c.credit.Propose(in.AmountCents, in.Reason); err != nil {
		return c.credit.View(), err
	}
	return c.credit.View(), nil
}

// CommitCreditAdjustment issues the confirmed mutation. The server is the
// sole authority on the resulting balance: the roster receives exactly the
// value it returns.
func (c *Console) CommitCreditAdjustment(ctx context.Context, userID, confirmToken string) (ports.WorkflowView, error) {
	c.mu.Lock()
	if c.credit.UserID() != userID {
		defer c.mu.Unlock()
		if c.credit.State() == domain.WorkflowClosed {
			return c.activeView(), domain.ErrNoWorkflow
		}
		return c.activeView(), domain.ErrWorkflowUserMismatch
	}
	proposal, err := c.credit.BeginSubmit(confirmToken)
	if err != nil {
		defer c.mu.Unlock()
		return c.credit.View(), err
	}
	c.mu.Unlock()

	if dupErr := c.reserveSubmit(ctx, proposal); dupErr != nil {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.credit.FailSubmit(dupErr.Error())
		return c.credit.View(), dupErr
	}

	newBalance, remoteErr := c.directory.AdjustCredits(ctx, proposal.UserID, proposal.AmountCents, proposal.Reason)

	c.mu.Lock()
	defer c.mu.Unlock()

	if remoteErr != nil {
		c.credit.FailSubmit(remoteMessage(remoteErr))
		c.log.Warn().Err(remoteErr).Str("user_id", proposal.UserID).Msg("credit adjustment rejected")
		return c.credit.View(), remoteErr
	}

	if c.credit.CompleteSubmit() {
		if err := c.roster.ApplyBalanceUpdate(proposal.UserID, newBalance); err != nil {
			c.log.Warn().Err(err).Str("user_id", proposal.UserID).Msg("balance update not applied to roster")
		}
		c.setBanner("success", "credits adjusted")
		c.recordAudit(domain.AuditEntry{
			OperatorID:  c.session.OperatorID,
			UserID:      proposal.UserID,
			Action:      domain.AuditCreditAdjustment,
			AmountCents: proposal.AmountCents,
			Reason:      proposal.Reason,
			At:          c.now().UTC(),
		})
		c.log.Info().
			Str("user_id", proposal.UserID).
			Int64("amount_cents", proposal.AmountCents).
			Int64("new_balance_cents", newBalance).
			Msg("credits adjusted")
	}
	return c.credit.View(), nil
}

// DeclineConfirmation returns the credit workflow from the confirmation step
// to Open with the proposal intact.
func (c *Console) DeclineConfirmation() (ports.WorkflowView, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.credit.Decline(); err != nil {
		return c.activeView(), err
	}
	return c.credit.View(), nil
}

// CancelWorkflow closes whichever workflow is open, discarding its proposal.
func (c *Console) CancelWorkflow() ports.WorkflowView {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.role.Cancel()
	c.credit.Cancel()
	return c.activeView()
}

// ActiveWorkflow reports the currently open workflow, if any.
func (c *Console) ActiveWorkflow() ports.WorkflowView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.activeView()
}

func (c *Console) activeView() ports.WorkflowView {
	if c.role.State() != domain.WorkflowClosed {
		return c.role.View()
	}
	if c.credit.State() != domain.WorkflowClosed {
		return c.credit.View()
	}
	return ports.WorkflowView{State: domain.WorkflowClosed}
}

// reserveSubmit runs the double-submit guard. Guard backend failures are
// non-fatal: the mutation proceeds.
func (c *Console) reserveSubmit(ctx context.Context, p domain.CreditAdjustmentProposal) error {
	if c.guard == nil {
		return nil
	}
	ok, err := c.guard.Reserve(ctx, c.session.OperatorID, p.UserID, p.AmountCents, p.Reason)
	if err != nil {
		c.log.Warn().Err(err).Msg("submit guard unavailable, proceeding")
		return nil
	}
	if !ok {
		return domain.ErrDuplicateSubmit
	}
	return nil
}

func (c *Console) recordAudit(entry domain.AuditEntry) {
	if c.audit == nil {
		return
	}
	c.audit.Record(entry)
}

func (c *Console) setBanner(kind, message string) {
	c.banner = &pageBanner{kind: kind, message: message, expiresAt: c.now().Add(c.bannerTTL)}
}

// currentBanner returns the page banner unless it has self-cleared.
func (c *Console) currentBanner() *ports.BannerView {
	if c.banner == nil || !c.now().Before(c.banner.expiresAt) {
		c.banner = nil
		return nil
	}
	return &ports.BannerView{Kind: c.banner.kind, Message: c.banner.message}
}

// remoteMessage converts a directory error into the inline workflow message.
func remoteMessage(err error) string {
	if re, ok := domain.AsRemoteError(err); ok {
		return re.UserMessage()
	}
	return "request failed"
}
