package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/routeai/admin-console/internal/api/metrics"
	"github.com/routeai/admin-console/internal/core/domain"
	"github.com/routeai/admin-console/internal/core/ports"
)

// ConsoleProvider hands out the per-operator console instance.
type ConsoleProvider interface {
	Console(session domain.Session) (ports.ConsoleService, error)
}

// ConsoleHandler exposes the roster and the two mutation workflows.
type ConsoleHandler struct {
	consoles ConsoleProvider
	audit    ports.AuditRepository // nil when the audit trail is disabled
}

func NewConsoleHandler(consoles ConsoleProvider, audit ports.AuditRepository) *ConsoleHandler {
	return &ConsoleHandler{consoles: consoles, audit: audit}
}

func (h *ConsoleHandler) console(c echo.Context) (ports.ConsoleService, error) {
	session, err := ctxSession(c)
	if err != nil {
		return nil, err
	}
	return h.consoles.Console(session)
}

// ListUsers handles GET /v1/console/users — loads the roster.
//
// @Summary      Load the managed-user roster
// @Tags         console
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.RosterView
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /v1/console/users [get]
func (h *ConsoleHandler) ListUsers(c echo.Context) error {
	console, err := h.console(c)
	if err != nil {
		return err
	}

	view, err := console.LoadRoster(c.Request().Context())
	if err != nil {
		metrics.RosterLoadsTotal.WithLabelValues("error").Inc()
		return err
	}
	metrics.RosterLoadsTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, view)
}

// OpenRoleChange handles POST /v1/console/users/:id/role/workflow.
//
// @Summary      Open the role-change workflow for a user
// @Tags         console
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "User id"
// @Success      200  {object}  ports.WorkflowView
// @Failure      404  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /v1/console/users/{id}/role/workflow [post]
func (h *ConsoleHandler) OpenRoleChange(c echo.Context) error {
	console, err := h.console(c)
	if err != nil {
		return err
	}

	view, err := console.OpenRoleChange(c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// SubmitRoleChange handles PUT /v1/console/users/:id/role.
//
// @Summary      Submit a role change
// @Tags         console
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User id"
// @Param        body  body      roleChangeRequest  true  "Proposed role and optional summary"
// @Success      200   {object}  ports.WorkflowView
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /v1/console/users/{id}/role [put]
func (h *ConsoleHandler) SubmitRoleChange(c echo.Context) error {
	console, err := h.console(c)
	if err != nil {
		return err
	}

	var req roleChangeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	start := time.Now()
	view, err := console.SubmitRoleChange(c.Request().Context(), ports.RoleChangeInput{
		UserID:  c.Param("id"),
		Role:    req.Role,
		Summary: req.Summary,
	})
	metrics.MutationDuration.WithLabelValues(string(domain.WorkflowRoleChange)).Observe(time.Since(start).Seconds())
	metrics.RoleChangesTotal.WithLabelValues(mutationResult(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// OpenCreditAdjustment handles POST /v1/console/users/:id/credits/workflow.
//
// @Summary      Open the credit-adjustment workflow for a user
// @Tags         console
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "User id"
// @Success      200  {object}  ports.WorkflowView
// @Failure      404  {object}  map[string]string
// @Router       /v1/console/users/{id}/credits/workflow [post]
func (h *ConsoleHandler) OpenCreditAdjustment(c echo.Context) error {
	console, err := h.console(c)
	if err != nil {
		return err
	}

	view, err := console.OpenCreditAdjustment(c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// ProposeCreditAdjustment handles POST /v1/console/users/:id/credits/proposal.
// On success the response is the confirmation step: the exact signed amount,
// the target's email, and a one-time confirm token.
//
// @Summary      Propose a credit adjustment
// @Tags         console
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "User id"
// @Param        body  body      creditProposalRequest  true  "Signed amount in cents and mandatory reason"
// @Success      200   {object}  ports.WorkflowView
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/console/users/{id}/credits/proposal [post]
func (h *ConsoleHandler) ProposeCreditAdjustment(c echo.Context) error {
	console, err := h.console(c)
	if err != nil {
		return err
	}

	var req creditProposalRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	view, err := console.ProposeCreditAdjustment(ports.CreditAdjustmentInput{
		UserID:      c.Param("id"),
		AmountCents: req.AmountCents.String(),
		Reason:      req.Reason,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// CommitCreditAdjustment handles POST /v1/console/users/:id/credits.
//
// @Summary      Commit a confirmed credit adjustment
// @Tags         console
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "User id"
// @Param        body  body      creditCommitRequest  true  "Confirmation token from the proposal step"
// @Success      200   {object}  ports.WorkflowView
// @Failure      409   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /v1/console/users/{id}/credits [post]
func (h *ConsoleHandler) CommitCreditAdjustment(c echo.Context) error {
	console, err := h.console(c)
	if err != nil {
		return err
	}

	var req creditCommitRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	start := time.Now()
	view, err := console.CommitCreditAdjustment(c.Request().Context(), c.Param("id"), req.ConfirmToken)
	metrics.MutationDuration.WithLabelValues(string(domain.WorkflowCreditAdjustment)).Observe(time.Since(start).Seconds())
	metrics.CreditAdjustmentsTotal.WithLabelValues(mutationResult(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// ActiveWorkflow handles GET /v1/console/workflow.
//
// @Summary      Inspect the active workflow
// @Tags         console
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.WorkflowView
// @Router       /v1/console/workflow [get]
func (h *ConsoleHandler) ActiveWorkflow(c echo.Context) error {
	console, err := h.console(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, console.ActiveWorkflow())
}

// DeclineConfirmation handles DELETE /v1/console/workflow/confirmation —
// returns the credit workflow to Open with the proposal intact.
//
// @Summary      Decline the pending confirmation
// @Tags         console
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.WorkflowView
// @Failure      409  {object}  map[string]string
// @Router       /v1/console/workflow/confirmation [delete]
func (h *ConsoleHandler) DeclineConfirmation(c echo.Context) error {
	console, err := h.console(c)
	if err != nil {
		return err
	}

	view, err := console.DeclineConfirmation()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// CancelWorkflow handles DELETE /v1/console/workflow — closes whichever
// workflow is open, discarding its proposal.
//
// @Summary      Cancel the active workflow
// @Tags         console
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.WorkflowView
// @Router       /v1/console/workflow [delete]
func (h *ConsoleHandler) CancelWorkflow(c echo.Context) error {
	console, err := h.console(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, console.CancelWorkflow())
}

// ListAudit handles GET /v1/console/users/:id/audit.
//
// @Summary      List recent audited mutations for a user
// @Tags         console
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "User id"
// @Success      200  {object}  auditListResponse
// @Router       /v1/console/users/{id}/audit [get]
func (h *ConsoleHandler) ListAudit(c echo.Context) error {
	if _, err := ctxSession(c); err != nil {
		return err
	}
	if h.audit == nil {
		return c.JSON(http.StatusOK, auditListResponse{Entries: []auditEntryResponse{}})
	}

	entries, err := h.audit.ListByUser(c.Request().Context(), c.Param("id"), 50)
	if err != nil {
		return err
	}

	resp := auditListResponse{Entries: make([]auditEntryResponse, 0, len(entries))}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, auditEntryResponse{
			OperatorID:  e.OperatorID,
			UserID:      e.UserID,
			Action:      string(e.Action),
			Role:        string(e.Role),
			AmountCents: e.AmountCents,
			Reason:      e.Reason,
			At:          e.At,
		})
	}
	return c.JSON(http.StatusOK, resp)
}

// mutationResult buckets a submit outcome for metrics.
func mutationResult(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrDuplicateSubmit):
		return "duplicate"
	}
	if re, ok := domain.AsRemoteError(err); ok && re.Kind == domain.RemoteTransport {
		return "transport"
	}
	return "rejected"
}
