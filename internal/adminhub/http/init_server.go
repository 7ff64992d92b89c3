package http

import (
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/adminhub/internal/adminhub/service"
	"github.com/aussiebroadwan/adminhub/pkg/adminsdk"
	"github.com/aussiebroadwan/adminhub/pkg/cryptox"
	"github.com/aussiebroadwan/adminhub/pkg/httpx"
	"github.com/aussiebroadwan/adminhub/pkg/slogx"
)

// InitServerHandler reports on and triggers the archiving scheduler.
type InitServerHandler struct {
	Scheduler *service.Scheduler
	SecretKey string
}

// HandleStatus godoc
//
//	@Summary		Archiving Scheduler Status
//	@Description	Reports whether the scheduler is running, its interval and the last archiving pass.
//	@Tags			System
//	@Produce		json
//	@Success		200	{object}	adminsdk.InitServerResponse	"success, scheduler"
//	@Router			/v1/init-server [get].
func (h *InitServerHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, adminsdk.InitServerResponse{
		Success:   true,
		Scheduler: toSchedulerStatus(h.Scheduler.Status()),
	})
}

// HandleTrigger godoc
//
//	@Summary		Run Archiving Pass
//	@Description	Starts the scheduler if it is not running and performs one archiving pass.
//	@Tags			System
//	@Produce		json
//	@Param			key	query		string							true	"Archiving secret key"
//	@Success		200	{object}	adminsdk.ArchiveRunResponse		"success, run"
//	@Failure		401	{object}	adminsdk.ErrorResponse			"error, error_description"
//	@Failure		500	{object}	adminsdk.ErrorResponse			"error, error_description"
//	@Router			/v1/init-server [post].
func (h *InitServerHandler) HandleTrigger(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	// 1. The key must match; an unset secret never matches
	key := r.URL.Query().Get("key")
	if h.SecretKey == "" || key == "" || !cryptox.SecretEqual(key, h.SecretKey) {
		log.Warn("archiving trigger with bad key")
		adminsdk.ErrUnauthorized.WithDescription("invalid archiving key").WriteError(w)
		return
	}

	// 2. Make sure the background worker is up, then run a pass now
	h.Scheduler.EnsureStarted()

	run, err := h.Scheduler.Trigger(ctx)
	if err != nil {
		log.Error("manual archiving pass failed", slog.String("run_id", run.ID), slog.Any("error", err))
		adminsdk.ErrServerError.WithDescription("archiving pass failed").WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, adminsdk.ArchiveRunResponse{Success: true, Run: toArchiveRun(run)})
}
