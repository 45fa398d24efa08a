package http

import (
	"net/http"

	"github.com/aussiebroadwan/tollgate/internal/tollgate/service"
	"github.com/aussiebroadwan/tollgate/pkg/httpx"
	"github.com/aussiebroadwan/tollgate/pkg/tollgatesdk"
)

// SubscriptionHandler serves plans, plan changes and feature visibility.
type SubscriptionHandler struct {
	SubscriptionService *service.SubscriptionService
}

// HandlePlans handles GET /v1/subscriptions/plans
//
//	@Summary		List plans
//	@Tags			Subscriptions
//	@Produce		json
//	@Success		200	{object}	tollgatesdk.PlansResponse
//	@Router			/v1/subscriptions/plans [get].
func (h *SubscriptionHandler) HandlePlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.SubscriptionService.Plans(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "Failed to list plans")
		return
	}

	out := tollgatesdk.PlansResponse{Plans: make([]tollgatesdk.Plan, len(plans))}
	for i, p := range plans {
		out.Plans[i] = toPlan(p)
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleSubscribe handles POST /v1/subscriptions/subscribe
//
//	@Summary		Change plan
//	@Description	Moves the caller onto a plan. Non-admin roles follow the plan; admins keep their role.
//	@Tags			Subscriptions
//	@Accept			json
//	@Produce		json
//	@Security		AuthToken
//	@Param			request	body		tollgatesdk.SubscribeRequest	true	"Requested plan"
//	@Success		200		{object}	tollgatesdk.User
//	@Failure		400		{object}	tollgatesdk.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	tollgatesdk.ErrorResponse	"error, error_description"
//	@Router			/v1/subscriptions/subscribe [post].
func (h *SubscriptionHandler) HandleSubscribe(w http.ResponseWriter, r *http.Request) {
	u, ok := currentUser(r)
	if !ok {
		writeServiceError(w, r, service.ErrAuthentication, "")
		return
	}

	var req tollgatesdk.SubscribeRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadBody(w)
		return
	}

	updated, err := h.SubscriptionService.Subscribe(r.Context(), u.ID, req.Plan)
	if err != nil {
		writeServiceError(w, r, err, "Failed to change plan")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUser(updated))
}

// HandleFeatures handles GET /v1/features
//
//	@Summary		List features
//	@Description	Lists the features the caller's role and plan unlock.
//	@Tags			Subscriptions
//	@Produce		json
//	@Security		AuthToken
//	@Success		200	{object}	tollgatesdk.FeaturesResponse
//	@Failure		401	{object}	tollgatesdk.ErrorResponse	"error, error_description"
//	@Router			/v1/features [get].
func (h *SubscriptionHandler) HandleFeatures(w http.ResponseWriter, r *http.Request) {
	u, ok := currentUser(r)
	if !ok {
		writeServiceError(w, r, service.ErrAuthentication, "")
		return
	}

	features, err := h.SubscriptionService.Features(r.Context(), u)
	if err != nil {
		writeServiceError(w, r, err, "Failed to list features")
		return
	}

	out := tollgatesdk.FeaturesResponse{Features: make([]tollgatesdk.Feature, len(features))}
	for i, f := range features {
		out.Features[i] = toFeature(f)
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}
