package controllers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/lawrenceChege/order-management/internal/constants"
	"github.com/lawrenceChege/order-management/internal/middleware"
	"github.com/lawrenceChege/order-management/internal/services"
	"github.com/lawrenceChege/order-management/internal/utils"
)

// buildMeta assembles the audit context for a request: actor from the JWT
// middleware, client IP and the raw payload archived on the action row.
func buildMeta(r *http.Request, body []byte) services.RequestMeta {
	meta := services.RequestMeta{
		SourceIP:       utils.SourceIP(r),
		ClientViewable: true,
	}
	if len(body) > 0 {
		var payload map[string]interface{}
		if err := json.Unmarshal(body, &payload); err == nil {
			meta.Payload = payload
		}
	}
	if sub, ok := r.Context().Value(middleware.ContextKeyUserID).(string); ok {
		if id, err := uuid.Parse(sub); err == nil {
			meta.UserID = &id
		}
	}
	return meta
}

// statusForCode maps an envelope code to the HTTP status it rides on. The
// envelope code stays authoritative; the HTTP status is a transport hint.
func statusForCode(code string) int {
	switch code {
	case constants.CodeSuccess, constants.CodeRetrieved:
		return http.StatusOK
	case constants.CodeInvalidField, constants.CodeInvalidID:
		return http.StatusBadRequest
	case constants.CodeActionLogFailed, constants.CodeException:
		return http.StatusInternalServerError
	}
	if strings.HasSuffix(code, ".404") || strings.HasSuffix(code, ".002") {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}

// pathUUID parses the {id} path variable, responding with a 400 when it is
// not a UUID. The caller returns immediately on !ok.
func pathUUID(w http.ResponseWriter, vars map[string]string, key string) (uuid.UUID, bool) {
	id, err := uuid.Parse(vars[key])
	if err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid "+key+" provided", nil, err,
		)
		return uuid.Nil, false
	}
	return id, true
}
