package httpx

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/tansive/firebase/internal/common/logtrace"
)

// SendJsonRsp sends a JSON response with the given status code and message.
// Pre-marshaled JSON may be passed as json.RawMessage or []byte; anything
// else is marshaled.
func SendJsonRsp(ctx context.Context, w http.ResponseWriter, statusCode int, msg any) {
	var msgJson []byte
	switch m := msg.(type) {
	case json.RawMessage:
		msgJson = m
	case []byte:
		msgJson = m
	default:
		var err error
		msgJson, err = json.Marshal(msg)
		if err != nil {
			log.Ctx(ctx).Err(err).Msg("unable to marshal json")
			ErrApplicationError("Id: " + logtrace.RequestIdFromContext(ctx)).Send(w)
			return
		}
	}
	if !json.Valid(msgJson) {
		log.Ctx(ctx).Error().Msg("response is not valid json")
		ErrApplicationError("Id: " + logtrace.RequestIdFromContext(ctx)).Send(w)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(msgJson)
}

// SendNoContent answers with 204 and an empty body.
func SendNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
