package response

import (
	"encoding/json"
	"net/http"

	"voyage/shared/constant"
	"voyage/shared/dto"
	"voyage/shared/failure"
	"voyage/shared/logger"
)

type Data[T any] struct {
	Data *T `json:"data,omitempty"`
}

type Error struct {
	Error   *string        `json:"error,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

type Message struct {
	Message *string `json:"message,omitempty"`
}

type MessageWithWarnings struct {
	Message  *string  `json:"message,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// WithMessage sends a response with a simple text message
func WithMessage(writer http.ResponseWriter, code int, message string) {
	response(writer, code, Message{Message: &message})
}

// WithJSON sends a response containing a JSON object
func WithJSON(writer http.ResponseWriter, code int, jsonPayload interface{}) {
	response(writer, code, Data[any]{Data: &jsonPayload})
}

// WithError sends a response with an error message
func WithError(writer http.ResponseWriter, err error) {
	code := failure.GetCode(err)
	errMsg := err.Error()

	response(writer, code, Error{Error: &errMsg, Details: failure.GetDetails(err)})
}

// WithOutcome sends a message, adding warnings when the mutation left orphaned media
// or failed to notify.
func WithOutcome(writer http.ResponseWriter, code int, message string, outcome dto.Outcome) {
	if outcome.Empty() {
		WithMessage(writer, code, message)

		return
	}

	response(writer, code, MessageWithWarnings{Message: &message, Warnings: outcome.Warnings()})
}

// WithJSONOutcome sends a JSON object together with the warnings of the mutation that produced it.
func WithJSONOutcome(writer http.ResponseWriter, code int, jsonPayload interface{}, outcome dto.Outcome) {
	if outcome.Empty() {
		WithJSON(writer, code, jsonPayload)

		return
	}

	response(writer, code, struct {
		Data     *any     `json:"data,omitempty"`
		Warnings []string `json:"warnings,omitempty"`
	}{Data: &jsonPayload, Warnings: outcome.Warnings()})
}

// WithRequestLimitExceeded sends a default response for when the request limit is exceeded
func WithRequestLimitExceeded(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

// WithPreparingShutdown sends a default response for when the server is preparing to shut down
func WithPreparingShutdown(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

// WithUnhealthy sends a default response for when the server is unhealthy
func WithUnhealthy(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorUnhealthy)
}

func response(writer http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)
	_, err = writer.Write(response)

	if err != nil {
		logger.ErrorWithStack(err)
	}
}
