package response

import (
	"encoding/json"
	"net/http"
	"roomly/shared/constant"
	"roomly/shared/failure"
	"roomly/shared/logger"
)

// Envelope is the body of every response.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    *T     `json:"data"`
}

// Message is an envelope without data, used by swagger annotations.
type Message = Envelope[any]

// WithMessage sends a successful response without data.
func WithMessage(writer http.ResponseWriter, code int, message string) {
	response(writer, code, Message{Success: true, Message: message})
}

// WithJSON sends a successful response containing a JSON payload.
func WithJSON(writer http.ResponseWriter, code int, message string, payload any) {
	response(writer, code, Envelope[any]{Success: true, Message: message, Data: &payload})
}

// WithError maps err to its status code. Messages of unexpected errors are not exposed.
func WithError(writer http.ResponseWriter, err error) {
	response(writer, failure.GetCode(err), Message{Success: false, Message: failure.GetMessage(err)})
}

func WithRequestLimitExceeded(writer http.ResponseWriter) {
	failed(writer, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

func WithPreparingShutdown(writer http.ResponseWriter) {
	failed(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

func WithUnhealthy(writer http.ResponseWriter) {
	failed(writer, http.StatusServiceUnavailable, constant.ResponseErrorUnhealthy)
}

func failed(writer http.ResponseWriter, code int, message string) {
	response(writer, code, Message{Success: false, Message: message})
}

func response(writer http.ResponseWriter, code int, payload any) {
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
