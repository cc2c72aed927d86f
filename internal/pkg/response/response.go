// Package response renders the uniform payload envelope every endpoint
// returns: {info:{message,details,metadata}, data}. Success and error share
// one shape; clients branch on status code.
package response

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Info carries the human-readable message plus structured detail and metadata.
type Info struct {
	Message  string      `json:"message"`
	Details  interface{} `json:"details"`
	Metadata interface{} `json:"metadata"`
}

// Envelope is the wire shape of every response.
type Envelope struct {
	Info Info        `json:"info"`
	Data interface{} `json:"data"`
}

// FieldError is one entry of a validation failure's details list.
type FieldError map[string]string

var statusMessages = map[int]string{
	http.StatusOK:                  "Success",
	http.StatusCreated:             "Resource Name created successfully",
	http.StatusBadRequest:          "Bad request",
	http.StatusUnprocessableEntity: "Invalid Content send",
	http.StatusNotFound:            "Item not found",
}

const unknownErrorMessage = "Unknown error"

// New builds an envelope, defaulting the message from the status code when the
// caller supplies none. Absent data serializes as [], absent details and
// metadata as {} — including for single-entity endpoints.
func New(status int, message string, data, details, metadata interface{}) Envelope {
	if message == "" {
		m, ok := statusMessages[status]
		if !ok {
			m = unknownErrorMessage
		}
		message = m
	}
	if data == nil {
		data = []interface{}{}
	}
	if details == nil {
		details = map[string]interface{}{}
	}
	if metadata == nil {
		metadata = map[string]interface{}{}
	}
	return Envelope{Info: Info{Message: message, Details: details, Metadata: metadata}, Data: data}
}

// Marshal renders the envelope compactly, passing non-ASCII through as UTF-8.
// Non-finite numbers are rejected by the encoder rather than coerced.
func Marshal(env Envelope) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(env); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Send writes the envelope with the given status, aborting the chain for
// error statuses.
func Send(c *gin.Context, status int, env Envelope) {
	body, err := Marshal(env)
	if err != nil {
		status = http.StatusInternalServerError
		body, _ = Marshal(New(status, "response serialization failed", nil, nil, nil))
	}
	c.Data(status, "application/json; charset=utf-8", body)
	if status >= http.StatusBadRequest {
		c.Abort()
	}
}

// OK sends a 200 response wrapping data.
func OK(c *gin.Context, data interface{}) {
	Send(c, http.StatusOK, New(http.StatusOK, "", data, nil, nil))
}

// OKMsg sends a 200 response with a custom message.
func OKMsg(c *gin.Context, message string, data interface{}) {
	Send(c, http.StatusOK, New(http.StatusOK, message, data, nil, nil))
}

// Paged sends a 200 response with pagination metadata in info.metadata.
func Paged(c *gin.Context, data, metadata interface{}) {
	Send(c, http.StatusOK, New(http.StatusOK, "", data, nil, metadata))
}

// Created sends a 201 response.
func Created(c *gin.Context, data interface{}) {
	Send(c, http.StatusCreated, New(http.StatusCreated, "", data, nil, nil))
}

// NoContent sends an empty 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest sends a 400 error response.
func BadRequest(c *gin.Context, message string) {
	Send(c, http.StatusBadRequest, New(http.StatusBadRequest, message, nil, nil, nil))
}

// Unauthorized sends a 401 error response.
func Unauthorized(c *gin.Context) {
	Send(c, http.StatusUnauthorized, New(http.StatusUnauthorized, "Authentication required", nil, nil, nil))
}

// Forbidden sends a 403 error response.
func Forbidden(c *gin.Context, message string) {
	Send(c, http.StatusForbidden, New(http.StatusForbidden, message, nil, nil, nil))
}

// NotFound sends a 404 error response with the default message.
func NotFound(c *gin.Context) {
	Send(c, http.StatusNotFound, New(http.StatusNotFound, "", nil, nil, nil))
}

// Conflict sends a 409 error response.
func Conflict(c *gin.Context, message string) {
	Send(c, http.StatusConflict, New(http.StatusConflict, message, nil, nil, nil))
}

// UnprocessableEntity sends a 422 error with a per-field details list.
func UnprocessableEntity(c *gin.Context, message string, details []FieldError) {
	var d interface{}
	if details != nil {
		d = details
	}
	Send(c, http.StatusUnprocessableEntity, New(http.StatusUnprocessableEntity, message, nil, d, nil))
}

// TooManyRequests sends a 429 error response.
func TooManyRequests(c *gin.Context, message string) {
	Send(c, http.StatusTooManyRequests, New(http.StatusTooManyRequests, message, nil, nil, nil))
}

// InternalError sends a 500 error response.
func InternalError(c *gin.Context, err error) {
	Send(c, http.StatusInternalServerError, New(http.StatusInternalServerError, err.Error(), nil, nil, nil))
}
