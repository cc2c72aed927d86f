package response

import (
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultMessages(t *testing.T) {
	cases := map[int]string{
		http.StatusOK:                  "Success",
		http.StatusCreated:             "Resource Name created successfully",
		http.StatusBadRequest:          "Bad request",
		http.StatusUnprocessableEntity: "Invalid Content send",
		http.StatusNotFound:            "Item not found",
		http.StatusTeapot:              "Unknown error",
	}
	for status, want := range cases {
		env := New(status, "", nil, nil, nil)
		assert.Equal(t, want, env.Info.Message, "status %d", status)
	}
}

func TestNewExplicitMessageWins(t *testing.T) {
	env := New(http.StatusOK, "custom", nil, nil, nil)
	assert.Equal(t, "custom", env.Info.Message)
}

func TestNewDefaultsEmptySlots(t *testing.T) {
	env := New(http.StatusOK, "", nil, nil, nil)
	body, err := Marshal(env)
	require.NoError(t, err)
	assert.JSONEq(t, `{"info":{"message":"Success","details":{},"metadata":{}},"data":[]}`, string(body))
}

func TestMarshalCompactUTF8(t *testing.T) {
	env := New(http.StatusOK, "héllo <world>", map[string]string{"k": "v"}, nil, nil)
	body, err := Marshal(env)
	require.NoError(t, err)

	s := string(body)
	assert.NotContains(t, s, "\n")
	assert.NotContains(t, s, `\u00e9`)
	assert.NotContains(t, s, `\u003c`)
	assert.Contains(t, s, "héllo <world>")
}

func TestMarshalRejectsNonFiniteNumbers(t *testing.T) {
	env := New(http.StatusOK, "", map[string]float64{"x": math.NaN()}, nil, nil)
	_, err := Marshal(env)
	assert.Error(t, err)
}

func TestSendAbortsOnErrorStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	BadRequest(c, "nope")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.True(t, c.IsAborted())
	assert.Contains(t, w.Body.String(), `"message":"nope"`)
}

func TestCreatedUsesDefaultMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Created(c, map[string]string{"id": "1"})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "Resource Name created successfully")
	assert.False(t, c.IsAborted())
}

func TestValidationErrorDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	type form struct {
		Email string `validate:"required"`
		Age   int    `validate:"min=18"`
	}
	err := validator.New().Struct(form{Age: 3})
	require.Error(t, err)

	ValidationError(c, err)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "email failed on the 'required' rule")
	assert.Contains(t, body, "age failed on the 'min' rule")
}

func TestValidationErrorNonValidatorIsBadRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	ValidationError(c, assert.AnError)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
