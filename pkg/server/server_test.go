package server_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"kitchengram.app/KitchenGram/pkg/auth"
	"kitchengram.app/KitchenGram/pkg/model"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// withUser injects an already-resolved identity, standing in for the token
// middleware.
func withUser(user *model.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user != nil {
			auth.SetUser(c, user)
		}

		c.Next()
	}
}

func newTestEngine() *gin.Engine {
	engine := gin.New()

	return engine
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func performRequest(engine *gin.Engine, method string, target string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		encoded, _ := json.Marshal(body)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	request := httptest.NewRequest(method, target, reader)
	request.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, request)

	return recorder
}

func errorDetail(recorder *httptest.ResponseRecorder) string {
	var payload struct {
		Detail string `json:"detail"`
	}

	_ = json.Unmarshal(recorder.Body.Bytes(), &payload)

	return payload.Detail
}
