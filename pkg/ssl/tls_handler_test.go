package ssl

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestTlsHandlerRedirect(t *testing.T) {
	assert := assert.New(t)
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	engine.Use(TlsHandler("example.com", 8443))
	engine.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "http://example.com/ping", nil))
	assert.Equal(http.StatusMovedPermanently, w.Code)
	assert.Equal("https://example.com:8443/ping", w.Header().Get("Location"))
	assert.NotContains(w.Body.String(), "pong")
}
