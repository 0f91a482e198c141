package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flashContext(t *testing.T, cookie *http.Cookie) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != nil {
		c.Request.AddCookie(cookie)
	}
	return c, w
}

func TestFlashMessage_RoundTrip(t *testing.T) {
	secret := []byte("secret")

	c, w := flashContext(t, nil)
	require.NoError(t, setFlashMessage(c, flashSuccess, "Saved.", secret, false))
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)

	c, _ = flashContext(t, cookies[0])
	flash, err := getFlashMessage(c, secret, false)
	require.NoError(t, err)
	require.NotNil(t, flash)
	assert.Equal(t, FlashMessage{Type: flashSuccess, Message: "Saved."}, *flash)
}

func TestFlashMessage_RejectsForeignSignature(t *testing.T) {
	c, w := flashContext(t, nil)
	require.NoError(t, setFlashMessage(c, flashInfo, "hi", []byte("one"), false))

	c, _ = flashContext(t, w.Result().Cookies()[0])
	flash, err := getFlashMessage(c, []byte("two"), false)
	assert.Error(t, err)
	assert.Nil(t, flash)
}

func TestFlashMessage_NoCookie(t *testing.T) {
	c, _ := flashContext(t, nil)
	flash, err := getFlashMessage(c, []byte("secret"), false)
	assert.NoError(t, err)
	assert.Nil(t, flash)
}

func TestBatchStatus(t *testing.T) {
	assert.Equal(t, http.StatusOK, batchStatus(3, 3))
	assert.Equal(t, http.StatusMultiStatus, batchStatus(1, 3))
	assert.Equal(t, http.StatusBadGateway, batchStatus(0, 2))
}
