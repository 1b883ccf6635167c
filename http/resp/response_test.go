package resp_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/waypoint"
	"github.com/xy-planning-network/waypoint/http/resp"
)

func TestNew(t *testing.T) {
	// Act
	r := resp.New()

	// Assert
	require.Equal(t, http.StatusNotFound, r.StatusCode())
	require.True(t, r.IsError())
	require.Empty(t, r.BodyBytes())
	require.Empty(t, r.Headers())
}

func TestIsError(t *testing.T) {
	for _, tc := range []struct {
		code     int
		expected bool
	}{
		{http.StatusOK, false},
		{http.StatusCreated, false},
		{http.StatusMovedPermanently, false},
		{http.StatusBadRequest, true},
		{http.StatusTooManyRequests, true},
		{http.StatusInternalServerError, true},
		{http.StatusGatewayTimeout, true},
	} {
		t.Run(http.StatusText(tc.code), func(t *testing.T) {
			require.Equal(t, tc.expected, resp.New().Status(tc.code).IsError())
		})
	}
}

func TestHeaders(t *testing.T) {
	// Arrange
	r := resp.New()

	// Act
	r.SetHeader("X-Powered-By", "waypoint").SetHeader("Server", "waypoint")
	h := r.Headers()
	h.Set("Server", "other")

	// Assert
	require.Equal(t, "waypoint", r.Header("x-powered-by"))
	require.Equal(t, "waypoint", r.Header("Server"))

	// Act
	r.DelHeader("X-Powered-By")

	// Assert
	require.Empty(t, r.Header("X-Powered-By"))
}

func TestBody(t *testing.T) {
	// Arrange
	r := resp.New()

	// Act
	err := r.UpdateBody([]byte("nope"))

	// Assert
	require.ErrorIs(t, err, resp.ErrNoBody)
	require.ErrorIs(t, err, waypoint.ErrNotExist)

	// Act
	r.Body([]byte("<p>hi</p>"), "text/html")

	// Assert
	require.Equal(t, "text/html", r.Header("Content-Type"))
	require.Equal(t, []byte("<p>hi</p>"), r.BodyBytes())

	// Act
	err = r.UpdateBody([]byte("<p>bye</p>"))

	// Assert
	require.Nil(t, err)
	require.Equal(t, "text/html", r.Header("Content-Type"))
	require.Equal(t, []byte("<p>bye</p>"), r.BodyBytes())

	// Act
	r.Body([]byte("plain"), "")

	// Assert
	require.Equal(t, resp.ContentTypeText, r.Header("Content-Type"))
}

func TestJSON(t *testing.T) {
	// Arrange
	r := resp.New()

	// Act
	err := r.JSON(map[string]string{"status": "ok"})

	// Assert
	require.Nil(t, err)
	require.Equal(t, resp.ContentTypeJSON, r.Header("Content-Type"))
	require.JSONEq(t, `{"status":"ok"}`, string(r.BodyBytes()))

	// Act
	err = r.JSON(make(chan int))

	// Assert
	require.ErrorIs(t, err, waypoint.ErrBadFormat)
}

func TestLocals(t *testing.T) {
	// Arrange
	r := resp.New()

	// Act
	_, ok := r.Local("requestID")

	// Assert
	require.False(t, ok)

	// Act
	r.SetLocal("requestID", "abc")
	val, ok := r.Local("requestID")

	// Assert
	require.True(t, ok)
	require.Equal(t, "abc", val)
}

func TestWrite(t *testing.T) {
	// Arrange
	r := resp.New().Status(http.StatusCreated).SetHeader("Location", "/items/1")
	r.Text("created")
	w := httptest.NewRecorder()

	// Act
	err := r.Write(w)

	// Assert
	require.Nil(t, err)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, "/items/1", w.Header().Get("Location"))
	require.Equal(t, "7", w.Header().Get("Content-Length"))
	require.Equal(t, "created", w.Body.String())

	// Arrange
	r = resp.New().Status(http.StatusNoContent)
	r.Text("ignored")
	w = httptest.NewRecorder()

	// Act
	err = r.Write(w)

	// Assert
	require.Nil(t, err)
	require.Equal(t, http.StatusNoContent, w.Code)
	require.Empty(t, w.Body.String())

	// Arrange
	w = httptest.NewRecorder()

	// Act
	err = resp.New().Write(w)

	// Assert
	require.Nil(t, err)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "0", w.Header().Get("Content-Length"))
}
