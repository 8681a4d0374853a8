package common

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postFormContext(t *testing.T, form url.Values) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/data", strings.NewReader(form.Encode()))
	c.Request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c
}

func TestBindDatatableRequest(t *testing.T) {
	form := url.Values{}
	form.Set("draw", "3")
	form.Set("start", "20")
	form.Set("length", "10")
	form.Set("search[value]", "wang")
	form.Set("order[0][column]", "1")
	form.Set("order[0][dir]", "desc")
	form.Set("columns[0][data]", "account")
	form.Set("columns[1][data]", "name")

	req, err := BindDatatableRequest(postFormContext(t, form))
	require.NoError(t, err)

	assert.Equal(t, 3, req.Draw)
	assert.Equal(t, 20, req.Start)
	assert.Equal(t, 10, req.Length)
	assert.Equal(t, "wang", req.Search)
	assert.Equal(t, "name", req.SortColumn)
	assert.True(t, req.Descending())
}

func TestBindDatatableRequestDefaults(t *testing.T) {
	req, err := BindDatatableRequest(postFormContext(t, url.Values{}))
	require.NoError(t, err)

	assert.Equal(t, 0, req.Draw)
	assert.Equal(t, 0, req.Start)
	assert.Equal(t, 10, req.Length)
	assert.Equal(t, "", req.Search)
	assert.Equal(t, "", req.SortColumn)
}

func TestBindDatatableRequestRejectsBadInput(t *testing.T) {
	_, err := BindDatatableRequest(postFormContext(t, url.Values{"start": {"abc"}}))
	assert.Error(t, err)

	_, err = BindDatatableRequest(postFormContext(t, url.Values{"start": {"-5"}}))
	assert.Error(t, err)
}

func TestDateOnlyRoundTrip(t *testing.T) {
	var d DateOnly
	require.NoError(t, d.UnmarshalJSON([]byte(`"2024-05-01"`)))
	out, err := d.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"2024-05-01"`, string(out))

	require.NoError(t, d.UnmarshalJSON([]byte(`""`)))
	assert.True(t, d.IsZero())
	assert.Error(t, d.UnmarshalJSON([]byte(`"01/05/2024"`)))
}

func TestLocalDateTimeRoundTrip(t *testing.T) {
	var l LocalDateTime
	require.NoError(t, l.UnmarshalJSON([]byte(`"2024-05-01T08:01:02"`)))
	out, err := l.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"2024-05-01T08:01:02"`, string(out))
}
