// AngelaMos | 2026
// mailer_test.go

package mailer_test

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitsyy/gym-backend/internal/mailer"
)

func TestLink(t *testing.T) {
	link, err := mailer.Link("https://app.fitsyy.com/", "/invite", "abc+/=")
	require.NoError(t, err)

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "app.fitsyy.com", u.Host)
	assert.Equal(t, "/invite", u.Path)
	assert.Equal(t, "abc+/=", u.Query().Get("token"))
}

func TestRecorder(t *testing.T) {
	rec := &mailer.Recorder{}
	_, ok := rec.Last()
	assert.False(t, ok)

	require.NoError(t, rec.Send(context.Background(), mailer.Message{To: "a@b.co"}))
	last, ok := rec.Last()
	require.True(t, ok)
	assert.Equal(t, "a@b.co", last.To)

	rec.Err = errors.New("smtp down")
	assert.Error(t, rec.Send(context.Background(), mailer.Message{To: "c@d.co"}))
	assert.Len(t, rec.Sent(), 1)
}

func TestLogMailer_NeverFails(t *testing.T) {
	m := mailer.NewLogMailer(nil)
	assert.NoError(t, m.Send(context.Background(), mailer.Message{To: "x@y.z"}))
}
