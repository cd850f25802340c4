package httpx

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/rentnest/rentnest-web/internal/domain/auth"
	"github.com/rentnest/rentnest-web/internal/session"
	"github.com/rentnest/rentnest-web/internal/testutil"
)

func TestPageHandler(t *testing.T) {
	st := &session.State{User: testutil.NewUser().Build()}
	rec := serveWithVisitor(PageHandler("dashboard"), st, "/dashboard")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "dashboard", body["page"])
	assert.Equal(t, domainauth.RouteDashboard, body["redirect_to"])
	require.NotNil(t, body["user"])
}

func TestVerifyAccountPage(t *testing.T) {
	t.Run("query overrides win", func(t *testing.T) {
		st := &session.State{User: testutil.NewUser().Unverified().Build()}
		rec := serveWithVisitor(VerifyAccountPage(), st, "/verify-account?email=other%40example.com&message=Check+your+inbox")

		body := decodeBody(t, rec)
		assert.Equal(t, "other@example.com", body["contact"])
		assert.Equal(t, "Check your inbox", body["message"])
	})

	t.Run("falls back to the pending user's email", func(t *testing.T) {
		st := &session.State{
			User:             testutil.NewUser().Unverified().Build(),
			RegistrationData: &domainauth.RegistrationMeta{Message: "OTP sent to your phone"},
		}
		rec := serveWithVisitor(VerifyAccountPage(), st, "/verify-account")

		body := decodeBody(t, rec)
		assert.Equal(t, "ama@example.com", body["contact"])
		assert.Equal(t, "OTP sent to your phone", body["message"])
	})

	t.Run("falls back to the phone number without an email", func(t *testing.T) {
		user := testutil.NewUser().Unverified().Build()
		user.Email = ""
		st := &session.State{User: user}
		rec := serveWithVisitor(VerifyAccountPage(), st, "/verify-account")

		body := decodeBody(t, rec)
		assert.Equal(t, "233201234567", body["contact"])
	})
}
